package main

import (
	"log"
	"math"
)

// EncounterTickResult is what one Director tick hands back to the
// session loop: damage owed to the player, entities that left play,
// and the effect events accumulated along the way. The loop applies
// it; the Director never touches player state directly.
type EncounterTickResult struct {
	Damage             int
	DamageToPlayer     bool
	DestroyedEntityIDs []string
	CapturedEntityIDs  []string
	Fx                 []FxEvent
}

// EncounterDirector owns every live encounter plus the hostile
// projectiles and minions they spawn, and runs the fixed per-tick
// pipeline: encounters update, spawned actors update, the spatial
// index is rebuilt, then collisions resolve against the fresh index.
// Queries never run against a half-updated frame.
type EncounterDirector struct {
	arena       Bounds
	encounters  []*Encounter // insertion order, which is update order
	projectiles []*Projectile
	minions     []*Minion

	index  *SpatialIndex
	lookup map[string]Hittable // id -> snapshot record behind the index

	rng  *Rand
	logf func(format string, v ...interface{})
}

// NewEncounterDirector creates a director for the given arena
func NewEncounterDirector(arena Bounds, rng *Rand) *EncounterDirector {
	if rng == nil {
		rng = NewRand(NewRandomSeed())
	}
	return &EncounterDirector{
		arena:  arena,
		index:  NewSpatialIndex(arena.Width, arena.Height),
		lookup: make(map[string]Hittable),
		rng:    rng,
		logf:   log.Printf,
	}
}

// Spawn validates the profile and adds an encounter at the given
// position. Update order is spawn order.
func (d *EncounterDirector) Spawn(profile AttackProfile, x, y float64) (*Encounter, error) {
	e, err := NewEncounter(GenerateID(4), profile, x, y, d.rng)
	if err != nil {
		return nil, err
	}
	d.encounters = append(d.encounters, e)
	return e, nil
}

// Tick advances every encounter and spawned actor by dtMs and resolves
// collisions against the player. entities is the session's snapshot of
// external hittables (debris and the like) for this frame; the
// Director adds its own minions to it before anything scans.
func (d *EncounterDirector) Tick(dtMs float64, player PlayerView, entities []Hittable, progressRatio float64) EncounterTickResult {
	var result EncounterTickResult

	snapshot := make([]Hittable, 0, len(entities)+len(d.minions))
	snapshot = append(snapshot, entities...)
	for _, m := range d.minions {
		if m.Alive {
			snapshot = append(snapshot, Hittable{ID: m.ID, X: m.X, Y: m.Y, Radius: m.Radius, Kind: EntityMinion})
		}
	}
	byID := make(map[string]Hittable, len(snapshot))
	for _, h := range snapshot {
		byID[h.ID] = h
	}
	capturedThisTick := make(map[string]bool)

	ctx := &TickContext{
		DtMs:          dtMs,
		Player:        player,
		ProgressRatio: Clamp(progressRatio, 0, 1),
		Arena:         d.arena,
		Rng:           d.rng,
		Fx: func(fx FxEvent) {
			result.Fx = append(result.Fx, fx)
		},
		SpawnProjectile: func(p *Projectile) {
			d.projectiles = append(d.projectiles, p)
		},
		SpawnMinion: func(m *Minion) {
			d.minions = append(d.minions, m)
		},
		Capture: func(id string) (Hittable, bool) {
			h, ok := byID[id]
			if !ok || capturedThisTick[id] {
				d.logf("capture ignored, entity %s not in play", id)
				return Hittable{}, false
			}
			capturedThisTick[id] = true
			if h.Kind == EntityMinion {
				d.killMinion(id)
			}
			result.CapturedEntityIDs = append(result.CapturedEntityIDs, id)
			return h, true
		},
		NearbyHittables: func(b Bounds) []Hittable {
			var out []Hittable
			for _, h := range snapshot {
				if capturedThisTick[h.ID] {
					continue
				}
				if BoundsOverlap(h.Bounds(), b) {
					out = append(out, h)
				}
			}
			return out
		},
	}

	for _, e := range d.encounters {
		d.tickEncounter(e, ctx)
	}

	for _, m := range d.minions {
		m.Update(dtMs, player.X, player.Y, d.arena)
		if !m.Alive {
			result.DestroyedEntityIDs = append(result.DestroyedEntityIDs, m.ID)
		}
	}
	for _, p := range d.projectiles {
		p.Update(dtMs, d.arena)
	}

	d.rebuildIndex(player, entities, capturedThisTick)

	d.resolvePlayerCollisions(player, &result)

	d.prune()
	return result
}

// tickEncounter updates one encounter with panic containment: a
// resolver fault costs that encounter its current attack, never the
// session.
func (d *EncounterDirector) tickEncounter(e *Encounter, ctx *TickContext) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logf("encounter %s (%s) fault in %s: %v, aborting attack",
				e.ID, e.ChosenKind, e.Phase, rec)
			e.AbortAttack(ctx)
		}
	}()
	e.Update(ctx)
}

// rebuildIndex recreates the broad-phase from this frame's positions.
// Captured entities are out of play and stay out of the index.
func (d *EncounterDirector) rebuildIndex(player PlayerView, entities []Hittable, captured map[string]bool) {
	d.index.Clear()
	for k := range d.lookup {
		delete(d.lookup, k)
	}
	insert := func(h Hittable) {
		d.index.Insert(h.ID, h.Bounds())
		d.lookup[h.ID] = h
	}
	insert(Hittable{ID: PlayerEntityID, X: player.X, Y: player.Y, Radius: player.Radius, Kind: EntityPlayer})
	for _, h := range entities {
		if !captured[h.ID] {
			insert(h)
		}
	}
	for _, m := range d.minions {
		if m.Alive {
			insert(Hittable{ID: m.ID, X: m.X, Y: m.Y, Radius: m.Radius, Kind: EntityMinion})
		}
	}
	for _, p := range d.projectiles {
		if p.Alive {
			insert(Hittable{ID: p.ID, X: p.X, Y: p.Y, Radius: p.Radius, Kind: EntityProj})
		}
	}
}

// resolvePlayerCollisions runs the narrow phase for the player against
// projectiles, minions, encounter bodies and live attack geometry.
// An invulnerable player takes no damage and consumes nothing.
func (d *EncounterDirector) resolvePlayerCollisions(player PlayerView, result *EncounterTickResult) {
	if player.Invulnerable {
		return
	}

	pb := CircleBounds(player.X, player.Y, player.Radius)
	for _, id := range d.index.Query(pb) {
		h, ok := d.lookup[id]
		if !ok {
			continue
		}
		if !CirclesOverlap(player.X, player.Y, player.Radius, h.X, h.Y, h.Radius) {
			continue
		}
		switch h.Kind {
		case EntityProj:
			if p := d.projectileByID(id); p != nil && p.Alive {
				p.Alive = false
				result.Damage += p.Damage
				result.DestroyedEntityIDs = append(result.DestroyedEntityIDs, p.ID)
				result.Fx = append(result.Fx, FxEvent{Type: FxHit, EncounterID: p.OwnerID, X: h.X, Y: h.Y})
			}
		case EntityMinion:
			if m := d.minionByID(id); m != nil && m.Alive {
				// Detonates on contact
				m.Alive = false
				result.Damage += m.Damage
				result.DestroyedEntityIDs = append(result.DestroyedEntityIDs, m.ID)
				result.Fx = append(result.Fx, FxEvent{Type: FxHit, EncounterID: m.OwnerID, X: h.X, Y: h.Y})
			}
		}
	}

	for _, e := range d.encounters {
		if CirclesOverlap(player.X, player.Y, player.Radius, e.X, e.Y, e.Profile.BodyRadius) {
			result.Damage += e.Profile.ContactDamage
			result.Fx = append(result.Fx, FxEvent{Type: FxHit, EncounterID: e.ID, X: player.X, Y: player.Y})
		}
		// Attack geometry can reach far outside the body bounds, so it
		// is tested directly rather than through the index.
		if e.AttackGeometryHit(player) {
			hx, hy := e.AttackImpactPoint(player)
			result.Damage += e.Profile.AttackDamage
			result.Fx = append(result.Fx, FxEvent{Type: FxHit, EncounterID: e.ID, Kind: e.ChosenKind.String(), X: hx, Y: hy})
		}
	}

	result.DamageToPlayer = result.Damage > 0
}

// QueryNear returns the hittables indexed last tick whose bounds
// overlap b. Ability code (shield repulsion) uses this instead of
// scanning entity lists.
func (d *EncounterDirector) QueryNear(b Bounds) []Hittable {
	var out []Hittable
	for _, id := range d.index.Query(b) {
		h, ok := d.lookup[id]
		if !ok {
			continue
		}
		if BoundsOverlap(h.Bounds(), b) {
			out = append(out, h)
		}
	}
	return out
}

// DamageMinion applies ability damage to a minion by id and reports
// whether it was destroyed.
func (d *EncounterDirector) DamageMinion(id string, dmg int) bool {
	if m := d.minionByID(id); m != nil {
		return m.TakeDamage(dmg)
	}
	return false
}

// PushMinion applies an impulse to a minion by id. Ability knockback.
func (d *EncounterDirector) PushMinion(id string, vx, vy float64) {
	if m := d.minionByID(id); m != nil && m.Alive {
		m.VX += vx
		m.VY += vy
	}
}

// DeflectProjectile redirects a live projectile onto a new heading,
// keeping its speed. The projectile stays in play and re-enters the
// index on the next rebuild.
func (d *EncounterDirector) DeflectProjectile(id string, angle float64) {
	if p := d.projectileByID(id); p != nil && p.Alive {
		speed := math.Hypot(p.VX, p.VY)
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
	}
}

// ForceResetAll returns every encounter to Idle, retiring any attack
// geometry in flight. Spawned projectiles and minions are cleared too:
// a reset arena has no leftover hostiles.
func (d *EncounterDirector) ForceResetAll() {
	ctx := &TickContext{Arena: d.arena, Rng: d.rng}
	for _, e := range d.encounters {
		e.ForceReset(ctx)
	}
	d.projectiles = nil
	d.minions = nil
	d.index.Clear()
	for k := range d.lookup {
		delete(d.lookup, k)
	}
}

// Clear drops everything, encounters included. Used at level teardown.
func (d *EncounterDirector) Clear() {
	d.ForceResetAll()
	d.encounters = nil
}

// Encounters returns the live encounters in update order
func (d *EncounterDirector) Encounters() []*Encounter {
	return d.encounters
}

// Projectiles returns the live hostile projectiles
func (d *EncounterDirector) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, len(d.projectiles))
	for _, p := range d.projectiles {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

// Minions returns the live minions
func (d *EncounterDirector) Minions() []*Minion {
	out := make([]*Minion, 0, len(d.minions))
	for _, m := range d.minions {
		if m.Alive {
			out = append(out, m)
		}
	}
	return out
}

func (d *EncounterDirector) projectileByID(id string) *Projectile {
	for _, p := range d.projectiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (d *EncounterDirector) minionByID(id string) *Minion {
	for _, m := range d.minions {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (d *EncounterDirector) killMinion(id string) {
	if m := d.minionByID(id); m != nil {
		m.Alive = false
	}
}

func (d *EncounterDirector) prune() {
	alive := d.projectiles[:0]
	for _, p := range d.projectiles {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	d.projectiles = alive

	aliveM := d.minions[:0]
	for _, m := range d.minions {
		if m.Alive {
			aliveM = append(aliveM, m)
		}
	}
	d.minions = aliveM
}
