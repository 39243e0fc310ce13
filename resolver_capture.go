package main

import "math"

// captureResolver implements the swallow-then-spit attack. During an
// early sub-window of the attack it swallows hittable entities in
// range, at most once each per cycle; during the remainder it expels
// them as projectiles aimed at the player. The per-cycle captured set
// lives and dies with this resolver instance, so no entity is ever
// double-processed within a cycle and nothing leaks into the next.
type captureResolver struct {
	captured    []CapturedActor
	capturedSet map[string]bool
	expelled    bool
	active      bool
}

func (r *captureResolver) Begin(e *Encounter, ctx *TickContext) {
	r.capturedSet = make(map[string]bool)
	r.active = true
}

func (r *captureResolver) Update(e *Encounter, ctx *TickContext) {
	windowMs := e.Profile.CaptureFrac * e.Profile.AttackMs

	for i := range r.captured {
		r.captured[i].HeldMs += ctx.DtMs
	}
	r.digest()

	if e.StateTimer <= windowMs {
		r.capture(e, ctx)
		return
	}
	if !r.expelled {
		r.expel(e, ctx)
	}
}

// digest destroys actors held past their TTL. A digested actor is
// gone for good; only actors still held at expel time become shots.
func (r *captureResolver) digest() {
	if len(r.captured) == 0 {
		return
	}
	kept := r.captured[:0]
	for _, a := range r.captured {
		if a.HeldMs <= CapturedTTLMs {
			kept = append(kept, a)
		}
	}
	r.captured = kept
}

func (r *captureResolver) capture(e *Encounter, ctx *TickContext) {
	if ctx.NearbyHittables == nil || ctx.Capture == nil {
		return
	}
	for _, h := range ctx.NearbyHittables(CircleBounds(e.X, e.Y, e.Profile.Range)) {
		if h.Kind == EntityPlayer || h.Kind == EntityProj {
			continue
		}
		if r.capturedSet[h.ID] {
			continue
		}
		if len(r.captured) >= e.Profile.MaxCaptures {
			return
		}
		if !CirclesOverlap(e.X, e.Y, e.Profile.Range, h.X, h.Y, h.Radius) {
			continue
		}
		got, ok := ctx.Capture(h.ID)
		if !ok {
			continue
		}
		r.capturedSet[h.ID] = true
		r.captured = append(r.captured, CapturedActor{
			ID:       GenerateID(3),
			SourceID: h.ID,
			X:        got.X,
			Y:        got.Y,
		})
		if ctx.Fx != nil {
			ctx.Fx(FxEvent{Type: FxCapture, EncounterID: e.ID, X: h.X, Y: h.Y})
		}
	}
}

func (r *captureResolver) expel(e *Encounter, ctx *TickContext) {
	r.expelled = true
	if ctx.SpawnProjectile == nil {
		r.captured = nil
		return
	}
	base := math.Atan2(ctx.Player.Y-e.Y, ctx.Player.X-e.X)
	for i := range r.captured {
		// Fan the expelled shots slightly so they don't stack
		angle := base + (float64(i)-float64(len(r.captured)-1)/2)*0.12
		p := NewProjectile(e.ID,
			e.X+math.Cos(angle)*(e.Profile.BodyRadius+ProjectileRadius),
			e.Y+math.Sin(angle)*(e.Profile.BodyRadius+ProjectileRadius),
			angle, e.Profile.ProjectileSpeed, e.Profile.ProjectileLifeMs, e.Profile.AttackDamage)
		ctx.SpawnProjectile(p)
	}
	if ctx.Fx != nil && len(r.captured) > 0 {
		ctx.Fx(FxEvent{Type: FxExpel, EncounterID: e.ID, X: e.X, Y: e.Y})
	}
	r.captured = nil
}

func (r *captureResolver) PlayerHit(player PlayerView) bool {
	// Damage comes from the expelled projectiles, not the swallow
	return false
}

func (r *captureResolver) Retire(e *Encounter, ctx *TickContext) {
	// Anything swallowed but never expelled is digested with the
	// cycle; the set is dropped wholesale so the next Warning starts
	// from nothing.
	r.captured = nil
	r.capturedSet = nil
	r.active = false
}
