package main

import (
	"fmt"
	"math"
)

// EncounterPhase is the uniform attack cycle every boss and hazard in
// the game follows. There are no other phases and no per-boss state
// machines; archetypes differ only in profile data and resolvers.
type EncounterPhase int

const (
	PhaseIdle      EncounterPhase = 0 // stalking inside the preferred-distance band
	PhaseWarning   EncounterPhase = 1 // telegraph, no damage yet
	PhaseAttacking EncounterPhase = 2 // resolver geometry live
	PhaseCooldown  EncounterPhase = 3 // geometry retired, recovering
)

func (p EncounterPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWarning:
		return "warning"
	case PhaseAttacking:
		return "attacking"
	case PhaseCooldown:
		return "cooldown"
	}
	return "undefined"
}

// Fx event types emitted on phase entry and on hits. The engine only
// notifies; audio/visual collaborators decide what to play.
const (
	FxWarning = "warning"
	FxAttack  = "attack"
	FxCapture = "capture"
	FxExpel   = "expel"
	FxHit     = "hit"
)

// FxEvent is a notification for the effect layer
type FxEvent struct {
	Type        string  `json:"t" msgpack:"t"`
	EncounterID string  `json:"id" msgpack:"id"`
	Kind        string  `json:"k,omitempty" msgpack:"k"`
	X           float64 `json:"x" msgpack:"x"`
	Y           float64 `json:"y" msgpack:"y"`
}

// Encounter is one live boss/hazard instance: an AttackProfile plus
// the mutable cycle state. Created when a level activates it, torn
// down with the level.
type Encounter struct {
	ID      string
	Profile AttackProfile

	Phase      EncounterPhase
	StateTimer float64 // ms in the current phase, reset to 0 exactly on transition
	X, Y       float64
	Facing     float64

	ChosenKind AttackKind

	nextDelayMs float64 // idle dwell before the next Warning, drawn at Cooldown->Idle
	resolver    AttackResolver
	rng         *Rand
}

// NewEncounter validates the profile and creates an idle encounter.
// Configuration errors surface here, never at tick time.
func NewEncounter(id string, profile AttackProfile, x, y float64, rng *Rand) (*Encounter, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(NewRandomSeed())
	}
	return &Encounter{
		ID:          id,
		Profile:     profile,
		Phase:       PhaseIdle,
		X:           x,
		Y:           y,
		nextDelayMs: ScaledCooldown(1, profile.MinCooldownMs, profile.MaxCooldownMs),
		rng:         rng,
	}, nil
}

// Update advances the cycle by one tick. At most one phase transition
// happens per tick, so a zero-duration phase still spends exactly one
// tick in flight and its entry side effects fire exactly once.
func (e *Encounter) Update(ctx *TickContext) {
	e.StateTimer += ctx.DtMs

	switch e.Phase {
	case PhaseIdle:
		e.stalk(ctx)
		if e.StateTimer >= e.nextDelayMs {
			e.enterWarning(ctx)
		}
	case PhaseWarning:
		e.facePlayer(ctx)
		if e.StateTimer >= e.Profile.WarningMs {
			e.enterAttacking(ctx)
		}
	case PhaseAttacking:
		e.resolver.Update(e, ctx)
		if e.StateTimer >= e.Profile.AttackMs {
			e.enterCooldown(ctx)
		}
	case PhaseCooldown:
		if e.StateTimer >= e.Profile.CooldownMs {
			e.enterIdle(ctx)
		}
	default:
		// Invariant violation: a logic defect, not a data issue.
		panic(fmt.Sprintf("encounter %s: undefined phase %d", e.ID, e.Phase))
	}
}

// AttackGeometryHit asks the live resolver whether the player is hit.
// Only meaningful while Attacking; resolvers answer false outside
// their damage windows.
func (e *Encounter) AttackGeometryHit(player PlayerView) bool {
	if e.Phase != PhaseAttacking || e.resolver == nil {
		return false
	}
	return e.resolver.PlayerHit(player)
}

// AttackImpactPoint is where the current attack lands on the player.
// Resolvers with their own hit geometry refine it; everything else
// reports the player's center. Only meaningful after AttackGeometryHit
// returned true.
func (e *Encounter) AttackImpactPoint(player PlayerView) (float64, float64) {
	if r, ok := e.resolver.(impactReporter); ok {
		return r.ImpactPoint(player)
	}
	return player.X, player.Y
}

// ForceReset returns the encounter to Idle from any phase. In-flight
// attack geometry is retired, not dropped, so a reused arena starts
// clean.
func (e *Encounter) ForceReset(ctx *TickContext) {
	if e.resolver != nil && (e.Phase == PhaseWarning || e.Phase == PhaseAttacking) {
		if e.Phase == PhaseAttacking {
			e.resolver.Retire(e, ctx)
		}
		e.resolver = nil
	}
	e.Phase = PhaseIdle
	e.StateTimer = 0
	e.nextDelayMs = ScaledCooldown(1, e.Profile.MinCooldownMs, e.Profile.MaxCooldownMs)
}

// AbortAttack is the Director's containment path for a resolver
// failure: retire what can be retired, land in Cooldown, let the
// cycle recover on its own.
func (e *Encounter) AbortAttack(ctx *TickContext) {
	if e.resolver != nil && e.Phase == PhaseAttacking {
		func() {
			defer func() { recover() }()
			e.resolver.Retire(e, ctx)
		}()
	}
	e.resolver = nil
	e.Phase = PhaseCooldown
	e.StateTimer = 0
}

func (e *Encounter) enterWarning(ctx *TickContext) {
	e.Phase = PhaseWarning
	e.StateTimer = 0
	e.ChosenKind = e.chooseKind(ctx.ProgressRatio)
	r, err := newResolver(e.ChosenKind)
	if err != nil {
		// Unreachable for a validated profile
		panic(err)
	}
	e.resolver = r
	if ctx.Fx != nil {
		ctx.Fx(FxEvent{Type: FxWarning, EncounterID: e.ID, Kind: e.ChosenKind.String(), X: e.X, Y: e.Y})
	}
}

func (e *Encounter) enterAttacking(ctx *TickContext) {
	e.Phase = PhaseAttacking
	e.StateTimer = 0
	e.resolver.Begin(e, ctx)
	if ctx.Fx != nil {
		ctx.Fx(FxEvent{Type: FxAttack, EncounterID: e.ID, Kind: e.ChosenKind.String(), X: e.X, Y: e.Y})
	}
}

func (e *Encounter) enterCooldown(ctx *TickContext) {
	e.Phase = PhaseCooldown
	e.StateTimer = 0
	e.resolver.Retire(e, ctx)
}

func (e *Encounter) enterIdle(ctx *TickContext) {
	e.Phase = PhaseIdle
	e.StateTimer = 0
	e.resolver = nil
	// The only point where difficulty is consumed: never mid-cycle.
	e.nextDelayMs = ScaledCooldown(ctx.ProgressRatio, e.Profile.MinCooldownMs, e.Profile.MaxCooldownMs)
}

// chooseKind draws from the archetype's attack table, weighted so
// ProgressBias kinds grow more likely as the objective empties out.
func (e *Encounter) chooseKind(progressRatio float64) AttackKind {
	kinds := e.Profile.Kinds
	if len(kinds) == 1 {
		return kinds[0].Kind
	}
	total := 0.0
	for _, kw := range kinds {
		w := kw.Base + kw.ProgressBias*(1-progressRatio)
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return kinds[0].Kind
	}
	draw := e.rng.Float() * total
	for _, kw := range kinds {
		w := kw.Base + kw.ProgressBias*(1-progressRatio)
		if w <= 0 {
			continue
		}
		if draw < w {
			return kw.Kind
		}
		draw -= w
	}
	return kinds[len(kinds)-1].Kind
}

// stalk repositions toward or away from the player so the encounter
// hovers inside its preferred-distance band. Pressure, not a hit
// source: stalking never damages.
func (e *Encounter) stalk(ctx *TickContext) {
	dt := ctx.DtMs / 1000.0
	e.facePlayer(ctx)

	dist := Distance(e.X, e.Y, ctx.Player.X, ctx.Player.Y)
	half := e.Profile.BandWidth / 2
	var dir float64
	if dist > e.Profile.PreferredDist+half {
		dir = 1 // approach
	} else if dist < e.Profile.PreferredDist-half {
		dir = -1 // retreat
	} else {
		return
	}

	step := e.Profile.MoveSpeed * dt * dir
	e.X += math.Cos(e.Facing) * step
	e.Y += math.Sin(e.Facing) * step
	e.X = Clamp(e.X, ctx.Arena.X, ctx.Arena.X+ctx.Arena.Width)
	e.Y = Clamp(e.Y, ctx.Arena.Y, ctx.Arena.Y+ctx.Arena.Height)
}

func (e *Encounter) facePlayer(ctx *TickContext) {
	dt := ctx.DtMs / 1000.0
	desired := math.Atan2(ctx.Player.Y-e.Y, ctx.Player.X-e.X)
	e.Facing = TurnToward(e.Facing, desired, e.Profile.TurnSpeed*dt)
}

// Bounds derives the body's circular bounds
func (e *Encounter) Bounds() Bounds {
	return CircleBounds(e.X, e.Y, e.Profile.BodyRadius)
}
