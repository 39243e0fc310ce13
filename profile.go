package main

import "fmt"

// AttackKind identifies one attack behavior an encounter can draw
type AttackKind int

const (
	KindLunge   AttackKind = 0 // extend a strike limb toward the player
	KindCapture AttackKind = 1 // swallow nearby entities, spit them back
	KindBurst   AttackKind = 2 // cone of projectiles toward the player
	KindLaser   AttackKind = 3 // telegraphed beam, then a damaging flash
	KindMinions AttackKind = 4 // release a handful of pursuers
)

func (k AttackKind) String() string {
	switch k {
	case KindLunge:
		return "lunge"
	case KindCapture:
		return "capture"
	case KindBurst:
		return "burst"
	case KindLaser:
		return "laser"
	case KindMinions:
		return "minions"
	}
	return "unknown"
}

// KindWeight is one entry in an archetype's attack table. Effective
// weight is Base + ProgressBias*(1-progressRatio), so a positive bias
// makes the kind more likely as the objective nears completion. This
// is archetype data, not state-machine logic.
type KindWeight struct {
	Kind         AttackKind `yaml:"kind"`
	Base         float64    `yaml:"base"`
	ProgressBias float64    `yaml:"progressBias"`
}

// AttackProfile is the immutable configuration for one encounter
// archetype. Shared read-only across instances of the archetype; a
// live encounter keeps all its mutable state in its own fields.
type AttackProfile struct {
	Archetype string `yaml:"archetype"`

	WarningMs  float64 `yaml:"warningMs"`
	AttackMs   float64 `yaml:"attackMs"`
	CooldownMs float64 `yaml:"cooldownMs"`

	// Bounds for the scaled delay drawn at Cooldown -> Idle
	MinCooldownMs float64 `yaml:"minCooldownMs"`
	MaxCooldownMs float64 `yaml:"maxCooldownMs"`

	Kinds []KindWeight `yaml:"kinds"`

	Range     float64 `yaml:"range"`     // hit radius around the lunge tip / capture reach
	Extension float64 `yaml:"extension"` // max lunge tip travel from the body

	BodyRadius    float64 `yaml:"bodyRadius"`
	ContactDamage int     `yaml:"contactDamage"`
	AttackDamage  int     `yaml:"attackDamage"`

	// Stalking band: approach beyond it, retreat inside it
	PreferredDist float64 `yaml:"preferredDist"`
	BandWidth     float64 `yaml:"bandWidth"`
	MoveSpeed     float64 `yaml:"moveSpeed"` // units/s while stalking
	TurnSpeed     float64 `yaml:"turnSpeed"` // radians/s

	BurstCount       int     `yaml:"burstCount"`
	BurstSpread      float64 `yaml:"burstSpread"` // radians across the cone
	ProjectileSpeed  float64 `yaml:"projectileSpeed"`
	ProjectileLifeMs float64 `yaml:"projectileLifeMs"`

	LaserLength   float64 `yaml:"laserLength"`
	LaserLockFrac float64 `yaml:"laserLockFrac"` // targeting sub-phase fraction of AttackMs

	CaptureFrac float64 `yaml:"captureFrac"` // capture sub-window fraction of AttackMs
	MaxCaptures int     `yaml:"maxCaptures"`

	MinionCount int `yaml:"minionCount"`
}

// Validate fails fast at encounter construction. A malformed profile
// must never surface mid-tick, where it would corrupt an in-progress
// phase. Zero warning/attack durations are legal (the state machine
// still spends one tick in the phase); negative ones are not.
func (p *AttackProfile) Validate() error {
	if p.WarningMs < 0 || p.AttackMs < 0 || p.CooldownMs < 0 {
		return fmt.Errorf("profile %q: negative phase duration", p.Archetype)
	}
	if p.MinCooldownMs <= 0 || p.MaxCooldownMs <= 0 {
		return fmt.Errorf("profile %q: non-positive cooldown bounds", p.Archetype)
	}
	if p.MaxCooldownMs < p.MinCooldownMs {
		return fmt.Errorf("profile %q: maxCooldownMs %.0f < minCooldownMs %.0f",
			p.Archetype, p.MaxCooldownMs, p.MinCooldownMs)
	}
	if len(p.Kinds) == 0 {
		return fmt.Errorf("profile %q: empty attack kind list", p.Archetype)
	}
	for _, kw := range p.Kinds {
		if kw.Kind < KindLunge || kw.Kind > KindMinions {
			return fmt.Errorf("profile %q: unknown attack kind %d", p.Archetype, kw.Kind)
		}
		if kw.Base < 0 {
			return fmt.Errorf("profile %q: negative base weight for %s", p.Archetype, kw.Kind)
		}
	}
	if p.Range <= 0 {
		return fmt.Errorf("profile %q: non-positive range", p.Archetype)
	}
	if p.LaserLockFrac < 0 || p.LaserLockFrac > 1 {
		return fmt.Errorf("profile %q: laserLockFrac outside [0,1]", p.Archetype)
	}
	if p.CaptureFrac < 0 || p.CaptureFrac > 1 {
		return fmt.Errorf("profile %q: captureFrac outside [0,1]", p.Archetype)
	}
	return nil
}

// Built-in archetypes. Every concrete boss is a row here plus the
// resolvers its kinds name — there are no per-boss types.
var Archetypes = map[string]AttackProfile{
	// Maw: close-range predator. Lunges, and swallows loose entities
	// to spit back as projectiles.
	"maw": {
		Archetype:     "maw",
		WarningMs:     900,
		AttackMs:      1200,
		CooldownMs:    500,
		MinCooldownMs: 1500,
		MaxCooldownMs: 4500,
		Kinds: []KindWeight{
			{Kind: KindLunge, Base: 3},
			{Kind: KindCapture, Base: 1, ProgressBias: 2},
		},
		Range:            120,
		Extension:        160,
		BodyRadius:       42,
		ContactDamage:    15,
		AttackDamage:     25,
		PreferredDist:    260,
		BandWidth:        120,
		MoveSpeed:        130,
		TurnSpeed:        3.0,
		ProjectileSpeed:  420,
		ProjectileLifeMs: 2500,
		CaptureFrac:      0.6,
		MaxCaptures:      3,
	},
	// Sentinel: keeps its distance and punishes from range.
	"sentinel": {
		Archetype:     "sentinel",
		WarningMs:     1100,
		AttackMs:      900,
		CooldownMs:    400,
		MinCooldownMs: 1800,
		MaxCooldownMs: 5000,
		Kinds: []KindWeight{
			{Kind: KindLaser, Base: 2, ProgressBias: 2},
			{Kind: KindBurst, Base: 2},
		},
		Range:            90,
		BodyRadius:       36,
		ContactDamage:    10,
		AttackDamage:     20,
		PreferredDist:    420,
		BandWidth:        160,
		MoveSpeed:        100,
		TurnSpeed:        2.5,
		BurstCount:       6,
		BurstSpread:      0.9,
		ProjectileSpeed:  520,
		ProjectileLifeMs: 2000,
		LaserLength:      700,
		LaserLockFrac:    0.6,
	},
	// Broodmother: pressure through numbers.
	"broodmother": {
		Archetype:     "broodmother",
		WarningMs:     1300,
		AttackMs:      800,
		CooldownMs:    600,
		MinCooldownMs: 2500,
		MaxCooldownMs: 6500,
		Kinds: []KindWeight{
			{Kind: KindMinions, Base: 2},
			{Kind: KindBurst, Base: 1, ProgressBias: 3},
		},
		Range:            100,
		BodyRadius:       48,
		ContactDamage:    12,
		AttackDamage:     15,
		PreferredDist:    500,
		BandWidth:        200,
		MoveSpeed:        80,
		TurnSpeed:        2.0,
		BurstCount:       4,
		BurstSpread:      0.7,
		ProjectileSpeed:  460,
		ProjectileLifeMs: 2200,
		MinionCount:      3,
	},
}

// ArchetypeProfile looks up a built-in archetype by name
func ArchetypeProfile(name string) (AttackProfile, bool) {
	p, ok := Archetypes[name]
	return p, ok
}
