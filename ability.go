package main

// AbilityType identifies the ability
type AbilityType int

const (
	AbilityBlink   AbilityType = 0 // Scout: teleport forward
	AbilityMagnet  AbilityType = 1 // Hauler: pull crystals for a while
	AbilityRepulse AbilityType = 2 // Warden: pulse that clears nearby hostiles
)

// Ability cooldowns and tunables, all in ms where timed
const (
	BlinkCooldownMs = 8000.0
	BlinkDistance   = 220.0

	MagnetCooldownMs = 14000.0
	MagnetDurationMs = 5000.0
	MagnetRadius     = 320.0
	MagnetPull       = 500.0 // units/s toward the craft

	RepulseCooldownMs = 12000.0
	RepulseRadius     = 180.0
	RepulsePush       = 600.0 // impulse applied to minions
	RepulseDamage     = 15    // damage to minions in range
)

// Ability tracks the state of a craft's ability
type Ability struct {
	Type     AbilityType
	Cooldown float64 // ms remaining
	Active   bool
	Timer    float64 // ms of active duration remaining
}

// AbilityForClass returns the default ability for a class
func AbilityForClass(class CraftClass) Ability {
	switch class {
	case ClassHauler:
		return Ability{Type: AbilityMagnet}
	case ClassWarden:
		return Ability{Type: AbilityRepulse}
	default:
		return Ability{Type: AbilityBlink}
	}
}

// CanActivate returns true if the ability is ready
func (a *Ability) CanActivate() bool {
	return a.Cooldown <= 0 && !a.Active
}

// Activate starts the ability and returns true on success. Blink and
// repulse are instant and take effect in game.go; magnet stays active
// for its duration.
func (a *Ability) Activate() bool {
	if !a.CanActivate() {
		return false
	}
	switch a.Type {
	case AbilityBlink:
		a.Cooldown = BlinkCooldownMs
	case AbilityMagnet:
		a.Active = true
		a.Timer = MagnetDurationMs
		a.Cooldown = MagnetCooldownMs
	case AbilityRepulse:
		a.Cooldown = RepulseCooldownMs
	}
	return true
}

// Update ticks the ability cooldown and active timer
func (a *Ability) Update(dtMs float64) {
	if a.Cooldown > 0 {
		a.Cooldown -= dtMs
		if a.Cooldown < 0 {
			a.Cooldown = 0
		}
	}
	if a.Active {
		a.Timer -= dtMs
		if a.Timer <= 0 {
			a.Active = false
			a.Timer = 0
		}
	}
}
