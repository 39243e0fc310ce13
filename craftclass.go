package main

// CraftClass identifies the class of salvage craft
type CraftClass int

const (
	ClassScout  CraftClass = 0
	ClassHauler CraftClass = 1
	ClassWarden CraftClass = 2
)

// CraftClassDef holds the stats for a craft class
type CraftClassDef struct {
	MaxHP       int
	Accel       float64
	MaxSpeed    float64
	BoostMul    float64
	Friction    float64
	Radius      float64
	TurnSpeed   float64
	CollectMult int // crystal value multiplier
}

var CraftClasses = [3]CraftClassDef{
	// Scout: fast and fragile, blink escape
	{
		MaxHP: 70, Accel: 780, MaxSpeed: 440, BoostMul: 1.7,
		Friction: 0.97, Radius: 14, TurnSpeed: 10.0, CollectMult: 1,
	},
	// Hauler: slow, sturdy, collects double
	{
		MaxHP: 150, Accel: 420, MaxSpeed: 260, BoostMul: 1.3,
		Friction: 0.96, Radius: 20, TurnSpeed: 6.0, CollectMult: 2,
	},
	// Warden: balanced, repulse pulse
	{
		MaxHP: 110, Accel: 600, MaxSpeed: 340, BoostMul: 1.5,
		Friction: 0.97, Radius: 16, TurnSpeed: 8.0, CollectMult: 1,
	},
}

// GetClassDef returns the definition for a craft class
func GetClassDef(class CraftClass) CraftClassDef {
	if class < 0 || int(class) >= len(CraftClasses) {
		return CraftClasses[ClassScout]
	}
	return CraftClasses[class]
}
