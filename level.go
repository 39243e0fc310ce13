package main

import "fmt"

// LevelPhase represents the lifecycle of one level
type LevelPhase int

const (
	LevelIntro   LevelPhase = 0 // grace period, encounters asleep
	LevelActive  LevelPhase = 1
	LevelCleared LevelPhase = 2 // quota met, short outro before advance
	LevelDone    LevelPhase = 3
)

const levelOutroMs = 2500.0

// LevelState runs one level of the sequence: it owns the crystals,
// debris and hazard zones, drives the EncounterDirector, and tracks
// quota progress. The progress ratio it reports is crystals remaining
// over quota, so encounters speed up as the level empties out.
type LevelState struct {
	Config   LevelConfig
	Index    int
	Phase    LevelPhase
	TimerMs  float64
	Banked   int // crystals collected toward the quota

	Crystals []*Crystal
	Debris   []*Debris
	Hazards  []*HazardZone
}

// NewLevelState builds the level's field and spawns its encounters
// into the director. Encounters stay asleep until the intro ends.
func NewLevelState(cfg LevelConfig, index int, director *EncounterDirector) (*LevelState, error) {
	ls := &LevelState{
		Config: cfg,
		Index:  index,
		Phase:  LevelIntro,
	}
	for i := 0; i < cfg.CrystalsLive; i++ {
		ls.Crystals = append(ls.Crystals, NewCrystal())
	}
	for i := 0; i < cfg.DebrisLive; i++ {
		ls.Debris = append(ls.Debris, NewDebris())
	}
	for _, h := range cfg.Hazards {
		ls.Hazards = append(ls.Hazards, NewHazardZone(h.X, h.Y, h.Radius, h.Damage))
	}
	for _, b := range cfg.Bosses {
		profile, ok := ArchetypeProfile(b.Archetype)
		if !ok {
			return nil, fmt.Errorf("level %q: unknown archetype %q", cfg.Name, b.Archetype)
		}
		if _, err := director.Spawn(profile, b.X, b.Y); err != nil {
			return nil, err
		}
	}
	return ls, nil
}

// ProgressRatio is crystals remaining over quota, clamped to [0,1].
// 1 means untouched, 0 means quota met.
func (ls *LevelState) ProgressRatio() float64 {
	remaining := ls.Config.CrystalQuota - ls.Banked
	return Clamp(float64(remaining)/float64(ls.Config.CrystalQuota), 0, 1)
}

// EncountersAwake reports whether encounters should tick this frame
func (ls *LevelState) EncountersAwake() bool {
	return ls.Phase == LevelActive
}

// Update advances the level clock and its owned field entities.
// Returns true while the level is still running.
func (ls *LevelState) Update(dtMs float64) bool {
	ls.TimerMs += dtMs

	switch ls.Phase {
	case LevelIntro:
		if ls.TimerMs >= ls.Config.IntroMs {
			ls.Phase = LevelActive
			ls.TimerMs = 0
		}
	case LevelActive:
		if ls.Banked >= ls.Config.CrystalQuota {
			ls.Phase = LevelCleared
			ls.TimerMs = 0
		}
	case LevelCleared:
		if ls.TimerMs >= levelOutroMs {
			ls.Phase = LevelDone
		}
	}

	for _, c := range ls.Crystals {
		c.Update(dtMs)
	}
	for _, d := range ls.Debris {
		d.Update(dtMs)
	}
	ls.replenish()

	return ls.Phase != LevelDone
}

// replenish keeps the live crystal and debris counts topped up and
// drops retired entries. Crystals stop respawning once the quota is
// within reach of what is already on the field.
func (ls *LevelState) replenish() {
	live := ls.Crystals[:0]
	for _, c := range ls.Crystals {
		if c.Alive {
			live = append(live, c)
		}
	}
	ls.Crystals = live
	if ls.Phase == LevelActive {
		outstanding := ls.Config.CrystalQuota - ls.Banked
		for len(ls.Crystals) < ls.Config.CrystalsLive && len(ls.Crystals) < outstanding {
			ls.Crystals = append(ls.Crystals, NewCrystal())
		}
	}

	liveD := ls.Debris[:0]
	for _, d := range ls.Debris {
		if d.Alive {
			liveD = append(liveD, d)
		}
	}
	ls.Debris = liveD
	for len(ls.Debris) < ls.Config.DebrisLive {
		ls.Debris = append(ls.Debris, NewDebris())
	}
}

// Collect banks a crystal by id. Returns the banked value, or 0 if the
// id is stale.
func (ls *LevelState) Collect(id string, mult int) int {
	for _, c := range ls.Crystals {
		if c.ID == id && c.Alive {
			c.Alive = false
			v := c.Value * mult
			ls.Banked += v
			return v
		}
	}
	return 0
}

// RemoveEntity retires a debris chunk by id (captured or destroyed)
func (ls *LevelState) RemoveEntity(id string) {
	for _, d := range ls.Debris {
		if d.ID == id {
			d.Alive = false
			return
		}
	}
}

// Hittables returns the broad-phase snapshot of the level's field
// entities the encounter engine may interact with. Crystals are not
// hittable: encounters cannot eat the objective.
func (ls *LevelState) Hittables() []Hittable {
	out := make([]Hittable, 0, len(ls.Debris))
	for _, d := range ls.Debris {
		if d.Alive {
			out = append(out, d.Hittable())
		}
	}
	return out
}
