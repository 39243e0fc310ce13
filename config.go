package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BossSpec places one encounter in a level
type BossSpec struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

// HazardSpec places one hazard zone in a level
type HazardSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Damage int     `yaml:"damage"`
}

// LevelConfig is one level of the run, loaded from YAML
type LevelConfig struct {
	Name          string       `yaml:"name"`
	CrystalQuota  int          `yaml:"crystal_quota"`  // collected to clear
	CrystalsLive  int          `yaml:"crystals_live"`  // kept on the field
	DebrisLive    int          `yaml:"debris_live"`    // drifting chunks kept alive
	IntroMs       float64      `yaml:"intro_ms"`       // grace before encounters wake
	Bosses        []BossSpec   `yaml:"bosses"`
	Hazards       []HazardSpec `yaml:"hazards"`
}

// RunConfig is the whole level sequence
type RunConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}

// Validate rejects configs the level system cannot run
func (rc *RunConfig) Validate() error {
	if len(rc.Levels) == 0 {
		return fmt.Errorf("config: no levels defined")
	}
	for i, lv := range rc.Levels {
		if lv.CrystalQuota <= 0 {
			return fmt.Errorf("config: level %d (%s): crystal_quota must be positive", i, lv.Name)
		}
		for _, b := range lv.Bosses {
			if _, ok := Archetypes[b.Archetype]; !ok {
				return fmt.Errorf("config: level %d (%s): unknown archetype %q", i, lv.Name, b.Archetype)
			}
		}
	}
	return nil
}

// LoadRunConfig reads a level sequence from a YAML file. An empty path
// returns the built-in default run.
func LoadRunConfig(path string) (*RunConfig, error) {
	if path == "" {
		rc := DefaultRunConfig()
		return rc, rc.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var rc RunConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

// DefaultRunConfig is the shipped three-level run
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Levels: []LevelConfig{
			{
				Name:         "outer field",
				CrystalQuota: 10,
				CrystalsLive: 5,
				DebrisLive:   3,
				IntroMs:      3000,
				Bosses: []BossSpec{
					{Archetype: "maw", X: ArenaWidth * 0.7, Y: ArenaHeight * 0.5},
				},
			},
			{
				Name:         "wreck belt",
				CrystalQuota: 15,
				CrystalsLive: 6,
				DebrisLive:   6,
				IntroMs:      3000,
				Bosses: []BossSpec{
					{Archetype: "maw", X: ArenaWidth * 0.3, Y: ArenaHeight * 0.3},
					{Archetype: "sentinel", X: ArenaWidth * 0.7, Y: ArenaHeight * 0.7},
				},
				Hazards: []HazardSpec{
					{X: ArenaWidth * 0.5, Y: ArenaHeight * 0.5, Radius: 160, Damage: 5},
				},
			},
			{
				Name:         "the nest",
				CrystalQuota: 20,
				CrystalsLive: 8,
				DebrisLive:   5,
				IntroMs:      4000,
				Bosses: []BossSpec{
					{Archetype: "broodmother", X: ArenaWidth * 0.5, Y: ArenaHeight * 0.3},
					{Archetype: "sentinel", X: ArenaWidth * 0.2, Y: ArenaHeight * 0.7},
				},
				Hazards: []HazardSpec{
					{X: ArenaWidth * 0.25, Y: ArenaHeight * 0.25, Radius: 140, Damage: 5},
					{X: ArenaWidth * 0.75, Y: ArenaHeight * 0.75, Radius: 140, Damage: 5},
				},
			},
		},
	}
}
