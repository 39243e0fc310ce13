package main

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_haul", "First Haul", "Bank your first crystal"},
	{"prospector", "Prospector", "Collect 100 crystals lifetime"},
	{"magnate", "Crystal Magnate", "Collect 1000 crystals lifetime"},
	{"untouchable", "Untouchable", "Finish a run without losing the craft"},
	{"deep_salvage", "Deep Salvage", "Clear three levels in one run"},
	{"regular", "Regular", "Complete 10 runs"},
	{"veteran", "Veteran", "Reach level 10"},
	{"elite", "Elite", "Reach level 25"},
	{"survivor", "Survivor", "Play for 1 hour total"},
}

// CheckAchievements checks if any new achievements should be unlocked
// for a player after a run. Returns the newly unlocked definitions.
func CheckAchievements(db *DB, playerID int64, runCrystals, runDeaths, levelsCleared int) []AchievementDef {
	if db == nil {
		return nil
	}

	stats, err := db.GetStats(playerID)
	if err != nil || stats == nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, a := range existing {
		has[a] = true
	}

	var unlocked []AchievementDef

	check := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "first_haul":
			return stats.Crystals >= 1
		case "prospector":
			return stats.Crystals >= 100
		case "magnate":
			return stats.Crystals >= 1000
		case "untouchable":
			return runDeaths == 0 && runCrystals > 0
		case "deep_salvage":
			return levelsCleared >= 3
		case "regular":
			return stats.Runs >= 10
		case "veteran":
			return stats.Level >= 10
		case "elite":
			return stats.Level >= 25
		case "survivor":
			return stats.Playtime >= 3600
		}
		return false
	}

	for _, def := range Achievements {
		if check(def.ID) {
			if newlyUnlocked, err := db.UnlockAchievement(playerID, def.ID); err == nil && newlyUnlocked {
				unlocked = append(unlocked, def)
			}
		}
	}

	return unlocked
}
