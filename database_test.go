package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ---------- leveling curve ----------

func TestXPForLevel(t *testing.T) {
	if XPForLevel(1) != 0 {
		t.Errorf("level 1 should need 0 XP, got %d", XPForLevel(1))
	}
	if XPForLevel(0) != 0 {
		t.Errorf("level 0 should need 0 XP, got %d", XPForLevel(0))
	}
	if XPForLevel(2) != 100 {
		t.Errorf("level 2 should need 100 XP, got %d", XPForLevel(2))
	}
	prev := 0
	for lvl := 2; lvl <= 30; lvl++ {
		need := XPForLevel(lvl)
		if need <= prev {
			t.Fatalf("XP curve not increasing at level %d: %d <= %d", lvl, need, prev)
		}
		prev = need
	}
}

func TestCalculateLevel(t *testing.T) {
	if got := CalculateLevel(0); got != 1 {
		t.Errorf("0 XP should be level 1, got %d", got)
	}
	if got := CalculateLevel(99); got != 1 {
		t.Errorf("99 XP should still be level 1, got %d", got)
	}
	if got := CalculateLevel(100); got != 2 {
		t.Errorf("100 XP should be level 2, got %d", got)
	}
	if got := CalculateLevel(1 << 60); got != 100 {
		t.Errorf("level should cap at 100, got %d", got)
	}
}

// ---------- players and stats ----------

func TestCreatePlayerAndStats(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreatePlayer("salvager", "hash")
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if id == 0 {
		t.Fatal("player id should be nonzero")
	}

	p, err := db.GetPlayerByUsername("salvager")
	if err != nil || p == nil {
		t.Fatalf("GetPlayerByUsername: %v %v", p, err)
	}
	if p.ID != id || p.PassHash != "hash" {
		t.Errorf("player row mismatch: %+v", p)
	}

	stats, err := db.GetStats(id)
	if err != nil || stats == nil {
		t.Fatalf("GetStats: %v %v", stats, err)
	}
	if stats.Runs != 0 || stats.Level != 1 {
		t.Errorf("fresh stats should be zeroed at level 1: %+v", stats)
	}

	exists, err := db.UsernameExists("salvager")
	if err != nil || !exists {
		t.Error("username should exist after create")
	}
	if exists, _ := db.UsernameExists("nobody"); exists {
		t.Error("unknown username should not exist")
	}

	if missing, err := db.GetPlayerByUsername("nobody"); err != nil || missing != nil {
		t.Errorf("unknown player lookup should be (nil, nil), got %v %v", missing, err)
	}
}

func TestUpdateStatsAfterRun(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreatePlayer("salvager", "hash")
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	xp, level, err := db.UpdateStatsAfterRun(id, 12, 1, 2, 300, 320)
	if err != nil {
		t.Fatalf("UpdateStatsAfterRun: %v", err)
	}
	if xp != 320 {
		t.Errorf("expected 320 XP, got %d", xp)
	}
	if level != CalculateLevel(320) {
		t.Errorf("level not recalculated: got %d", level)
	}

	stats, _ := db.GetStats(id)
	if stats.Crystals != 12 || stats.Runs != 1 || stats.BestLevel != 2 || stats.Deaths != 1 {
		t.Errorf("stats not accumulated: %+v", stats)
	}

	// A worse run must not lower best_level
	if _, _, err := db.UpdateStatsAfterRun(id, 3, 0, 1, 100, 130); err != nil {
		t.Fatalf("second run: %v", err)
	}
	stats, _ = db.GetStats(id)
	if stats.BestLevel != 2 {
		t.Errorf("best_level regressed to %d", stats.BestLevel)
	}
	if stats.Runs != 2 {
		t.Errorf("runs should be 2, got %d", stats.Runs)
	}

	history, err := db.GetRunHistory(id, 10)
	if err != nil {
		t.Fatalf("GetRunHistory: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 runs in history, got %d", len(history))
	}
}

// ---------- achievements ----------

func TestUnlockAchievement(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("salvager", "hash")

	fresh, err := db.UnlockAchievement(id, "first_haul")
	if err != nil || !fresh {
		t.Fatalf("first unlock should be new: %v %v", fresh, err)
	}
	again, err := db.UnlockAchievement(id, "first_haul")
	if err != nil || again {
		t.Error("repeat unlock should not be new")
	}

	ids, err := db.GetAchievements(id)
	if err != nil || len(ids) != 1 || ids[0] != "first_haul" {
		t.Errorf("achievements list wrong: %v %v", ids, err)
	}
}

func TestCheckAchievementsAfterRun(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("salvager", "hash")
	if _, _, err := db.UpdateStatsAfterRun(id, 5, 0, 3, 200, 350); err != nil {
		t.Fatalf("UpdateStatsAfterRun: %v", err)
	}

	unlocked := CheckAchievements(db, id, 5, 0, 3)
	got := make(map[string]bool)
	for _, def := range unlocked {
		got[def.ID] = true
	}
	if !got["first_haul"] {
		t.Error("first crystal should unlock first_haul")
	}
	if !got["untouchable"] {
		t.Error("deathless run should unlock untouchable")
	}
	if !got["deep_salvage"] {
		t.Error("three cleared levels should unlock deep_salvage")
	}
	if got["prospector"] {
		t.Error("5 lifetime crystals should not unlock prospector")
	}

	// Second check unlocks nothing new
	if again := CheckAchievements(db, id, 5, 0, 3); len(again) != 0 {
		t.Errorf("repeat check unlocked %d achievements", len(again))
	}
}

// ---------- settings ----------

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if got := db.GetSetting("jwt_secret"); got != "" {
		t.Errorf("unset key should read empty, got %q", got)
	}
	if err := db.SetSetting("jwt_secret", "aa"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := db.SetSetting("jwt_secret", "bb"); err != nil {
		t.Fatalf("SetSetting upsert: %v", err)
	}
	if got := db.GetSetting("jwt_secret"); got != "bb" {
		t.Errorf("upsert should win, got %q", got)
	}
}

// ---------- auth ----------

func TestAuthRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)

	id, token, err := auth.Register("pilot", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == 0 || token == "" {
		t.Fatal("register should yield id and token")
	}

	if _, _, err := auth.Register("pilot", "hunter2"); err == nil {
		t.Error("duplicate username should be refused")
	}
	if _, _, err := auth.Register("x", "hunter2"); err == nil {
		t.Error("short username should be refused")
	}
	if _, _, err := auth.Register("pilot2", "abc"); err == nil {
		t.Error("short password should be refused")
	}

	gotID, loginToken, err := auth.Login("pilot", "hunter2", "1.2.3.4")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotID != id || loginToken == "" {
		t.Error("login should return the registered id and a token")
	}
	if _, _, err := auth.Login("pilot", "wrong", "1.2.3.4"); err == nil {
		t.Error("wrong password should be refused")
	}
	if _, _, err := auth.Login("ghost", "hunter2", "1.2.3.4"); err == nil {
		t.Error("unknown user should be refused")
	}

	pid, username, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if pid != id || username != "pilot" {
		t.Errorf("token claims wrong: %d %s", pid, username)
	}
	if _, _, err := auth.ValidateToken("garbage"); err == nil {
		t.Error("garbage token should be refused")
	}
}

func TestAuthSecretPersists(t *testing.T) {
	db := openTestDB(t)
	a1 := NewAuth(db)
	id, token, err := a1.Register("pilot", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A second Auth over the same DB must load the same secret, so
	// tokens survive a server restart
	a2 := NewAuth(db)
	pid, _, err := a2.ValidateToken(token)
	if err != nil {
		t.Fatalf("token should survive auth re-init: %v", err)
	}
	if pid != id {
		t.Errorf("wrong player id from revalidated token: %d", pid)
	}
}

func TestAuthLoginRateLimit(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)
	if _, _, err := auth.Register("pilot", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < maxLoginAttempts; i++ {
		auth.Login("pilot", "wrong", "9.9.9.9")
	}
	if _, _, err := auth.Login("pilot", "hunter2", "9.9.9.9"); err == nil {
		t.Error("rate limit should block even a correct login")
	}
	// Other addresses are unaffected
	if _, _, err := auth.Login("pilot", "hunter2", "8.8.8.8"); err != nil {
		t.Errorf("other address should log in: %v", err)
	}
}
