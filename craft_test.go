package main

import "testing"

func TestCraftSpawnProtection(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	if !c.Invulnerable() {
		t.Fatal("fresh craft should carry spawn protection")
	}
	if c.TakeDamage(50) {
		t.Error("protected craft should ignore damage")
	}
	if c.HP != c.MaxHP {
		t.Errorf("protected craft lost HP: %d/%d", c.HP, c.MaxHP)
	}

	// Burn the protection off
	for i := 0; i < 150; i++ {
		c.Update(16)
	}
	if c.Invulnerable() {
		t.Fatal("protection should expire")
	}
	if c.TakeDamage(10) {
		t.Error("10 damage should not destroy a scout")
	}
	if c.HP != GetClassDef(ClassScout).MaxHP-10 {
		t.Errorf("expected HP to drop by 10, got %d", c.HP)
	}
}

func TestCraftHitGrantsGraceWindow(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	c.InvulnMs = 0

	if c.TakeDamage(15) {
		t.Fatal("15 damage should not destroy a scout")
	}
	if !c.Invulnerable() {
		t.Fatal("surviving a hit should grant a grace window")
	}
	if c.TakeDamage(15) {
		t.Error("graced craft should ignore the follow-up hit")
	}
	if c.HP != GetClassDef(ClassScout).MaxHP-15 {
		t.Errorf("only the first hit should land, HP %d", c.HP)
	}

	for ms := 0.0; ms < HitInvulnMs+50; ms += 16 {
		c.Update(16)
	}
	if c.Invulnerable() {
		t.Fatal("grace window should expire")
	}
	c.TakeDamage(15)
	if c.HP != GetClassDef(ClassScout).MaxHP-30 {
		t.Errorf("damage should land again after the window, HP %d", c.HP)
	}
}

func TestCraftSurvivesSustainedContact(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	c.InvulnMs = 0

	// A boss body overlapping the craft applies contact damage every
	// tick; the grace window turns that into one hit per window.
	for i := 0; i < 120; i++ {
		c.TakeDamage(15)
		c.Update(16)
	}
	if !c.Alive {
		t.Fatal("sustained contact should chip the craft, not shred it")
	}
	if c.HP != GetClassDef(ClassScout).MaxHP-45 {
		t.Errorf("expected 3 hits over 1.9s, HP %d", c.HP)
	}
}

func TestCraftDestructionAndRespawn(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	c.InvulnMs = 0

	if !c.TakeDamage(c.MaxHP) {
		t.Fatal("lethal damage should report destruction")
	}
	if c.Alive {
		t.Fatal("destroyed craft should not be alive")
	}
	if c.TakeDamage(10) {
		t.Error("dead craft cannot be destroyed again")
	}

	// The view must read invulnerable while dead so nothing hits the wreck
	if !c.View().Invulnerable {
		t.Error("dead craft view should be invulnerable")
	}

	for ms := 0.0; ms < RespawnMs+100; ms += 16 {
		c.Update(16)
	}
	if !c.Alive {
		t.Fatal("craft should respawn after the countdown")
	}
	if c.HP != c.MaxHP {
		t.Errorf("respawned craft should have full HP, got %d", c.HP)
	}
	if !c.Invulnerable() {
		t.Error("respawn should grant fresh protection")
	}
}

func TestCraftStaysInsideArena(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	c.X = ArenaWidth - 5
	c.Y = 5
	c.TargetX = ArenaWidth + 500
	c.TargetY = -500
	c.TargetR = -0.8
	c.Rotation = -0.8
	c.Boosting = true

	for i := 0; i < 300; i++ {
		c.Update(16)
	}
	if c.X > ArenaWidth || c.X < 0 || c.Y > ArenaHeight || c.Y < 0 {
		t.Errorf("craft escaped the arena: (%f, %f)", c.X, c.Y)
	}
}

func TestCraftParksUnderPointer(t *testing.T) {
	c := NewCraft("c1", "tester", ClassScout)
	c.X, c.Y = 1200, 800
	c.TargetX, c.TargetY = 1200, 800 // pointer on the hull
	c.VX, c.VY = 200, 0

	for i := 0; i < 120; i++ {
		c.Update(16)
	}
	speed := c.VX*c.VX + c.VY*c.VY
	if speed > 1 {
		t.Errorf("craft should park under the pointer, speed² %f", speed)
	}
}

func TestClassDefClamp(t *testing.T) {
	if GetClassDef(CraftClass(-1)) != CraftClasses[ClassScout] {
		t.Error("negative class should clamp to scout")
	}
	if GetClassDef(CraftClass(9)) != CraftClasses[ClassScout] {
		t.Error("out-of-range class should clamp to scout")
	}
	if GetClassDef(ClassHauler).CollectMult != 2 {
		t.Error("hauler should bank double crystals")
	}
}

func TestAbilityCooldownGate(t *testing.T) {
	a := AbilityForClass(ClassScout)
	if a.Type != AbilityBlink {
		t.Fatalf("scout ability should be blink, got %d", a.Type)
	}
	if !a.Activate() {
		t.Fatal("fresh ability should fire")
	}
	if a.Activate() {
		t.Error("ability should be gated while cooling down")
	}
	a.Update(BlinkCooldownMs + 100)
	if !a.Activate() {
		t.Error("ability should fire again after the cooldown")
	}
}

func TestMagnetAbilityRunsForDuration(t *testing.T) {
	a := AbilityForClass(ClassHauler)
	if !a.Activate() {
		t.Fatal("magnet should fire")
	}
	if !a.Active {
		t.Fatal("magnet should be active after firing")
	}
	a.Update(MagnetDurationMs - 100)
	if !a.Active {
		t.Error("magnet should still be running inside its duration")
	}
	a.Update(200)
	if a.Active {
		t.Error("magnet should stop after its duration")
	}
}
