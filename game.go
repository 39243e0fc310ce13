package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // simulation ticks per second
	BroadcastRate  = 30 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game holds the state for one run session: a single craft working
// through the level sequence while the EncounterDirector works the
// craft over. Everything mutable is guarded by mu; the director and
// level are only ever touched under it.
type Game struct {
	mu      sync.RWMutex
	craft   *Craft
	ability Ability

	run      *RunConfig
	levelIdx int
	level    *LevelState
	director *EncounterDirector
	lastLevelPhase LevelPhase
	runOver  bool

	clients     map[string]Broadcaster // clientID -> client
	controllers map[string]Broadcaster

	clock     *Clock
	tick      uint64
	running   bool
	stop      chan struct{}
	startedAt time.Time

	sessionID string
	analytics *Analytics
	db        *DB
}

// NewGame creates a game for the given run configuration
func NewGame(run *RunConfig, sessionID string, db *DB, analytics *Analytics) *Game {
	g := &Game{
		run:         run,
		clients:     make(map[string]Broadcaster),
		controllers: make(map[string]Broadcaster),
		stop:        make(chan struct{}),
		clock:       NewClock(),
		startedAt:   time.Now(),
		sessionID:   sessionID,
		analytics:   analytics,
		db:          db,
	}
	g.director = NewEncounterDirector(RectBounds(0, 0, ArenaWidth, ArenaHeight), nil)
	return g
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// AddCraft creates the run's craft. One craft per session; a second
// join gets nil.
func (g *Game) AddCraft(name string, class CraftClass) *Craft {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.craft != nil {
		return nil
	}
	craft := NewCraft(GenerateID(4), name, class)
	g.craft = craft
	g.ability = AbilityForClass(class)

	if err := g.startLevel(0); err != nil {
		log.Printf("session %s: start level: %v", g.sessionID, err)
		g.craft = nil
		return nil
	}
	if g.analytics != nil {
		g.analytics.Track(EvtRunStart, craft.AuthPlayerID, g.sessionID, "")
	}
	return craft
}

// RemoveCraft detaches the craft from the session
func (g *Game) RemoveCraft(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.craft != nil && g.craft.ID == id {
		g.craft = nil
	}
	delete(g.clients, id)
	delete(g.controllers, id)
}

// HasCraft reports whether the given craft id belongs to this session
func (g *Game) HasCraft(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.craft != nil && g.craft.ID == id
}

// SetClient associates a broadcaster with the craft owner
func (g *Game) SetClient(craftID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[craftID] = client
}

// SetController attaches a phone controller to the craft
func (g *Game) SetController(craftID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controllers[craftID] = client
}

// RemoveController detaches a phone controller
func (g *Game) RemoveController(craftID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.controllers, craftID)
}

// CraftCount returns 1 while a craft occupies the session
func (g *Game) CraftCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.craft == nil {
		return 0
	}
	return 1
}

// LevelIndex returns the current level index for the session list
func (g *Game) LevelIndex() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.levelIdx
}

// HandleInput processes input for the craft
func (g *Game) HandleInput(craftID string, input ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.craft
	if c == nil || c.ID != craftID {
		return
	}
	// Only update target rotation when the pointer is far enough from
	// the craft to produce a stable angle
	dx := input.MX - c.X
	dy := input.MY - c.Y
	if dx*dx+dy*dy > 25 {
		c.TargetR = math.Atan2(dy, dx)
	}
	c.Boosting = input.Boost
	c.TargetX = input.MX
	c.TargetY = input.MY
	c.SlowThresh = Clamp(input.Thresh, 50, 400)

	if input.Ability && c.Alive && g.ability.Activate() {
		g.fireAbility(c)
	}
}

// fireAbility applies the instant effects of an ability activation.
// Called under mu.
func (g *Game) fireAbility(c *Craft) {
	switch g.ability.Type {
	case AbilityBlink:
		c.X = Clamp(c.X+math.Cos(c.Rotation)*BlinkDistance, 0, ArenaWidth)
		c.Y = Clamp(c.Y+math.Sin(c.Rotation)*BlinkDistance, 0, ArenaHeight)
	case AbilityRepulse:
		for _, h := range g.director.QueryNear(CircleBounds(c.X, c.Y, RepulseRadius)) {
			ang := math.Atan2(h.Y-c.Y, h.X-c.X)
			switch h.Kind {
			case EntityMinion:
				if !g.director.DamageMinion(h.ID, RepulseDamage) {
					g.director.PushMinion(h.ID, math.Cos(ang)*RepulsePush, math.Sin(ang)*RepulsePush)
				}
			case EntityProj:
				g.director.DeflectProjectile(h.ID, ang)
			}
		}
	case AbilityMagnet:
		// Pull applied each tick while active
	}
}

// update runs one game tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	nowMs := float64(time.Now().UnixNano()) / 1e6
	dtMs := g.clock.Delta(nowMs)
	g.tick++

	c := g.craft
	if c == nil || g.level == nil || g.runOver {
		return
	}

	c.Update(dtMs)
	g.ability.Update(dtMs)

	if g.ability.Type == AbilityMagnet && g.ability.Active {
		for _, cr := range g.level.Crystals {
			if cr.Alive && DistanceSq(cr.X, cr.Y, c.X, c.Y) < MagnetRadius*MagnetRadius {
				cr.Attract(c.X, c.Y, MagnetPull)
			}
		}
	}

	alive := g.level.Update(dtMs)
	g.announceLevelPhase()
	if !alive {
		g.advanceLevel()
		return
	}

	g.collectCrystals(c)
	g.applyHazards(c, dtMs)
	g.applyDebrisContact(c)

	var fx []FxEvent
	if g.level.EncountersAwake() && c.Alive {
		result := g.director.Tick(dtMs, c.View(), g.level.Hittables(), g.level.ProgressRatio())
		for _, id := range result.CapturedEntityIDs {
			g.level.RemoveEntity(id)
		}
		for _, id := range result.DestroyedEntityIDs {
			g.level.RemoveEntity(id)
		}
		fx = result.Fx
		if result.Damage > 0 {
			g.damageCraft(c, result.Damage, "")
		}
	}

	if g.tick%BroadcastEvery == 0 {
		g.broadcastState(fx)
	}
}

// announceLevelPhase broadcasts level lifecycle transitions. Called
// under mu.
func (g *Game) announceLevelPhase() {
	if g.level.Phase == g.lastLevelPhase {
		return
	}
	g.lastLevelPhase = g.level.Phase
	var ev string
	switch g.level.Phase {
	case LevelActive:
		ev = "active"
	case LevelCleared:
		ev = "cleared"
		if g.analytics != nil {
			g.analytics.Track(EvtLevelClear, g.craft.AuthPlayerID, g.sessionID,
				fmt.Sprintf(`{"level":%d}`, g.levelIdx))
		}
		g.director.ForceResetAll()
	default:
		return
	}
	g.broadcastMsg(Envelope{T: MsgLevel, Data: LevelMsg{Event: ev, Index: g.levelIdx, Name: g.level.Config.Name}})
}

// startLevel builds the level at the given index. Called under mu.
func (g *Game) startLevel(idx int) error {
	g.director.Clear()
	level, err := NewLevelState(g.run.Levels[idx], idx, g.director)
	if err != nil {
		return err
	}
	g.levelIdx = idx
	g.level = level
	g.lastLevelPhase = LevelIntro
	g.broadcastMsg(Envelope{T: MsgLevel, Data: LevelMsg{Event: "intro", Index: idx, Name: level.Config.Name}})
	return nil
}

// advanceLevel moves to the next level or ends the run. Called under mu.
func (g *Game) advanceLevel() {
	next := g.levelIdx + 1
	if next < len(g.run.Levels) {
		if err := g.startLevel(next); err != nil {
			log.Printf("session %s: start level %d: %v", g.sessionID, next, err)
			g.endRun()
		}
		return
	}
	g.endRun()
}

// endRun closes out the run, persists stats and announces the result.
// Called under mu.
func (g *Game) endRun() {
	g.runOver = true
	g.director.Clear()
	c := g.craft

	g.broadcastMsg(Envelope{T: MsgRunOver, Data: RunOverMsg{
		Levels:   g.levelIdx + 1,
		Crystals: c.Crystals,
		Score:    c.Score,
	}})

	duration := time.Since(g.startedAt).Seconds()
	if g.analytics != nil {
		g.analytics.Track(EvtRunEnd, c.AuthPlayerID, g.sessionID,
			fmt.Sprintf(`{"levels":%d,"crystals":%d,"duration":%.0f}`, g.levelIdx+1, c.Crystals, duration))
	}
	if g.db != nil && c.AuthPlayerID != 0 {
		xp := c.Crystals*10 + (g.levelIdx+1)*100
		if _, _, err := g.db.UpdateStatsAfterRun(c.AuthPlayerID, c.Crystals, c.Deaths, g.levelIdx+1, duration, xp); err != nil {
			log.Printf("session %s: persist run: %v", g.sessionID, err)
		}
		for _, def := range CheckAchievements(g.db, c.AuthPlayerID, c.Crystals, c.Deaths, g.levelIdx+1) {
			if client, ok := g.clients[c.ID]; ok {
				client.SendJSON(Envelope{T: MsgUnlock, Data: UnlockMsg{ID: def.ID, Name: def.Name}})
			}
		}
	}
}

// collectCrystals banks crystals the craft touches. Called under mu.
func (g *Game) collectCrystals(c *Craft) {
	if !c.Alive {
		return
	}
	def := GetClassDef(c.Class)
	for _, cr := range g.level.Crystals {
		if !cr.Alive {
			continue
		}
		if CirclesOverlap(c.X, c.Y, def.Radius, cr.X, cr.Y, CrystalRadius) {
			v := g.level.Collect(cr.ID, def.CollectMult)
			if v > 0 {
				c.Crystals += v
				c.Score += v * 10
				if g.analytics != nil {
					g.analytics.Track(EvtCrystal, c.AuthPlayerID, g.sessionID, "")
				}
			}
		}
	}
}

// applyHazards charges the craft for time spent inside hazard zones.
// Called under mu.
func (g *Game) applyHazards(c *Craft, dtMs float64) {
	if !c.Alive {
		return
	}
	def := GetClassDef(c.Class)
	for _, hz := range g.level.Hazards {
		if dmg := hz.Tick(dtMs, c.X, c.Y, def.Radius); dmg > 0 {
			g.damageCraft(c, dmg, hz.ID)
		}
	}
}

// applyDebrisContact damages the craft on debris collision and breaks
// the chunk. Called under mu.
func (g *Game) applyDebrisContact(c *Craft) {
	if !c.Alive || c.Invulnerable() {
		return
	}
	def := GetClassDef(c.Class)
	for _, d := range g.level.Debris {
		if !d.Alive {
			continue
		}
		if CirclesOverlap(c.X, c.Y, def.Radius, d.X, d.Y, DebrisRadius) {
			d.Alive = false
			g.damageCraft(c, DebrisDamage, d.ID)
		}
	}
}

// damageCraft applies damage and handles destruction. Called under mu.
func (g *Game) damageCraft(c *Craft, dmg int, sourceID string) {
	if !c.TakeDamage(dmg) {
		return
	}
	c.Deaths++
	if client, ok := g.clients[c.ID]; ok {
		client.SendJSON(Envelope{T: MsgDeath, Data: DeathMsg{SourceID: sourceID}})
	}
	if g.analytics != nil {
		g.analytics.Track(EvtCraftLost, c.AuthPlayerID, g.sessionID, "")
	}
}

// broadcastState sends the current frame to all clients as msgpack
// binary. Called under mu.
func (g *Game) broadcastState(fx []FxEvent) {
	state := GameState{
		Craft:  g.craft.ToState(),
		Level:  g.levelIdx,
		Banked: g.level.Banked,
		Quota:  g.level.Config.CrystalQuota,
		Fx:     fx,
		Tick:   g.tick,
	}

	for _, e := range g.director.Encounters() {
		state.Encounters = append(state.Encounters, encounterToState(e))
	}
	for _, p := range g.director.Projectiles() {
		state.Projectiles = append(state.Projectiles, ProjectileState{
			ID: p.ID, X: round1(p.X), Y: round1(p.Y), R: p.Rotation, Owner: p.OwnerID,
		})
	}
	for _, m := range g.director.Minions() {
		state.Minions = append(state.Minions, MinionState{
			ID: m.ID, X: round1(m.X), Y: round1(m.Y), R: m.Rotation, HP: m.HP, Alive: m.Alive,
		})
	}
	for _, d := range g.level.Debris {
		if d.Alive {
			state.Debris = append(state.Debris, d.ToState())
		}
	}
	for _, cr := range g.level.Crystals {
		if cr.Alive {
			state.Crystals = append(state.Crystals, cr.ToState())
		}
	}
	for _, hz := range g.level.Hazards {
		state.Hazards = append(state.Hazards, hz.ToState())
	}

	data, err := msgpack.Marshal(state)
	if err != nil {
		log.Printf("state marshal: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
	for _, client := range g.controllers {
		client.SendBinary(data)
	}
}

// encounterToState flattens an encounter for broadcast, exposing the
// live laser beam when one is out.
func encounterToState(e *Encounter) EncounterState {
	s := EncounterState{
		ID:     e.ID,
		X:      round1(e.X),
		Y:      round1(e.Y),
		R:      math.Round(e.Facing*100) / 100,
		Phase:  int(e.Phase),
		Kind:   int(e.ChosenKind),
		Radius: e.Profile.BodyRadius,
	}
	if e.Phase == PhaseAttacking {
		if lr, ok := e.resolver.(*laserResolver); ok {
			s.LX1, s.LY1, s.LX2, s.LY2 = lr.Segment()
		}
	}
	return s
}

// broadcastMsg sends a control message to all clients. Called under mu.
func (g *Game) broadcastMsg(msg Envelope) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, client := range g.clients {
		if c, ok := client.(*Client); ok {
			c.SendRaw(data)
		} else {
			client.SendJSON(msg)
		}
	}
	for _, client := range g.controllers {
		client.SendJSON(msg)
	}
}
