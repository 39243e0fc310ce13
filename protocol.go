package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgInput    = "input"
	MsgCreate   = "create" // create run session
	MsgList     = "list"   // list sessions
	MsgCheck    = "check"  // check if session exists
	MsgControl  = "control" // phone controller attach
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth" // token re-auth
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgState       = "state"
	MsgWelcome     = "welcome"
	MsgDeath       = "death"
	MsgLevel       = "level" // level lifecycle events
	MsgRunOver     = "runover"
	MsgSessions    = "sessions"
	MsgJoined      = "joined"
	MsgCreated     = "created"
	MsgError       = "error"
	MsgChecked     = "checked"
	MsgControlOK   = "control_ok"
	MsgAuthOK      = "authok"
	MsgProfileData = "profiledata"
	MsgUnlock      = "unlock" // achievement unlocked
)

// Envelope wraps all outgoing control messages with a type field.
// State frames bypass it: they go out as msgpack binary.
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is sent by the client at 20Hz
type ClientInput struct {
	MX      float64 `json:"mx"` // pointer X (world coords)
	MY      float64 `json:"my"` // pointer Y (world coords)
	Boost   bool    `json:"boost"`
	Ability bool    `json:"ab"`
	Thresh  float64 `json:"thresh"` // distance threshold for speed modulation
}

// JoinMsg is sent when a player wants to join a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
	Class     int    `json:"class"`
}

// CreateMsg is sent when a player wants to create a run
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
	Class       int    `json:"class"`
}

// CraftState is broadcast for the craft each state frame
type CraftState struct {
	ID       string  `json:"id" msgpack:"id"`
	Name     string  `json:"n" msgpack:"n"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	R        float64 `json:"r" msgpack:"r"`
	VX       float64 `json:"vx" msgpack:"vx"`
	VY       float64 `json:"vy" msgpack:"vy"`
	HP       int     `json:"hp" msgpack:"hp"`
	MaxHP    int     `json:"mhp" msgpack:"mhp"`
	Class    int     `json:"c" msgpack:"c"`
	Crystals int     `json:"cr" msgpack:"cr"`
	Score    int     `json:"sc" msgpack:"sc"`
	Alive    bool    `json:"a" msgpack:"a"`
	Shielded bool    `json:"sh,omitempty" msgpack:"sh"`
}

// EncounterState is broadcast per encounter
type EncounterState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	R      float64 `json:"r" msgpack:"r"`
	Phase  int     `json:"ph" msgpack:"ph"`
	Kind   int     `json:"k" msgpack:"k"`
	Radius float64 `json:"rad" msgpack:"rad"`
	// Laser beam endpoints, present only while a laser is live
	LX1 float64 `json:"lx1,omitempty" msgpack:"lx1"`
	LY1 float64 `json:"ly1,omitempty" msgpack:"ly1"`
	LX2 float64 `json:"lx2,omitempty" msgpack:"lx2"`
	LY2 float64 `json:"ly2,omitempty" msgpack:"ly2"`
}

// ProjectileState is broadcast per hostile projectile
type ProjectileState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	R     float64 `json:"r" msgpack:"r"`
	Owner string  `json:"o" msgpack:"o"`
}

// MinionState is broadcast per minion
type MinionState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	R     float64 `json:"r" msgpack:"r"`
	HP    int     `json:"hp" msgpack:"hp"`
	Alive bool    `json:"a" msgpack:"a"`
}

// DebrisState is broadcast per debris chunk
type DebrisState struct {
	ID string  `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	R  float64 `json:"r" msgpack:"r"`
}

// CrystalState is broadcast per crystal
type CrystalState struct {
	ID string  `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
}

// HazardState is broadcast per hazard zone
type HazardState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Radius float64 `json:"rad" msgpack:"rad"`
}

// GameState is the full state frame, msgpack-encoded on the wire
type GameState struct {
	Craft      CraftState       `json:"c" msgpack:"c"`
	Encounters []EncounterState `json:"e" msgpack:"e"`
	Projectiles []ProjectileState `json:"pr" msgpack:"pr"`
	Minions    []MinionState    `json:"m" msgpack:"m"`
	Debris     []DebrisState    `json:"d" msgpack:"d"`
	Crystals   []CrystalState   `json:"cy" msgpack:"cy"`
	Hazards    []HazardState    `json:"hz" msgpack:"hz"`
	Fx         []FxEvent        `json:"fx,omitempty" msgpack:"fx"`
	Level      int              `json:"lv" msgpack:"lv"`
	Banked     int              `json:"bk" msgpack:"bk"`
	Quota      int              `json:"q" msgpack:"q"`
	Tick       uint64           `json:"tick" msgpack:"tick"`
}

// WelcomeMsg is sent to a player when they join
type WelcomeMsg struct {
	ID    string `json:"id"`
	Class int    `json:"c"`
}

// DeathMsg notifies the player their craft was destroyed
type DeathMsg struct {
	SourceID string `json:"sid"`
}

// LevelMsg announces level lifecycle: "intro", "active", "cleared",
// "advance"
type LevelMsg struct {
	Event string `json:"ev"`
	Index int    `json:"idx"`
	Name  string `json:"name"`
}

// RunOverMsg closes out the run
type RunOverMsg struct {
	Levels   int `json:"levels"`
	Crystals int `json:"crystals"`
	Score    int `json:"score"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Running bool   `json:"running"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// ControlMsg is sent by a phone controller to attach to a craft
type ControlMsg struct {
	SID     string `json:"sid"`
	CraftID string `json:"cid"`
}

// CheckMsg is sent by client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID    string `json:"sid"`
	Exists bool   `json:"exists"`
	Name   string `json:"name,omitempty"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// LoginMsg authenticates an account
type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// AuthMsg re-authenticates with a stored token
type AuthMsg struct {
	Token string `json:"tok"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"tok"`
	Username string `json:"u"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg returns the account's lifetime stats
type ProfileDataMsg struct {
	Username  string  `json:"u"`
	Level     int     `json:"lvl"`
	XP        int     `json:"xp"`
	Crystals  int     `json:"crystals"`
	Runs      int     `json:"runs"`
	BestLevel int     `json:"best"`
	Playtime  float64 `json:"pt"`
}

// UnlockMsg announces a newly unlocked achievement
type UnlockMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
