package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// ---------- helpers ----------

func startTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()

	oldTimeout := SessionIdleTimeout
	SessionIdleTimeout = 150 * time.Millisecond

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>scavenger</html>"), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	db, err := OpenDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	run, err := LoadRunConfig("")
	if err != nil {
		t.Fatalf("LoadRunConfig: %v", err)
	}

	hub := NewHub(db, run, nil)
	go hub.Run()

	srv := httptest.NewServer(SetupRoutes(hub, dir))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
		SessionIdleTimeout = oldTimeout
	})
	return srv, hub
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data interface{}) {
	t.Helper()
	env := Envelope{T: msgType, Data: data}
	if err := conn.WriteJSON(env); err != nil {
		t.Fatalf("send %s: %v", msgType, err)
	}
}

// readEnvelope reads one message. Binary frames are msgpack game state
// and come back wrapped as a state envelope.
func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt == websocket.BinaryMessage {
		var state GameState
		if err := msgpack.Unmarshal(data, &state); err != nil {
			t.Fatalf("state decode: %v", err)
		}
		return Envelope{T: MsgState, Data: state}
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("envelope decode: %v", err)
	}
	return env
}

// waitFor reads until a message of the given type arrives
func waitFor(t *testing.T, conn *websocket.Conn, msgType string) Envelope {
	t.Helper()
	for i := 0; i < 200; i++ {
		env := readEnvelope(t, conn)
		if env.T == msgType {
			return env
		}
	}
	t.Fatalf("never received %s", msgType)
	return Envelope{}
}

func dataMap(t *testing.T, env Envelope) map[string]interface{} {
	t.Helper()
	m, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("envelope data is %T, not a map", env.Data)
	}
	return m
}

// createAndJoin creates a session and joins it, returning ids
func createAndJoin(t *testing.T, conn *websocket.Conn, name string) (sid, craftID string) {
	t.Helper()
	sendMsg(t, conn, MsgCreate, CreateMsg{Name: name, SessionName: "test run"})
	created := waitFor(t, conn, MsgCreated)
	sid, _ = dataMap(t, created)["sid"].(string)
	if sid == "" {
		t.Fatal("created message carried no session id")
	}

	sendMsg(t, conn, MsgJoin, JoinMsg{Name: name, SessionID: sid})
	waitFor(t, conn, MsgJoined)
	welcome := waitFor(t, conn, MsgWelcome)
	craftID, _ = dataMap(t, welcome)["id"].(string)
	if craftID == "" {
		t.Fatal("welcome message carried no craft id")
	}
	return sid, craftID
}

// ---------- create / join ----------

func TestCreateJoinAndStateFlow(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)

	_, craftID := createAndJoin(t, conn, "tester")

	env := waitFor(t, conn, MsgState)
	state, ok := env.Data.(GameState)
	if !ok {
		t.Fatalf("state data is %T", env.Data)
	}
	if state.Craft.ID != craftID {
		t.Errorf("state frame carries craft %q, want %q", state.Craft.ID, craftID)
	}
	if state.Quota != 10 {
		t.Errorf("level 0 quota should be 10, got %d", state.Quota)
	}
	if state.Level != 0 {
		t.Errorf("run should start at level 0, got %d", state.Level)
	}
	if len(state.Encounters) == 0 {
		t.Error("level 0 should have its boss in the frame")
	}
}

func TestJoinUnknownSession(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgJoin, JoinMsg{Name: "tester", SessionID: "nope"})
	env := waitFor(t, conn, MsgError)
	if msg, _ := dataMap(t, env)["msg"].(string); msg != "session not found" {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestSecondJoinRefused(t *testing.T) {
	srv, _ := startTestServer(t)
	conn1 := dialWS(t, srv)
	sid, _ := createAndJoin(t, conn1, "owner")

	conn2 := dialWS(t, srv)
	sendMsg(t, conn2, MsgJoin, JoinMsg{Name: "intruder", SessionID: sid})
	env := waitFor(t, conn2, MsgError)
	if msg, _ := dataMap(t, env)["msg"].(string); msg != "run already in progress" {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestCheckSession(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgCheck, CheckMsg{SID: "missing"})
	env := waitFor(t, conn, MsgChecked)
	if exists, _ := dataMap(t, env)["exists"].(bool); exists {
		t.Error("missing session should not exist")
	}

	sendMsg(t, conn, MsgCreate, CreateMsg{SessionName: "my run"})
	created := waitFor(t, conn, MsgCreated)
	sid, _ := dataMap(t, created)["sid"].(string)

	sendMsg(t, conn, MsgCheck, CheckMsg{SID: sid})
	env = waitFor(t, conn, MsgChecked)
	m := dataMap(t, env)
	if exists, _ := m["exists"].(bool); !exists {
		t.Error("created session should exist")
	}
	if name, _ := m["name"].(string); name != "my run" {
		t.Errorf("check should echo the session name, got %q", name)
	}
}

func TestListSessions(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgCreate, CreateMsg{SessionName: "listed run"})
	waitFor(t, conn, MsgCreated)

	sendMsg(t, conn, MsgList, nil)
	env := waitFor(t, conn, MsgSessions)
	list, ok := env.Data.([]interface{})
	if !ok {
		t.Fatalf("sessions data is %T", env.Data)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 session listed, got %d", len(list))
	}
}

// ---------- controller ----------

func TestControllerAttach(t *testing.T) {
	srv, _ := startTestServer(t)
	conn1 := dialWS(t, srv)
	sid, craftID := createAndJoin(t, conn1, "owner")

	conn2 := dialWS(t, srv)
	sendMsg(t, conn2, MsgControl, ControlMsg{SID: sid, CraftID: craftID})
	env := waitFor(t, conn2, MsgControlOK)
	if cid, _ := dataMap(t, env)["cid"].(string); cid != craftID {
		t.Errorf("control ack for craft %q, want %q", cid, craftID)
	}

	// Controllers receive state frames too
	waitFor(t, conn2, MsgState)

	conn3 := dialWS(t, srv)
	sendMsg(t, conn3, MsgControl, ControlMsg{SID: sid, CraftID: "wrong"})
	waitFor(t, conn3, MsgError)
}

// ---------- input ----------

func TestBinaryInputDrivesCraft(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)
	createAndJoin(t, conn, "pilot")

	first := waitFor(t, conn, MsgState).Data.(GameState)

	// 8-byte input: pointer at (2000, 800), boost on, thresh 200
	input := []byte{
		0x01,
		byte(2000 >> 8), byte(2000 & 0xff),
		byte(800 >> 8), byte(800 & 0xff),
		0x02,
		byte(200 >> 8), byte(200 & 0xff),
	}

	var last GameState
	for i := 0; i < 30; i++ {
		if err := conn.WriteMessage(websocket.BinaryMessage, input); err != nil {
			t.Fatalf("send input: %v", err)
		}
		last = waitFor(t, conn, MsgState).Data.(GameState)
	}

	moved := Distance(first.Craft.X, first.Craft.Y, last.Craft.X, last.Craft.Y)
	if moved < 10 {
		t.Errorf("craft barely moved under sustained input: %f units", moved)
	}
}

// ---------- leave / rejoin ----------

func TestLeaveFreesTheRunForRejoin(t *testing.T) {
	srv, hub := startTestServer(t)
	conn := dialWS(t, srv)
	sid, _ := createAndJoin(t, conn, "pilot")

	sendMsg(t, conn, MsgLeave, nil)

	// The session lingers for a rejoin instead of dying immediately
	deadline := time.Now().Add(time.Second)
	for hub.sessions.GetSession(sid).Game.CraftCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("leave never freed the craft slot")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn2 := dialWS(t, srv)
	sendMsg(t, conn2, MsgJoin, JoinMsg{Name: "pilot", SessionID: sid})
	waitFor(t, conn2, MsgJoined)
}

// ---------- auth over the socket ----------

func TestRegisterLoginOverSocket(t *testing.T) {
	srv, _ := startTestServer(t)
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgRegister, RegisterMsg{Username: "pilot", Password: "hunter2"})
	env := waitFor(t, conn, MsgAuthOK)
	m := dataMap(t, env)
	token, _ := m["tok"].(string)
	if token == "" {
		t.Fatal("register should return a token")
	}

	// Token re-auth on a fresh connection
	conn2 := dialWS(t, srv)
	sendMsg(t, conn2, MsgAuth, AuthMsg{Token: token})
	env = waitFor(t, conn2, MsgAuthOK)
	if u, _ := dataMap(t, env)["u"].(string); u != "pilot" {
		t.Errorf("re-auth returned username %q", u)
	}

	// Authenticated profile fetch
	sendMsg(t, conn2, MsgProfile, nil)
	env = waitFor(t, conn2, MsgProfileData)
	if runs, _ := dataMap(t, env)["runs"].(float64); runs != 0 {
		t.Errorf("fresh account should have 0 runs, got %f", runs)
	}

	// Bad login
	conn3 := dialWS(t, srv)
	sendMsg(t, conn3, MsgLogin, LoginMsg{Username: "pilot", Password: "wrong"})
	waitFor(t, conn3, MsgError)
}

// ---------- http surface ----------

func TestServesIndexForSPARoutes(t *testing.T) {
	srv, _ := startTestServer(t)

	for _, path := range []string{"/", "/" + GenerateUUID()} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s returned %d", path, resp.StatusCode)
		}
	}
}

func TestQREndpoint(t *testing.T) {
	srv, _ := startTestServer(t)

	resp, err := http.Get(srv.URL + "/qr?sid=unknown")
	if err != nil {
		t.Fatalf("GET /qr: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session should 404, got %d", resp.StatusCode)
	}

	conn := dialWS(t, srv)
	sendMsg(t, conn, MsgCreate, CreateMsg{SessionName: "qr run"})
	created := waitFor(t, conn, MsgCreated)
	sid, _ := dataMap(t, created)["sid"].(string)

	resp, err = http.Get(srv.URL + "/qr?sid=" + sid)
	if err != nil {
		t.Fatalf("GET /qr: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("live session qr returned %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("qr content type %q", ct)
	}
}

// ---------- connection limits ----------

func TestConnectionLimitPerIP(t *testing.T) {
	_, hub := startTestServer(t)

	for i := 0; i < maxConnsPerIP; i++ {
		if !hub.CanAccept("10.0.0.1") {
			t.Fatalf("connection %d should be accepted", i+1)
		}
		hub.TrackConnect("10.0.0.1")
	}
	if hub.CanAccept("10.0.0.1") {
		t.Error("address at the per-IP cap should be refused")
	}
	if !hub.CanAccept("10.0.0.2") {
		t.Error("other addresses should be unaffected")
	}

	hub.TrackDisconnect("10.0.0.1")
	if !hub.CanAccept("10.0.0.1") {
		t.Error("a freed slot should accept again")
	}
}
