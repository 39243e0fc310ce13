package main

import (
	"math"
	"regexp"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(3 * math.Pi); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("3π should wrap to π, got %f", got)
	}
	if got := NormalizeAngle(-3 * math.Pi); math.Abs(got+math.Pi) > 1e-9 {
		t.Errorf("-3π should wrap to -π, got %f", got)
	}
	if got := NormalizeAngle(0.5); got != 0.5 {
		t.Errorf("in-range angle should pass through, got %f", got)
	}
}

func TestTurnToward(t *testing.T) {
	if got := TurnToward(0, 1, 0.25); got != 0.25 {
		t.Errorf("turn should be capped at the step, got %f", got)
	}
	if got := TurnToward(0, 0.1, 0.25); got != 0.1 {
		t.Errorf("small turn should land on target, got %f", got)
	}
	// Wraps the short way across ±π
	got := TurnToward(math.Pi-0.1, -math.Pi+0.1, 0.5)
	if got < math.Pi-0.1 {
		t.Errorf("turn should cross the π boundary, got %f", got)
	}
}

func TestVec2Norm(t *testing.T) {
	n := Vec2{3, 4}.Norm()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("normalized length should be 1, got %f", n.Len())
	}
	z := Vec2{}.Norm()
	if z.X != 0 || z.Y != 0 {
		t.Error("zero vector should normalize to zero")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(4)
	if len(id) != 8 {
		t.Errorf("4-byte id should be 8 hex chars, got %q", id)
	}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := GenerateID(4)
		if seen[v] {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = true
	}
}

func TestGenerateUUID(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	for i := 0; i < 20; i++ {
		u := GenerateUUID()
		if !re.MatchString(u) {
			t.Fatalf("malformed uuid %q", u)
		}
	}
}

func TestRandDeterminism(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatal("same seed should replay the same sequence")
		}
	}
}

func TestRandRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(-0.5, 0.5)
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("Range value %f outside [-0.5, 0.5)", v)
		}
	}
	for i := 0; i < 1000; i++ {
		n := r.Intn(10)
		if n < 0 || n >= 10 {
			t.Fatalf("Intn value %d outside [0, 10)", n)
		}
	}
}
