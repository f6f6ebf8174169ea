package board

import (
	"math"
	"testing"
)

func TestAimPoints_Defaults(t *testing.T) {
	aims := AimPoints()
	if len(aims) != 8 {
		t.Fatalf("expected 8 aim points, got %d", len(aims))
	}

	want := []struct {
		name  string
		score int
	}{
		{"bullseye", 50},
		{"treble_20", 60},
		{"treble_19", 57},
		{"treble_18", 54},
		{"treble_17", 51},
		{"treble_16", 48},
		{"treble_15", 45},
		{"treble_14", 42},
	}

	for i, w := range want {
		if aims[i].Name != w.name {
			t.Errorf("aim %d: name %s, want %s", i, aims[i].Name, w.name)
		}
		if got := ScoreAt(aims[i].Point); got != w.score {
			t.Errorf("%s scores %d, want %d", w.name, got, w.score)
		}
	}
}

func TestAimPoints_Coordinates(t *testing.T) {
	// reference coordinates of the treble midpoints, to 0.01mm
	tests := map[string]Point{
		"treble_20": {0, 103},
		"treble_19": {-31.83, -97.96},
		"treble_18": {60.54, 83.33},
		"treble_17": {31.83, -97.96},
		"treble_16": {-83.33, -60.54},
		"treble_15": {83.33, -60.54},
		"treble_14": {-97.96, 31.83},
	}

	for name, want := range tests {
		a, err := LookupAim(name)
		if err != nil {
			t.Fatalf("LookupAim(%s): %v", name, err)
		}
		if math.Abs(a.Point.X-want.X) > 0.01 || math.Abs(a.Point.Y-want.Y) > 0.01 {
			t.Errorf("%s at %v, want %v", name, a.Point, want)
		}
	}
}

func TestAimPoints_ReturnsCopy(t *testing.T) {
	aims := AimPoints()
	aims[0].Point = Point{100, 100}
	aims[1].Name = "changed"

	fresh := AimPoints()
	if fresh[0].Point != (Point{}) || fresh[1].Name != "treble_20" {
		t.Error("aim table was mutated through a returned slice")
	}
}

func TestLookupAim(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		wantErr bool
	}{
		{"bullseye", 50, false},
		{" Treble_20 ", 60, false},
		{"treble_1", 3, false},
		{"double_16", 32, false},
		{"double_20", 40, false},
		{"treble_21", 0, true},
		{"treble_x", 0, true},
		{"single_20", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := LookupAim(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ScoreAt(a.Point); got != tt.score {
				t.Errorf("%s scores %d, want %d", tt.name, got, tt.score)
			}
		})
	}
}

func TestLookupAims(t *testing.T) {
	aims, err := LookupAims(AimNames())
	if err != nil {
		t.Fatalf("LookupAims: %v", err)
	}
	if len(aims) != len(AimPoints()) {
		t.Errorf("expected %d aims, got %d", len(AimPoints()), len(aims))
	}

	if _, err := LookupAims([]string{"bullseye", "nope"}); err == nil {
		t.Error("expected error for unknown aim")
	}
}
