package ident

import "testing"

func TestNextEmpty(t *testing.T) {
	tests := []struct {
		kind EntityKind
		want string
	}{
		{KindVessel, "v0"},
		{KindProtein, "p0"},
		{KindComplex, "c0"},
		{KindSmallMolecule, "s0"},
		{KindReaction, "r0"},
		{KindMeasurement, "m0"},
		{KindUnit, "u0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := Next(tt.kind, nil); got != tt.want {
				t.Errorf("Next(%s) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNextReusesFreedSlot(t *testing.T) {
	used := map[string]bool{}
	for i := 0; i < 6; i++ {
		id := Next(KindSmallMolecule, used)
		used[id] = true
	}
	if !used["s5"] {
		t.Fatal("expected s0..s5 allocated")
	}

	// Freeing a middle slot makes it the next allocation.
	delete(used, "s2")
	if got := Next(KindSmallMolecule, used); got != "s2" {
		t.Errorf("Next after freeing s2 = %q, want s2", got)
	}
	used["s2"] = true
	if got := Next(KindSmallMolecule, used); got != "s6" {
		t.Errorf("Next with s0..s5 used = %q, want s6", got)
	}
}

func TestNextIgnoresOtherKinds(t *testing.T) {
	used := map[string]bool{"p0": true, "v0": true, "v1": true}
	if got := Next(KindSmallMolecule, used); got != "s0" {
		t.Errorf("Next = %q, want s0", got)
	}
	if got := Next(KindVessel, used); got != "v2" {
		t.Errorf("Next = %q, want v2", got)
	}
}

func TestNextInList(t *testing.T) {
	if got := NextInList(KindReaction, []string{"r0", "r1", "r3"}); got != "r2" {
		t.Errorf("NextInList = %q, want r2", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		id   string
		kind EntityKind
		n    int
		ok   bool
	}{
		{"v0", KindVessel, 0, true},
		{"p12", KindProtein, 12, true},
		{"s3", KindSmallMolecule, 3, true},
		{"m100", KindMeasurement, 100, true},
		{"u7", KindUnit, 7, true},
		{"kcat", "", 0, false},
		{"x0", "", 0, false},
		{"s", "", 0, false},
		{"s-1", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			kind, n, err := Parse(tt.id)
			if tt.ok {
				if err != nil {
					t.Fatalf("Parse(%q) error = %v", tt.id, err)
				}
				if kind != tt.kind || n != tt.n {
					t.Errorf("Parse(%q) = (%s, %d), want (%s, %d)", tt.id, kind, n, tt.kind, tt.n)
				}
				return
			}
			if err == nil {
				t.Errorf("Parse(%q) succeeded as (%s, %d), want error", tt.id, kind, n)
			}
		})
	}
}

func TestBelongs(t *testing.T) {
	if !Belongs(KindProtein, "p4") {
		t.Error("Belongs(protein, p4) = false")
	}
	if Belongs(KindProtein, "s4") {
		t.Error("Belongs(protein, s4) = true")
	}
	if Belongs(KindProtein, "p") {
		t.Error("Belongs(protein, p) = true")
	}
}
