package style

import "testing"

func TestUnitCalc(t *testing.T) {
	tests := []struct {
		name  string
		unit  Unit
		avail float64
		want  float64
	}{
		{"pixel", Px(12), 500, 12},
		{"percent", Pct(25), 200, 50},
		{"percent clamped high", Pct(150), 200, 200},
		{"percent clamped low", Pct(-10), 200, 0},
		{"unset", Unit{}, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.Calc(tt.avail); got != tt.want {
				t.Errorf("Calc(%v) = %v, want %v", tt.avail, got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	r := Rules{
		Display: DisplayFlex,
		Gap:     Px(4),
		Margin:  Edges{Top: Px(1)},
		Width:   Fixed(Pct(50)),
	}
	if got := Merge(r, r); got != r {
		t.Errorf("Merge(r, r) = %+v, want %+v", got, r)
	}
	if got := r.Overlay(r); got != r {
		t.Errorf("r.Overlay(r) = %+v, want %+v", got, r)
	}
}

func TestMergeOverride(t *testing.T) {
	a := Rules{
		Background: RGB(1, 1, 1),
		Direction:  DirectionRow,
		Gap:        Px(4),
		Padding:    Edges{Top: Px(1), Left: Px(2)},
		Height:     Auto(),
	}
	b := Rules{
		Background: RGB(9, 9, 9),
		Padding:    Edges{Left: Px(7)},
		Width:      FitContent(),
	}

	got := Merge(a, b)
	want := Rules{
		Background: RGB(9, 9, 9),
		Direction:  DirectionRow,
		Gap:        Px(4),
		Padding:    Edges{Top: Px(1), Left: Px(7)},
		Width:      FitContent(),
		Height:     Auto(),
	}
	if got != want {
		t.Errorf("Merge(a, b) = %+v, want %+v", got, want)
	}

	if got := Merge(); got != (Rules{}) {
		t.Errorf("Merge() = %+v, want zero record", got)
	}
}

func TestRulesDefaults(t *testing.T) {
	var r Rules
	if r.FlexDirection() != DirectionRow {
		t.Errorf("FlexDirection() = %v, want row", r.FlexDirection())
	}
	if c := r.BackgroundOrBlack(); c != RGB(0, 0, 0) {
		t.Errorf("BackgroundOrBlack() = %+v, want black", c)
	}
	if hex := RGB(255, 16, 0).Hex(); hex != "#ff1000" {
		t.Errorf("Hex() = %q, want #ff1000", hex)
	}
}

func TestDeclared(t *testing.T) {
	r := Rules{
		Direction: DirectionColumn,
		Gap:       Pct(5),
		Padding:   Edges{Left: Px(2)},
		Width:     FitContent(),
	}
	got := r.Declared()
	want := map[string]string{
		"flex-direction": "column",
		"gap":            "5%",
		"padding":        "unset unset unset 2px",
		"width":          "fit-content",
	}
	if len(got) != len(want) {
		t.Fatalf("Declared() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Declared()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if len(Rules{}.Declared()) != 0 {
		t.Error("zero record declares properties")
	}
}
