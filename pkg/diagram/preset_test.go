package diagram

import "testing"

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in     string
		want   PresetKind
		wantOK bool
	}{
		{"", PresetRoundRect, true},
		{"roundRect", PresetRoundRect, true},
		{"flowChartDecision", PresetDiamond, true},
		{"  Hexagon ", PresetHexagon, true},
		{"can", PresetCylinder, true},
		{"starburst", PresetUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePreset(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePreset(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPresetRenderable(t *testing.T) {
	if got := PresetUnknown.Renderable(); got != PresetRoundRect {
		t.Errorf("PresetUnknown.Renderable() = %v, want roundRect", got)
	}
	if got := PresetDiamond.Renderable(); got != PresetDiamond {
		t.Errorf("PresetDiamond.Renderable() = %v, want diamond", got)
	}
}

func TestPresetTextRoundTrip(t *testing.T) {
	for k := range presetNames {
		b, _ := k.MarshalText()
		var got PresetKind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s) error = %v", b, err)
		}
		if got != k {
			t.Errorf("round trip %v = %v", k, got)
		}
	}
}

func TestStyleOrDefault(t *testing.T) {
	if got := StyleOrDefault("accent").Fill; got != "ED7D31" {
		t.Errorf("accent fill = %s, want ED7D31", got)
	}
	if got := StyleOrDefault("nope"); got != palette[DefaultStyle] {
		t.Errorf("unknown style = %v, want default", got)
	}
	if LaneSwatch(0) != LaneSwatch(3) {
		t.Error("lane palette should cycle every three lanes")
	}
}
