package mrv2

import (
	"image/color"
	"testing"
)

// Verify at compile time that Color4f implements color.Color.
var _ color.Color = Color4f{}

func TestColor4f_Clamped(t *testing.T) {
	tests := []struct {
		name string
		c    Color4f
		want Color4f
	}{
		{
			name: "in range untouched",
			c:    Color4f{0.25, 0.5, 0.75, 1},
			want: Color4f{0.25, 0.5, 0.75, 1},
		},
		{
			name: "hdr values clamped",
			c:    Color4f{2.5, 1.0001, 0.5, 1},
			want: Color4f{1, 1, 0.5, 1},
		},
		{
			name: "negative values clamped",
			c:    Color4f{-0.5, 0, -1e6, 1},
			want: Color4f{0, 0, 0, 1},
		},
		{
			name: "alpha passes through",
			c:    Color4f{0, 0, 0, 3},
			want: Color4f{0, 0, 0, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColor4f_Lerp(t *testing.T) {
	a := Color4f{0, 0, 0, 0}
	b := Color4f{1, 1, 1, 1}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 0.5 || mid.A != 0.5 {
		t.Errorf("Lerp(t=0.5) = %v, want all channels 0.5", mid)
	}
}

func TestColor4f_ColorInterface(t *testing.T) {
	r, g, b, a := RGB(1, 0, 0).RGBA()
	if r != 65535 || g != 0 || b != 0 || a != 65535 {
		t.Errorf("RGB(1,0,0).RGBA() = (%d, %d, %d, %d), want (65535, 0, 0, 65535)", r, g, b, a)
	}

	// HDR values clamp on conversion but not on the sample itself.
	hdr := Color4f{4, 0, 0, 1}
	r, _, _, _ = hdr.RGBA()
	if r != 65535 {
		t.Errorf("HDR red converted to %d, want 65535", r)
	}
	if hdr.R != 4 {
		t.Errorf("HDR sample mutated to %v", hdr.R)
	}
}
