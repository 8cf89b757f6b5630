package core

import (
	"strings"
	"testing"
)

func TestScreenSetClips(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(-1, 0, 'x')
	s.Set(4, 0, 'x')
	s.Set(0, 2, 'x')
	s.SetColor(1, 1, '@', ColorBrightCyan)

	if got := s.String(); got != "    \n @  " {
		t.Errorf("String() = %q", got)
	}
	if c := s.GetCell(1, 1); c.Color != ColorBrightCyan {
		t.Errorf("color = %v, want bright cyan", c.Color)
	}
	if r := s.Get(9, 9); r != ' ' {
		t.Errorf("Get out of bounds = %q, want space", r)
	}
}

func TestScreenDrawTextCountsRunes(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "é→ok")
	if got := s.String(); got != "é→ok  " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawText(0, 0, "abc")
	s.Resize(5, 2)
	if s.Width() != 5 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 5x2", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("resized screen not blank: %q", s.String())
	}
}

func TestHeightColor(t *testing.T) {
	tests := []struct {
		dy   float64
		want Color
	}{
		{1.5, ColorBlue},
		{0.02, ColorBlue},
		{0, ColorWhite},
		{0.01, ColorWhite},
		{-1.9, ColorWhite},
		{-2.5, ColorGray},
	}
	for _, tt := range tests {
		if got := HeightColor(tt.dy); got != tt.want {
			t.Errorf("HeightColor(%v) = %v, want %v", tt.dy, got, tt.want)
		}
	}
}
