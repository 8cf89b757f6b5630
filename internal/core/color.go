package core

// Cell is a single character with a foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

// Color is a palette index for a screen cell. The front-end maps each
// value to a terminal color.
type Color uint8

// Palette entries.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// heightBand is how far a surface may sit from the viewer's feet and
// still count as level with them.
const heightBand = 0.01

// HeightColor shades a surface by its height dy relative to the viewer's
// feet: above is blue, level or a short drop is white, deep below is gray.
func HeightColor(dy float64) Color {
	switch {
	case dy > heightBand:
		return ColorBlue
	case dy < -2:
		return ColorGray
	default:
		return ColorWhite
	}
}
