package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled.

func ColorReset() string  { return GetCurrentTheme().Reset }
func ColorRed() string    { return GetCurrentTheme().Error }
func ColorGreen() string  { return GetCurrentTheme().Success }
func ColorYellow() string { return GetCurrentTheme().Warning }
func ColorCyan() string   { return GetCurrentTheme().Primary }
func ColorDim() string    { return GetCurrentTheme().Secondary }
func ColorBold() string   { return GetCurrentTheme().Bold }

// Paint wraps s in color and a reset. It returns s unchanged when color is
// empty.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
