package ui

// ColorPrimary returns the escape code for highlighted values.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for labels.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the escape code for success.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the escape code for warnings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the escape code for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// Colorize wraps s in the given escape code and a reset. It returns s
// unchanged when color is empty.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
