package ui

// Color accessors read the active theme on every call.

func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// ColorProvider adapts the active theme to apperrors.ColorProvider.
type ColorProvider struct{}

func (ColorProvider) Red() string    { return ColorRed() }
func (ColorProvider) Yellow() string { return ColorYellow() }
func (ColorProvider) Reset() string  { return ColorReset() }
