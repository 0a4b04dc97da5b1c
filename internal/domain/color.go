// internal/domain/color.go
package domain

// DefaultColorHex is used when a stored color is not in the palette.
const DefaultColorHex = "#3b82f6"

// palette lists the profile colors in display order with their hex values.
var palette = []struct {
	Name string
	Hex  string
}{
	{"red", "#ef4444"},
	{"orange", "#f97316"},
	{"amber", "#f59e0b"},
	{"yellow", "#eab308"},
	{"lime", "#84cc16"},
	{"green", "#22c55e"},
	{"emerald", "#10b981"},
	{"teal", "#14b8a6"},
	{"cyan", "#06b6d4"},
	{"sky", "#0ea5e9"},
	{"blue", "#3b82f6"},
	{"indigo", "#6366f1"},
	{"violet", "#8b5cf6"},
	{"purple", "#a855f7"},
	{"fuchsia", "#d946ef"},
	{"pink", "#ec4899"},
	{"rose", "#f43f5e"},
}

// Color is one palette entry.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Colors returns the palette in display order.
func Colors() []Color {
	out := make([]Color, len(palette))
	for i, c := range palette {
		out[i] = Color{Name: c.Name, Hex: c.Hex}
	}
	return out
}

// IsValidColor reports whether name is a palette color.
func IsValidColor(name string) bool {
	for _, c := range palette {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColorHex returns the hex value for a palette color, or DefaultColorHex.
func ColorHex(name string) string {
	for _, c := range palette {
		if c.Name == name {
			return c.Hex
		}
	}
	return DefaultColorHex
}
