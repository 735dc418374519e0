package geometry

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Material describes surface appearance for the renderer
type Material struct {
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float64
	Roughness         float64
	Metalness         float64
	Opacity           float64
}

// Standard returns an opaque material with the given color and roughness
func Standard(c colorful.Color, roughness float64) Material {
	return Material{Color: c, Roughness: roughness, Opacity: 1}
}

// Glowing returns a material that emits its own light
func Glowing(c, emissive colorful.Color, intensity float64) Material {
	return Material{Color: c, Emissive: emissive, EmissiveIntensity: intensity, Roughness: 0.5, Opacity: 1}
}

// Lit reports whether the material emits light
func (m Material) Lit() bool {
	return m.EmissiveIntensity > 0
}

// Hex converts a 0xRRGGBB literal to a color
func Hex(v uint32) colorful.Color {
	return colorful.Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// RGB builds a color from float channels
func RGB(r, g, b float64) colorful.Color {
	return colorful.Color{R: r, G: g, B: b}
}

// Scale multiplies every channel by f and clamps the result
func Scale(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
}

// Floor raises every channel to at least min after multiplying by f
func Floor(c colorful.Color, f, min float64) colorful.Color {
	return colorful.Color{
		R: math.Max(min, c.R*f),
		G: math.Max(min, c.G*f),
		B: math.Max(min, c.B*f),
	}.Clamped()
}

// ShiftHue rotates the hue by a fraction of the full circle
func ShiftHue(c colorful.Color, fraction float64) colorful.Color {
	h, s, l := c.Hsl()
	h = math.Mod(h+fraction*360, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l).Clamped()
}

// Tint builds a color from a hue fraction in [0,1) and HSL saturation/lightness
func Tint(hue, saturation, lightness float64) colorful.Color {
	return colorful.Hsl(math.Mod(hue, 1)*360, saturation, lightness).Clamped()
}
