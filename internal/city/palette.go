package city

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Hex unpacks a 0xRRGGBB literal.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Floats returns the colour as normalized components.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

var Palette = struct {
	Sky       RGB
	Ground    RGB
	Road      RGB
	Stripe    RGB
	BuildingA RGB
	BuildingB RGB
	BuildingC RGB
	Roof      RGB
	Glass     RGB
	Skin      RGB
	Shirt     RGB
	Fallback  RGB
}{
	Sky:       Hex(0x87CEEB),
	Ground:    Hex(0x44AA44),
	Road:      RGB{R: 60, G: 66, B: 79},
	Stripe:    RGB{R: 230, G: 220, B: 190},
	BuildingA: RGB{R: 153, G: 144, B: 133},
	BuildingB: RGB{R: 104, G: 108, B: 112},
	BuildingC: RGB{R: 195, G: 174, B: 142},
	Roof:      RGB{R: 86, G: 89, B: 88},
	Glass:     RGB{R: 140, G: 170, B: 190},
	Skin:      RGB{R: 224, G: 172, B: 130},
	Shirt:     RGB{R: 70, G: 110, B: 180},
	Fallback:  RGB{R: 255, G: 0, B: 255},
}

// vehicleColors maps each vehicle model to its body colour.
var vehicleColors = map[string]RGB{
	"police":    RGB{R: 30, G: 50, B: 140},
	"ambulance": RGB{R: 235, G: 235, B: 235},
	"tractor":   RGB{R: 60, G: 140, B: 50},
	"taxi":      RGB{R: 240, G: 200, B: 40},
	"suv":       RGB{R: 110, G: 110, B: 120},
	"firetruck": RGB{R: 200, G: 30, B: 30},
}
