package effects

import "image"

const defaultScanlineIntensity = 0.35

// Scanlines darkens the last display row of every magnified virtual row.
// At scale 1 there is no room for a gap, so the overlay turns itself off.
type Scanlines struct {
	// Intensity is the fraction of brightness removed, in [0, 1].
	Intensity float64

	enabled bool
	period  int
}

func NewScanlines(intensity float64) *Scanlines {
	if intensity <= 0 || intensity > 1 {
		intensity = defaultScanlineIntensity
	}
	return &Scanlines{Intensity: intensity}
}

func (s *Scanlines) Name() string { return NameScanlines }

func (s *Scanlines) AfterEvaluate(scale int) {
	s.enabled = scale > 1
	s.period = scale
}

func (s *Scanlines) Enabled() bool { return s.enabled }

// Period is the scanline spacing in display rows.
func (s *Scanlines) Period() int { return s.period }

func (s *Scanlines) Apply(dst *image.RGBA, rect image.Rectangle) {
	if !s.enabled || dst == nil {
		return
	}
	area := rect.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	keep := uint32((1 - s.Intensity) * 256)
	for y := rect.Min.Y + s.period - 1; y < area.Max.Y; y += s.period {
		if y < area.Min.Y {
			continue
		}
		row := dst.Pix[dst.PixOffset(area.Min.X, y):dst.PixOffset(area.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i] = uint8(uint32(row[i]) * keep >> 8)
			row[i+1] = uint8(uint32(row[i+1]) * keep >> 8)
			row[i+2] = uint8(uint32(row[i+2]) * keep >> 8)
		}
	}
}
