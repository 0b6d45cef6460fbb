package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera maps world coordinates onto canvas sub-pixels. World y grows
// downward, like the canvas.
type Camera struct {
	Center mgl64.Vec2
	Zoom   float64 // sub-pixels per world unit
}

// FitCamera centers the camera on the [min, max] box and zooms so it fills
// a canvas of sw x sh sub-pixels.
func FitCamera(min, max mgl64.Vec2, sw, sh int) *Camera {
	size := max.Sub(min)
	zoom := 1.0
	if size[0] > 0 && size[1] > 0 {
		zoom = math.Min(float64(sw)/size[0], float64(sh)/size[1])
	}
	return &Camera{Center: min.Add(max).Mul(0.5), Zoom: zoom}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.005, c.Zoom/1.2) }

// Project returns the sub-pixel of world point p on a sw x sh canvas.
func (c *Camera) Project(p mgl64.Vec2, sw, sh int) (int, int) {
	d := p.Sub(c.Center).Mul(c.Zoom)
	return int(math.Round(d[0])) + sw/2, int(math.Round(d[1])) + sh/2
}

// Unproject is the inverse of Project.
func (c *Camera) Unproject(x, y, sw, sh int) mgl64.Vec2 {
	d := mgl64.Vec2{float64(x - sw/2), float64(y - sh/2)}
	return c.Center.Add(d.Mul(1 / c.Zoom))
}
