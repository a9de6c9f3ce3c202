package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	minZoom = 0.05
	maxZoom = 200
)

// Camera projects simulation coordinates onto the canvas. Center is the
// world point drawn at the middle of the canvas and Span is the world
// distance covered by half the shorter canvas side at zoom 1.
type Camera struct {
	Center     dynamo.Vector3
	Span       float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera(span float64) *Camera {
	if span <= 0 {
		span = 1
	}
	return &Camera{Span: span, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.25) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.25) }

func (c *Camera) rotate(p dynamo.Vector3) dynamo.Vector3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps p to dot coordinates on a sw x sh dot grid using an
// orthographic top-down view. ok reports whether the dot is on screen.
func (c *Camera) Project(p dynamo.Vector3, sw, sh int) (x, y int, ok bool) {
	rot := c.rotate(p.Sub(c.Center))
	half := float64(min(sw, sh)) / 2
	scale := half * c.Zoom / c.Span

	fx := rot.X*scale + float64(sw)/2
	fy := -rot.Y*scale + float64(sh)/2
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > 1e9 || math.Abs(fy) > 1e9 {
		return 0, 0, false
	}

	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && x < sw && y >= 0 && y < sh
}

// FitSpan returns the largest planar distance of any body from center,
// padded so the outermost body stays inside the frame.
func FitSpan(bodies []dynamo.Body, center dynamo.Vector3) float64 {
	span := 0.0
	for _, b := range bodies {
		d := b.Position.Sub(center)
		if r := math.Hypot(d.X, d.Y); r > span && !math.IsInf(r, 0) {
			span = r
		}
	}
	if span == 0 {
		return 1
	}
	return span * 1.1
}
