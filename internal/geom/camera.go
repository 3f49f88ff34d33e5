package geom

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Camera holds the pan/zoom state of a board viewport and converts
// between screen and canvas coordinate spaces.
//
//	canvas = (screen - translate) / scale
//	screen = canvas*scale + translate
type Camera struct {
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
}

func NewCamera() *Camera {
	return &Camera{Scale: 1}
}

func (c *Camera) ToCanvas(screen Point) Point {
	return Point{
		X: (screen.X - c.TranslateX) / c.Scale,
		Y: (screen.Y - c.TranslateY) / c.Scale,
	}
}

func (c *Camera) ToScreen(canvas Point) Point {
	return Point{
		X: canvas.X*c.Scale + c.TranslateX,
		Y: canvas.Y*c.Scale + c.TranslateY,
	}
}

// PanBy shifts the viewport by a screen-space delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.TranslateX += dx
	c.TranslateY += dy
}

// ZoomAt sets a new scale anchored at the screen-space focal point, so the
// canvas content under the fingers does not drift during a pinch.
func (c *Camera) ZoomAt(scale float64, focal Point) {
	scale = clamp(scale, MinZoom, MaxZoom)
	ratio := scale / c.Scale
	c.TranslateX = focal.X - (focal.X-c.TranslateX)*ratio
	c.TranslateY = focal.Y - (focal.Y-c.TranslateY)*ratio
	c.Scale = scale
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
