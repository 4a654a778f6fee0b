package reveal

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default box color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA with the given extra alpha.
func (c Color) toRGBA(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Rect is an axis-aligned rectangle in page space. The origin is the top-left
// of the page, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 || y1 < y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeBox                       // solid color rectangle
	NodeTypeText                      // debug-font text block
	NodeTypeEmbed                     // opaque embedded scene, drawn as a placeholder
)

// Property names a node field a timeline step can animate.
type Property uint8

const (
	Opacity    Property = iota // Node.Alpha
	TranslateX                 // Node.TranslateX, never moves the layout box
	TranslateY                 // Node.TranslateY, never moves the layout box
	Scale                      // Node.ScaleX and Node.ScaleY together
)

var propertyNames = [...]string{
	Opacity:    "opacity",
	TranslateX: "x",
	TranslateY: "y",
	Scale:      "scale",
}

// String returns the short name used in choreography manifests.
func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// ParseProperty maps a manifest property name to a Property.
func ParseProperty(name string) (Property, bool) {
	switch name {
	case "opacity", "alpha":
		return Opacity, true
	case "x", "translateX":
		return TranslateX, true
	case "y", "translateY":
		return TranslateY, true
	case "scale":
		return Scale, true
	}
	return 0, false
}

// PropertySet maps animatable properties to values.
type PropertySet map[Property]float64

// clone returns an independent copy of the set.
func (ps PropertySet) clone() PropertySet {
	out := make(PropertySet, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// EventType identifies a kind of reveal lifecycle event.
type EventType uint8

const (
	EventEnter       EventType = iota // a trigger's region crossed its enter threshold
	EventLeave                        // a trigger's region dropped below its exit threshold
	EventRunStart                     // a timeline run started (forward or reverse)
	EventRunComplete                  // a timeline run reached its end
	EventGateOn                       // a responsive gate's condition became true
	EventGateOff                      // a responsive gate's condition became false
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
