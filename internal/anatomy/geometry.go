package anatomy

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ModelCenterY is the model-space height the vertical curvature falloff is measured from.
const ModelCenterY = 0.3

var (
	modelMin = r3.Vector{X: -1.2, Y: -1.0, Z: 0.5}
	modelMax = r3.Vector{X: 1.2, Y: 1.6, Z: 2.0}
)

// ModelBounds returns the corners of the model-space bounding box.
func ModelBounds() (lo, hi r3.Vector) {
	return modelMin, modelMax
}

// Boundary2D is a zone's nominal box and center in normalized space.
type Boundary2D struct {
	Bounds r2.Rect
	Center r2.Point
}

// HalfWidth returns half the box's horizontal extent.
func (b Boundary2D) HalfWidth() float64 { return b.Bounds.X.Length() / 2 }

// HalfHeight returns half the box's vertical extent.
func (b Boundary2D) HalfHeight() float64 { return b.Bounds.Y.Length() / 2 }

// Mirror reflects the boundary across the facial midline (x -> 1-x).
func (b Boundary2D) Mirror() Boundary2D {
	return Boundary2D{
		Bounds: r2.Rect{
			X: r1.Interval{Lo: 1 - b.Bounds.X.Hi, Hi: 1 - b.Bounds.X.Lo},
			Y: b.Bounds.Y,
		},
		Center: r2.Point{X: 1 - b.Center.X, Y: b.Center.Y},
	}
}

// Contains reports whether a normalized point lies in the box, edges included.
func (b Boundary2D) Contains(p r2.Point) bool {
	return b.Bounds.ContainsPoint(p)
}

// Anchor3D places a zone on the head model.
type Anchor3D struct {
	// Ref is the zone center in model space. For bilateral zones X holds the
	// magnitude and the sign comes from the side being mapped.
	Ref           r3.Vector
	Width         float64
	Height        float64
	CurvatureX    float64
	CurvatureY    float64
	SurfaceOffset float64
}

func boundary(xMin, xMax, yMin, yMax, cx, cy float64) Boundary2D {
	return Boundary2D{
		Bounds: r2.Rect{X: r1.Interval{Lo: xMin, Hi: xMax}, Y: r1.Interval{Lo: yMin, Hi: yMax}},
		Center: r2.Point{X: cx, Y: cy},
	}
}

var boundaries = map[Zone]Boundary2D{
	ZoneFrontalis:   boundary(0.25, 0.75, 0.05, 0.25, 0.50, 0.15),
	ZoneGlabella:    boundary(0.40, 0.60, 0.28, 0.42, 0.50, 0.35),
	ZonePeriorbital: boundary(0.15, 0.35, 0.32, 0.50, 0.25, 0.41),
	ZoneNasal:       boundary(0.42, 0.58, 0.42, 0.55, 0.50, 0.485),
	ZonePerioral:    boundary(0.35, 0.65, 0.56, 0.76, 0.50, 0.66),
	ZoneMentalis:    boundary(0.40, 0.60, 0.75, 0.95, 0.50, 0.85),
	ZoneMasseter:    boundary(0.10, 0.28, 0.50, 0.75, 0.19, 0.625),
	ZoneUnknown:     boundary(0.00, 1.00, 0.00, 1.00, 0.50, 0.50),
}

// Calibrated against the head mesh: 2.4 model units across the face width,
// 2.6 from hairline (y=1.6) to chin (y=-1.0).
var anchors = map[Zone]Anchor3D{
	ZoneFrontalis: {
		Ref: r3.Vector{X: 0, Y: 1.21, Z: 1.55}, Width: 1.2, Height: 0.52,
		CurvatureX: 0.25, CurvatureY: 0.10, SurfaceOffset: 0.03,
	},
	ZoneGlabella: {
		Ref: r3.Vector{X: 0, Y: 0.69, Z: 1.70}, Width: 0.48, Height: 0.364,
		CurvatureX: 0.20, CurvatureY: 0.10, SurfaceOffset: 0.03,
	},
	ZonePeriorbital: {
		Ref: r3.Vector{X: 0.6, Y: 0.534, Z: 1.45}, Width: 0.48, Height: 0.468,
		CurvatureX: 0.30, CurvatureY: 0.08, SurfaceOffset: 0.04,
	},
	ZoneNasal: {
		Ref: r3.Vector{X: 0, Y: 0.339, Z: 1.90}, Width: 0.384, Height: 0.338,
		CurvatureX: 0.40, CurvatureY: 0.05, SurfaceOffset: 0.02,
	},
	ZonePerioral: {
		Ref: r3.Vector{X: 0, Y: -0.116, Z: 1.65}, Width: 0.72, Height: 0.52,
		CurvatureX: 0.30, CurvatureY: 0.10, SurfaceOffset: 0.03,
	},
	ZoneMentalis: {
		Ref: r3.Vector{X: 0, Y: -0.61, Z: 1.50}, Width: 0.48, Height: 0.52,
		CurvatureX: 0.30, CurvatureY: 0.15, SurfaceOffset: 0.03,
	},
	ZoneMasseter: {
		Ref: r3.Vector{X: 0.744, Y: -0.025, Z: 1.00}, Width: 0.432, Height: 0.65,
		CurvatureX: 0.15, CurvatureY: 0.05, SurfaceOffset: 0.05,
	},
	ZoneUnknown: {
		Ref: r3.Vector{X: 0, Y: 0.3, Z: 1.40}, Width: 2.4, Height: 2.6,
		CurvatureX: 0.25, CurvatureY: 0.10, SurfaceOffset: 0.03,
	},
}

// BoundaryFor returns the stored boundary of a zone. Unrecognized zones get
// the ZoneUnknown boundary, which spans the whole face.
func BoundaryFor(z Zone) Boundary2D {
	if b, ok := boundaries[z]; ok {
		return b
	}
	return boundaries[ZoneUnknown]
}

// BoundaryForSide returns the boundary of a zone on the given side, mirroring
// the stored left-side box for the right side of bilateral zones.
func BoundaryForSide(z Zone, side Side) Boundary2D {
	b := BoundaryFor(z)
	if IsBilateral(z) && side == SideRight {
		return b.Mirror()
	}
	return b
}

// AnchorFor returns the model-space anchor of a zone, falling back to ZoneUnknown.
func AnchorFor(z Zone) Anchor3D {
	if a, ok := anchors[z]; ok {
		return a
	}
	return anchors[ZoneUnknown]
}
