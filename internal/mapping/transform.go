// Package mapping converts injection coordinates between normalized (0-1),
// percentage (0-100) and head-model space, and re-detects muscles for points
// dragged on the 3D model. Every function is pure and clamps out-of-range
// input instead of failing.
package mapping

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/models"
)

const (
	lateralExponent  = 2.0
	verticalExponent = 1.5
)

// clamp bounds v to [lo, hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AIToPercent converts normalized coordinates to percentage space.
func AIToPercent(x, y float64) (float64, float64) {
	return clamp(x*100, 0, 100), clamp(y*100, 0, 100)
}

// PercentToAI converts percentage coordinates to normalized space.
func PercentToAI(x, y float64) (float64, float64) {
	return clamp(x/100, 0, 1), clamp(y/100, 0, 1)
}

// sideReference returns the normalized center x and the signed model-space
// reference x of a zone on the given side.
func sideReference(zone anatomy.Zone, side anatomy.Side) (centerX, refX float64) {
	b := anatomy.BoundaryForSide(zone, side)
	a := anatomy.AnchorFor(zone)
	if !anatomy.IsBilateral(zone) {
		return b.Center.X, a.Ref.X
	}
	if side == anatomy.SideLeft {
		return b.Center.X, -math.Abs(a.Ref.X)
	}
	return b.Center.X, math.Abs(a.Ref.X)
}

// PercentTo3D places a percentage-space point on the head model using the
// zone its muscle classifies to.
func PercentTo3D(x, y float64, muscle string) r3.Vector {
	return PercentTo3DInZone(x, y, anatomy.ClassifyMuscle(muscle))
}

// PercentTo3DInZone places a percentage-space point on the head model using
// the given zone's calibration. Points outside the zone box are pulled to
// its edge. The result always lies inside the model bounds.
func PercentTo3DInZone(x, y float64, zone anatomy.Zone) r3.Vector {
	b := anatomy.BoundaryFor(zone)
	a := anatomy.AnchorFor(zone)

	xNorm := clamp(x, 0, 100) / 100
	yNorm := clamp(y, 0, 100) / 100

	centerX, refX := sideReference(zone, anatomy.SideOf(xNorm))

	relX := clamp((xNorm-centerX)/b.HalfWidth(), -1, 1)
	relY := clamp((yNorm-b.Center.Y)/b.HalfHeight(), -1, 1)

	x3 := refX + relX*a.Width/2
	// 2D y grows toward the chin, model y grows upward.
	y3 := a.Ref.Y - relY*a.Height/2

	lateralCurve := math.Pow(math.Abs(x3), lateralExponent) * a.CurvatureX
	verticalCurve := math.Pow(math.Abs(y3-anatomy.ModelCenterY), verticalExponent) * a.CurvatureY
	z3 := a.Ref.Z - lateralCurve - verticalCurve + a.SurfaceOffset

	lo, hi := anatomy.ModelBounds()
	return r3.Vector{
		X: clamp(x3, lo.X, hi.X),
		Y: clamp(y3, lo.Y, hi.Y),
		Z: clamp(z3, lo.Z, hi.Z),
	}
}

// ThreeDToPercent maps a model-space point back to percentage space. The zone
// is re-derived from the 3D position with ZoneFrom3D, so the inverse is only
// approximate near zone borders; depth is ignored.
func ThreeDToPercent(p r3.Vector) (x, y float64) {
	zone := ZoneFrom3D(p)
	b := anatomy.BoundaryFor(zone)
	a := anatomy.AnchorFor(zone)

	side := anatomy.SideRight
	if p.X < 0 {
		side = anatomy.SideLeft
	}
	centerX, refX := sideReference(zone, side)

	relX := (p.X - refX) / (a.Width / 2)
	relY := (a.Ref.Y - p.Y) / (a.Height / 2)

	xNorm := centerX + relX*b.HalfWidth()
	yNorm := b.Center.Y + relY*b.HalfHeight()

	return clamp(xNorm*100, 0, 100), clamp(yNorm*100, 0, 100)
}

// MapPoints places every point on the head model.
func MapPoints(points []models.InjectionPoint) []models.MappedPoint {
	mapped := make([]models.MappedPoint, 0, len(points))
	for _, p := range points {
		zone := anatomy.ClassifyMuscle(p.Muscle)
		v := PercentTo3DInZone(p.X, p.Y, zone)
		mapped = append(mapped, models.MappedPoint{
			ID:       p.ID,
			Muscle:   p.Muscle,
			Zone:     string(zone),
			Position: models.Position3D{v.X, v.Y, v.Z},
		})
	}
	return mapped
}
