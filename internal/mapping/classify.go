package mapping

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/models"
)

// zoneRegion3D is an approximate model-space slab: a height band and a band of
// distance from the midline.
type zoneRegion3D struct {
	zone    anatomy.Zone
	height  r1.Interval
	lateral r1.Interval
}

// Checked in order; earlier entries win where bands overlap.
var zoneRegions3D = []zoneRegion3D{
	{anatomy.ZoneFrontalis, r1.Interval{Lo: 0.92, Hi: math.Inf(1)}, r1.Interval{Lo: 0, Hi: 0.7}},
	{anatomy.ZoneGlabella, r1.Interval{Lo: 0.5, Hi: 0.92}, r1.Interval{Lo: 0, Hi: 0.25}},
	{anatomy.ZonePeriorbital, r1.Interval{Lo: 0.3, Hi: 0.8}, r1.Interval{Lo: 0.25, Hi: 0.9}},
	{anatomy.ZoneNasal, r1.Interval{Lo: 0.17, Hi: 0.5}, r1.Interval{Lo: 0, Hi: 0.25}},
	{anatomy.ZonePerioral, r1.Interval{Lo: -0.38, Hi: 0.17}, r1.Interval{Lo: 0, Hi: 0.4}},
	{anatomy.ZoneMentalis, r1.Interval{Lo: math.Inf(-1), Hi: -0.38}, r1.Interval{Lo: 0, Hi: 0.3}},
	{anatomy.ZoneMasseter, r1.Interval{Lo: -0.4, Hi: 0.3}, r1.Interval{Lo: 0.4, Hi: 1.2}},
}

// ZoneFrom3D classifies a model-space point by height and distance from the
// midline. The thresholds approximate, but are independent of, the 2D boundaries.
func ZoneFrom3D(p r3.Vector) anatomy.Zone {
	ax := math.Abs(p.X)
	for _, r := range zoneRegions3D {
		if r.height.Contains(p.Y) && r.lateral.Contains(ax) {
			return r.zone
		}
	}
	return anatomy.ZoneUnknown
}

func sided(base string, x float64) string {
	if x < 0 {
		return base + "_left"
	}
	return base + "_right"
}

// DetectMuscleFrom3D returns the muscle slug a model-space position most
// likely belongs to. The zone comes from ZoneFrom3D so both classifiers always
// agree; the slug then separates muscles within the zone, such as procerus
// from the left and right corrugators. Positions outside every zone fall back
// to "procerus".
func DetectMuscleFrom3D(x, y float64) string {
	ax := math.Abs(x)
	switch ZoneFrom3D(r3.Vector{X: x, Y: y}) {
	case anatomy.ZoneFrontalis:
		return "frontalis"
	case anatomy.ZoneGlabella:
		if ax <= 0.08 {
			return "procerus"
		}
		return sided("corrugator", x)
	case anatomy.ZonePeriorbital:
		return sided("orbicularis_oculi", x)
	case anatomy.ZoneNasal:
		return "nasalis"
	case anatomy.ZonePerioral:
		if ax <= 0.15 {
			return "orbicularis_oris"
		}
		return sided("depressor_anguli_oris", x)
	case anatomy.ZoneMentalis:
		return "mentalis"
	case anatomy.ZoneMasseter:
		return sided("masseter", x)
	}
	return "procerus"
}

// ValidateCoordinatesForZone reports whether a percentage-space point lies in
// the zone's nominal box, mirrored for the right side of bilateral zones. It
// is advisory and never alters the point.
func ValidateCoordinatesForZone(x, y float64, zone anatomy.Zone) models.CoordinateCheck {
	xNorm, yNorm := x/100, y/100
	b := anatomy.BoundaryForSide(zone, anatomy.SideOf(xNorm))
	if b.Contains(r2.Point{X: xNorm, Y: yNorm}) {
		return models.CoordinateCheck{Valid: true}
	}
	return models.CoordinateCheck{
		Valid: false,
		Warning: fmt.Sprintf(
			"Coordenadas (%.1f, %.1f) fora da zona %s esperada (x: %.0f-%.0f, y: %.0f-%.0f)",
			x, y, zone,
			b.Bounds.X.Lo*100, b.Bounds.X.Hi*100,
			b.Bounds.Y.Lo*100, b.Bounds.Y.Hi*100,
		),
	}
}
