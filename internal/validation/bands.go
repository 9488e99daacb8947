package validation

import (
	"github.com/golang/geo/r1"

	"github.com/facemap/backend/internal/anatomy"
)

// Expected percentage-space y band per zone. Ordering encodes forehead above
// brow above eye region above nose above mouth above chin; the masseter band
// spans the lower face laterally.
var hierarchyBands = map[anatomy.Zone]r1.Interval{
	anatomy.ZoneFrontalis:   {Lo: 5, Hi: 25},
	anatomy.ZoneGlabella:    {Lo: 28, Hi: 42},
	anatomy.ZonePeriorbital: {Lo: 32, Hi: 50},
	anatomy.ZoneNasal:       {Lo: 42, Hi: 55},
	anatomy.ZonePerioral:    {Lo: 56, Hi: 76},
	anatomy.ZoneMentalis:    {Lo: 75, Hi: 95},
	anatomy.ZoneMasseter:    {Lo: 50, Hi: 75},
}

// HierarchyBand returns the expected y band of a zone. ZoneUnknown has none.
func HierarchyBand(zone anatomy.Zone) (r1.Interval, bool) {
	band, ok := hierarchyBands[zone]
	return band, ok
}
