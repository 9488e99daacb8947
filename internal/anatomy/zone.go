package anatomy

// Zone is a named facial muscle region.
type Zone string

const (
	ZoneGlabella    Zone = "glabella"
	ZoneFrontalis   Zone = "frontalis"
	ZonePeriorbital Zone = "periorbital"
	ZoneNasal       Zone = "nasal"
	ZonePerioral    Zone = "perioral"
	ZoneMentalis    Zone = "mentalis"
	ZoneMasseter    Zone = "masseter"
	ZoneUnknown     Zone = "unknown"
)

// Side is the half of the face a bilateral point belongs to.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

var allZones = []Zone{
	ZoneFrontalis,
	ZoneGlabella,
	ZonePeriorbital,
	ZoneNasal,
	ZonePerioral,
	ZoneMentalis,
	ZoneMasseter,
	ZoneUnknown,
}

// Zones returns every zone, top of the face first, with ZoneUnknown last.
func Zones() []Zone {
	zones := make([]Zone, len(allZones))
	copy(zones, allZones)
	return zones
}

// ParseZone returns the zone with the given name, or ZoneUnknown.
func ParseZone(name string) Zone {
	for _, z := range allZones {
		if string(z) == name {
			return z
		}
	}
	return ZoneUnknown
}

// IsBilateral reports whether the zone has mirrored left and right instances.
func IsBilateral(z Zone) bool {
	return z == ZonePeriorbital || z == ZoneMasseter
}

// SideOf returns the side of a normalized x coordinate. The midline belongs to the right.
func SideOf(xNorm float64) Side {
	if xNorm < 0.5 {
		return SideLeft
	}
	return SideRight
}
