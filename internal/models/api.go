package models

// Rejection records why an input entry was dropped at the payload boundary.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// MappedPoint is the 3D placement of a single injection point.
type MappedPoint struct {
	ID       string     `json:"id"`
	Muscle   string     `json:"muscle"`
	Zone     string     `json:"zone"`
	Position Position3D `json:"position"`
}

// MappedPointsResponse wraps the 3D placements in the API response.
type MappedPointsResponse struct {
	Data            []MappedPoint `json:"data"`
	NormalizedInput bool          `json:"normalizedInput"`
	Rejected        []Rejection   `json:"rejected,omitempty"`
}

// From3DRequest represents a dragged point in model space.
type From3DRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
	Z *float64 `json:"z" binding:"required"`
}

// From3DResult is the 2D position and re-detected muscle for a dragged point.
type From3DResult struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Muscle string  `json:"muscle"`
	Label  string  `json:"label"`
	Zone   string  `json:"zone"`
}

// From3DResponse wraps a From3DResult in the API response.
type From3DResponse struct {
	Data From3DResult `json:"data"`
}

// CoordinateCheckRequest asks whether a percentage position lies in a zone.
type CoordinateCheckRequest struct {
	X    *float64 `json:"x" binding:"required"`
	Y    *float64 `json:"y" binding:"required"`
	Zone string   `json:"zone" binding:"required"`
}

// CoordinateCheck is the advisory outcome of a zone bounds check.
type CoordinateCheck struct {
	Valid   bool   `json:"valid"`
	Warning string `json:"warning,omitempty"`
}

// ValidationResponse wraps a validation result, its digest line and the
// entries dropped before validation.
type ValidationResponse struct {
	Data            ValidationResult `json:"data"`
	Summary         string           `json:"summary"`
	NormalizedInput bool             `json:"normalizedInput"`
	Rejected        []Rejection      `json:"rejected,omitempty"`
}

// MuscleClassification is the zone and display label of a muscle identifier.
type MuscleClassification struct {
	Muscle string `json:"muscle"`
	Zone   string `json:"zone"`
	Label  string `json:"label"`
}

// Rect2D is a rectangle in normalized (0-1) or percentage (0-100) space.
type Rect2D struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

// ZoneInfo describes one anatomical zone's calibration for the UI.
type ZoneInfo struct {
	Zone          string     `json:"zone"`
	Bilateral     bool       `json:"bilateral"`
	Boundary      Rect2D     `json:"boundary"`
	CenterX       float64    `json:"centerX"`
	CenterY       float64    `json:"centerY"`
	Ref3D         Position3D `json:"ref3D"`
	Width3D       float64    `json:"width3D"`
	Height3D      float64    `json:"height3D"`
	CurvatureX    float64    `json:"curvatureX"`
	CurvatureY    float64    `json:"curvatureY"`
	SurfaceOffset float64    `json:"surfaceOffset"`
	MinY          *float64   `json:"minY,omitempty"`
	MaxY          *float64   `json:"maxY,omitempty"`
}

// ZonesResponse wraps the zone table in the API response.
type ZonesResponse struct {
	Data []ZoneInfo `json:"data"`
}

// DangerZoneInfo describes one danger zone in percentage space.
type DangerZoneInfo struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Rect2D
}

// DangerZonesResponse wraps the danger-zone table in the API response.
type DangerZonesResponse struct {
	Data []DangerZoneInfo `json:"data"`
}

// ErrorResponse represents an error response from the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
