// Package models contains the data models for the application.
package models

// Depth is the tissue plane an injection targets.
type Depth string

const (
	DepthSuperficial Depth = "superficial"
	DepthDeep        Depth = "deep"
)

// InjectionPoint represents one proposed or edited injection in percentage space.
// Points are treated as values: an edit replaces the point, it never mutates it.
type InjectionPoint struct {
	ID     string  `json:"id"`
	Muscle string  `json:"muscle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Depth  Depth   `json:"depth"`
	Dosage float64 `json:"dosage"`
	Notes  string  `json:"notes,omitempty"`
}

// Position3D is a point in model space, encoded as [x, y, z].
type Position3D [3]float64

// WarningType classifies an advisory validation finding.
type WarningType string

const (
	WarningSymmetry  WarningType = "symmetry"
	WarningHierarchy WarningType = "hierarchy"
	WarningProximity WarningType = "proximity"
	WarningDosage    WarningType = "dosage"
)

// ErrorType classifies a blocking validation finding.
type ErrorType string

const (
	ErrorDangerZone      ErrorType = "danger_zone"
	ErrorLimitExceeded   ErrorType = "limit_exceeded"
	ErrorInvalidPosition ErrorType = "invalid_position"
)

// Severity is the ordinal strength of a warning.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ValidationWarning is an advisory finding; it never blocks a plan.
type ValidationWarning struct {
	Type           WarningType `json:"type"`
	Message        string      `json:"message"`
	AffectedPoints []string    `json:"affectedPoints"`
	Severity       Severity    `json:"severity"`
}

// ValidationError is a blocking finding.
type ValidationError struct {
	Type           ErrorType `json:"type"`
	Message        string    `json:"message"`
	AffectedPoints []string  `json:"affectedPoints"`
}

// ValidationResult is the outcome of validating a set of injection points.
// IsValid is true iff Errors is empty.
type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Warnings []ValidationWarning `json:"warnings"`
	Errors   []ValidationError   `json:"errors"`
}
