// Package payload turns the loosely shaped JSON produced by the AI vision
// service into strict InjectionPoint values. Malformed entries are rejected
// individually so one bad point never discards the rest of the set.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/facemap/backend/internal/mapping"
	"github.com/facemap/backend/internal/models"
)

var (
	// ErrEmptyPayload is returned when the payload carries no points at all.
	ErrEmptyPayload = errors.New("payload contains no injection points")

	// ErrInvalidPayload is returned when the payload is not a JSON array or a
	// recognised envelope object.
	ErrInvalidPayload = errors.New("invalid injection payload")
)

// envelopeKeys are the object keys the AI service has been seen to wrap points in.
var envelopeKeys = []string{"injectionPoints", "injection_points", "points"}

// RawPoint mirrors one AI-produced entry. Pointer fields distinguish a
// missing value from a zero value.
type RawPoint struct {
	ID     *string  `json:"id"`
	Muscle *string  `json:"muscle"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Dosage *float64 `json:"dosage"`
	Depth  *string  `json:"depth"`
	Notes  *string  `json:"notes"`
}

// Request is the body of every endpoint that accepts injection points. Entries
// stay raw until Normalize so the HTTP boundary applies the same rules as Parse.
type Request struct {
	Points []*RawPoint `json:"points" binding:"required"`
}

// Result holds the accepted points and the rejected entries.
type Result struct {
	Points []models.InjectionPoint `json:"points"`
	// Normalized is true when the batch arrived in 0-1 space and was scaled.
	Normalized bool               `json:"normalizedInput"`
	Rejected   []models.Rejection `json:"rejected"`
}

// Parse decodes an AI payload: either a bare array of points or an object
// wrapping the array under one of the envelope keys.
func Parse(data []byte) (*Result, error) {
	entries, err := splitEntries(data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyPayload
	}

	raws := make([]*RawPoint, len(entries))
	var rejected []models.Rejection
	for i, entry := range entries {
		var raw RawPoint
		if err := json.Unmarshal(entry, &raw); err != nil {
			rejected = append(rejected, models.Rejection{Index: i, Reason: fmt.Sprintf("malformed entry: %v", err)})
			continue
		}
		raws[i] = &raw
	}

	result := Normalize(raws)
	result.Rejected = append(result.Rejected, rejected...)
	sort.Slice(result.Rejected, func(i, j int) bool {
		return result.Rejected[i].Index < result.Rejected[j].Index
	})
	return result, nil
}

func splitEntries(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	var entries []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return entries, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for _, key := range envelopeKeys {
		if inner, ok := envelope[key]; ok {
			if err := json.Unmarshal(inner, &entries); err != nil {
				return nil, fmt.Errorf("%w: %q is not an array: %v", ErrInvalidPayload, key, err)
			}
			return entries, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s array found", ErrInvalidPayload, strings.Join(envelopeKeys, "/"))
}

// Normalize converts raw entries into strict points. Nil entries are skipped;
// entries without a muscle or either coordinate are rejected. When every
// accepted entry has x and y at most 1 the batch is treated as normalized.
func Normalize(raws []*RawPoint) *Result {
	result := &Result{
		Points:   []models.InjectionPoint{},
		Rejected: []models.Rejection{},
	}

	type candidate struct {
		raw  *RawPoint
		x, y float64
	}
	var accepted []candidate
	normalized := true

	for i, raw := range raws {
		if raw == nil {
			continue
		}
		if reason := missingField(raw); reason != "" {
			result.Rejected = append(result.Rejected, models.Rejection{Index: i, Reason: reason})
			continue
		}
		x, y := finite(*raw.X), finite(*raw.Y)
		if x > 1 || y > 1 {
			normalized = false
		}
		accepted = append(accepted, candidate{raw: raw, x: x, y: y})
	}
	result.Normalized = normalized && len(accepted) > 0

	for _, c := range accepted {
		x, y := c.x, c.y
		if result.Normalized {
			x, y = mapping.AIToPercent(x, y)
		}
		result.Points = append(result.Points, models.InjectionPoint{
			ID:     pointID(c.raw.ID),
			Muscle: strings.TrimSpace(*c.raw.Muscle),
			X:      clampPercent(x),
			Y:      clampPercent(y),
			Depth:  parseDepth(c.raw.Depth),
			Dosage: parseDosage(c.raw.Dosage),
			Notes:  deref(c.raw.Notes),
		})
	}
	return result
}

func missingField(raw *RawPoint) string {
	switch {
	case raw.Muscle == nil || strings.TrimSpace(*raw.Muscle) == "":
		return "missing muscle"
	case raw.X == nil:
		return "missing x coordinate"
	case raw.Y == nil:
		return "missing y coordinate"
	}
	return ""
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func pointID(id *string) string {
	if id != nil && strings.TrimSpace(*id) != "" {
		return *id
	}
	return uuid.New().String()
}

func parseDepth(depth *string) models.Depth {
	if depth == nil {
		return models.DepthSuperficial
	}
	switch strings.ToLower(strings.TrimSpace(*depth)) {
	case "deep", "profundo", "profunda":
		return models.DepthDeep
	default:
		return models.DepthSuperficial
	}
}

func parseDosage(dosage *float64) float64 {
	if dosage == nil {
		return 0
	}
	return math.Max(0, finite(*dosage))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
