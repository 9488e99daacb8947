package payload

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facemap/backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestParse_BareArray(t *testing.T) {
	data := []byte(`[
		{"id": "p1", "muscle": "procerus", "x": 50, "y": 35, "dosage": 4, "depth": "deep", "notes": "central"},
		{"id": "p2", "muscle": "corrugator_left", "x": 42, "y": 33, "dosage": 4}
	]`)

	result, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, result.Points, 2)
	assert.Empty(t, result.Rejected)
	assert.False(t, result.Normalized)

	assert.Equal(t, models.InjectionPoint{
		ID: "p1", Muscle: "procerus", X: 50, Y: 35, Depth: models.DepthDeep, Dosage: 4, Notes: "central",
	}, result.Points[0])
	assert.Equal(t, models.DepthSuperficial, result.Points[1].Depth)
}

func TestParse_Envelopes(t *testing.T) {
	for _, key := range []string{"injectionPoints", "injection_points", "points"} {
		t.Run(key, func(t *testing.T) {
			data := []byte(`{"` + key + `": [{"id": "a", "muscle": "mentalis", "x": 50, "y": 85}], "confidence": 0.9}`)

			result, err := Parse(data)
			require.NoError(t, err)
			require.Len(t, result.Points, 1)
			assert.Equal(t, "mentalis", result.Points[0].Muscle)
		})
	}
}

func TestParse_InvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"empty body", "   ", ErrEmptyPayload},
		{"empty array", "[]", ErrEmptyPayload},
		{"not json", "points: 1", ErrInvalidPayload},
		{"scalar", "42", ErrInvalidPayload},
		{"object without envelope", `{"foo": []}`, ErrInvalidPayload},
		{"envelope not an array", `{"points": {"x": 1}}`, ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse([]byte(tt.data))
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse_RejectsIndividualEntries(t *testing.T) {
	data := []byte(`[
		{"id": "ok", "muscle": "frontalis", "x": 50, "y": 15},
		{"id": "no-muscle", "x": 50, "y": 15},
		{"id": "bad-x", "muscle": "frontalis", "x": "fifty", "y": 15},
		{"id": "no-y", "muscle": "frontalis", "x": 50},
		{"id": "blank", "muscle": "   ", "x": 50, "y": 15}
	]`)

	result, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, result.Points, 1)
	assert.Equal(t, "ok", result.Points[0].ID)

	require.Len(t, result.Rejected, 4)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Equal(t, "missing muscle", result.Rejected[0].Reason)
	assert.Equal(t, 2, result.Rejected[1].Index)
	assert.Contains(t, result.Rejected[1].Reason, "malformed entry")
	assert.Equal(t, 3, result.Rejected[2].Index)
	assert.Equal(t, "missing y coordinate", result.Rejected[2].Reason)
	assert.Equal(t, 4, result.Rejected[3].Index)
}

func TestNormalize_ScalesNormalizedBatch(t *testing.T) {
	result := Normalize([]*RawPoint{
		{ID: ptr("a"), Muscle: ptr("procerus"), X: ptr(0.5), Y: ptr(0.35)},
		{ID: ptr("b"), Muscle: ptr("mentalis"), X: ptr(0.5), Y: ptr(0.85)},
	})

	assert.True(t, result.Normalized)
	require.Len(t, result.Points, 2)
	assert.Equal(t, 50.0, result.Points[0].X)
	assert.InDelta(t, 35.0, result.Points[0].Y, 1e-9)
	assert.InDelta(t, 85.0, result.Points[1].Y, 1e-9)
}

func TestNormalize_MixedBatchStaysInPercent(t *testing.T) {
	result := Normalize([]*RawPoint{
		{ID: ptr("a"), Muscle: ptr("procerus"), X: ptr(0.5), Y: ptr(0.5)},
		{ID: ptr("b"), Muscle: ptr("mentalis"), X: ptr(50.0), Y: ptr(85.0)},
	})

	assert.False(t, result.Normalized)
	assert.Equal(t, 0.5, result.Points[0].X)
	assert.Equal(t, 50.0, result.Points[1].X)
}

func TestNormalize_Sanitizes(t *testing.T) {
	result := Normalize([]*RawPoint{
		nil,
		{Muscle: ptr("  masseter_left  "), X: ptr(-10.0), Y: ptr(140.0), Dosage: ptr(-3.0), Depth: ptr("Profundo")},
	})

	require.Len(t, result.Points, 1)
	p := result.Points[0]
	assert.Equal(t, "masseter_left", p.Muscle)
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 100.0, p.Y)
	assert.Equal(t, 0.0, p.Dosage)
	assert.Equal(t, models.DepthDeep, p.Depth)

	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)
	assert.Empty(t, result.Rejected)
}

func TestNormalize_NothingAccepted(t *testing.T) {
	result := Normalize([]*RawPoint{{Muscle: ptr("frontalis")}})

	assert.False(t, result.Normalized)
	assert.Empty(t, result.Points)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "missing x coordinate", result.Rejected[0].Reason)
}
