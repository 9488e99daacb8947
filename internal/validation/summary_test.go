package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facemap/backend/internal/models"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   models.ValidationResult
		expected string
	}{
		{
			name:     "clean result",
			result:   models.ValidationResult{IsValid: true},
			expected: "Nenhum problema anatômico detectado",
		},
		{
			name: "errors only",
			result: models.ValidationResult{
				Errors: []models.ValidationError{{Type: models.ErrorDangerZone}, {Type: models.ErrorDangerZone}},
			},
			expected: "2 erro(s) crítico(s)",
		},
		{
			name: "warnings in category order",
			result: models.ValidationResult{
				IsValid: true,
				Warnings: []models.ValidationWarning{
					{Type: models.WarningDosage},
					{Type: models.WarningSymmetry},
					{Type: models.WarningSymmetry},
				},
			},
			expected: "3 alerta(s) (simetria: 2, dosagem: 1)",
		},
		{
			name: "errors and warnings",
			result: models.ValidationResult{
				Warnings: []models.ValidationWarning{{Type: models.WarningProximity}, {Type: models.WarningHierarchy}},
				Errors:   []models.ValidationError{{Type: models.ErrorDangerZone}},
			},
			expected: "1 erro(s) crítico(s); 2 alerta(s) (hierarquia: 1, proximidade: 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summary(tt.result))
		})
	}
}

func TestSummary_FromValidation(t *testing.T) {
	result := ValidateAnatomicalConsistency([]models.InjectionPoint{
		point("p1", "corrugator_tail", 30, 34, 4),
	})
	assert.Equal(t, "1 erro(s) crítico(s)", Summary(result))
}

func TestHierarchyBand(t *testing.T) {
	band, ok := HierarchyBand("frontalis")
	assert.True(t, ok)
	assert.Equal(t, 5.0, band.Lo)
	assert.Equal(t, 25.0, band.Hi)

	_, ok = HierarchyBand("unknown")
	assert.False(t, ok)
}
