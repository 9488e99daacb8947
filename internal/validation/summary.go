package validation

import (
	"fmt"
	"strings"

	"github.com/facemap/backend/internal/models"
)

var warningLabels = []struct {
	kind  models.WarningType
	label string
}{
	{models.WarningSymmetry, "simetria"},
	{models.WarningHierarchy, "hierarquia"},
	{models.WarningProximity, "proximidade"},
	{models.WarningDosage, "dosagem"},
}

// Summary renders a one-line digest of a result with counts by category.
func Summary(result models.ValidationResult) string {
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		return "Nenhum problema anatômico detectado"
	}

	var parts []string
	if n := len(result.Errors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d erro(s) crítico(s)", n))
	}
	if n := len(result.Warnings); n > 0 {
		counts := make(map[models.WarningType]int)
		for _, w := range result.Warnings {
			counts[w.Type]++
		}
		var breakdown []string
		for _, wl := range warningLabels {
			if c := counts[wl.kind]; c > 0 {
				breakdown = append(breakdown, fmt.Sprintf("%s: %d", wl.label, c))
			}
		}
		parts = append(parts, fmt.Sprintf("%d alerta(s) (%s)", n, strings.Join(breakdown, ", ")))
	}
	return strings.Join(parts, "; ")
}
