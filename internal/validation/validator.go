// Package validation checks a set of injection points against anatomical
// safety rules: bilateral symmetry, vertical zone hierarchy, point proximity
// and danger zones. Only danger-zone hits are blocking errors; everything
// else is an advisory warning with a severity.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/golang/geo/r2"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/models"
)

const (
	midline = 50.0

	symmetryXTolerance     = 10.0
	symmetryXHigh          = 20.0
	symmetryYTolerance     = 5.0
	symmetryYHigh          = 10.0
	dosageTolerance        = 2.0
	dosageHigh             = 5.0
	proximityThreshold     = 5.0
	proximityHighThreshold = 3.0
)

var lateralityToken = regexp.MustCompile(`(?i)esquerdo|esquerda|esq\.|left|dir\.|direito|direita|right`)

// bilateralKey folds case and accents, then strips laterality words so left
// and right instances of a muscle share a key.
func bilateralKey(muscle string) string {
	stripped := lateralityToken.ReplaceAllString(anatomy.Fold(muscle), "")
	return strings.Trim(stripped, " _-.")
}

// ValidateAnatomicalConsistency runs every check over the full point set and
// concatenates the findings. Empty input is valid with no findings.
func ValidateAnatomicalConsistency(points []models.InjectionPoint) models.ValidationResult {
	result := models.ValidationResult{
		Warnings: []models.ValidationWarning{},
		Errors:   []models.ValidationError{},
	}

	result.Warnings = append(result.Warnings, checkSymmetry(points)...)
	result.Warnings = append(result.Warnings, checkHierarchy(points)...)
	result.Warnings = append(result.Warnings, checkProximity(points)...)
	result.Errors = append(result.Errors, checkDangerZones(points)...)

	result.IsValid = len(result.Errors) == 0
	return result
}

func checkSymmetry(points []models.InjectionPoint) []models.ValidationWarning {
	left := make(map[string]models.InjectionPoint)
	var right []models.InjectionPoint
	for _, p := range points {
		switch {
		case p.X < midline:
			left[bilateralKey(p.Muscle)] = p
		case p.X > midline:
			right = append(right, p)
		}
	}

	var warnings []models.ValidationWarning
	for _, r := range right {
		l, ok := left[bilateralKey(r.Muscle)]
		if !ok {
			continue
		}
		ids := []string{l.ID, r.ID}

		if dev := math.Abs(l.X + r.X - 100); dev > symmetryXTolerance {
			severity := models.SeverityMedium
			if dev >= symmetryXHigh {
				severity = models.SeverityHigh
			}
			warnings = append(warnings, models.ValidationWarning{
				Type:           models.WarningSymmetry,
				Message:        fmt.Sprintf("Assimetria horizontal em %s: desvio de %.1f%% em relação à linha média", anatomy.LabelForMuscle(r.Muscle), dev),
				AffectedPoints: ids,
				Severity:       severity,
			})
		}

		if dev := math.Abs(l.Y - r.Y); dev > symmetryYTolerance {
			severity := models.SeverityMedium
			if dev > symmetryYHigh {
				severity = models.SeverityHigh
			}
			warnings = append(warnings, models.ValidationWarning{
				Type:           models.WarningSymmetry,
				Message:        fmt.Sprintf("Assimetria vertical em %s: diferença de altura de %.1f%%", anatomy.LabelForMuscle(r.Muscle), dev),
				AffectedPoints: ids,
				Severity:       severity,
			})
		}

		if dev := math.Abs(l.Dosage - r.Dosage); dev > dosageTolerance {
			severity := models.SeverityLow
			if dev > dosageHigh {
				severity = models.SeverityHigh
			}
			warnings = append(warnings, models.ValidationWarning{
				Type:           models.WarningDosage,
				Message:        fmt.Sprintf("Dosagem assimétrica em %s: %.1fU vs %.1fU", anatomy.LabelForMuscle(r.Muscle), l.Dosage, r.Dosage),
				AffectedPoints: ids,
				Severity:       severity,
			})
		}
	}
	return warnings
}

func checkHierarchy(points []models.InjectionPoint) []models.ValidationWarning {
	var warnings []models.ValidationWarning
	for _, p := range points {
		zone := anatomy.ClassifyMuscle(p.Muscle)
		band, ok := HierarchyBand(zone)
		if !ok || band.Contains(p.Y) {
			continue
		}
		position := "acima"
		if p.Y > band.Hi {
			position = "abaixo"
		}
		warnings = append(warnings, models.ValidationWarning{
			Type: models.WarningHierarchy,
			Message: fmt.Sprintf("%s (y=%.1f) está %s da faixa esperada para a zona %s (%.0f-%.0f)",
				anatomy.LabelForMuscle(p.Muscle), p.Y, position, zone, band.Lo, band.Hi),
			AffectedPoints: []string{p.ID},
			Severity:       models.SeverityMedium,
		})
	}
	return warnings
}

func checkProximity(points []models.InjectionPoint) []models.ValidationWarning {
	var warnings []models.ValidationWarning
	for i := 0; i < len(points); i++ {
		a := r2.Point{X: points[i].X, Y: points[i].Y}
		for j := i + 1; j < len(points); j++ {
			distance := a.Sub(r2.Point{X: points[j].X, Y: points[j].Y}).Norm()
			if distance >= proximityThreshold {
				continue
			}
			severity := models.SeverityMedium
			if distance < proximityHighThreshold {
				severity = models.SeverityHigh
			}
			warnings = append(warnings, models.ValidationWarning{
				Type:           models.WarningProximity,
				Message:        fmt.Sprintf("Pontos muito próximos (%.1f%%): risco de sobreposição de difusão", distance),
				AffectedPoints: []string{points[i].ID, points[j].ID},
				Severity:       severity,
			})
		}
	}
	return warnings
}

func checkDangerZones(points []models.InjectionPoint) []models.ValidationError {
	zones := anatomy.DangerZones()
	var errs []models.ValidationError
	for _, p := range points {
		for _, dz := range zones {
			if !dz.Contains(p.X, p.Y) {
				continue
			}
			errs = append(errs, models.ValidationError{
				Type:           models.ErrorDangerZone,
				Message:        fmt.Sprintf("Ponto em zona de perigo: %s. %s", dz.Name, dz.Reason),
				AffectedPoints: []string{p.ID},
			})
		}
	}
	return errs
}
