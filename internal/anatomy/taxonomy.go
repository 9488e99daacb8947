package anatomy

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type zoneRule struct {
	zone   Zone
	tokens []string
}

// Rules are evaluated in order and the first token hit wins. Upstream AI
// vocabulary mixes Portuguese labels and English slugs, so both appear.
var zoneRules = foldRules([]zoneRule{
	{ZoneGlabella, []string{"procerus", "prócero", "procero", "corrugador", "corrugator", "glabela", "glabella"}},
	{ZoneFrontalis, []string{"frontalis", "frontal", "testa", "forehead"}},
	{ZonePeriorbital, []string{"oculi", "orbicular dos olhos", "olhos", "olho", "periorbital", "pés de galinha", "pes de galinha", "crow"}},
	{ZoneNasal, []string{"nasalis", "nasal", "nariz", "bunny"}},
	{ZonePerioral, []string{"oris", "orbicular da boca", "boca", "labii", "labial", "lábio", "labio", "anguli", "depressor do ângulo", "perioral", "risorius"}},
	{ZoneMentalis, []string{"mentalis", "mentual", "mentoniano", "queixo", "chin"}},
	{ZoneMasseter, []string{"masseter", "masséter", "bruxismo"}},
})

var muscleLabels = map[string]string{
	"procerus":              "Prócero",
	"corrugator":            "Corrugador",
	"corrugator_tail":       "Corrugador (cauda)",
	"frontalis":             "Frontal",
	"orbicularis_oculi":     "Orbicular dos Olhos",
	"nasalis":               "Nasal",
	"orbicularis_oris":      "Orbicular da Boca",
	"depressor_anguli_oris": "Depressor do Ângulo da Boca",
	"mentalis":              "Mentual",
	"masseter":              "Masseter",
}

var lateralitySuffix = regexp.MustCompile(`(?i)_(left|right|esq|dir)$`)

func foldRules(rules []zoneRule) []zoneRule {
	out := make([]zoneRule, len(rules))
	for i, r := range rules {
		tokens := make([]string, len(r.tokens))
		for j, t := range r.tokens {
			tokens[j] = Fold(t)
		}
		out[i] = zoneRule{zone: r.zone, tokens: tokens}
	}
	return out
}

// Fold composes accents and applies Unicode case folding so that
// "PRÓCERO" and a decomposed "prócero" compare equal.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// ClassifyMuscle maps a free-text muscle identifier to its zone. It never
// fails: identifiers that match no rule classify as ZoneUnknown.
func ClassifyMuscle(muscle string) Zone {
	key := Fold(muscle)
	for _, rule := range zoneRules {
		for _, token := range rule.tokens {
			if strings.Contains(key, token) {
				return rule.zone
			}
		}
	}
	return ZoneUnknown
}

// StripLateralitySuffix removes a trailing _left, _right, _esq or _dir.
func StripLateralitySuffix(muscle string) string {
	return lateralitySuffix.ReplaceAllString(muscle, "")
}

// LabelForMuscle returns the display label for a muscle slug, ignoring its
// laterality suffix. Unlabelled identifiers are returned unchanged.
func LabelForMuscle(muscle string) string {
	base := Fold(StripLateralitySuffix(strings.TrimSpace(muscle)))
	if label, ok := muscleLabels[base]; ok {
		return label
	}
	return muscle
}
