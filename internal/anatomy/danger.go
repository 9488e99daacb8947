package anatomy

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// DangerZone is a percentage-space region where toxin diffusion carries an
// elevated clinical risk. Bounds are inclusive.
type DangerZone struct {
	Name   string
	Reason string
	Bounds r2.Rect
}

// Contains reports whether a percentage-space point lies in the zone.
func (d DangerZone) Contains(x, y float64) bool {
	return d.Bounds.ContainsPoint(r2.Point{X: x, Y: y})
}

func dangerZone(name, reason string, xMin, xMax, yMin, yMax float64) DangerZone {
	return DangerZone{
		Name:   name,
		Reason: reason,
		Bounds: r2.Rect{X: r1.Interval{Lo: xMin, Hi: xMax}, Y: r1.Interval{Lo: yMin, Hi: yMax}},
	}
}

const (
	reasonPtosis     = "Risco de ptose palpebral por difusão para o levantador da pálpebra"
	reasonSmile      = "Risco de assimetria do sorriso por difusão para o zigomático maior"
	reasonCommissure = "Risco de queda da comissura labial e incompetência oral"
)

var dangerZones = []DangerZone{
	dangerZone("Margem Orbital Esquerda", reasonPtosis, 28, 38, 32, 38),
	dangerZone("Margem Orbital Direita", reasonPtosis, 62, 72, 32, 38),
	dangerZone("Zigomático Maior Esquerdo", reasonSmile, 20, 28, 50, 56),
	dangerZone("Zigomático Maior Direito", reasonSmile, 72, 80, 50, 56),
	dangerZone("Comissura Labial Esquerda", reasonCommissure, 33, 38, 64, 70),
	dangerZone("Comissura Labial Direita", reasonCommissure, 62, 67, 64, 70),
}

// DangerZones returns a copy of the danger-zone table.
func DangerZones() []DangerZone {
	out := make([]DangerZone, len(dangerZones))
	copy(out, dangerZones)
	return out
}
