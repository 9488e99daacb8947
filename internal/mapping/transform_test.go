package mapping

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/models"
)

var representativeMuscles = map[anatomy.Zone][]string{
	anatomy.ZoneFrontalis:   {"frontalis"},
	anatomy.ZoneGlabella:    {"procerus"},
	anatomy.ZonePeriorbital: {"orbicularis_oculi_left", "orbicularis_oculi_right"},
	anatomy.ZoneNasal:       {"nasalis"},
	anatomy.ZonePerioral:    {"orbicularis_oris"},
	anatomy.ZoneMentalis:    {"mentalis"},
	anatomy.ZoneMasseter:    {"masseter_left", "masseter_right"},
	anatomy.ZoneUnknown:     {"xyz123"},
}

func TestPercentTo3D_StaysInModelBounds(t *testing.T) {
	lo, hi := anatomy.ModelBounds()
	for _, muscles := range representativeMuscles {
		for _, muscle := range muscles {
			for x := 0.0; x <= 100; x += 5 {
				for y := 0.0; y <= 100; y += 5 {
					v := PercentTo3D(x, y, muscle)
					require.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z), "%s (%v,%v)", muscle, x, y)
					require.GreaterOrEqual(t, v.Z, 0.5)
					require.LessOrEqual(t, v.Z, 2.0)
					require.GreaterOrEqual(t, v.X, lo.X)
					require.LessOrEqual(t, v.X, hi.X)
					require.GreaterOrEqual(t, v.Y, lo.Y)
					require.LessOrEqual(t, v.Y, hi.Y)
				}
			}
		}
	}
}

func TestPercentTo3D_RoundTrip(t *testing.T) {
	for zone, muscles := range representativeMuscles {
		for _, muscle := range muscles {
			t.Run(muscle, func(t *testing.T) {
				side := anatomy.SideLeft
				if strings.HasSuffix(muscle, "_right") {
					side = anatomy.SideRight
				}
				b := anatomy.BoundaryForSide(zone, side)

				for fx := 0.1; fx <= 0.9; fx += 0.2 {
					for fy := 0.1; fy <= 0.9; fy += 0.2 {
						x := (b.Bounds.X.Lo + fx*b.Bounds.X.Length()) * 100
						y := (b.Bounds.Y.Lo + fy*b.Bounds.Y.Length()) * 100

						gotX, gotY := ThreeDToPercent(PercentTo3D(x, y, muscle))
						assert.InDelta(t, x, gotX, 2, "x at (%v,%v)", x, y)
						assert.InDelta(t, y, gotY, 2, "y at (%v,%v)", x, y)
					}
				}
			})
		}
	}
}

func TestPercentTo3D_BilateralMirroring(t *testing.T) {
	left := PercentTo3D(30, 40, "orbicularis_oculi_left")
	right := PercentTo3D(70, 40, "orbicularis_oculi_right")

	assert.InDelta(t, -left.X, right.X, 1e-9)
	assert.InDelta(t, left.Y, right.Y, 1e-9)
	assert.InDelta(t, left.Z, right.Z, 1e-9)
	assert.Less(t, left.X, 0.0)

	leftM := PercentTo3D(20, 60, "masseter_left")
	rightM := PercentTo3D(80, 60, "masseter_right")
	assert.InDelta(t, -leftM.X, rightM.X, 1e-9)
}

func TestPercentTo3D_ZoneCenterHitsAnchor(t *testing.T) {
	v := PercentTo3D(50, 35, "procerus")
	a := anatomy.AnchorFor(anatomy.ZoneGlabella)
	assert.InDelta(t, a.Ref.X, v.X, 1e-9)
	assert.InDelta(t, a.Ref.Y, v.Y, 1e-9)

	expectedZ := a.Ref.Z - math.Pow(math.Abs(a.Ref.Y-anatomy.ModelCenterY), 1.5)*a.CurvatureY + a.SurfaceOffset
	assert.InDelta(t, expectedZ, v.Z, 1e-9)
}

func TestPercentTo3D_PullsOutOfZonePointsToEdge(t *testing.T) {
	a := anatomy.AnchorFor(anatomy.ZoneFrontalis)

	v := PercentTo3D(5, 15, "frontalis")
	assert.InDelta(t, a.Ref.X-a.Width/2, v.X, 1e-9)

	v = PercentTo3D(50, 90, "frontalis")
	assert.InDelta(t, a.Ref.Y-a.Height/2, v.Y, 1e-9)
}

func TestPercentTo3D_ClampsInput(t *testing.T) {
	assert.Equal(t, PercentTo3D(100, 0, "frontalis"), PercentTo3D(150, -20, "frontalis"))

	v := PercentTo3D(math.NaN(), math.NaN(), "procerus")
	assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z))
}

func TestPercentTo3D_UnknownMuscleUsesFaceWideAnchor(t *testing.T) {
	v := PercentTo3D(50, 50, "xyz123")
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, anatomy.AnchorFor(anatomy.ZoneUnknown).Ref.Y, v.Y, 1e-9)
}

func TestThreeDToPercent_ClampsOutput(t *testing.T) {
	x, y := ThreeDToPercent(r3.Vector{X: 5, Y: 5, Z: 1})
	assert.True(t, x >= 0 && x <= 100)
	assert.True(t, y >= 0 && y <= 100)

	x, y = ThreeDToPercent(r3.Vector{X: math.NaN(), Y: math.NaN()})
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestAIPercentConversions(t *testing.T) {
	x, y := AIToPercent(0.3, 0.45)
	assert.InDelta(t, 30, x, 1e-9)
	assert.InDelta(t, 45, y, 1e-9)

	x, y = PercentToAI(30, 45)
	assert.InDelta(t, 0.3, x, 1e-9)
	assert.InDelta(t, 0.45, y, 1e-9)

	x, y = AIToPercent(1.4, -0.2)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 0.0, y)

	x, y = PercentToAI(-5, 250)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1.0, y)
}

func TestMapPoints(t *testing.T) {
	points := []models.InjectionPoint{
		{ID: "a", Muscle: "corrugator_left", X: 45, Y: 34},
		{ID: "b", Muscle: "unlisted", X: 50, Y: 50},
	}

	mapped := MapPoints(points)
	require.Len(t, mapped, 2)
	assert.Equal(t, "a", mapped[0].ID)
	assert.Equal(t, "glabella", mapped[0].Zone)
	assert.Equal(t, "unknown", mapped[1].Zone)

	v := PercentTo3D(45, 34, "corrugator_left")
	assert.Equal(t, models.Position3D{v.X, v.Y, v.Z}, mapped[0].Position)

	assert.Empty(t, MapPoints(nil))
}
