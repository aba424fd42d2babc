package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistancePointLine(t *testing.T) {
	tests := []struct {
		name        string
		a, b, p     Point
		wantDist    float64
		wantClosest Point
	}{
		{"perpendicular foot", Pt(0, 0), Pt(10, 0), Pt(5, 3), 3, Pt(5, 0)},
		{"before start", Pt(0, 0), Pt(10, 0), Pt(-3, 4), 5, Pt(0, 0)},
		{"past end", Pt(0, 0), Pt(10, 0), Pt(13, 4), 5, Pt(10, 0)},
		{"degenerate segment", Pt(2, 2), Pt(2, 2), Pt(5, 6), 5, Pt(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, closest := DistancePointLine(tt.a, tt.b, tt.p)
			assert.InDelta(t, tt.wantDist, d, 1e-9)
			assert.InDelta(t, tt.wantClosest.X, closest.X, 1e-9)
			assert.InDelta(t, tt.wantClosest.Y, closest.Y, 1e-9)
		})
	}
}

func TestDistanceRectanglePoint(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 20}

	assert.Equal(t, -2.0, DistanceRectanglePoint(r, Pt(2, 10)), "inside, nearest to left border")
	assert.Equal(t, 0.0, DistanceRectanglePoint(r, Pt(0, 5)), "on border")
	assert.Equal(t, 5.0, DistanceRectanglePoint(r, Pt(15, 10)), "outside to the right")
	assert.Equal(t, 5.0, DistanceRectanglePoint(r, Pt(13, 24)), "outside past the corner")
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, r.Intersects(RectAround(Pt(12, 5), 3)))
	assert.False(t, r.Intersects(RectAround(Pt(20, 5), 3)))
	assert.True(t, r.Intersects(Rect{X: 10, Y: 10, Width: 1, Height: 1}), "touching corners")
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Pt(5, 1), Pt(-2, 7), Pt(3, 3))
	assert.Equal(t, Rect{X: -2, Y: 1, Width: 7, Height: 6}, r)
	assert.Equal(t, Rect{}, RectFromPoints())
}

func TestMatrixInverse(t *testing.T) {
	m := Translation(30, -4).Multiply(Rotation(math.Pi / 6)).Multiply(Scaling(2, 3))

	inv, err := m.Inverse()
	require.NoError(t, err)

	p := Pt(7, 11)
	back := Apply(inv, Apply(m, p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestMatrixInverseSingular(t *testing.T) {
	_, err := Scaling(0, 1).Inverse()
	require.ErrorIs(t, err, ErrSingular)
}

func TestMatrixTranslate(t *testing.T) {
	m := Scaling(2, 2).Translate(5, 5)
	x, y := m.TransformPoint(1, 1)
	assert.Equal(t, 7.0, x)
	assert.Equal(t, 7.0, y)

	dx, dy := m.TransformDistance(1, 1)
	assert.Equal(t, 2.0, dx)
	assert.Equal(t, 2.0, dy)
}
