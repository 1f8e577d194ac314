package gridpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const microUnit = 0.025

func TestFromMetersRejectsUnknownSnapMode(t *testing.T) {
	_, err := FromMeters(1, 2, 3, microUnit, SnapMode(99))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSnapMode)
}

func TestFromMetersSnapsToMultiple(t *testing.T) {
	for _, mode := range []SnapMode{SnapMicro, SnapMeso, SnapMacro} {
		pos, err := FromMeters(2.53, -1.07, 0.4, microUnit, mode)
		require.NoError(t, err)

		mult, _ := mode.multiple()
		x, y, z := pos.ToMeters(microUnit)
		for _, v := range []float64{x, y, z} {
			units := v / microUnit
			assert.InDelta(t, 0, mod(units, float64(mult)), 1e-6)
		}
	}
}

func mod(a, m float64) float64 {
	r := a - m*float64(int64(a/m))
	if r < 0 {
		r += m
	}
	if r > m/2 {
		r -= m
	}
	return r
}

func TestMetersToUnitsRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 40, -40, 1000}
	for _, u := range cases {
		m := UnitsToMeters(u, microUnit)
		assert.Equal(t, u, MetersToUnits(m, microUnit))
	}
}

func TestMetersToUnitsKnownValues(t *testing.T) {
	assert.Equal(t, int64(40), MetersToUnits(1.0, microUnit))
	assert.Equal(t, int64(10), MetersToUnits(0.25, microUnit))
	assert.Equal(t, int64(1), MetersToUnits(0.025, microUnit))
	assert.InDelta(t, 1.0, UnitsToMeters(40, microUnit), 1e-12)
}

func TestArithmeticIsClosed(t *testing.T) {
	a := GridPos{1, 2, 3}
	b := GridPos{4, -1, 2}
	assert.Equal(t, GridPos{5, 1, 5}, a.Add(b))
	assert.Equal(t, GridPos{-3, 3, 1}, a.Sub(b))
	assert.Equal(t, GridPos{2, 4, 6}, a.Scale(2))
}

func TestDistanceTo(t *testing.T) {
	a := GridPos{0, 0, 0}
	b := GridPos{40, 0, 0} // 1m at micro unit
	assert.InDelta(t, 1.0, a.DistanceTo(b, microUnit), 1e-9)
}

func TestHalfAwayFromZeroRounding(t *testing.T) {
	assert.Equal(t, 1.0, roundHalfAwayFromZero(0.5))
	assert.Equal(t, -1.0, roundHalfAwayFromZero(-0.5))
	assert.Equal(t, 2.0, roundHalfAwayFromZero(1.5))
	assert.Equal(t, -2.0, roundHalfAwayFromZero(-1.5))
}

func TestSnapLegacyConvenience(t *testing.T) {
	v, err := Snap(1.23, microUnit, SnapMeso)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, v, 1e-9)

	v, err = Snap(1.23, microUnit, SnapMacro)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}
