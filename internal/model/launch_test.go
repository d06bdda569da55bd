package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchAngles_Spread(t *testing.T) {
	l := Launch{AngleDegrees: 50, Count: 10, Spread: 30}
	angles := l.Angles(nil)
	require.Len(t, angles, 10)
	assert.InDelta(t, 35.0, angles[0], 1e-9)
	assert.InDelta(t, 65.0, angles[9], 1e-9)
	for i := 1; i < len(angles); i++ {
		assert.InDelta(t, 30.0/9.0, angles[i]-angles[i-1], 1e-9)
	}
}

func TestLaunchAngles_SingleRandomized(t *testing.T) {
	l := Launch{AngleDegrees: 45, Count: 1, Spread: 30}
	assert.Equal(t, []float64{30}, l.Angles(func() float64 { return 0 }))
	assert.Equal(t, []float64{45}, l.Angles(func() float64 { return 0.5 }))
	assert.Equal(t, []float64{45}, l.Angles(nil))
}

func TestLaunchAngles_Plain(t *testing.T) {
	l := Launch{AngleDegrees: 130}
	assert.Equal(t, []float64{130}, l.Angles(nil))
}
