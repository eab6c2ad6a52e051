package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneDistance(t *testing.T) {
	a := Zone{Lat: 0, Lon: 0}
	b := Zone{Lat: 3, Lon: 4}
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Distance(a))
	assert.Zero(t, a.Distance(a))
}

func TestRandomCoordsStayWithinRadius(t *testing.T) {
	z := Zone{Lat: 40.416, Lon: -3.703, Radius: 0.02}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		lat, lon := z.RandomCoords(rng)
		assert.InDelta(t, z.Lat, lat, z.Radius+1e-6)
		assert.InDelta(t, z.Lon, lon, z.Radius+1e-6)
	}
}

func TestRestaurantIsOpenAt(t *testing.T) {
	r := &Restaurant{OpenRanges: []HourRange{{Start: 12, End: 15}, {Start: 19, End: 23}}}

	assert.False(t, r.IsOpenAt(11))
	assert.True(t, r.IsOpenAt(12))
	assert.True(t, r.IsOpenAt(14))
	assert.False(t, r.IsOpenAt(15))
	assert.True(t, r.IsOpenAt(22))
	assert.False(t, r.IsOpenAt(23))
}
