package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDemandMultiplier(t *testing.T) {
	assert.Equal(t, 1.80, demandMultiplier(13, false))
	assert.Equal(t, 2.00, demandMultiplier(19, false))
	assert.Equal(t, 0.05, demandMultiplier(3, false))
	assert.Equal(t, 0.10, demandMultiplier(3, true))
	assert.Equal(t, 1.80, demandMultiplier(13, true))
}

func TestInSurgeWindow(t *testing.T) {
	tests := []struct {
		hour int
		want bool
	}{
		{11, false}, {12, true}, {14, true}, {15, false},
		{18, false}, {19, true}, {22, true}, {23, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inSurgeWindow(tt.hour), "hour %d", tt.hour)
	}
}

func TestSampleOrderTimeWithinDay(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		ts := sampleOrderTime(rng, base, false, 1.8)
		assert.False(t, ts.Before(base))
		assert.True(t, ts.Before(base.Add(24*time.Hour)))
	}
}

func TestSampleOrderTimeFavorsPeaks(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	hours := make(map[int]int)
	const draws = 5000
	for i := 0; i < draws; i++ {
		hours[sampleOrderTime(rng, base, false, 1.8).Hour()]++
	}
	assert.Greater(t, hours[13], hours[3]*5, "lunch peak should dwarf the small hours")
	assert.Greater(t, hours[20], hours[16], "dinner surge should beat the afternoon")
}

// stuckSource always yields the same value, so the rejection sampler
// never accepts and must fall back.
type stuckSource struct{}

func (stuckSource) Int63() int64    { return 1 << 62 }
func (stuckSource) Seed(seed int64) {}

func TestSampleOrderTimeFallsBackToNoon(t *testing.T) {
	rng := rand.New(stuckSource{})
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	ts := sampleOrderTime(rng, base, false, 1.8)
	assert.Equal(t, base.Add(12*time.Hour), ts)
}

func TestSamplePrepTimeFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := &models.Restaurant{PrepMean: 200, PrepStd: 500}

	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, samplePrepTime(rng, r), 180)
	}
}

func TestSamplePrepTimeTracksMean(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := &models.Restaurant{PrepMean: 900, PrepStd: 50}

	var sum float64
	const draws = 2000
	for i := 0; i < draws; i++ {
		sum += float64(samplePrepTime(rng, r))
	}
	assert.InDelta(t, 900, sum/draws, 10)
}
