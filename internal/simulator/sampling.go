package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Hourly demand weights, index = hour of day.
var weekdayDemand = [24]float64{
	0.10, 0.05, 0.05, 0.05, 0.05, 0.10,
	0.20, 0.40, 0.50, 0.50, 0.60, 0.80,
	1.50, 1.80, 1.20, 0.80, 0.70, 0.90,
	1.30, 2.00, 2.00, 1.50, 0.80, 0.30,
}

var weekendDemand = [24]float64{
	0.20, 0.10, 0.10, 0.10, 0.10, 0.10,
	0.20, 0.30, 0.50, 0.80, 1.00, 1.20,
	1.60, 1.80, 1.50, 1.20, 1.00, 1.10,
	1.40, 1.90, 1.90, 1.60, 1.00, 0.50,
}

// maxSampleAttempts bounds the rejection sampler. Exhaustion should not
// occur under sane parameters; when it does the sampler falls back to noon
// rather than looping forever. The fallback is deliberate policy.
const maxSampleAttempts = 10000

func demandMultiplier(hour int, weekend bool) float64 {
	if weekend {
		return weekendDemand[hour]
	}
	return weekdayDemand[hour]
}

// inSurgeWindow reports whether hour falls in the lunch or dinner peak.
func inSurgeWindow(hour int) bool {
	return (hour >= 12 && hour < 15) || (hour >= 19 && hour < 23)
}

// sampleOrderTime draws an order timestamp by rejection sampling against
// the hourly demand curve. A candidate hour is accepted when a uniform
// draw scaled by a safe upper bound falls under the candidate's weight.
func sampleOrderTime(rng *rand.Rand, baseDate time.Time, weekend bool, surgeFactor float64) time.Time {
	maxWeight := surgeFactor * 2.5
	for i := 0; i < maxSampleAttempts; i++ {
		hour := rng.Intn(24)
		minute := rng.Intn(60)
		second := rng.Intn(60)
		w := demandMultiplier(hour, weekend)
		if inSurgeWindow(hour) {
			w *= surgeFactor
		}
		if rng.Float64()*maxWeight < w {
			return baseDate.Add(time.Duration(hour)*time.Hour +
				time.Duration(minute)*time.Minute +
				time.Duration(second)*time.Second)
		}
	}
	return baseDate.Add(12 * time.Hour)
}

// samplePrepTime draws a prep time in seconds from the restaurant's normal
// distribution via Box-Muller, clamped to a 3-minute floor.
func samplePrepTime(rng *rand.Rand, r *models.Restaurant) int {
	u1 := math.Max(1e-10, rng.Float64())
	u2 := rng.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	value := r.PrepMean + r.PrepStd*z
	if value < 180 {
		return 180
	}
	return int(value)
}
