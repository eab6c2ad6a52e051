package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/google/uuid"
	"github.com/lucsky/cuid"
)

// newUUID draws a reproducible v4 UUID from the run's rng.
func newUUID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read cannot fail
		panic(err)
	}
	return id.String()
}

// newSessionID draws a reproducible cuid from the run's rng.
func newSessionID(rng *rand.Rand) string {
	id, err := cuid.NewCrypto(rng)
	if err != nil {
		panic(err)
	}
	return id
}

// randInt returns a uniform integer in [min, max], both ends inclusive.
func randInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// randInt64 returns a uniform int64 in [min, max], both ends inclusive.
func randInt64(rng *rand.Rand, min, max int64) int64 {
	return min + rng.Int63n(max-min+1)
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func epochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// pickAppVersion tags ~5% of emitters with the beta client version.
func pickAppVersion(rng *rand.Rand) string {
	if rng.Float64() < 0.05 {
		return models.AppVersionBeta
	}
	return models.AppVersionStable
}
