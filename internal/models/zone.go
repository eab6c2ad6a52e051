package models

import (
	"math"
	"math/rand"
)

// Zone is a geographic demand region. Immutable after construction; weights
// across a zone set are normalized to sum to 1.
type Zone struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"` // jitter radius in degrees
	Weight float64 `json:"weight"`
}

// Distance returns the Euclidean distance between two zone centers.
func (z Zone) Distance(other Zone) float64 {
	return math.Sqrt((z.Lat-other.Lat)*(z.Lat-other.Lat) + (z.Lon-other.Lon)*(z.Lon-other.Lon))
}

// RandomCoords samples a point near the zone center, rounded to 6 decimal
// places so serialized coordinates are stable.
func (z Zone) RandomCoords(rng *rand.Rand) (float64, float64) {
	lat := z.Lat + (rng.Float64()*2-1)*z.Radius
	lon := z.Lon + (rng.Float64()*2-1)*z.Radius
	return round6(lat), round6(lon)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
