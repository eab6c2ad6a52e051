package factories

import (
	"fmt"
	"math/rand"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// cityPresets holds the zone templates per supported city. Weights are
// relative here; BuildZones renormalizes them to sum to 1.
var cityPresets = map[string][]models.Zone{
	"madrid": {
		{ID: "zone_center", Lat: 40.416, Lon: -3.703, Radius: 0.020, Weight: 0.30},
		{ID: "zone_north", Lat: 40.440, Lon: -3.690, Radius: 0.030, Weight: 0.25},
		{ID: "zone_south", Lat: 40.390, Lon: -3.700, Radius: 0.030, Weight: 0.20},
		{ID: "zone_east", Lat: 40.420, Lon: -3.660, Radius: 0.030, Weight: 0.15},
		{ID: "zone_west", Lat: 40.415, Lon: -3.740, Radius: 0.030, Weight: 0.10},
	},
	"barcelona": {
		{ID: "zone_eixample", Lat: 41.390, Lon: 2.165, Radius: 0.020, Weight: 0.30},
		{ID: "zone_gothic", Lat: 41.382, Lon: 2.177, Radius: 0.020, Weight: 0.25},
		{ID: "zone_gracia", Lat: 41.403, Lon: 2.156, Radius: 0.020, Weight: 0.20},
		{ID: "zone_born", Lat: 41.385, Lon: 2.183, Radius: 0.020, Weight: 0.15},
		{ID: "zone_sants", Lat: 41.375, Lon: 2.133, Radius: 0.030, Weight: 0.10},
	},
	"london": {
		{ID: "zone_soho", Lat: 51.513, Lon: -0.137, Radius: 0.020, Weight: 0.30},
		{ID: "zone_shoreditch", Lat: 51.524, Lon: -0.079, Radius: 0.020, Weight: 0.25},
		{ID: "zone_camden", Lat: 51.539, Lon: -0.143, Radius: 0.020, Weight: 0.20},
		{ID: "zone_southbank", Lat: 51.506, Lon: -0.115, Radius: 0.020, Weight: 0.15},
		{ID: "zone_kensington", Lat: 51.502, Lon: -0.192, Radius: 0.020, Weight: 0.10},
	},
}

// Cities lists the supported city preset names.
func Cities() []string {
	return []string{"madrid", "barcelona", "london"}
}

// BuildZones builds the zone catalog for a city, truncated to numZones and
// with demand weights renormalized to sum to 1. Unknown cities fall back to
// the madrid preset. An empty result is fatal: every downstream sampling
// stage depends on at least one zone.
func BuildZones(city string, numZones int) ([]models.Zone, error) {
	templates, ok := cityPresets[city]
	if !ok {
		templates = cityPresets["madrid"]
	}
	if numZones > 0 && numZones < len(templates) {
		templates = templates[:numZones]
	}
	if len(templates) == 0 || numZones <= 0 {
		return nil, fmt.Errorf("zone catalog for city %q is empty", city)
	}

	zones := make([]models.Zone, len(templates))
	copy(zones, templates)

	var total float64
	for _, z := range zones {
		total += z.Weight
	}
	for i := range zones {
		zones[i].Weight /= total
	}
	return zones, nil
}

// PickZoneWeighted draws a zone by its normalized demand weight.
func PickZoneWeighted(zones []models.Zone, rng *rand.Rand) models.Zone {
	r := rng.Float64()
	var cum float64
	for _, z := range zones {
		cum += z.Weight
		if r <= cum {
			return z
		}
	}
	return zones[len(zones)-1]
}
