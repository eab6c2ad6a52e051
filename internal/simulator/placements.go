package simulator

import (
	"sort"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// peakHours are the hours fraud clusters and zone surges concentrate in.
var peakHours = []int{12, 13, 19, 20, 21}

// generatePlacements samples the base order placements against the demand
// curve. Restaurants are drawn uniformly from those open at the sampled
// hour, falling back to the full pool when nothing is open so generation
// never stalls.
func (s *Simulator) generatePlacements() []*models.Placement {
	placements := make([]*models.Placement, 0, s.Config.NumOrders)
	for i := 0; i < s.Config.NumOrders; i++ {
		placedAt := sampleOrderTime(s.rng, s.baseDate, s.isWeekend, s.Config.SurgeFactor)
		restaurant := s.pickOpenRestaurant(placedAt.Hour())
		customerID := s.customers[s.rng.Intn(len(s.customers))]
		value, promo := s.sampleOrderValue()

		placements = append(placements, &models.Placement{
			PlacedAt:   placedAt,
			CustomerID: customerID,
			Restaurant: restaurant,
			OrderValue: value,
			Promo:      promo,
		})
	}
	return placements
}

// addFraudClusters appends bursts of forced cancellations from a single
// customer inside a ~15-minute window at a peak hour.
func (s *Simulator) addFraudClusters(placements []*models.Placement) []*models.Placement {
	numClusters := int(float64(s.Config.NumOrders)*s.Config.FraudClusterProb + 0.5)
	for c := 0; c < numClusters; c++ {
		customerID := s.customers[s.rng.Intn(len(s.customers))]
		peakHour := peakHours[s.rng.Intn(len(peakHours))]
		baseMinute := randInt(s.rng, 0, 45)
		clusterSize := randInt(s.rng, 3, 5)

		for j := 0; j < clusterSize; j++ {
			restaurant := s.pickOpenRestaurant(peakHour)
			placements = append(placements, &models.Placement{
				PlacedAt:    s.windowTime(peakHour, baseMinute),
				CustomerID:  customerID,
				Restaurant:  restaurant,
				OrderValue:  round2(uniform(s.rng, 8.0, 65.0)),
				ForceCancel: true,
				IsFraud:     true,
			})
		}
		s.stats.FraudClustersInjected++
	}
	return placements
}

// addZoneSurge appends a burst of ordinary orders concentrated in one zone
// and a 15-minute window. Burst size is at least 10 and at least a tenth
// of the configured order count.
func (s *Simulator) addZoneSurge(placements []*models.Placement) []*models.Placement {
	zone := s.zones[s.rng.Intn(len(s.zones))]
	peakHour := peakHours[s.rng.Intn(len(peakHours))]
	baseMinute := randInt(s.rng, 0, 45)
	numSurge := s.Config.NumOrders / 10
	if numSurge < 10 {
		numSurge = 10
	}

	zoneRestaurants := make([]*models.Restaurant, 0)
	for _, r := range s.restaurants {
		if r.ZoneID == zone.ID {
			zoneRestaurants = append(zoneRestaurants, r)
		}
	}
	if len(zoneRestaurants) == 0 {
		zoneRestaurants = s.restaurants
	}

	s.stats.ZoneSurgeZone = zone.ID
	s.stats.ZoneSurgeHour = peakHour
	s.stats.ZoneSurgeMinute = baseMinute
	s.stats.ZoneSurgeOrders = numSurge

	for i := 0; i < numSurge; i++ {
		customerID := s.customers[s.rng.Intn(len(s.customers))]
		restaurant := zoneRestaurants[s.rng.Intn(len(zoneRestaurants))]
		value, promo := s.sampleOrderValue()
		placements = append(placements, &models.Placement{
			PlacedAt:   s.windowTime(peakHour, baseMinute),
			CustomerID: customerID,
			Restaurant: restaurant,
			OrderValue: value,
			Promo:      promo,
			IsSurge:    true,
		})
	}
	return placements
}

// sortPlacements orders placements chronologically. The sort is essential:
// courier availability decisions must see a causally correct history.
func sortPlacements(placements []*models.Placement) {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].PlacedAt.Before(placements[j].PlacedAt)
	})
}

func (s *Simulator) sampleOrderValue() (float64, bool) {
	value := round2(uniform(s.rng, 8.0, 65.0))
	promo := s.rng.Float64() < s.Config.PromoProb
	if promo {
		value = round2(value * uniform(s.rng, 0.7, 0.9))
	}
	return value, promo
}

func (s *Simulator) pickOpenRestaurant(hour int) *models.Restaurant {
	open := s.openRestaurants(hour)
	return open[s.rng.Intn(len(open))]
}

func (s *Simulator) openRestaurants(hour int) []*models.Restaurant {
	open := make([]*models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if r.IsOpenAt(hour) {
			open = append(open, r)
		}
	}
	if len(open) == 0 {
		return s.restaurants
	}
	return open
}

// windowTime places a timestamp inside the 15-minute injection window that
// starts at baseMinute of the given hour.
func (s *Simulator) windowTime(hour, baseMinute int) time.Time {
	minute := baseMinute + randInt(s.rng, 0, 14)
	second := randInt(s.rng, 0, 59)
	return s.baseDate.Add(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second)
}
