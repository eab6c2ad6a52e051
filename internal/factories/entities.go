package factories

import (
	"fmt"
	"math/rand"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/jaswdr/faker"
)

type scheduleProfile struct {
	name       string
	openRanges []models.HourRange
	weight     float64
	prepMean   float64 // seconds
	prepStd    float64 // seconds
}

var scheduleProfiles = []scheduleProfile{
	{name: "all_day", openRanges: []models.HourRange{{Start: 10, End: 23}}, weight: 0.50, prepMean: 900, prepStd: 300},
	{name: "lunch_dinner", openRanges: []models.HourRange{{Start: 12, End: 15}, {Start: 19, End: 23}}, weight: 0.30, prepMean: 720, prepStd: 240},
	{name: "dinner_only", openRanges: []models.HourRange{{Start: 18, End: 23}}, weight: 0.20, prepMean: 1200, prepStd: 420},
}

// EntityFactory builds restaurants, couriers, and customers. The faker is
// seeded from the run's rng so a run stays a single entropy source.
type EntityFactory struct {
	rng  *rand.Rand
	fake faker.Faker
}

func NewEntityFactory(rng *rand.Rand) *EntityFactory {
	return &EntityFactory{
		rng:  rng,
		fake: faker.NewWithSeed(rng),
	}
}

// Restaurants builds n restaurants with a weighted zone assignment and a
// weighted schedule/prep-time profile.
func (f *EntityFactory) Restaurants(n int, zones []models.Zone) []*models.Restaurant {
	restaurants := make([]*models.Restaurant, 0, n)
	for i := 0; i < n; i++ {
		zone := PickZoneWeighted(zones, f.rng)
		profile := f.pickProfile()
		restaurants = append(restaurants, &models.Restaurant{
			ID:         fmt.Sprintf("rest_%03d", i+1),
			Name:       f.fake.Company().Name(),
			ZoneID:     zone.ID,
			Profile:    profile.name,
			OpenRanges: profile.openRanges,
			PrepMean:   profile.prepMean,
			PrepStd:    profile.prepStd,
		})
	}
	return restaurants
}

// Couriers builds n couriers with a weighted home zone assignment.
func (f *EntityFactory) Couriers(n int, zones []models.Zone) []*models.Courier {
	couriers := make([]*models.Courier, 0, n)
	for i := 0; i < n; i++ {
		zone := PickZoneWeighted(zones, f.rng)
		couriers = append(couriers, &models.Courier{
			ID:         fmt.Sprintf("courier_%03d", i+1),
			Name:       f.fake.Person().Name(),
			HomeZoneID: zone.ID,
		})
	}
	return couriers
}

// Customers builds the flat customer id pool.
func (f *EntityFactory) Customers(n int) []string {
	customers := make([]string, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, fmt.Sprintf("customer_%04d", i+1))
	}
	return customers
}

func (f *EntityFactory) pickProfile() scheduleProfile {
	var total float64
	for _, p := range scheduleProfiles {
		total += p.weight
	}
	r := f.rng.Float64() * total
	var cum float64
	for _, p := range scheduleProfiles {
		cum += p.weight
		if r <= cum {
			return p
		}
	}
	return scheduleProfiles[len(scheduleProfiles)-1]
}
