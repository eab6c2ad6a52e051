package simulator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/factories"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Simulator generates one day of order lifecycle and courier status
// events for a synthetic delivery marketplace. A Simulator is not safe
// for concurrent use; every run draws from a single seeded rng so that
// equal configs yield byte-equal output.
type Simulator struct {
	Config *models.Config

	rng         *rand.Rand
	stats       *models.Stats
	zones       []models.Zone
	restaurants []*models.Restaurant
	couriers    []*models.Courier
	customers   []string
	baseDate    time.Time
	isWeekend   bool
}

// Result bundles both generated feeds with the validation report built
// from the same run.
type Result struct {
	OrderEvents   []models.OrderEvent
	CourierEvents []models.CourierEvent
	Report        *models.ValidationReport
	Stats         *models.Stats
}

func New(config *models.Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Simulator{Config: config}, nil
}

// Generate runs the full pipeline: entity setup, order placement
// sampling, lifecycle expansion, courier shift replay, corruption
// injection, and reporting. It reseeds from the configured seed, so
// calling it twice produces identical results.
func (s *Simulator) Generate() (*Result, error) {
	baseDate, err := s.Config.BaseDate()
	if err != nil {
		return nil, err
	}
	s.baseDate = baseDate
	s.isWeekend = s.Config.IsWeekendDay(baseDate)
	s.rng = rand.New(rand.NewSource(int64(s.Config.Seed)))
	s.stats = models.NewStats()

	if err := s.buildEntities(); err != nil {
		return nil, err
	}

	placements := s.generatePlacements()
	if s.Config.FraudClusterProb > 0 {
		placements = s.addFraudClusters(placements)
	}
	if s.Config.ZoneSurgeEvent {
		placements = s.addZoneSurge(placements)
	}
	sortPlacements(placements)

	tracker := NewCourierAssignmentTracker(s.couriers, s.zones)
	orderEvents, deliveryLog := s.processPlacements(placements, tracker)
	orderEvents = s.duplicateOrderEvents(orderEvents)
	orderEvents = s.lateOrderEvents(orderEvents)
	s.rng.Shuffle(len(orderEvents), func(i, j int) {
		orderEvents[i], orderEvents[j] = orderEvents[j], orderEvents[i]
	})

	courierEvents := s.generateCourierEvents(deliveryLog, tracker)
	courierEvents = s.duplicateCourierEvents(courierEvents)
	courierEvents = s.lateCourierEvents(courierEvents)
	s.rng.Shuffle(len(courierEvents), func(i, j int) {
		courierEvents[i], courierEvents[j] = courierEvents[j], courierEvents[i]
	})

	report := s.buildValidationReport(orderEvents, courierEvents)

	return &Result{
		OrderEvents:   orderEvents,
		CourierEvents: courierEvents,
		Report:        report,
		Stats:         s.stats,
	}, nil
}

func (s *Simulator) buildEntities() error {
	zones, err := factories.BuildZones(s.Config.City, s.Config.NumZones)
	if err != nil {
		return err
	}
	s.zones = zones

	numCustomers := s.Config.NumCustomers
	if numCustomers <= 0 {
		numCustomers = s.Config.NumOrders / 3
		if numCustomers < 50 {
			numCustomers = 50
		}
	}

	factory := factories.NewEntityFactory(s.rng)
	s.restaurants = factory.Restaurants(s.Config.NumRestaurants, s.zones)
	s.couriers = factory.Couriers(s.Config.NumCouriers, s.zones)
	s.customers = factory.Customers(numCustomers)
	return nil
}
