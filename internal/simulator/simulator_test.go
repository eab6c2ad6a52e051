package simulator

import (
	"testing"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Seed:                   999,
		Date:                   "2026-01-15",
		City:                   "madrid",
		NumOrders:              60,
		NumCouriers:            8,
		NumRestaurants:         12,
		NumZones:               5,
		NumCustomers:           30,
		CancelProb:             0.07,
		PromoProb:              0.25,
		DuplicateProb:          0.02,
		LateProb:               0.05,
		MissingStepProb:        0.03,
		ImpossibleDurationProb: 0.01,
		MidDeliveryOfflineProb: 0.02,
		FraudClusterProb:       0.02,
		SurgeFactor:            1.8,
		SpeedFactor:            60,
	}
}

func generate(t *testing.T, cfg *models.Config) *Result {
	t.Helper()
	sim, err := New(cfg)
	require.NoError(t, err)
	result, err := sim.Generate()
	require.NoError(t, err)
	return result
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.NumOrders = 0
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestGenerateReproducible(t *testing.T) {
	first := generate(t, testConfig())
	second := generate(t, testConfig())

	require.Equal(t, first.OrderEvents, second.OrderEvents)
	require.Equal(t, first.CourierEvents, second.CourierEvents)
	require.Equal(t, first.Report, second.Report)
}

func TestGenerateRepeatableOnSameSimulator(t *testing.T) {
	sim, err := New(testConfig())
	require.NoError(t, err)

	first, err := sim.Generate()
	require.NoError(t, err)
	second, err := sim.Generate()
	require.NoError(t, err)

	assert.Equal(t, first.OrderEvents, second.OrderEvents)
	assert.Equal(t, first.CourierEvents, second.CourierEvents)
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	first := generate(t, testConfig())

	cfg := testConfig()
	cfg.Seed = 1000
	second := generate(t, cfg)

	firstIDs := make(map[string]bool)
	for _, e := range first.OrderEvents {
		firstIDs[e.EventID] = true
	}
	overlap := 0
	for _, e := range second.OrderEvents {
		if firstIDs[e.EventID] {
			overlap++
		}
	}
	assert.Zero(t, overlap, "different seeds should yield disjoint event ids")
}

func TestReportMatchesFeeds(t *testing.T) {
	result := generate(t, testConfig())
	report := result.Report

	assert.Equal(t, len(result.OrderEvents), report.TotalOrderEvents)
	assert.Equal(t, len(result.CourierEvents), report.TotalCourierEvents)

	orderSum := 0
	for _, c := range report.OrderEventBreakdown {
		orderSum += c.Count
	}
	assert.Equal(t, report.TotalOrderEvents, orderSum)

	courierSum := 0
	for _, c := range report.CourierEventBreakdown {
		courierSum += c.Count
	}
	assert.Equal(t, report.TotalCourierEvents, courierSum)

	dupCount := 0
	for _, e := range result.OrderEvents {
		if e.IsDuplicate {
			dupCount++
		}
	}
	assert.Equal(t, dupCount, report.DuplicatesInjected.Order)

	assert.NotZero(t, report.OrderValueStats.Avg)
	assert.GreaterOrEqual(t, report.OrderValueStats.Min, 8.0*0.7-0.01)
	assert.LessOrEqual(t, report.OrderValueStats.Max, 65.0)
}

func TestZoneSurgeReported(t *testing.T) {
	cfg := testConfig()
	cfg.ZoneSurgeEvent = true
	result := generate(t, cfg)

	require.NotNil(t, result.Report.ZoneSurge)
	assert.GreaterOrEqual(t, result.Report.ZoneSurge.ExtraOrders, 10)
	assert.Contains(t, []int{12, 13, 19, 20, 21}, result.Report.ZoneSurge.Hour)

	surged := result.Report.ZoneSurge.Zone
	assert.NotEmpty(t, surged)
	assert.Greater(t, result.Report.OrdersPerZone[surged].Count, 0)
}

func TestZoneSurgeAbsentByDefault(t *testing.T) {
	result := generate(t, testConfig())
	assert.Nil(t, result.Report.ZoneSurge)
}

func TestDerivedCustomerPool(t *testing.T) {
	cfg := testConfig()
	cfg.NumCustomers = 0
	sim, err := New(cfg)
	require.NoError(t, err)
	_, err = sim.Generate()
	require.NoError(t, err)

	// 60 orders derive max(50, 60/3) = 50 customers
	assert.Len(t, sim.customers, 50)
}
