package simulator

import (
	"testing"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placementSimulator(t *testing.T, cfg *models.Config) *Simulator {
	t.Helper()
	s := bareSimulator(cfg)
	s.baseDate = mustBaseDate(cfg)
	s.isWeekend = cfg.IsWeekendDay(s.baseDate)
	require.NoError(t, s.buildEntities())
	return s
}

func TestGeneratePlacementsCount(t *testing.T) {
	s := placementSimulator(t, testConfig())

	placements := s.generatePlacements()
	require.Len(t, placements, s.Config.NumOrders)

	dayEnd := s.baseDate.Add(24 * time.Hour)
	for _, pl := range placements {
		assert.False(t, pl.PlacedAt.Before(s.baseDate))
		assert.True(t, pl.PlacedAt.Before(dayEnd))
		assert.GreaterOrEqual(t, pl.OrderValue, 8.0*0.7-0.01)
		assert.LessOrEqual(t, pl.OrderValue, 65.0)
		assert.False(t, pl.ForceCancel)
		assert.NotNil(t, pl.Restaurant)
	}
}

func TestOpenRestaurantsFallsBackToFullPool(t *testing.T) {
	s := placementSimulator(t, testConfig())

	// nothing is open at 4am under any schedule profile
	open := s.openRestaurants(4)
	assert.Equal(t, s.restaurants, open)

	// plenty open at 13h, all of them serving lunch
	open = s.openRestaurants(13)
	require.NotEmpty(t, open)
	for _, r := range open {
		assert.True(t, r.IsOpenAt(13), "restaurant %s profile %s", r.ID, r.Profile)
	}
}

func TestAddFraudClustersShape(t *testing.T) {
	cfg := testConfig()
	cfg.NumOrders = 200
	cfg.FraudClusterProb = 0.02
	s := placementSimulator(t, cfg)

	placements := s.addFraudClusters(nil)
	require.Equal(t, 4, s.stats.FraudClustersInjected)
	require.NotEmpty(t, placements)

	for _, pl := range placements {
		assert.True(t, pl.ForceCancel)
		assert.True(t, pl.IsFraud)
		assert.Contains(t, []int{12, 13, 19, 20, 21}, pl.PlacedAt.Hour())
	}
}

func TestAddZoneSurgeShape(t *testing.T) {
	cfg := testConfig()
	cfg.NumOrders = 200
	s := placementSimulator(t, cfg)

	placements := s.addZoneSurge(nil)
	require.Len(t, placements, 20)
	assert.Equal(t, 20, s.stats.ZoneSurgeOrders)
	assert.NotEmpty(t, s.stats.ZoneSurgeZone)

	zoneHasRestaurants := false
	for _, r := range s.restaurants {
		if r.ZoneID == s.stats.ZoneSurgeZone {
			zoneHasRestaurants = true
			break
		}
	}

	for _, pl := range placements {
		assert.True(t, pl.IsSurge)
		assert.False(t, pl.ForceCancel)
		if zoneHasRestaurants {
			assert.Equal(t, s.stats.ZoneSurgeZone, pl.Restaurant.ZoneID)
		}
		assert.Equal(t, s.stats.ZoneSurgeHour, pl.PlacedAt.Hour())
	}
}

func TestSortPlacementsChronological(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	placements := []*models.Placement{
		{PlacedAt: base.Add(3 * time.Hour)},
		{PlacedAt: base.Add(1 * time.Hour)},
		{PlacedAt: base.Add(2 * time.Hour)},
	}
	sortPlacements(placements)

	for i := 1; i < len(placements); i++ {
		assert.False(t, placements[i].PlacedAt.Before(placements[i-1].PlacedAt))
	}
}

func TestSampleOrderValuePromoDiscounts(t *testing.T) {
	cfg := testConfig()
	cfg.PromoProb = 1.0
	s := placementSimulator(t, cfg)

	for i := 0; i < 200; i++ {
		value, promo := s.sampleOrderValue()
		assert.True(t, promo)
		assert.GreaterOrEqual(t, value, 8.0*0.7-0.01)
		assert.LessOrEqual(t, value, 65.0*0.9+0.01)
	}
}
