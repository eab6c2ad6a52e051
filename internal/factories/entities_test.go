package factories

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantsBelongToKnownZones(t *testing.T) {
	zones, err := BuildZones("madrid", 5)
	require.NoError(t, err)
	zoneIDs := make(map[string]bool, len(zones))
	for _, z := range zones {
		zoneIDs[z.ID] = true
	}

	factory := NewEntityFactory(rand.New(rand.NewSource(1)))
	restaurants := factory.Restaurants(20, zones)
	require.Len(t, restaurants, 20)

	for _, r := range restaurants {
		assert.True(t, zoneIDs[r.ZoneID], "restaurant %s in unknown zone %s", r.ID, r.ZoneID)
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.OpenRanges)
		assert.Greater(t, r.PrepMean, 0.0)
	}
	assert.Equal(t, "rest_001", restaurants[0].ID)
	assert.Equal(t, "rest_020", restaurants[19].ID)
}

func TestCouriersAndCustomersIDFormats(t *testing.T) {
	zones, err := BuildZones("barcelona", 5)
	require.NoError(t, err)

	factory := NewEntityFactory(rand.New(rand.NewSource(2)))
	couriers := factory.Couriers(7, zones)
	require.Len(t, couriers, 7)
	assert.Equal(t, "courier_001", couriers[0].ID)
	assert.Equal(t, "courier_007", couriers[6].ID)

	customers := factory.Customers(120)
	require.Len(t, customers, 120)
	assert.Equal(t, "customer_0001", customers[0])
	assert.Equal(t, "customer_0120", customers[119])
}

func TestEntityFactoryDeterministic(t *testing.T) {
	zones, err := BuildZones("london", 5)
	require.NoError(t, err)

	a := NewEntityFactory(rand.New(rand.NewSource(42))).Restaurants(15, zones)
	b := NewEntityFactory(rand.New(rand.NewSource(42))).Restaurants(15, zones)
	assert.Equal(t, a, b)
}
