package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres repository tests")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestOrderEventRepositoryRoundTrip(t *testing.T) {
	pool := testPool(t)
	repo := NewOrderEventRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.DeleteAll(ctx))

	events := []models.OrderEvent{
		{
			EventID:             "11111111-1111-1111-1111-111111111111",
			OrderID:             "22222222-2222-2222-2222-222222222222",
			EventType:           models.OrderEventPlaced,
			Timestamp:           1700000000000,
			ProcessingTimestamp: 1700000003000,
			CustomerID:          "customer_0001",
			RestaurantID:        "rest_001",
			ZoneID:              "centro",
			OrderValue:          23.45,
			AppVersion:          "1.0.0",
		},
		{
			EventID:             "33333333-3333-3333-3333-333333333333",
			OrderID:             "22222222-2222-2222-2222-222222222222",
			EventType:           models.OrderEventCancelled,
			Timestamp:           1700000120000,
			ProcessingTimestamp: 1700000124000,
			CustomerID:          "customer_0001",
			RestaurantID:        "rest_001",
			ZoneID:              "centro",
			OrderValue:          23.45,
			CancellationReason:  models.CancellationReasons[0],
			AppVersion:          "1.0.0",
		},
	}
	require.NoError(t, repo.BulkCreate(ctx, events))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(events), count)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCourierEventRepositoryRoundTrip(t *testing.T) {
	pool := testPool(t)
	repo := NewCourierEventRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.DeleteAll(ctx))

	events := []models.CourierEvent{
		{
			EventID:             "44444444-4444-4444-4444-444444444444",
			CourierID:           "courier_001",
			EventType:           models.CourierEventOnline,
			Timestamp:           1700000000000,
			ProcessingTimestamp: 1700000002000,
			ZoneID:              "centro",
			Latitude:            40.4168,
			Longitude:           -3.7038,
			SessionID:           "sess_abc",
			AppVersion:          "1.0.0",
		},
	}
	require.NoError(t, repo.BulkCreate(ctx, events))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(events), count)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
