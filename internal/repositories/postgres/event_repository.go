package postgres

import (
	"context"
	"fmt"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ repositories.OrderEventRepository   = (*OrderEventRepository)(nil)
	_ repositories.CourierEventRepository = (*CourierEventRepository)(nil)
)

// NewPool connects a pgx pool from the generator's database config.
func NewPool(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return pool, nil
}

type OrderEventRepository struct {
	pool *pgxpool.Pool
}

func NewOrderEventRepository(pool *pgxpool.Pool) *OrderEventRepository {
	return &OrderEventRepository{pool: pool}
}

func (r *OrderEventRepository) BulkCreate(ctx context.Context, events []models.OrderEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO order_events (
            event_id, order_id, event_type, timestamp, processing_timestamp,
            customer_id, restaurant_id, courier_id, zone_id, order_value,
            promo_applied, cancellation_reason, is_duplicate, app_version
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10,
            $11, NULLIF($12, ''), $13, $14
        )
    `

	for _, e := range events {
		_, err = tx.Exec(ctx, query,
			e.EventID,
			e.OrderID,
			e.EventType,
			e.Timestamp,
			e.ProcessingTimestamp,
			e.CustomerID,
			e.RestaurantID,
			e.CourierID,
			e.ZoneID,
			e.OrderValue,
			e.PromoApplied,
			e.CancellationReason,
			e.IsDuplicate,
			e.AppVersion,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM order_events").Scan(&count)
	return count, err
}

func (r *OrderEventRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM order_events")
	return err
}

type CourierEventRepository struct {
	pool *pgxpool.Pool
}

func NewCourierEventRepository(pool *pgxpool.Pool) *CourierEventRepository {
	return &CourierEventRepository{pool: pool}
}

func (r *CourierEventRepository) BulkCreate(ctx context.Context, events []models.CourierEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO courier_events (
            event_id, courier_id, event_type, timestamp, processing_timestamp,
            zone_id, latitude, longitude, order_id, session_id,
            is_duplicate, app_version
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10,
            $11, $12
        )
    `

	for _, e := range events {
		_, err = tx.Exec(ctx, query,
			e.EventID,
			e.CourierID,
			e.EventType,
			e.Timestamp,
			e.ProcessingTimestamp,
			e.ZoneID,
			e.Latitude,
			e.Longitude,
			e.OrderID,
			e.SessionID,
			e.IsDuplicate,
			e.AppVersion,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *CourierEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM courier_events").Scan(&count)
	return count, err
}

func (r *CourierEventRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM courier_events")
	return err
}
