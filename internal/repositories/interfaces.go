package repositories

import (
	"context"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

type OrderEventRepository interface {
	BulkCreate(ctx context.Context, events []models.OrderEvent) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type CourierEventRepository interface {
	BulkCreate(ctx context.Context, events []models.CourierEvent) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
