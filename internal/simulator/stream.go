package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// maxStreamGap caps the simulated wait between consecutive events so a
// quiet overnight stretch does not stall playback for hours.
const maxStreamGap = 5 * time.Second

type taggedOrderEvent struct {
	Feed string `json:"_feed"`
	models.OrderEvent
}

type taggedCourierEvent struct {
	Feed string `json:"_feed"`
	models.CourierEvent
}

type streamItem struct {
	ts      int64
	feed    string
	payload interface{}
}

func mergeFeeds(orderEvents []models.OrderEvent, courierEvents []models.CourierEvent) []streamItem {
	items := make([]streamItem, 0, len(orderEvents)+len(courierEvents))
	for _, e := range orderEvents {
		items = append(items, streamItem{ts: e.Timestamp, feed: models.FeedOrderEvents,
			payload: taggedOrderEvent{Feed: models.FeedOrderEvents, OrderEvent: e}})
	}
	for _, e := range courierEvents {
		items = append(items, streamItem{ts: e.Timestamp, feed: models.FeedCourierEvents,
			payload: taggedCourierEvent{Feed: models.FeedCourierEvents, CourierEvent: e}})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ts < items[j].ts })
	return items
}

// pace sleeps the inter-event gap scaled down by speedFactor, capped at
// maxStreamGap, honoring context cancellation.
func pace(ctx context.Context, gapMs int64, speedFactor float64) error {
	wait := time.Duration(float64(gapMs) * float64(time.Millisecond) / speedFactor)
	if wait > maxStreamGap {
		wait = maxStreamGap
	}
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// StreamEvents replays both feeds to w in event-time order as NDJSON,
// paced by speedFactor. Each line carries a _feed field naming its source
// feed. A closed pipe ends the stream cleanly so the generator composes
// with head and friends.
func StreamEvents(ctx context.Context, orderEvents []models.OrderEvent, courierEvents []models.CourierEvent, speedFactor float64, w io.Writer) error {
	if speedFactor <= 0 {
		return fmt.Errorf("speed factor must be positive, got %f", speedFactor)
	}

	enc := json.NewEncoder(w)
	var prevTs int64
	for i, item := range mergeFeeds(orderEvents, courierEvents) {
		if i > 0 {
			if err := pace(ctx, item.ts-prevTs, speedFactor); err != nil {
				return err
			}
		}
		prevTs = item.ts

		if err := enc.Encode(item.payload); err != nil {
			if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return fmt.Errorf("failed to stream event: %w", err)
		}
	}
	return nil
}

// StreamToDestination replays both feeds through an OutputDestination in
// event-time order with the same pacing, publishing each event under its
// feed's topic. Unlike StreamEvents, a write error is surfaced: a broker
// refusing messages is not a graceful end of playback.
func StreamToDestination(ctx context.Context, orderEvents []models.OrderEvent, courierEvents []models.CourierEvent, speedFactor float64, dest OutputDestination) error {
	if speedFactor <= 0 {
		return fmt.Errorf("speed factor must be positive, got %f", speedFactor)
	}

	var prevTs int64
	for i, item := range mergeFeeds(orderEvents, courierEvents) {
		if i > 0 {
			if err := pace(ctx, item.ts-prevTs, speedFactor); err != nil {
				return err
			}
		}
		prevTs = item.ts

		msg, err := json.Marshal(item.payload)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		if err := dest.WriteMessage(item.feed, msg); err != nil {
			return err
		}
	}
	return nil
}
