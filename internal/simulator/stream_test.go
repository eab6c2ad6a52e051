package simulator

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEventsOrderedAndTagged(t *testing.T) {
	orderEvents := []models.OrderEvent{
		{EventID: "o1", EventType: models.OrderEventPlaced, Timestamp: 3000},
		{EventID: "o2", EventType: models.OrderEventDelivered, Timestamp: 1000},
	}
	courierEvents := []models.CourierEvent{
		{EventID: "c1", EventType: models.CourierEventOnline, Timestamp: 2000},
	}

	var buf bytes.Buffer
	err := StreamEvents(context.Background(), orderEvents, courierEvents, 1e9, &buf)
	require.NoError(t, err)

	scanner := bufio.NewScanner(&buf)
	var lines []map[string]interface{}
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.Len(t, lines, 3)

	assert.Equal(t, "o2", lines[0]["event_id"])
	assert.Equal(t, "c1", lines[1]["event_id"])
	assert.Equal(t, "o1", lines[2]["event_id"])

	assert.Equal(t, models.FeedOrderEvents, lines[0]["_feed"])
	assert.Equal(t, models.FeedCourierEvents, lines[1]["_feed"])

	var prev float64
	for _, line := range lines {
		ts := line["timestamp"].(float64)
		assert.GreaterOrEqual(t, ts, prev)
		prev = ts
	}
}

func TestStreamEventsRejectsBadSpeed(t *testing.T) {
	err := StreamEvents(context.Background(), nil, nil, 0, io.Discard)
	assert.Error(t, err)
}

func TestStreamEventsHonorsContext(t *testing.T) {
	orderEvents := []models.OrderEvent{
		{EventID: "o1", Timestamp: 0},
		{EventID: "o2", Timestamp: 10_000_000},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := StreamEvents(ctx, orderEvents, nil, 1, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

type capturingDestination struct {
	topics []string
}

func (c *capturingDestination) WriteMessage(topic string, msg []byte) error {
	c.topics = append(c.topics, topic)
	return nil
}

func (c *capturingDestination) Close() error { return nil }

func TestStreamToDestinationTopics(t *testing.T) {
	orderEvents := []models.OrderEvent{
		{EventID: "o1", Timestamp: 2000},
	}
	courierEvents := []models.CourierEvent{
		{EventID: "c1", Timestamp: 1000},
		{EventID: "c2", Timestamp: 3000},
	}

	dest := &capturingDestination{}
	err := StreamToDestination(context.Background(), orderEvents, courierEvents, 1e9, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{
		models.FeedCourierEvents,
		models.FeedOrderEvents,
		models.FeedCourierEvents,
	}, dest.topics)
}

func TestStreamEventsStopsOnClosedPipe(t *testing.T) {
	orderEvents := []models.OrderEvent{
		{EventID: "o1", Timestamp: 1000},
		{EventID: "o2", Timestamp: 1001},
	}

	pr, pw := io.Pipe()
	require.NoError(t, pr.Close())

	err := StreamEvents(context.Background(), orderEvents, nil, 1e9, pw)
	assert.NoError(t, err)
}
