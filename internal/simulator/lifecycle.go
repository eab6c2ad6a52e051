package simulator

import (
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// orderState drives the per-order lifecycle machine.
type orderState int

const (
	statePlaced orderState = iota
	stateCancelled
	stateAssigned
	statePickedUp
	stateDelivered
	stateDone
)

// orderRun carries one placement through the lifecycle machine.
type orderRun struct {
	placement  *models.Placement
	orderID    string
	appVersion string

	cancelled          bool
	missingPickup      bool
	impossibleDuration bool

	courierID   string
	assignedAt  time.Time
	pickupAt    time.Time
	deliveredAt time.Time
}

// processPlacements turns chronologically sorted placements into order
// lifecycle events, driving the assignment tracker and producing the
// delivery log consumed by the courier event generator.
func (s *Simulator) processPlacements(placements []*models.Placement, tracker *CourierAssignmentTracker) ([]models.OrderEvent, map[string][]models.DeliveryLogEntry) {
	events := make([]models.OrderEvent, 0, len(placements)*4)
	deliveryLog := make(map[string][]models.DeliveryLogEntry)

	for _, pl := range placements {
		run := s.newOrderRun(pl)

		s.stats.OrdersPerZone[pl.Restaurant.ZoneID]++
		s.stats.OrdersPerHour[pl.PlacedAt.Hour()]++
		s.stats.OrderValues = append(s.stats.OrderValues, pl.OrderValue)
		if pl.IsFraud {
			s.stats.FraudOrderEvents++
		}
		if pl.IsSurge {
			s.stats.SurgeOrderEvents++
		}
		if run.missingPickup {
			s.stats.MissingStepOrders++
		}
		if run.impossibleDuration {
			s.stats.ImpossibleDurationOrders++
		}

		for st := statePlaced; st != stateDone; {
			st = s.stepOrder(st, run, tracker, &events, deliveryLog)
		}
	}

	return events, deliveryLog
}

func (s *Simulator) newOrderRun(pl *models.Placement) *orderRun {
	run := &orderRun{
		placement:  pl,
		orderID:    newUUID(s.rng),
		appVersion: pickAppVersion(s.rng),
		cancelled:  pl.ForceCancel,
	}
	if !run.cancelled {
		run.cancelled = s.rng.Float64() < s.Config.CancelProb
	}
	if !run.cancelled {
		run.missingPickup = s.rng.Float64() < s.Config.MissingStepProb
		run.impossibleDuration = s.rng.Float64() < s.Config.ImpossibleDurationProb
	}
	return run
}

// stepOrder performs one lifecycle transition and returns the next state.
func (s *Simulator) stepOrder(st orderState, run *orderRun, tracker *CourierAssignmentTracker, events *[]models.OrderEvent, deliveryLog map[string][]models.DeliveryLogEntry) orderState {
	pl := run.placement

	switch st {
	case statePlaced:
		*events = append(*events, s.newOrderEvent(run, models.OrderEventPlaced, pl.PlacedAt))
		if run.cancelled {
			return stateCancelled
		}
		return stateAssigned

	case stateCancelled:
		cancelAt := pl.PlacedAt.Add(time.Duration(randInt(s.rng, 30, 300)) * time.Second)
		ev := s.newOrderEvent(run, models.OrderEventCancelled, cancelAt)
		if pl.ForceCancel {
			ev.CancellationReason = models.ReasonCustomerCancelled
		} else {
			ev.CancellationReason = models.CancellationReasons[s.rng.Intn(len(models.CancellationReasons))]
		}
		*events = append(*events, ev)
		return stateDone

	case stateAssigned:
		run.courierID = tracker.Assign(pl.Restaurant.ZoneID, epochMillis(pl.PlacedAt), s.rng)
		run.assignedAt = pl.PlacedAt.Add(time.Duration(randInt(s.rng, 30, 120)) * time.Second)
		*events = append(*events, s.newOrderEvent(run, models.OrderEventAssigned, run.assignedAt))
		return statePickedUp

	case statePickedUp:
		if !run.missingPickup {
			prepSecs := samplePrepTime(s.rng, pl.Restaurant)
			run.pickupAt = run.assignedAt.Add(time.Duration(prepSecs) * time.Second)
			*events = append(*events, s.newOrderEvent(run, models.OrderEventPickedUp, run.pickupAt))
		} else {
			// the step is skipped on the wire but the order still takes a
			// plausible pickup delay internally
			run.pickupAt = run.assignedAt.Add(time.Duration(randInt(s.rng, 300, 900)) * time.Second)
		}
		return stateDelivered

	case stateDelivered:
		var deliverySecs int
		if run.impossibleDuration {
			deliverySecs = randInt(s.rng, 1, 10)
		} else {
			deliverySecs = randInt(s.rng, 600, 2400)
		}
		run.deliveredAt = run.pickupAt.Add(time.Duration(deliverySecs) * time.Second)
		*events = append(*events, s.newOrderEvent(run, models.OrderEventDelivered, run.deliveredAt))

		deliveredMs := epochMillis(run.deliveredAt)
		tracker.CompleteDelivery(run.courierID, pl.Restaurant.ZoneID, deliveredMs)
		deliveryLog[run.courierID] = append(deliveryLog[run.courierID], models.DeliveryLogEntry{
			OrderID:     run.orderID,
			ZoneID:      pl.Restaurant.ZoneID,
			AssignedMs:  epochMillis(run.assignedAt),
			PickupMs:    epochMillis(run.pickupAt),
			DeliveredMs: deliveredMs,
		})
		return stateDone
	}
	return stateDone
}

func (s *Simulator) newOrderEvent(run *orderRun, eventType string, at time.Time) models.OrderEvent {
	pl := run.placement
	ts := epochMillis(at)
	return models.OrderEvent{
		EventID:             newUUID(s.rng),
		OrderID:             run.orderID,
		EventType:           eventType,
		Timestamp:           ts,
		ProcessingTimestamp: ts + randInt64(s.rng, 1000, 10000),
		CustomerID:          pl.CustomerID,
		RestaurantID:        pl.Restaurant.ID,
		CourierID:           run.courierID,
		ZoneID:              pl.Restaurant.ZoneID,
		OrderValue:          pl.OrderValue,
		PromoApplied:        pl.Promo,
		AppVersion:          run.appVersion,
	}
}
