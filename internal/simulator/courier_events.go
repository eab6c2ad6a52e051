package simulator

import (
	"sort"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// onlineHours are the shift-start hours couriers come online at.
var onlineHours = []int{10, 11, 17, 18, 19}

// shiftState drives the per-courier shift machine.
type shiftState int

const (
	shiftOnline shiftState = iota
	shiftAvailable
	shiftDelivering
	shiftOffline
	shiftDone
)

// shiftRun carries one courier through a simulated shift. All events of
// the shift share the session id. next indexes the delivery being
// serviced; droppedMid marks an unexpected mid-delivery disconnect,
// which terminates the session without a closing OFFLINE.
type shiftRun struct {
	courier    *models.Courier
	sessionID  string
	appVersion string

	deliveries []models.DeliveryLogEntry
	next       int

	zone       models.Zone
	lastTs     int64
	droppedMid bool
}

// generateCourierEvents replays each courier's delivery log as a status
// event shift: ONLINE, AVAILABLE, then PICKING_UP / DELIVERING /
// AVAILABLE per delivery, closed by OFFLINE. At most once per courier,
// roughly at the midpoint of the shift, the courier may drop OFFLINE
// mid-delivery, ending the session early.
func (s *Simulator) generateCourierEvents(deliveryLog map[string][]models.DeliveryLogEntry, tracker *CourierAssignmentTracker) []models.CourierEvent {
	events := make([]models.CourierEvent, 0, len(s.couriers)*4)
	zoneMap := make(map[string]models.Zone, len(s.zones))
	for _, z := range s.zones {
		zoneMap[z.ID] = z
	}

	for _, courier := range s.couriers {
		deliveries := append([]models.DeliveryLogEntry(nil), deliveryLog[courier.ID]...)
		sort.SliceStable(deliveries, func(i, j int) bool {
			return deliveries[i].AssignedMs < deliveries[j].AssignedMs
		})

		run := &shiftRun{
			courier:    courier,
			sessionID:  newSessionID(s.rng),
			appVersion: pickAppVersion(s.rng),
			deliveries: deliveries,
			zone:       zoneMap[courier.HomeZoneID],
		}

		for st := shiftOnline; st != shiftDone; {
			st = s.stepShift(st, run, zoneMap, tracker, &events)
		}
	}

	for _, c := range s.couriers {
		s.stats.CouriersPerZone[c.HomeZoneID]++
	}

	return events
}

// stepShift performs one shift transition and returns the next state.
func (s *Simulator) stepShift(st shiftState, run *shiftRun, zoneMap map[string]models.Zone, tracker *CourierAssignmentTracker, events *[]models.CourierEvent) shiftState {
	switch st {
	case shiftOnline:
		onlineAt := s.shiftStart()
		run.lastTs = epochMillis(onlineAt)
		*events = append(*events, s.newCourierEvent(run, models.CourierEventOnline, run.lastTs, run.zone, ""))
		return shiftAvailable

	case shiftAvailable:
		availMs := run.lastTs + randInt64(s.rng, 10, 60)*1000
		*events = append(*events, s.newCourierEvent(run, models.CourierEventAvailable, availMs, run.zone, ""))
		run.lastTs = availMs
		return shiftDelivering

	case shiftDelivering:
		if run.next >= len(run.deliveries) {
			return shiftOffline
		}
		d := run.deliveries[run.next]
		dzone, ok := zoneMap[d.ZoneID]
		if !ok {
			dzone = run.zone
		}

		if !run.droppedMid && run.next == len(run.deliveries)/2 &&
			s.rng.Float64() < s.Config.MidDeliveryOfflineProb {
			offlineMs := d.AssignedMs + randInt64(s.rng, 60, 300)*1000
			*events = append(*events, s.newCourierEvent(run, models.CourierEventOffline, offlineMs, dzone, d.OrderID))
			run.droppedMid = true
			s.stats.MidDeliveryOffline++
			return shiftDone
		}

		*events = append(*events, s.newCourierEvent(run, models.CourierEventPickingUp, d.PickupMs, dzone, d.OrderID))
		midMs := (d.PickupMs + d.DeliveredMs) / 2
		*events = append(*events, s.newCourierEvent(run, models.CourierEventDelivering, midMs, dzone, d.OrderID))

		afterMs := d.DeliveredMs + randInt64(s.rng, 30, 120)*1000
		*events = append(*events, s.newCourierEvent(run, models.CourierEventAvailable, afterMs, dzone, ""))
		if afterMs > run.lastTs {
			run.lastTs = afterMs
		}
		// the courier stays wherever the delivery ended
		run.zone = dzone
		run.next++
		return shiftDelivering

	case shiftOffline:
		offlineMs := run.lastTs + randInt64(s.rng, 5, 30)*60*1000
		finalZone, ok := zoneMap[tracker.FinalZone(run.courier.ID)]
		if !ok {
			finalZone = run.zone
		}
		*events = append(*events, s.newCourierEvent(run, models.CourierEventOffline, offlineMs, finalZone, ""))
		return shiftDone
	}
	return shiftDone
}

func (s *Simulator) shiftStart() time.Time {
	hour := onlineHours[s.rng.Intn(len(onlineHours))]
	return s.baseDate.Add(time.Duration(hour)*time.Hour +
		time.Duration(randInt(s.rng, 0, 59))*time.Minute +
		time.Duration(randInt(s.rng, 0, 59))*time.Second)
}

func (s *Simulator) newCourierEvent(run *shiftRun, eventType string, ts int64, zone models.Zone, orderID string) models.CourierEvent {
	lat, lon := zone.RandomCoords(s.rng)
	return models.CourierEvent{
		EventID:             newUUID(s.rng),
		CourierID:           run.courier.ID,
		EventType:           eventType,
		Timestamp:           ts,
		ProcessingTimestamp: ts + randInt64(s.rng, 1000, 5000),
		ZoneID:              zone.ID,
		Latitude:            lat,
		Longitude:           lon,
		OrderID:             orderID,
		SessionID:           run.sessionID,
		AppVersion:          run.appVersion,
	}
}
