package simulator

import (
	"math/rand"
	"sort"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// CourierAssignmentTracker owns every courier's mutable availability state.
// All reads and writes funnel through its methods so the single mutation
// point (delivery completion) stays auditable. Couriers are kept in a
// stable id order; iterating the state map directly would break run
// determinism.
type CourierAssignmentTracker struct {
	ids     []string
	states  map[string]*models.CourierState
	zoneMap map[string]models.Zone
}

func NewCourierAssignmentTracker(couriers []*models.Courier, zones []models.Zone) *CourierAssignmentTracker {
	t := &CourierAssignmentTracker{
		ids:     make([]string, 0, len(couriers)),
		states:  make(map[string]*models.CourierState, len(couriers)),
		zoneMap: make(map[string]models.Zone, len(zones)),
	}
	for _, z := range zones {
		t.zoneMap[z.ID] = z
	}
	for _, c := range couriers {
		t.ids = append(t.ids, c.ID)
		t.states[c.ID] = &models.CourierState{ZoneID: c.HomeZoneID}
	}
	return t
}

// Assign resolves a courier for an order with three-tier priority:
//  1. available couriers already in the order's zone, random tie-break;
//  2. available couriers anywhere, nearest zone center first;
//  3. nobody free: the courier that becomes free soonest.
//
// Assign never mutates state; the lifecycle generator confirms the
// assignment through CompleteDelivery once the delivery is finalized.
func (t *CourierAssignmentTracker) Assign(zoneID string, orderTimeMs int64, rng *rand.Rand) string {
	available := make([]string, 0, len(t.ids))
	for _, id := range t.ids {
		if t.states[id].AvailableAt <= orderTimeMs {
			available = append(available, id)
		}
	}

	if len(available) > 0 {
		sameZone := make([]string, 0, len(available))
		for _, id := range available {
			if t.states[id].ZoneID == zoneID {
				sameZone = append(sameZone, id)
			}
		}
		if len(sameZone) > 0 {
			return sameZone[rng.Intn(len(sameZone))]
		}

		if orderZone, ok := t.zoneMap[zoneID]; ok {
			sort.SliceStable(available, func(i, j int) bool {
				return t.distanceTo(available[i], orderZone) < t.distanceTo(available[j], orderZone)
			})
		}
		return available[0]
	}

	// best-effort overload path: whoever frees up first, ties resolved by
	// stable courier order
	soonest := t.ids[0]
	for _, id := range t.ids[1:] {
		if t.states[id].AvailableAt < t.states[soonest].AvailableAt {
			soonest = id
		}
	}
	return soonest
}

// CompleteDelivery records a finalized delivery: the courier stays in the
// delivery zone and is busy until the delivery completes. The busy-until
// time only ever advances.
func (t *CourierAssignmentTracker) CompleteDelivery(courierID, zoneID string, deliveredMs int64) {
	st := t.states[courierID]
	if deliveredMs > st.AvailableAt {
		st.AvailableAt = deliveredMs
	}
	st.ZoneID = zoneID
}

// FinalZone returns the zone a courier ended the run in.
func (t *CourierAssignmentTracker) FinalZone(courierID string) string {
	return t.states[courierID].ZoneID
}

func (t *CourierAssignmentTracker) distanceTo(courierID string, target models.Zone) float64 {
	z, ok := t.zoneMap[t.states[courierID].ZoneID]
	if !ok {
		z = target
	}
	return z.Distance(target)
}
