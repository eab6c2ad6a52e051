package simulator

import (
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// duplicateOrderEvents appends duplicated copies of randomly picked order
// events. A duplicate keeps the original payload and timestamp but gets a
// fresh event id, the duplicate flag, and a later processing timestamp,
// the way an at-least-once pipeline would redeliver it.
func (s *Simulator) duplicateOrderEvents(events []models.OrderEvent) []models.OrderEvent {
	if s.Config.DuplicateProb <= 0 || len(events) == 0 {
		return events
	}
	for _, idx := range s.pickDuplicateIndexes(len(events)) {
		dup := events[idx]
		dup.EventID = newUUID(s.rng)
		dup.IsDuplicate = true
		dup.ProcessingTimestamp = events[idx].ProcessingTimestamp + randInt64(s.rng, 100, 5000)
		events = append(events, dup)
		s.stats.DuplicatesInjected[models.FeedOrderEvents]++
	}
	return events
}

func (s *Simulator) duplicateCourierEvents(events []models.CourierEvent) []models.CourierEvent {
	if s.Config.DuplicateProb <= 0 || len(events) == 0 {
		return events
	}
	for _, idx := range s.pickDuplicateIndexes(len(events)) {
		dup := events[idx]
		dup.EventID = newUUID(s.rng)
		dup.IsDuplicate = true
		dup.ProcessingTimestamp = events[idx].ProcessingTimestamp + randInt64(s.rng, 100, 5000)
		events = append(events, dup)
		s.stats.DuplicatesInjected[models.FeedCourierEvents]++
	}
	return events
}

// pickDuplicateIndexes selects which events to duplicate. At least one
// event is always duplicated whenever the probability is positive.
func (s *Simulator) pickDuplicateIndexes(n int) []int {
	count := int(float64(n) * s.Config.DuplicateProb)
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}
	indexes := s.rng.Perm(n)[:count]
	return indexes
}

// lateOrderEvents rewinds the event timestamp of a random fixed-size
// subset by 5 to 15 minutes while leaving the processing timestamp
// alone, producing events that arrive long after they happened.
// ORDER_PLACED events are exempt: the first event of an order anchors
// its timeline. At least one event goes late whenever the probability
// is positive and a candidate exists.
func (s *Simulator) lateOrderEvents(events []models.OrderEvent) []models.OrderEvent {
	if s.Config.LateProb <= 0 || len(events) == 0 {
		return events
	}
	candidates := make([]int, 0, len(events))
	for i := range events {
		if events[i].EventType == models.OrderEventPlaced {
			continue
		}
		candidates = append(candidates, i)
	}
	for _, idx := range s.pickLateIndexes(len(events), candidates) {
		events[idx].Timestamp -= randInt64(s.rng, 300000, 900000)
		s.stats.LateEvents[models.FeedOrderEvents]++
	}
	return events
}

func (s *Simulator) lateCourierEvents(events []models.CourierEvent) []models.CourierEvent {
	if s.Config.LateProb <= 0 || len(events) == 0 {
		return events
	}
	candidates := make([]int, 0, len(events))
	for i := range events {
		if events[i].EventType == models.CourierEventOnline {
			continue
		}
		candidates = append(candidates, i)
	}
	for _, idx := range s.pickLateIndexes(len(events), candidates) {
		events[idx].Timestamp -= randInt64(s.rng, 300000, 900000)
		s.stats.LateEvents[models.FeedCourierEvents]++
	}
	return events
}

// pickLateIndexes selects which candidate events arrive late. The count
// scales with the full feed size; anchor kinds are excluded from
// candidacy only.
func (s *Simulator) pickLateIndexes(n int, candidates []int) []int {
	count := int(float64(n) * s.Config.LateProb)
	if count < 1 {
		count = 1
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	picked := make([]int, 0, count)
	for _, j := range s.rng.Perm(len(candidates))[:count] {
		picked = append(picked, candidates[j])
	}
	return picked
}
