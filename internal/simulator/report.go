package simulator

import (
	"fmt"
	"strconv"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// buildValidationReport summarizes the run for downstream consumers who
// need to know what was injected on purpose before they start debugging
// their pipelines against the feeds.
func (s *Simulator) buildValidationReport(orderEvents []models.OrderEvent, courierEvents []models.CourierEvent) *models.ValidationReport {
	report := &models.ValidationReport{
		TotalOrderEvents:           len(orderEvents),
		TotalCourierEvents:         len(courierEvents),
		OrderEventBreakdown:        make(map[string]models.CountPct),
		CourierEventBreakdown:      make(map[string]models.CountPct),
		MissingStepOrders:          s.stats.MissingStepOrders,
		ImpossibleDurationOrders:   s.stats.ImpossibleDurationOrders,
		MidDeliveryOfflineCouriers: s.stats.MidDeliveryOffline,
		FraudClustersInjected:      s.stats.FraudClustersInjected,
		FraudClusterOrderEvents:    s.stats.FraudOrderEvents,
		OrdersPerZone:              make(map[string]models.CountPct),
		CouriersPerZone:            make(map[string]int),
		OrdersPerHour:              make(map[string]int),
		DataQualityWarnings:        []string{},
		Config:                     s.Config,
	}

	orderCounts := make(map[string]int)
	for _, e := range orderEvents {
		orderCounts[e.EventType]++
	}
	for eventType, count := range orderCounts {
		report.OrderEventBreakdown[eventType] = models.CountPct{
			Count: count,
			Pct:   round2(float64(count) / float64(len(orderEvents)) * 100),
		}
	}

	courierCounts := make(map[string]int)
	for _, e := range courierEvents {
		courierCounts[e.EventType]++
	}
	for eventType, count := range courierCounts {
		report.CourierEventBreakdown[eventType] = models.CountPct{
			Count: count,
			Pct:   round2(float64(count) / float64(len(courierEvents)) * 100),
		}
	}

	report.DuplicatesInjected = models.FeedCounts{
		Order:   s.stats.DuplicatesInjected[models.FeedOrderEvents],
		Courier: s.stats.DuplicatesInjected[models.FeedCourierEvents],
	}
	report.LateEventsInjected = models.FeedCounts{
		Order:   s.stats.LateEvents[models.FeedOrderEvents],
		Courier: s.stats.LateEvents[models.FeedCourierEvents],
	}

	if s.stats.ZoneSurgeOrders > 0 {
		report.ZoneSurge = &models.ZoneSurgeReport{
			Zone:        s.stats.ZoneSurgeZone,
			Hour:        s.stats.ZoneSurgeHour,
			MinuteStart: s.stats.ZoneSurgeMinute,
			ExtraOrders: s.stats.ZoneSurgeOrders,
		}
	}

	if len(s.stats.OrderValues) > 0 {
		minV, maxV, sum := s.stats.OrderValues[0], s.stats.OrderValues[0], 0.0
		for _, v := range s.stats.OrderValues {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
			sum += v
		}
		report.OrderValueStats = models.OrderValueStats{
			Avg: round2(sum / float64(len(s.stats.OrderValues))),
			Min: minV,
			Max: maxV,
		}
	}

	totalOrders := 0
	for _, count := range s.stats.OrdersPerZone {
		totalOrders += count
	}
	for zone, count := range s.stats.OrdersPerZone {
		pct := 0.0
		if totalOrders > 0 {
			pct = round2(float64(count) / float64(totalOrders) * 100)
		}
		report.OrdersPerZone[zone] = models.CountPct{Count: count, Pct: pct}
	}

	for zone, count := range s.stats.CouriersPerZone {
		report.CouriersPerZone[zone] = count
	}
	for hour := 0; hour < 24; hour++ {
		report.OrdersPerHour[strconv.Itoa(hour)] = s.stats.OrdersPerHour[hour]
	}

	report.DataQualityWarnings = s.qualityWarnings(orderCounts)
	return report
}

// qualityWarnings flags distributions that drifted outside the shape the
// generator intends, usually a sign of a misconfigured run.
func (s *Simulator) qualityWarnings(orderCounts map[string]int) []string {
	warnings := []string{}

	placed := orderCounts[models.OrderEventPlaced]
	cancelled := orderCounts[models.OrderEventCancelled]
	if placed > 0 {
		rate := float64(cancelled) / float64(placed)
		if rate > 0.25 {
			warnings = append(warnings, fmt.Sprintf("High cancellation rate: %.1f%%", rate*100))
		}
	}

	if s.Config.DuplicateProb > 0 && s.stats.DuplicatesInjected[models.FeedOrderEvents] == 0 {
		warnings = append(warnings, "No duplicates injected despite duplicate_prob > 0")
	}

	return warnings
}
