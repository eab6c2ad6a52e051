package models

// CountPct is a count with its percentage share of a feed.
type CountPct struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type FeedCounts struct {
	Order   int `json:"order"`
	Courier int `json:"courier"`
}

type ZoneSurgeReport struct {
	Zone        string `json:"zone"`
	Hour        int    `json:"hour"`
	MinuteStart int    `json:"minute_start"`
	ExtraOrders int    `json:"extra_orders"`
}

type OrderValueStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ValidationReport is the aggregate view over one generation run.
type ValidationReport struct {
	TotalOrderEvents           int                 `json:"total_order_events"`
	TotalCourierEvents         int                 `json:"total_courier_events"`
	OrderEventBreakdown        map[string]CountPct `json:"order_event_breakdown"`
	CourierEventBreakdown      map[string]CountPct `json:"courier_event_breakdown"`
	DuplicatesInjected         FeedCounts          `json:"duplicates_injected"`
	LateEventsInjected         FeedCounts          `json:"late_events_injected"`
	MissingStepOrders          int                 `json:"missing_step_orders"`
	ImpossibleDurationOrders   int                 `json:"impossible_duration_orders"`
	MidDeliveryOfflineCouriers int                 `json:"mid_delivery_offline_couriers"`
	FraudClustersInjected      int                 `json:"fraud_clusters_injected"`
	FraudClusterOrderEvents    int                 `json:"fraud_cluster_order_events"`
	ZoneSurge                  *ZoneSurgeReport    `json:"zone_surge"`
	OrderValueStats            OrderValueStats     `json:"order_value_stats"`
	OrdersPerZone              map[string]CountPct `json:"orders_per_zone"`
	CouriersPerZone            map[string]int      `json:"couriers_per_zone"`
	OrdersPerHour              map[string]int      `json:"orders_per_hour"`
	DataQualityWarnings        []string            `json:"data_quality_warnings"`
	Config                     *Config             `json:"config"`
}
