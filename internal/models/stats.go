package models

// Stats is the single mutable accumulator threaded by reference through
// every generation stage. Generators only write to it; it is read once by
// the validation reporter.
type Stats struct {
	OrdersPerZone   map[string]int
	OrdersPerHour   map[int]int
	CouriersPerZone map[string]int
	OrderValues     []float64

	DuplicatesInjected map[string]int // keyed by feed name
	LateEvents         map[string]int // keyed by feed name

	MissingStepOrders        int
	ImpossibleDurationOrders int
	MidDeliveryOffline       int
	FraudClustersInjected    int
	FraudOrderEvents         int
	SurgeOrderEvents         int

	ZoneSurgeZone   string
	ZoneSurgeHour   int
	ZoneSurgeMinute int
	ZoneSurgeOrders int
}

func NewStats() *Stats {
	return &Stats{
		OrdersPerZone:      make(map[string]int),
		OrdersPerHour:      make(map[int]int),
		CouriersPerZone:    make(map[string]int),
		DuplicatesInjected: make(map[string]int),
		LateEvents:         make(map[string]int),
	}
}
