package models

const (
	OrderEventPlaced    = "ORDER_PLACED"
	OrderEventAssigned  = "COURIER_ASSIGNED"
	OrderEventPickedUp  = "PICKED_UP"
	OrderEventDelivered = "DELIVERED"
	OrderEventCancelled = "CANCELLED"

	CourierEventOnline     = "ONLINE"
	CourierEventAvailable  = "AVAILABLE"
	CourierEventPickingUp  = "PICKING_UP"
	CourierEventDelivering = "DELIVERING"
	CourierEventOffline    = "OFFLINE"

	AppVersionStable = "1.0.0"
	AppVersionBeta   = "1.1.0"

	ReasonCustomerCancelled = "customer_cancelled"

	FeedOrderEvents   = "order_events"
	FeedCourierEvents = "courier_events"
)

// CancellationReasons is the pool a non-forced cancellation draws from.
var CancellationReasons = []string{
	ReasonCustomerCancelled,
	"restaurant_closed",
	"no_courier_available",
	"payment_failed",
	"item_unavailable",
}
