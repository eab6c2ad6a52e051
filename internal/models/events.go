package models

import "time"

// OrderEvent is one record of the order lifecycle feed. Timestamps are
// epoch milliseconds; ProcessingTimestamp models pipeline ingestion lag.
type OrderEvent struct {
	EventID             string  `json:"event_id" parquet:"name=event_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID             string  `json:"order_id" parquet:"name=order_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventType           string  `json:"event_type" parquet:"name=event_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp           int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ProcessingTimestamp int64   `json:"processing_timestamp" parquet:"name=processing_timestamp,type=INT64"`
	CustomerID          string  `json:"customer_id" parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	RestaurantID        string  `json:"restaurant_id" parquet:"name=restaurant_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CourierID           string  `json:"courier_id,omitempty" parquet:"name=courier_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	ZoneID              string  `json:"zone_id" parquet:"name=zone_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderValue          float64 `json:"order_value" parquet:"name=order_value,type=DOUBLE"`
	PromoApplied        bool    `json:"promo_applied" parquet:"name=promo_applied,type=BOOLEAN"`
	CancellationReason  string  `json:"cancellation_reason,omitempty" parquet:"name=cancellation_reason,type=BYTE_ARRAY,convertedtype=UTF8"`
	IsDuplicate         bool    `json:"is_duplicate" parquet:"name=is_duplicate,type=BOOLEAN"`
	AppVersion          string  `json:"app_version" parquet:"name=app_version,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CourierEvent is one record of the courier status feed. SessionID groups
// every event of one shift; OrderID is set only while servicing an order.
type CourierEvent struct {
	EventID             string  `json:"event_id" parquet:"name=event_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CourierID           string  `json:"courier_id" parquet:"name=courier_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventType           string  `json:"event_type" parquet:"name=event_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp           int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ProcessingTimestamp int64   `json:"processing_timestamp" parquet:"name=processing_timestamp,type=INT64"`
	ZoneID              string  `json:"zone_id" parquet:"name=zone_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Latitude            float64 `json:"latitude" parquet:"name=latitude,type=DOUBLE"`
	Longitude           float64 `json:"longitude" parquet:"name=longitude,type=DOUBLE"`
	OrderID             string  `json:"order_id,omitempty" parquet:"name=order_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	SessionID           string  `json:"session_id" parquet:"name=session_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	IsDuplicate         bool    `json:"is_duplicate" parquet:"name=is_duplicate,type=BOOLEAN"`
	AppVersion          string  `json:"app_version" parquet:"name=app_version,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// Placement is a sampled order request prior to lifecycle event generation.
// It is discarded once converted into events.
type Placement struct {
	PlacedAt    time.Time
	CustomerID  string
	Restaurant  *Restaurant
	OrderValue  float64
	Promo       bool
	ForceCancel bool
	IsFraud     bool
	IsSurge     bool
}

// DeliveryLogEntry joins a completed order to the courier event timeline.
type DeliveryLogEntry struct {
	OrderID     string
	ZoneID      string
	AssignedMs  int64
	PickupMs    int64
	DeliveredMs int64
}
