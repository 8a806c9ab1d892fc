package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the statusRanks map
const (
	OrderStatusOrdered   OrderStatus = "Ordered"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusNearHub   OrderStatus = "Near Hub"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// statusRanks orders the forward fulfillment pipeline. Cancelled sits outside
// the pipeline and is reachable only via shopper cancellation from Ordered.
var statusRanks = map[OrderStatus]int{
	OrderStatusOrdered:   0,
	OrderStatusAccepted:  1,
	OrderStatusShipped:   2,
	OrderStatusNearHub:   3,
	OrderStatusDelivered: 4,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := statusRanks[status]; ok {
		return status, nil
	}
	if status == OrderStatusCancelled {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusOrdered,
		OrderStatusAccepted,
		OrderStatusShipped,
		OrderStatusNearHub,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// Progress maps a status to a display percentage. Pure display concern,
// never persisted.
func (s OrderStatus) Progress() int {
	switch s {
	case OrderStatusOrdered:
		return 0
	case OrderStatusAccepted:
		return 25
	case OrderStatusShipped:
		return 50
	case OrderStatusNearHub:
		return 75
	case OrderStatusDelivered:
		return 100
	default:
		return 0
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ForwardOf reports whether s is strictly later than other in the
// fulfillment pipeline. False if either status is outside the pipeline.
func (s OrderStatus) ForwardOf(other OrderStatus) bool {
	sRank, ok := statusRanks[s]
	if !ok {
		return false
	}
	otherRank, ok := statusRanks[other]
	if !ok {
		return false
	}
	return sRank > otherRank
}
