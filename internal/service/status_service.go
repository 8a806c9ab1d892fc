package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
)

type ActorRole string

const (
	RoleShopper ActorRole = "shopper"
	RoleSeller  ActorRole = "seller"
)

// Actor identifies who is attempting a status change. Identity comes from the
// calling layer and is trusted as-is.
type Actor struct {
	ID   string
	Role ActorRole
}

// StatusService governs the fulfillment pipeline
// Ordered -> Accepted -> Shipped -> Near Hub -> Delivered, plus the shopper
// cancellation exception.
type StatusService struct {
	orders port.OrderRepository

	// strict enforces forward-only seller transitions. When false any known
	// status is accepted, matching the legacy behavior.
	strict bool
}

func NewStatus(orders port.OrderRepository, strict bool) *StatusService {
	return &StatusService{orders: orders, strict: strict}
}

// Advance moves an order to target on behalf of actor. Sellers pass the
// ownership gate first; shoppers may only cancel a not-yet-accepted order.
func (s *StatusService) Advance(ctx context.Context, actor Actor, orderID uuid.UUID, target domain.OrderStatus) (domain.Order, domain.Notification, error) {
	var o domain.Order

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return o, statusNotice(actor, domain.NotificationDanger, "Order not found"),
			fmt.Errorf("orders.GetOrder: %w", err)
	}

	switch actor.Role {
	case RoleShopper:
		if err := checkShopperTransition(order, actor.ID, target); err != nil {
			return o, statusNotice(actor, domain.NotificationDanger, "Failed to cancel order"), err
		}
	case RoleSeller:
		if err := s.checkSellerTransition(order, actor.ID, target); err != nil {
			return o, statusNotice(actor, domain.NotificationDanger, "You cannot update this order"), err
		}
	default:
		return o, statusNotice(actor, domain.NotificationDanger, "You cannot update this order"),
			fmt.Errorf("unknown actor role %q: %w", actor.Role, domain.ErrForbidden)
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, target); err != nil {
		return o, statusNotice(actor, domain.NotificationDanger, "Failed to update order"),
			fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	updated, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return o, statusNotice(actor, domain.NotificationDanger, "Failed to update order"),
			fmt.Errorf("orders.GetOrder: %w", err)
	}

	return updated, statusNotice(actor, domain.NotificationSuccess,
		fmt.Sprintf("Order status updated to %s", target)), nil
}

// checkShopperTransition allows exactly one shopper move: Ordered -> Cancelled
// on the shopper's own order.
func checkShopperTransition(order domain.Order, shopperID string, target domain.OrderStatus) error {
	// A shopper cannot see orders that are not theirs
	if order.OwnerID != shopperID {
		return fmt.Errorf("order[%s]: %w", order.ID, domain.ErrNotFound)
	}

	if target != domain.OrderStatusCancelled {
		return fmt.Errorf("shopper may only cancel: %w", domain.ErrInvalidTransition)
	}

	if order.Status != domain.OrderStatusOrdered {
		return fmt.Errorf("cannot cancel order in status %q: %w", order.Status, domain.ErrInvalidTransition)
	}

	return nil
}

// checkSellerTransition is the multi-seller authorization gate followed by the
// pipeline check. Ownership is recomputed from the order's snapshotted lines
// on every attempt, never cached.
func (s *StatusService) checkSellerTransition(order domain.Order, sellerID string, target domain.OrderStatus) error {
	if !order.OwnedBySeller(sellerID) {
		return fmt.Errorf("seller[%s] owns no line of order[%s]: %w", sellerID, order.ID, domain.ErrForbidden)
	}

	if _, err := domain.ToOrderStatus(string(target)); err != nil {
		return fmt.Errorf("target status %q: %w", target, domain.ErrInvalidTransition)
	}

	if target == domain.OrderStatusCancelled {
		return fmt.Errorf("sellers cannot cancel: %w", domain.ErrInvalidTransition)
	}

	if s.strict && !target.ForwardOf(order.Status) {
		return fmt.Errorf("%q does not follow %q: %w", target, order.Status, domain.ErrInvalidTransition)
	}

	return nil
}

func statusNotice(actor Actor, kind domain.NotificationKind, message string) domain.Notification {
	return domain.Notification{
		ForActor: actor.ID,
		Kind:     kind,
		Message:  message,
	}
}
