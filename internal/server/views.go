package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecarthub/marketcore/internal/domain"
)

type moneyView struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func toMoneyView(m domain.Money) moneyView {
	return moneyView{Amount: m.Amount, Currency: m.Currency.String()}
}

type cartLineView struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func toCartLineView(line domain.CartLine) cartLineView {
	return cartLineView{
		ID:        line.ID.String(),
		ProductID: line.ProductID.String(),
		Quantity:  line.Quantity,
	}
}

type pricedLineView struct {
	cartLineView

	ProductName string    `json:"product_name"`
	UnitPrice   moneyView `json:"unit_price"`
	LineTotal   moneyView `json:"line_total"`
}

type cartView struct {
	Lines []pricedLineView `json:"lines"`
	Total moneyView        `json:"total"`
}

func toCartView(totals domain.CartTotals) cartView {
	view := cartView{
		Lines: []pricedLineView{},
		Total: toMoneyView(totals.Total),
	}

	for _, line := range totals.Lines {
		view.Lines = append(view.Lines, pricedLineView{
			cartLineView: toCartLineView(line.CartLine),
			ProductName:  line.ProductName,
			UnitPrice:    toMoneyView(line.UnitPrice),
			LineTotal:    toMoneyView(line.LineTotal),
		})
	}

	return view
}

type orderLineView struct {
	ProductID string    `json:"product_id"`
	SellerID  string    `json:"seller_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice moneyView `json:"unit_price"`
}

type orderView struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Lines           []orderLineView `json:"lines"`
	Total           moneyView       `json:"total"`
	Status          string          `json:"status"`
	Progress        int             `json:"progress"`
	CanCancel       bool            `json:"can_cancel"`
	ShippingAddress string          `json:"shipping_address"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toOrderView(o domain.Order) orderView {
	view := orderView{
		ID:              o.ID.String(),
		OwnerID:         o.OwnerID,
		Lines:           []orderLineView{},
		Total:           toMoneyView(o.Total),
		Status:          string(o.Status),
		Progress:        o.Status.Progress(),
		CanCancel:       o.Status == domain.OrderStatusOrdered,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Email:           o.Email,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
	}

	for _, line := range o.Lines {
		view.Lines = append(view.Lines, orderLineView{
			ProductID: line.ProductID.String(),
			SellerID:  line.SellerID,
			Quantity:  line.Quantity,
			UnitPrice: toMoneyView(line.UnitPrice),
		})
	}

	return view
}

func toOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views
}

type notificationView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func toNotificationView(n domain.Notification) notificationView {
	return notificationView{Kind: string(n.Kind), Message: n.Message}
}
