package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ShippingAddressDTO carries a shipping destination over the API
type ShippingAddressDTO struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Address1 string `json:"address1" binding:"required,max=200"`
	Address2 string `json:"address2" binding:"max=200"`
	City     string `json:"city" binding:"required,max=100"`
	State    string `json:"state" binding:"max=100"`
	Zip      string `json:"zip" binding:"required,max=20"`
	Country  string `json:"country" binding:"required,max=100"`
}

// CreateOrderRequest places an order from the buyer's basket
type CreateOrderRequest struct {
	ShippingAddress ShippingAddressDTO `json:"shipping_address" binding:"required"`
	DeliveryOption  string             `json:"delivery_option" binding:"omitempty,deliveryoption"`
	SaveAddress     bool               `json:"save_address"`
	// Email receives the confirmation mail for anonymous buyers; signed-in
	// buyers use their account email.
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateStatusRequest sets an order's status (admin operation)
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse is one snapshotted order line
type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	PictureURL  string    `json:"picture_url"`
	Price       int64     `json:"price"`
	Quantity    int64     `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	BuyerID         string              `json:"buyer_id"`
	ShippingAddress ShippingAddressDTO  `json:"shipping_address"`
	OrderDate       time.Time           `json:"order_date"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        int64               `json:"subtotal"`
	DeliveryFee     int64               `json:"delivery_fee"`
	DeliveryOption  string              `json:"delivery_option"`
	Total           int64               `json:"total"`
	Status          string              `json:"status"`
	PaymentIntentID string              `json:"payment_intent_id,omitempty"`
}

// InstallmentLine is one month of an installment schedule
type InstallmentLine struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// InstallmentSchedule is the amortization plan for paying off an order
type InstallmentSchedule struct {
	OrderID        uuid.UUID         `json:"order_id"`
	Months         int               `json:"months"`
	AnnualRate     decimal.Decimal   `json:"annual_rate"`
	Principal      decimal.Decimal   `json:"principal"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	TotalPayable   decimal.Decimal   `json:"total_payable"`
	Lines          []InstallmentLine `json:"lines"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   o.Items[i].ProductID,
			ProductName: o.Items[i].ProductName,
			PictureURL:  o.Items[i].PictureURL,
			Price:       o.Items[i].Price,
			Quantity:    o.Items[i].Quantity,
		}
	}
	return OrderResponse{
		ID:      o.ID,
		BuyerID: o.BuyerID,
		ShippingAddress: ShippingAddressDTO{
			FullName: o.ShippingAddress.FullName,
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			State:    o.ShippingAddress.State,
			Zip:      o.ShippingAddress.Zip,
			Country:  o.ShippingAddress.Country,
		},
		OrderDate:       o.OrderDate,
		Items:           items,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		DeliveryOption:  string(o.DeliveryOption),
		Total:           o.Total(),
		Status:          string(o.Status),
		PaymentIntentID: o.PaymentIntentID,
	}
}

func (a ShippingAddressDTO) toDomain() order.ShippingAddress {
	return order.ShippingAddress{
		FullName: a.FullName,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
	}
}
