package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// ShippingAddress is the destination captured at checkout
type ShippingAddress struct {
	FullName string `gorm:"type:varchar(100)" json:"full_name"`
	Address1 string `gorm:"type:varchar(200)" json:"address1"`
	Address2 string `gorm:"type:varchar(200)" json:"address2"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	State    string `gorm:"type:varchar(100)" json:"state"`
	Zip      string `gorm:"type:varchar(20)" json:"zip"`
	Country  string `gorm:"type:varchar(100)" json:"country"`
}

// OrderItem is an immutable snapshot of a basket line at checkout time.
// Name, picture, and unit price are copied so later catalog edits do not
// rewrite order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	PictureURL  string    `gorm:"type:varchar(500)"`
	Price       int64     `gorm:"not null"`
	Quantity    int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseAggregateRoot
	BuyerID         string          `gorm:"type:varchar(100);not null;index"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	OrderDate       time.Time       `gorm:"not null;index"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        int64           `gorm:"not null"`
	DeliveryFee     int64           `gorm:"not null"`
	DeliveryOption  DeliveryOption  `gorm:"type:varchar(20);not null;default:'standard'"`
	Status          Status          `gorm:"type:varchar(30);not null;default:'Pending';index"`
	PaymentIntentID string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order from snapshotted items. The subtotal is
// derived from the items and the delivery fee from the fee table.
func NewOrder(buyerID string, address ShippingAddress, items []OrderItem, option DeliveryOption) (*Order, error) {
	if buyerID == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot place an order without items")
	}

	var subtotal int64
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be greater than zero")
		}
		subtotal += items[i].Price * items[i].Quantity
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		ShippingAddress:   address,
		OrderDate:         time.Now().UTC(),
		Items:             items,
		Subtotal:          subtotal,
		DeliveryFee:       DeliveryFeeFor(option, subtotal),
		DeliveryOption:    option,
		Status:            StatusPending,
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	return o, nil
}

// Total returns subtotal plus delivery fee
func (o *Order) Total() int64 {
	return o.Subtotal + o.DeliveryFee
}

// Cancel transitions the order to Cancelled. Orders already dispatched,
// delivered, returned, cancelled, or deleted conflict; in particular a
// second cancel must fail so stock is restored exactly once.
func (o *Order) Cancel() error {
	if !o.Status.CanCancel() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	o.Status = StatusCancelled
	o.touch()
	return nil
}

// MarkReturned transitions the order to Returned (admin refund). States
// that already restored stock, and deleted orders, conflict.
func (o *Order) MarkReturned() error {
	if o.Status.StockRestored() || o.Status == StatusDeleted {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot refund order in %s status", o.Status))
	}
	o.Status = StatusReturned
	o.touch()
	return nil
}

// UpdateStatus sets any valid status (admin operation)
func (o *Order) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid order status: %s", status))
	}
	o.Status = status
	o.touch()
	return nil
}

// SoftDelete tags the order as Deleted; the row is never removed
func (o *Order) SoftDelete() {
	o.Status = StatusDeleted
	o.touch()
}

// IsDeleted reports whether the order carries the Deleted tag
func (o *Order) IsDeleted() bool {
	return o.Status == StatusDeleted
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
