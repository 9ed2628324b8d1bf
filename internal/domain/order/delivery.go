package order

import "github.com/lewisgroup/storefront/internal/domain/shared"

// DeliveryOption selects how the order is fulfilled
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
	DeliveryPickup   DeliveryOption = "pickup"
)

// Delivery fee table in minor units. Standard shipping is waived once the
// subtotal crosses the free-shipping threshold, even when chosen explicitly.
const (
	FeeStandard           int64 = 500
	FeeExpress            int64 = 1200
	FreeShippingThreshold int64 = 10000
)

// ParseDeliveryOption validates a delivery option string; empty defaults
// to standard shipping
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	switch DeliveryOption(s) {
	case DeliveryStandard, DeliveryExpress, DeliveryPickup:
		return DeliveryOption(s), nil
	case "":
		return DeliveryStandard, nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Delivery option must be standard, express, or pickup")
	}
}

// DeliveryFeeFor returns the fee charged for the option at the given subtotal
func DeliveryFeeFor(option DeliveryOption, subtotal int64) int64 {
	switch option {
	case DeliveryExpress:
		return FeeExpress
	case DeliveryPickup:
		return 0
	default:
		if subtotal > FreeShippingThreshold {
			return 0
		}
		return FeeStandard
	}
}
