package utils

import (
	"fmt"
	"math"

	"equipme-backend/internal/domain"
)

// ItemTotalCents computes the cost of one cart item:
// effective price * rental length * quantity, in cents.
//
// The effective price is the override captured when the catalog price changed
// after addition, falling back to the snapshot taken at add time. Pure
// function, no side effects.
func ItemTotalCents(item *domain.CartItem) (int32, error) {
	price := item.EffectivePriceCents()

	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be a positive integer, got %d", domain.ErrInvalidPricing, price)
	}
	if item.RentalLength <= 0 {
		return 0, fmt.Errorf("%w: rental length must be a positive integer, got %d", domain.ErrInvalidPricing, item.RentalLength)
	}
	if item.Quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be a positive integer, got %d", domain.ErrInvalidPricing, item.Quantity)
	}

	// Multiply in int64; the factors are int32 so the product cannot wrap.
	total := int64(price) * int64(item.RentalLength) * int64(item.Quantity)
	if total > math.MaxInt32 {
		return 0, fmt.Errorf("%w: item total %d cents is not representable", domain.ErrInvalidPricing, total)
	}
	return int32(total), nil
}

// CartTotalCents sums ItemTotalCents over the items whose agreement status is
// both-accepted. Items with no agreement, or with a non-confirmed agreement,
// contribute zero. statusByItem maps cart item id to its agreement status.
func CartTotalCents(items []domain.CartItem, statusByItem map[int32]domain.AgreementStatus) (int32, error) {
	var total int64
	for i := range items {
		if statusByItem[items[i].ID] != domain.AgreementStatusBothAccepted {
			continue
		}
		cost, err := ItemTotalCents(&items[i])
		if err != nil {
			return 0, err
		}
		total += int64(cost)
		if total > math.MaxInt32 {
			return 0, fmt.Errorf("%w: cart total %d cents is not representable", domain.ErrInvalidPricing, total)
		}
	}
	return int32(total), nil
}
