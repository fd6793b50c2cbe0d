package orders

import (
	"context"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"
)

// ItemReader is the slice of the catalog the validator needs.
type ItemReader interface {
	GetItemsByID(ctx context.Context, ids []int) ([]models.Item, error)
}

type CheckoutResult struct {
	Valid     bool              `json:"valid"`
	Corrected []models.CartLine `json:"corrected_lines,omitempty"`
}

// CheckoutValidator re-derives current price and stock for cart lines at
// checkout time. A read-verify step, not a lock: it catches the race
// between cart assembly and submission and forces re-confirmation instead
// of charging a stale price.
type CheckoutValidator struct {
	items ItemReader
}

func NewCheckoutValidator(items ItemReader) *CheckoutValidator {
	return &CheckoutValidator{items: items}
}

func (v *CheckoutValidator) Validate(ctx context.Context, lines []models.CartLine) (CheckoutResult, error) {
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}

	items, err := v.items.GetItemsByID(ctx, ids)
	if err != nil {
		return CheckoutResult{}, err
	}

	byID := make(map[int]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	result := CheckoutResult{Valid: true}
	for _, line := range lines {
		item, ok := byID[line.ItemID]
		if !ok {
			return CheckoutResult{}, apperrors.NotFound("item", line.ItemID)
		}
		if !item.ForSale {
			return CheckoutResult{}, apperrors.Validation("item %d is not for sale", line.ItemID)
		}

		if item.Price != line.Price || item.StockQuantity < line.Quantity {
			result.Valid = false
			corrected := line
			corrected.Price = item.Price
			if item.StockQuantity < line.Quantity {
				corrected.Quantity = item.StockQuantity
			}
			result.Corrected = append(result.Corrected, corrected)
		}
	}

	return result, nil
}
