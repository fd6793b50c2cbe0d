package orders

import (
	"context"
	"testing"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckoutAcceptsMatchingCart(t *testing.T) {
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1}).Return([]models.Item{
		{ID: 1, Price: 5.00, StockQuantity: 3, ForSale: true},
	}, nil)

	validator := NewCheckoutValidator(mockItems)

	result, err := validator.Validate(context.Background(), []models.CartLine{
		{ItemID: 1, Quantity: 2, Price: 5.00},
	})

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Corrected)
}

func TestCheckoutCorrectsDriftedPrice(t *testing.T) {
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1}).Return([]models.Item{
		{ID: 1, Price: 5.50, StockQuantity: 3, ForSale: true},
	}, nil)

	validator := NewCheckoutValidator(mockItems)

	result, err := validator.Validate(context.Background(), []models.CartLine{
		{ItemID: 1, Quantity: 2, Price: 5.00},
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.Corrected, 1)
	assert.Equal(t, 5.50, result.Corrected[0].Price)
	assert.Equal(t, 2.0, result.Corrected[0].Quantity, "quantity untouched when stock suffices")
}

func TestCheckoutCorrectsShortStock(t *testing.T) {
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1}).Return([]models.Item{
		{ID: 1, Price: 5.00, StockQuantity: 1, ForSale: true},
	}, nil)

	validator := NewCheckoutValidator(mockItems)

	result, err := validator.Validate(context.Background(), []models.CartLine{
		{ItemID: 1, Quantity: 2, Price: 5.00},
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 1.0, result.Corrected[0].Quantity)
}

func TestCheckoutRejectsUnknownItem(t *testing.T) {
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{99}).Return([]models.Item{}, nil)

	validator := NewCheckoutValidator(mockItems)

	_, err := validator.Validate(context.Background(), []models.CartLine{
		{ItemID: 99, Quantity: 1, Price: 1.00},
	})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCheckoutRejectsNotForSaleItem(t *testing.T) {
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1}).Return([]models.Item{
		{ID: 1, Price: 5.00, StockQuantity: 3, ForSale: false},
	}, nil)

	validator := NewCheckoutValidator(mockItems)

	_, err := validator.Validate(context.Background(), []models.CartLine{
		{ItemID: 1, Quantity: 1, Price: 5.00},
	})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}
