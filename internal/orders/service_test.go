package orders

import (
	"context"
	"testing"
	"time"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order models.Order, lines []models.OrderLineItem) (int, error) {
	args := m.Called(ctx, order, lines)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPending(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPickedBy(ctx context.Context, staffID int) ([]models.Order, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

type MockProcessingRepository struct {
	mock.Mock
}

func (m *MockProcessingRepository) InsertRecord(ctx context.Context, orderID, staffID int) (*models.OrderProcessingRecord, error) {
	args := m.Called(ctx, orderID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderProcessingRecord), args.Error(1)
}

func (m *MockProcessingRepository) GetRecord(ctx context.Context, id int) (*models.OrderProcessingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderProcessingRecord), args.Error(1)
}

func (m *MockProcessingRepository) TransitionRecord(ctx context.Context, id int, from, to models.ProcessingStatus) (*models.OrderProcessingRecord, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderProcessingRecord), args.Error(1)
}

type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) GetItemsByID(ctx context.Context, ids []int) ([]models.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func newTestOrderService(orders *MockOrderRepository, processing *MockProcessingRepository, items *MockItemReader) *Service {
	return NewService(orders, processing, NewCheckoutValidator(items), AcceptAllGateway{})
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	service := newTestOrderService(new(MockOrderRepository), new(MockProcessingRepository), new(MockItemReader))

	_, err := service.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:        1,
		PaymentMethod: models.PaymentCash,
	})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateOrderRejectsPriceDrift(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1}).Return([]models.Item{
		{ID: 1, Price: 6.00, StockQuantity: 10, ForSale: true},
	}, nil)

	service := newTestOrderService(mockOrders, new(MockProcessingRepository), mockItems)

	_, err := service.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:        1,
		PaymentMethod: models.PaymentCard,
		Lines:         []models.CartLine{{ItemID: 1, Quantity: 2, Price: 5.00}},
	})

	var mismatch *apperrors.PriceMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Len(t, mismatch.Corrected, 1)
	assert.Equal(t, 6.00, mismatch.Corrected[0].Price)

	mockOrders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockItems := new(MockItemReader)
	mockItems.On("GetItemsByID", mock.Anything, []int{1, 2}).Return([]models.Item{
		{ID: 1, Price: 5.00, StockQuantity: 10, ForSale: true},
		{ID: 2, Price: 3.50, StockQuantity: 4, ForSale: true},
	}, nil)

	mockOrders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.Status == models.OrderPaid && o.TotalPrice == 13.50 && o.Reference != ""
	}), mock.MatchedBy(func(lines []models.OrderLineItem) bool {
		return len(lines) == 2 && lines[0].PriceAtPurchase == 5.00 && lines[1].PriceAtPurchase == 3.50
	})).Return(42, nil).Once()
	mockOrders.On("GetOrder", mock.Anything, 42).Return(&models.Order{ID: 42, Status: models.OrderPaid}, nil).Once()

	svc := newTestOrderService(mockOrders, new(MockProcessingRepository), mockItems)
	order, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:        1,
		PaymentMethod: models.PaymentCash,
		Lines: []models.CartLine{
			{ItemID: 1, Quantity: 2, Price: 5.00},
			{ItemID: 2, Quantity: 1, Price: 3.50},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	mockOrders.AssertExpectations(t)
}

func TestPickSucceedsOnce(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProcessing := new(MockProcessingRepository)

	mockOrders.On("GetOrder", mock.Anything, 42).Return(&models.Order{ID: 42, Status: models.OrderPaid}, nil)
	mockProcessing.On("InsertRecord", mock.Anything, 42, 7).Return(&models.OrderProcessingRecord{
		ID: 1, OrderID: 42, StaffID: 7, Status: models.ProcessingPicked, PickedAt: time.Now(),
	}, nil).Once()
	mockProcessing.On("InsertRecord", mock.Anything, 42, 9).Return(nil, apperrors.Conflict("order 42 is already picked")).Once()

	svc := newTestOrderService(mockOrders, mockProcessing, new(MockItemReader))

	record, err := svc.Pick(context.Background(), 42, 7)
	assert.NoError(t, err)
	assert.Equal(t, models.ProcessingPicked, record.Status)

	_, err = svc.Pick(context.Background(), 42, 9)
	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)

	mockProcessing.AssertExpectations(t)
}

func TestPickRequiresPaidOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetOrder", mock.Anything, 42).Return(&models.Order{ID: 42, Status: models.OrderPendingPayment}, nil)

	svc := newTestOrderService(mockOrders, new(MockProcessingRepository), new(MockItemReader))

	_, err := svc.Pick(context.Background(), 42, 7)
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestAdvanceRejectsSkippingInProgress(t *testing.T) {
	mockProcessing := new(MockProcessingRepository)
	mockProcessing.On("GetRecord", mock.Anything, 1).Return(&models.OrderProcessingRecord{
		ID: 1, Status: models.ProcessingPicked,
	}, nil)

	svc := newTestOrderService(new(MockOrderRepository), mockProcessing, new(MockItemReader))

	_, err := svc.Advance(context.Background(), 1, models.ProcessingCompleted)

	var transition *apperrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transition)
	assert.Equal(t, models.ProcessingPicked, transition.From)
	mockProcessing.AssertNotCalled(t, "TransitionRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceCompletesFromInProgress(t *testing.T) {
	now := time.Now()
	mockProcessing := new(MockProcessingRepository)
	mockProcessing.On("GetRecord", mock.Anything, 1).Return(&models.OrderProcessingRecord{
		ID: 1, Status: models.ProcessingInProgress,
	}, nil)
	mockProcessing.On("TransitionRecord", mock.Anything, 1, models.ProcessingInProgress, models.ProcessingCompleted).
		Return(&models.OrderProcessingRecord{
			ID: 1, Status: models.ProcessingCompleted, CompletedAt: &now,
		}, nil)

	svc := newTestOrderService(new(MockOrderRepository), mockProcessing, new(MockItemReader))

	record, err := svc.Advance(context.Background(), 1, models.ProcessingCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.ProcessingCompleted, record.Status)
	assert.NotNil(t, record.CompletedAt)
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	svc := newTestOrderService(new(MockOrderRepository), new(MockProcessingRepository), new(MockItemReader))

	_, err := svc.Advance(context.Background(), 1, models.ProcessingStatus("cancelled"))

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}
