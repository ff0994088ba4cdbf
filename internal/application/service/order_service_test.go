package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/apperror"
)

func newOrderServiceForTest() (*OrderService, *fakeOrderRepo, *fakeOrderItemRepo, *fakeMenuItemRepo, *fakeTableRepo) {
	orderRepo := newFakeOrderRepo()
	itemRepo := newFakeOrderItemRepo()
	menuRepo := newFakeMenuItemRepo()
	tableRepo := newFakeTableRepo()
	svc := NewOrderService(orderRepo, itemRepo, menuRepo, tableRepo, fakeTxManager{}, 20.0)
	return svc, orderRepo, itemRepo, menuRepo, tableRepo
}

func seedMenuItem(t *testing.T, repo *fakeMenuItemRepo, name string, price float64) *entity.MenuItem {
	t.Helper()
	item := &entity.MenuItem{
		CategoryID: uuid.New(),
		Name:       name,
		Slug:       name,
		Price:      price,
		Available:  true,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, _, _, menuRepo, _ := newOrderServiceForTest()
	burger := seedMenuItem(t, menuRepo, "burger", 12.50)
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderLineInput{
			{MenuItemID: burger.ID, Quantity: 2},
			{MenuItemID: cola.ID, Quantity: 1},
		},
		ServiceCharge: 2.00,
		Discount:      1.50,
	})
	require.NoError(t, err)

	// subtotal 27.50, VAT 5.50 at 20%, +2.00 service -1.50 discount
	assert.InDelta(t, 27.50, order.Subtotal, 0.001)
	assert.InDelta(t, 5.50, order.TaxAmount, 0.001)
	assert.InDelta(t, 33.50, order.Total, 0.001)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.InvoiceNo)
}

func TestCreateOrderRejectsEmptyAndUnknownItems(t *testing.T) {
	svc, _, _, menuRepo, _ := newOrderServiceForTest()

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	unavailable := seedMenuItem(t, menuRepo, "soup", 4.00)
	unavailable.Available = false
	require.NoError(t, menuRepo.Update(context.Background(), unavailable))
	_, err = svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: unavailable.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrderRejectsExcessiveDiscount(t *testing.T) {
	svc, _, _, menuRepo, _ := newOrderServiceForTest()
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items:    []OrderLineInput{{MenuItemID: cola.ID, Quantity: 1}},
		Discount: 100,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrderOccupiesTable(t *testing.T) {
	svc, _, _, menuRepo, tableRepo := newOrderServiceForTest()
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	table := &entity.Table{Number: 4, Capacity: 4, Status: enum.TableStatusAvailable}
	require.NoError(t, tableRepo.Create(context.Background(), table))

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		TableID: &table.ID,
		Items:   []OrderLineInput{{MenuItemID: cola.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	got, err := tableRepo.GetByID(context.Background(), table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusOccupied, got.Status)
}

func TestDeriveOrderStatus(t *testing.T) {
	mk := func(statuses ...enum.OrderItemStatus) []entity.OrderItem {
		items := make([]entity.OrderItem, len(statuses))
		for i, s := range statuses {
			items[i].Status = s
		}
		return items
	}

	tests := []struct {
		name  string
		items []entity.OrderItem
		want  enum.OrderStatus
	}{
		{"no items", nil, enum.OrderStatusPending},
		{"all pending", mk(enum.OrderItemStatusPending, enum.OrderItemStatusPending), enum.OrderStatusPending},
		{"one preparing", mk(enum.OrderItemStatusPending, enum.OrderItemStatusPreparing), enum.OrderStatusPreparing},
		{"preparing beats ready", mk(enum.OrderItemStatusReady, enum.OrderItemStatusPreparing), enum.OrderStatusPreparing},
		{"all ready", mk(enum.OrderItemStatusReady, enum.OrderItemStatusReady), enum.OrderStatusReady},
		{"ready and served", mk(enum.OrderItemStatusReady, enum.OrderItemStatusServed), enum.OrderStatusReady},
		{"all served", mk(enum.OrderItemStatusServed, enum.OrderItemStatusServed), enum.OrderStatusServed},
		{"served with pending", mk(enum.OrderItemStatusServed, enum.OrderItemStatusPending), enum.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOrderStatus(tt.items))
		})
	}
}

func TestUpdateItemStatusRecomputesOrder(t *testing.T) {
	svc, orderRepo, itemRepo, menuRepo, _ := newOrderServiceForTest()
	burger := seedMenuItem(t, menuRepo, "burger", 12.50)
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderLineInput{
			{MenuItemID: burger.ID, Quantity: 1},
			{MenuItemID: cola.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	items, err := itemRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = svc.UpdateItemStatus(context.Background(), order.ID, items[0].ID, enum.OrderItemStatusPreparing)
	require.NoError(t, err)
	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPreparing, got.Status)

	_, err = svc.UpdateItemStatus(context.Background(), order.ID, items[0].ID, enum.OrderItemStatusServed)
	require.NoError(t, err)
	_, err = svc.UpdateItemStatus(context.Background(), order.ID, items[1].ID, enum.OrderItemStatusServed)
	require.NoError(t, err)
	got, _ = orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusServed, got.Status)

	// Regressions are allowed and recompute downward
	_, err = svc.UpdateItemStatus(context.Background(), order.ID, items[1].ID, enum.OrderItemStatusPreparing)
	require.NoError(t, err)
	got, _ = orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPreparing, got.Status)
}

func TestUpdateItemStatusKeepsTerminalOrder(t *testing.T) {
	svc, orderRepo, itemRepo, menuRepo, _ := newOrderServiceForTest()
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: cola.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, orderRepo.UpdateStatus(context.Background(), order.ID, enum.OrderStatusCompleted))

	items, _ := itemRepo.GetByOrderID(context.Background(), order.ID)
	_, err = svc.UpdateItemStatus(context.Background(), order.ID, items[0].ID, enum.OrderItemStatusServed)
	require.NoError(t, err)

	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
	item, _ := itemRepo.GetByID(context.Background(), items[0].ID)
	assert.Equal(t, enum.OrderItemStatusServed, item.Status)
}

func TestCancelOrder(t *testing.T) {
	svc, orderRepo, _, menuRepo, tableRepo := newOrderServiceForTest()
	cola := seedMenuItem(t, menuRepo, "cola", 2.50)

	table := &entity.Table{Number: 7, Capacity: 2, Status: enum.TableStatusAvailable}
	require.NoError(t, tableRepo.Create(context.Background(), table))

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		TableID: &table.ID,
		Items:   []OrderLineInput{{MenuItemID: cola.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), order.ID))
	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCancelled, got.Status)
	tbl, _ := tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusAvailable, tbl.Status)

	// Second cancel fails
	err = svc.CancelOrder(context.Background(), order.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
