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

func newPaymentServiceForTest() (*PaymentService, *fakeOrderRepo, *fakePaymentRepo, *fakeTableRepo) {
	orderRepo := newFakeOrderRepo()
	paymentRepo := newFakePaymentRepo()
	tableRepo := newFakeTableRepo()
	svc := NewPaymentService(paymentRepo, orderRepo, tableRepo, fakeTxManager{})
	return svc, orderRepo, paymentRepo, tableRepo
}

func seedOrder(t *testing.T, repo *fakeOrderRepo, total float64) *entity.Order {
	t.Helper()
	order := &entity.Order{
		InvoiceNo: "INV-" + uuid.New().String()[:8],
		Status:    enum.OrderStatusServed,
		Total:     total,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestRecordPaymentWithinBalance(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 50.00)

	payment, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  50.00,
		Method:  enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCompleted, payment.Status)

	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 50.00)

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  50.02,
		Method:  enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRecordPaymentToleratesPennyShortfall(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 50.00)

	// 49.99 against 50.00 settles within tolerance
	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  49.99,
		Method:  enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
}

func TestSplitPaymentsSettleOnce(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 60.00)

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 40.00, Method: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusServed, got.Status)

	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 20.00, Method: enum.PaymentMethodCard,
	})
	require.NoError(t, err)
	got, _ = orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)

	// Fully paid order accepts nothing further
	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 1.00, Method: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRecordPaymentRejectsCancelledOrder(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 30.00)
	require.NoError(t, orderRepo.UpdateStatus(context.Background(), order.ID, enum.OrderStatusCancelled))

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 30.00, Method: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRefundCardKeepsRow(t *testing.T) {
	svc, orderRepo, paymentRepo, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 25.00)

	payment, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 25.00, Method: enum.PaymentMethodCard,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RefundPayment(context.Background(), payment.ID))
	got, _ := paymentRepo.GetByID(context.Background(), payment.ID)
	require.NotNil(t, got)
	assert.Equal(t, enum.PaymentStatusRefunded, got.Status)

	// Refunded payments cannot be refunded again
	err = svc.RefundPayment(context.Background(), payment.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRefundCashDeletesRow(t *testing.T) {
	svc, orderRepo, paymentRepo, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 25.00)

	payment, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 25.00, Method: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RefundPayment(context.Background(), payment.ID))
	got, _ := paymentRepo.GetByID(context.Background(), payment.ID)
	assert.Nil(t, got)
}

func TestGatewayEventCreatesPayment(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 40.00)

	payment, err := svc.ProcessGatewayEvent(context.Background(), &GatewayEvent{
		TransactionID: "txn-100",
		OrderID:       order.ID,
		Amount:        40.00,
		Status:        "completed",
		CardType:      "visa",
		Last4:         "4242",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, enum.PaymentMethodCard, payment.Method)
	require.NotNil(t, payment.GatewayMeta)
	assert.Contains(t, *payment.GatewayMeta, "4242")

	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
}

func TestGatewayEventRedeliveryIsIdempotent(t *testing.T) {
	svc, orderRepo, paymentRepo, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 40.00)

	event := &GatewayEvent{
		TransactionID: "txn-dup",
		OrderID:       order.ID,
		Amount:        40.00,
		Status:        "completed",
	}
	first, err := svc.ProcessGatewayEvent(context.Background(), event)
	require.NoError(t, err)
	second, err := svc.ProcessGatewayEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	payments, _ := paymentRepo.ListByOrderID(context.Background(), order.ID)
	assert.Len(t, payments, 1)
}

func TestGatewayEventAuthorizedThenCompleted(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 40.00)

	payment, err := svc.ProcessGatewayEvent(context.Background(), &GatewayEvent{
		TransactionID: "txn-auth",
		OrderID:       order.ID,
		Amount:        40.00,
		Status:        "authorized",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPending, payment.Status)
	got, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusServed, got.Status)

	// A pending authorization reserves the balance
	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 40.00, Method: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	payment, err = svc.ProcessGatewayEvent(context.Background(), &GatewayEvent{
		TransactionID: "txn-auth",
		OrderID:       order.ID,
		Amount:        40.00,
		Status:        "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCompleted, payment.Status)
	got, _ = orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
}

func TestGatewayEventUnknownStatus(t *testing.T) {
	svc, orderRepo, _, _ := newPaymentServiceForTest()
	order := seedOrder(t, orderRepo, 40.00)

	_, err := svc.ProcessGatewayEvent(context.Background(), &GatewayEvent{
		TransactionID: "txn-bad",
		OrderID:       order.ID,
		Amount:        40.00,
		Status:        "settled",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSettlementReleasesTable(t *testing.T) {
	svc, orderRepo, _, tableRepo := newPaymentServiceForTest()

	table := &entity.Table{Number: 3, Capacity: 4, Status: enum.TableStatusOccupied}
	require.NoError(t, tableRepo.Create(context.Background(), table))

	order := &entity.Order{
		InvoiceNo: "INV-tbl",
		TableID:   &table.ID,
		Status:    enum.OrderStatusServed,
		Total:     20.00,
	}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID, Amount: 20.00, Method: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, _ := tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusAvailable, got.Status)
}
