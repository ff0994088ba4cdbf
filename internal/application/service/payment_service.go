package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/vat"
)

// PaymentService handles payment recording, refunds and gateway webhooks
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	tableRepo   repository.TableRepository
	tx          repository.TxManager
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	tableRepo repository.TableRepository,
	tx repository.TxManager,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		tableRepo:   tableRepo,
		tx:          tx,
	}
}

// RecordPaymentInput represents a manually recorded payment
type RecordPaymentInput struct {
	OrderID uuid.UUID
	Amount  float64
	Method  enum.PaymentMethod
}

// RecordPayment records a cash or terminal payment against an order. The order
// row is locked for the duration so the balance check and the insert see a
// consistent view even when two tills settle the same order at once.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	payment := &entity.Payment{
		OrderID: input.OrderID,
		Amount:  vat.Round2(input.Amount),
		Method:  input.Method,
		Status:  enum.PaymentStatusCompleted,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancelled {
			return apperror.NewConflictError("Cancelled orders cannot accept payments")
		}

		payments, err := s.paymentRepo.ListByOrderID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		remaining := remainingBalance(order, payments)
		if payment.Amount > remaining+vat.Tolerance {
			return apperror.NewConflictError(fmt.Sprintf(
				"Payment of %.2f exceeds remaining balance of %.2f", payment.Amount, remaining))
		}

		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return s.settleIfPaid(ctx, order, append(payments, *payment))
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// RefundPayment reverses a completed payment. Card and gateway payments keep
// their row with status refunded for the audit trail; a refunded cash payment
// leaves the drawer, so its row is removed outright.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}
		if payment.Status != enum.PaymentStatusCompleted {
			return apperror.NewBadRequestError("Only completed payments can be refunded")
		}

		if payment.Method == enum.PaymentMethodCash {
			return s.paymentRepo.Delete(ctx, paymentID)
		}
		payment.Status = enum.PaymentStatusRefunded
		return s.paymentRepo.Update(ctx, payment)
	})
}

// ListPayments lists payments for an order
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.ListByOrderID(ctx, orderID)
}

// GatewayEvent is a payment notification delivered by the card gateway webhook
type GatewayEvent struct {
	TransactionID string    `json:"transaction_id" binding:"required"`
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required"`
	Status        string    `json:"status" binding:"required"`
	CardType      string    `json:"card_type"`
	Last4         string    `json:"last4"`
	AuthCode      string    `json:"auth_code"`
	Timestamp     time.Time `json:"timestamp"`
}

// gatewayStatusMap translates gateway statuses to internal payment statuses
var gatewayStatusMap = map[string]enum.PaymentStatus{
	"authorized": enum.PaymentStatusPending,
	"completed":  enum.PaymentStatusCompleted,
	"failed":     enum.PaymentStatusFailed,
	"refunded":   enum.PaymentStatusRefunded,
}

// ProcessGatewayEvent applies a gateway notification, keyed by transaction ID
// so redelivered events are idempotent. A first-seen transaction creates the
// payment row; later events only move its status. Settlement is re-evaluated
// after every event because a single webhook may push the order over the line.
func (s *PaymentService) ProcessGatewayEvent(ctx context.Context, event *GatewayEvent) (*entity.Payment, error) {
	status, ok := gatewayStatusMap[event.Status]
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown gateway status: %s", event.Status))
	}
	if event.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	meta, _ := json.Marshal(map[string]string{
		"card_type": event.CardType,
		"last4":     event.Last4,
		"auth_code": event.AuthCode,
	})
	metaStr := string(meta)

	var payment *entity.Payment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, event.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		payment, err = s.paymentRepo.GetByTransactionID(ctx, event.TransactionID)
		if err != nil {
			return err
		}

		payments, err := s.paymentRepo.ListByOrderID(ctx, event.OrderID)
		if err != nil {
			return err
		}

		if payment == nil {
			amount := vat.Round2(event.Amount)
			if status != enum.PaymentStatusFailed {
				remaining := remainingBalance(order, payments)
				if amount > remaining+vat.Tolerance {
					return apperror.NewConflictError(fmt.Sprintf(
						"Payment of %.2f exceeds remaining balance of %.2f", amount, remaining))
				}
			}
			payment = &entity.Payment{
				OrderID:       event.OrderID,
				Amount:        amount,
				Method:        enum.PaymentMethodCard,
				Status:        status,
				TransactionID: &event.TransactionID,
				GatewayMeta:   &metaStr,
			}
			if err := s.paymentRepo.Create(ctx, payment); err != nil {
				return err
			}
			payments = append(payments, *payment)
		} else {
			payment.Status = status
			payment.GatewayMeta = &metaStr
			if err := s.paymentRepo.Update(ctx, payment); err != nil {
				return err
			}
			for i := range payments {
				if payments[i].ID == payment.ID {
					payments[i] = *payment
				}
			}
		}

		return s.settleIfPaid(ctx, order, payments)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// settleIfPaid marks the order completed and releases its table once the sum
// of settled payments covers the total. Refunded card payments still count:
// the money was taken for this order even if it later went back. Must run
// inside the transaction that locked the order row.
func (s *PaymentService) settleIfPaid(ctx context.Context, order *entity.Order, payments []entity.Payment) error {
	if order.Status.IsTerminal() {
		return nil
	}

	var paid float64
	for _, p := range payments {
		if p.Status == enum.PaymentStatusCompleted || p.Status == enum.PaymentStatusRefunded {
			paid += p.Amount
		}
	}
	if vat.Round2(paid) < order.Total-vat.Tolerance {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusCompleted); err != nil {
		return err
	}
	if order.TableID != nil {
		return s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusAvailable)
	}
	return nil
}

// remainingBalance is the order total minus every payment that has not
// outright failed. Pending card authorizations hold their slice of the
// balance so a concurrent cash payment cannot double-settle.
func remainingBalance(order *entity.Order, payments []entity.Payment) float64 {
	var committed float64
	for _, p := range payments {
		if p.Status != enum.PaymentStatusFailed {
			committed += p.Amount
		}
	}
	return vat.Round2(order.Total - committed)
}
