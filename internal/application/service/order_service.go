package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/pagination"
	"github.com/tablewise/tablewise-api/pkg/vat"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	menuItemRepo  repository.MenuItemRepository
	tableRepo     repository.TableRepository
	tx            repository.TxManager
	vatRate       float64
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	menuItemRepo repository.MenuItemRepository,
	tableRepo repository.TableRepository,
	tx repository.TxManager,
	vatRate float64,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		menuItemRepo:  menuItemRepo,
		tableRepo:     tableRepo,
		tx:            tx,
		vatRate:       vatRate,
	}
}

// OrderLineInput represents one requested line in a new order
type OrderLineInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	TableID       *uuid.UUID
	WaiterID      *uuid.UUID
	Items         []OrderLineInput
	ServiceCharge float64
	Discount      float64
	Notes         string
}

// CreateOrder creates a new order with its line items, pricing each line from
// the menu and computing the totals once at creation.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}
	if input.ServiceCharge < 0 {
		return nil, apperror.NewBadRequestError("Service charge must not be negative")
	}
	if input.Discount < 0 {
		return nil, apperror.NewBadRequestError("Discount must not be negative")
	}

	if input.TableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *input.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, apperror.NewNotFoundError("Table")
		}
	}

	// Batch fetch all menu items in one query
	menuItemIDs := make([]uuid.UUID, len(input.Items))
	for i, line := range input.Items {
		menuItemIDs[i] = line.MenuItemID
	}
	menuItems, err := s.menuItemRepo.GetByIDs(ctx, menuItemIDs)
	if err != nil {
		return nil, err
	}
	menuItemMap := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		menuItemMap[menuItems[i].ID] = &menuItems[i]
	}

	var subtotal float64
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		menuItem, exists := menuItemMap[line.MenuItemID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Menu item %s", line.MenuItemID))
		}
		if !menuItem.Available {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("%s is not available", menuItem.Name))
		}
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		lineTotal := vat.Round2(menuItem.Price * float64(line.Quantity))
		subtotal += lineTotal

		orderItems = append(orderItems, entity.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Total:      lineTotal,
			Status:     enum.OrderItemStatusPending,
		})
	}

	subtotal = vat.Round2(subtotal)
	taxAmount, err := vat.Calculate(subtotal, s.vatRate)
	if err != nil {
		return nil, err
	}
	total := vat.Round2(subtotal + taxAmount + input.ServiceCharge - input.Discount)
	if total < 0 {
		return nil, apperror.NewBadRequestError("Discount exceeds order value")
	}

	order := &entity.Order{
		InvoiceNo:     fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		TableID:       input.TableID,
		WaiterID:      input.WaiterID,
		Status:        enum.OrderStatusPending,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		ServiceCharge: vat.Round2(input.ServiceCharge),
		Discount:      vat.Round2(input.Discount),
		Total:         total,
		Notes:         input.Notes,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.CreateBatch(ctx, orderItems); err != nil {
			return err
		}
		if input.TableID != nil {
			return s.tableRepo.UpdateStatus(ctx, *input.TableID, enum.TableStatusOccupied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order with its items and payments
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateItemStatus writes a line item's kitchen status and recomputes the
// order's status from the full set of sibling items. Any item transition is
// accepted, including regressions; the kitchen is the source of truth. The
// recomputation always scans every sibling rather than patching incrementally
// so the order status cannot drift.
func (s *OrderService) UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status enum.OrderItemStatus) (*entity.Order, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		item, err := s.orderItemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Order item")
		}

		if err := s.orderItemRepo.UpdateStatus(ctx, itemID, status); err != nil {
			return err
		}

		// Terminal orders keep their status; the item record still updates.
		if order.Status.IsTerminal() {
			return nil
		}

		items, err := s.orderItemRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(ctx, orderID, DeriveOrderStatus(items))
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, orderID)
}

// CancelOrder cancels an order and releases its table
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancelled {
			return apperror.NewBadRequestError("Order is already cancelled")
		}
		if order.Status == enum.OrderStatusCompleted {
			return apperror.NewBadRequestError("Completed orders cannot be cancelled")
		}

		if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled); err != nil {
			return err
		}
		if order.TableID != nil {
			return s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusAvailable)
		}
		return nil
	})
}

// DeriveOrderStatus computes an order's kitchen status from the statuses of
// all its line items:
//
//	all served                    -> served
//	all at least ready            -> ready
//	any preparing                 -> preparing
//	otherwise                     -> pending
func DeriveOrderStatus(items []entity.OrderItem) enum.OrderStatus {
	if len(items) == 0 {
		return enum.OrderStatusPending
	}

	allServed := true
	allReadyOrServed := true
	anyPreparing := false

	for _, item := range items {
		if item.Status != enum.OrderItemStatusServed {
			allServed = false
		}
		if item.Status != enum.OrderItemStatusReady && item.Status != enum.OrderItemStatusServed {
			allReadyOrServed = false
		}
		if item.Status == enum.OrderItemStatusPreparing {
			anyPreparing = true
		}
	}

	switch {
	case allServed:
		return enum.OrderStatusServed
	case allReadyOrServed:
		return enum.OrderStatusReady
	case anyPreparing:
		return enum.OrderStatusPreparing
	default:
		return enum.OrderStatusPending
	}
}
