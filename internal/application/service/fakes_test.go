package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
)

// In-memory fakes of the repository interfaces. They keep entities in maps
// and apply the same filtering the SQL implementations do, so the services
// can be exercised without a database.

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	out := make([]entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) SumTaxBetween(_ context.Context, start, end time.Time) (float64, error) {
	var sum float64
	for _, o := range r.orders {
		if o.Status == enum.OrderStatusCancelled {
			continue
		}
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		sum += o.TaxAmount
	}
	return sum, nil
}

type fakeOrderItemRepo struct {
	items map[uuid.UUID]*entity.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{items: make(map[uuid.UUID]*entity.OrderItem)}
}

func (r *fakeOrderItemRepo) CreateBatch(_ context.Context, items []entity.OrderItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		cp := items[i]
		r.items[cp.ID] = &cp
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	if it, ok := r.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeOrderItemRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderItemStatus) error {
	if it, ok := r.items[id]; ok {
		it.Status = status
	}
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	if p, ok := r.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeTableRepo struct {
	tables map[uuid.UUID]*entity.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uuid.UUID]*entity.Table)}
}

func (r *fakeTableRepo) Create(_ context.Context, table *entity.Table) error {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	cp := *table
	r.tables[table.ID] = &cp
	return nil
}

func (r *fakeTableRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Table, error) {
	if t, ok := r.tables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTableRepo) GetByNumber(_ context.Context, number int) (*entity.Table, error) {
	for _, t := range r.tables {
		if t.Number == number {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTableRepo) Update(_ context.Context, table *entity.Table) error {
	cp := *table
	r.tables[table.ID] = &cp
	return nil
}

func (r *fakeTableRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.TableStatus) error {
	if t, ok := r.tables[id]; ok {
		t.Status = status
	}
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tables, id)
	return nil
}

func (r *fakeTableRepo) List(_ context.Context, status *enum.TableStatus) ([]entity.Table, error) {
	var out []entity.Table
	for _, t := range r.tables {
		if status == nil || t.Status == *status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTableRepo) FindCandidates(_ context.Context, minCapacity int) ([]entity.Table, error) {
	var out []entity.Table
	for _, t := range r.tables {
		if (t.Status == enum.TableStatusAvailable || t.Status == enum.TableStatusReserved) && t.Capacity >= minCapacity {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (r *fakeTableRepo) CountWithCapacity(_ context.Context, minCapacity int) (int64, error) {
	var count int64
	for _, t := range r.tables {
		if t.Capacity >= minCapacity {
			count++
		}
	}
	return count, nil
}

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*entity.Reservation)}
}

func (r *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	cp := *reservation
	r.reservations[reservation.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if res, ok := r.reservations[id]; ok {
		cp := *res
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, reservation *entity.Reservation) error {
	cp := *reservation
	r.reservations[reservation.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) List(_ context.Context, _ *repository.ReservationFilterParams) ([]entity.Reservation, int64, error) {
	var out []entity.Reservation
	for _, res := range r.reservations {
		out = append(out, *res)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReservationRepo) ConflictingTableIDs(_ context.Context, from, to time.Time) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, res := range r.reservations {
		if res.TableID == nil {
			continue
		}
		if res.Status != enum.ReservationStatusPending && res.Status != enum.ReservationStatusConfirmed {
			continue
		}
		if res.ReservationTime.Before(from) || res.ReservationTime.After(to) {
			continue
		}
		out = append(out, *res.TableID)
	}
	return out, nil
}

type fakeMenuItemRepo struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newFakeMenuItemRepo() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: make(map[uuid.UUID]*entity.MenuItem)}
}

func (r *fakeMenuItemRepo) Create(_ context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeMenuItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	if it, ok := r.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMenuItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if it, ok := r.items[id]; ok && !seen[id] {
			out = append(out, *it)
			seen[id] = true
		}
	}
	return out, nil
}

func (r *fakeMenuItemRepo) GetBySlug(_ context.Context, slug string) (*entity.MenuItem, error) {
	for _, it := range r.items {
		if it.Slug == slug {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMenuItemRepo) Update(_ context.Context, item *entity.MenuItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeMenuItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeMenuItemRepo) List(_ context.Context, categoryID *uuid.UUID, availableOnly bool) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, it := range r.items {
		if categoryID != nil && it.CategoryID != *categoryID {
			continue
		}
		if availableOnly && !it.Available {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

type fakeTaxPeriodRepo struct {
	periods map[uuid.UUID]*entity.TaxPeriod
}

func newFakeTaxPeriodRepo() *fakeTaxPeriodRepo {
	return &fakeTaxPeriodRepo{periods: make(map[uuid.UUID]*entity.TaxPeriod)}
}

func (r *fakeTaxPeriodRepo) Create(_ context.Context, period *entity.TaxPeriod) error {
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	cp := *period
	r.periods[period.ID] = &cp
	return nil
}

func (r *fakeTaxPeriodRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.TaxPeriod, error) {
	if p, ok := r.periods[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTaxPeriodRepo) GetByYearQuarter(_ context.Context, year, quarter int) (*entity.TaxPeriod, error) {
	for _, p := range r.periods {
		if p.Year == year && p.Quarter == quarter {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTaxPeriodRepo) Update(_ context.Context, period *entity.TaxPeriod) error {
	cp := *period
	r.periods[period.ID] = &cp
	return nil
}

func (r *fakeTaxPeriodRepo) List(_ context.Context, year *int) ([]entity.TaxPeriod, error) {
	var out []entity.TaxPeriod
	for _, p := range r.periods {
		if year == nil || p.Year == *year {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeVATReturnRepo struct {
	returns map[uuid.UUID]*entity.VATReturn
}

func newFakeVATReturnRepo() *fakeVATReturnRepo {
	return &fakeVATReturnRepo{returns: make(map[uuid.UUID]*entity.VATReturn)}
}

func (r *fakeVATReturnRepo) Create(_ context.Context, ret *entity.VATReturn) error {
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeVATReturnRepo) GetByPeriodID(_ context.Context, periodID uuid.UUID) (*entity.VATReturn, error) {
	for _, ret := range r.returns {
		if ret.TaxPeriodID == periodID {
			cp := *ret
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVATReturnRepo) Update(_ context.Context, ret *entity.VATReturn) error {
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*entity.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*entity.Purchase)}
}

func (r *fakePurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	cp := *purchase
	r.purchases[purchase.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Purchase, error) {
	if p, ok := r.purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePurchaseRepo) Update(_ context.Context, purchase *entity.Purchase) error {
	cp := *purchase
	r.purchases[purchase.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.purchases, id)
	return nil
}

func (r *fakePurchaseRepo) List(_ context.Context, _ *repository.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var out []entity.Purchase
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePurchaseRepo) SumVATBetween(_ context.Context, start, end time.Time) (float64, error) {
	var sum float64
	for _, p := range r.purchases {
		if p.Status != enum.PurchaseStatusApproved {
			continue
		}
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		sum += p.VATAmount
	}
	return sum, nil
}
