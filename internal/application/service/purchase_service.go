package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/pagination"
	"github.com/tablewise/tablewise-api/pkg/vat"
)

// PurchaseService handles supplier purchase records
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{purchaseRepo: purchaseRepo}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	SupplierName string
	InvoiceRef   string
	Date         time.Time
	NetAmount    float64
	VATAmount    float64
	RecordedByID *uuid.UUID
}

// CreatePurchase records a supplier purchase. The gross amount is derived from
// net plus VAT; the caller supplies the VAT figure from the supplier invoice
// rather than having it recomputed, because suppliers apply mixed rates.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if input.NetAmount < 0 {
		return nil, apperror.NewBadRequestError("Net amount must not be negative")
	}
	if input.VATAmount < 0 {
		return nil, apperror.NewBadRequestError("VAT amount must not be negative")
	}
	if input.SupplierName == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}

	purchase := &entity.Purchase{
		SupplierName: input.SupplierName,
		InvoiceRef:   input.InvoiceRef,
		Date:         input.Date,
		NetAmount:    vat.Round2(input.NetAmount),
		VATAmount:    vat.Round2(input.VATAmount),
		GrossAmount:  vat.Round2(input.NetAmount + input.VATAmount),
		Status:       enum.PurchaseStatusPending,
		RecordedByID: input.RecordedByID,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ApprovePurchase approves a pending purchase, making its VAT reclaimable
func (s *PurchaseService) ApprovePurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return s.setStatus(ctx, id, enum.PurchaseStatusApproved)
}

// CancelPurchase cancels a pending purchase
func (s *PurchaseService) CancelPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return s.setStatus(ctx, id, enum.PurchaseStatusCancelled)
}

func (s *PurchaseService) setStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status != enum.PurchaseStatusPending {
		return nil, apperror.NewConflictError("Only pending purchases can change status")
	}

	purchase.Status = status
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase soft deletes a purchase record
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.PurchaseStatusApproved {
		return apperror.NewConflictError("Approved purchases cannot be deleted")
	}
	return s.purchaseRepo.Delete(ctx, id)
}
