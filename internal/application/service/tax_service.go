package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/vat"
)

// TaxService handles tax periods and VAT returns
type TaxService struct {
	periodRepo    repository.TaxPeriodRepository
	returnRepo    repository.VATReturnRepository
	orderRepo     repository.OrderRepository
	purchaseRepo  repository.PurchaseRepository
	tx            repository.TxManager
	vatRegNo      string
	restaurantStr string
}

// NewTaxService creates a new tax service
func NewTaxService(
	periodRepo repository.TaxPeriodRepository,
	returnRepo repository.VATReturnRepository,
	orderRepo repository.OrderRepository,
	purchaseRepo repository.PurchaseRepository,
	tx repository.TxManager,
	vatRegNo, restaurantName string,
) *TaxService {
	return &TaxService{
		periodRepo:    periodRepo,
		returnRepo:    returnRepo,
		orderRepo:     orderRepo,
		purchaseRepo:  purchaseRepo,
		tx:            tx,
		vatRegNo:      vatRegNo,
		restaurantStr: restaurantName,
	}
}

// CreatePeriod opens a tax period for the given calendar quarter
func (s *TaxService) CreatePeriod(ctx context.Context, year, quarter int) (*entity.TaxPeriod, error) {
	if quarter < 1 || quarter > 4 {
		return nil, apperror.NewBadRequestError("Quarter must be between 1 and 4")
	}
	if year < 2000 || year > 2100 {
		return nil, apperror.NewBadRequestError("Year is out of range")
	}

	existing, err := s.periodRepo.GetByYearQuarter(ctx, year, quarter)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Tax period %d Q%d already exists", year, quarter))
	}

	start, end := quarterBounds(year, quarter)
	period := &entity.TaxPeriod{
		Year:      year,
		Quarter:   quarter,
		StartDate: start,
		EndDate:   end,
		Status:    enum.TaxPeriodStatusOpen,
	}
	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// GetPeriod retrieves a tax period with its return, if any
func (s *TaxService) GetPeriod(ctx context.Context, id uuid.UUID) (*entity.TaxPeriod, error) {
	period, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, apperror.NewNotFoundError("Tax period")
	}
	return period, nil
}

// ListPeriods lists tax periods, optionally restricted to a year
func (s *TaxService) ListPeriods(ctx context.Context, year *int) ([]entity.TaxPeriod, error) {
	return s.periodRepo.List(ctx, year)
}

// GenerateReturn computes the VAT return for a period from the sales and
// purchase records inside its date range. Output and input VAT are each
// rounded independently before the difference is taken, matching how the
// figures appear on the filed return. Regenerating an open period's return
// overwrites the stored figures; a submitted period is frozen.
func (s *TaxService) GenerateReturn(ctx context.Context, periodID uuid.UUID) (*entity.VATReturn, error) {
	var ret *entity.VATReturn
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.periodRepo.GetByID(ctx, periodID)
		if err != nil {
			return err
		}
		if period == nil {
			return apperror.NewNotFoundError("Tax period")
		}
		if period.Status == enum.TaxPeriodStatusSubmitted {
			return apperror.NewConflictError("Submitted periods cannot be regenerated")
		}

		// EndDate is a date column; extend to end of day so the last day's
		// orders are included.
		end := period.EndDate.Add(24*time.Hour - time.Nanosecond)

		outputRaw, err := s.orderRepo.SumTaxBetween(ctx, period.StartDate, end)
		if err != nil {
			return err
		}
		inputRaw, err := s.purchaseRepo.SumVATBetween(ctx, period.StartDate, end)
		if err != nil {
			return err
		}

		outputVAT := vat.Round2(outputRaw)
		inputVAT := vat.Round2(inputRaw)
		vatDue := vat.Round2(outputVAT - inputVAT)

		ret, err = s.returnRepo.GetByPeriodID(ctx, periodID)
		if err != nil {
			return err
		}
		if ret == nil {
			ret = &entity.VATReturn{
				TaxPeriodID: periodID,
				OutputVAT:   outputVAT,
				InputVAT:    inputVAT,
				VATDue:      vatDue,
			}
			return s.returnRepo.Create(ctx, ret)
		}

		ret.OutputVAT = outputVAT
		ret.InputVAT = inputVAT
		ret.VATDue = vatDue
		return s.returnRepo.Update(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GetReturn retrieves the VAT return for a period
func (s *TaxService) GetReturn(ctx context.Context, periodID uuid.UUID) (*entity.VATReturn, error) {
	ret, err := s.returnRepo.GetByPeriodID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("VAT return")
	}
	return ret, nil
}

// SubmitReturn marks a period's return as filed. Submission is one way: the
// figures freeze and further regeneration is refused.
func (s *TaxService) SubmitReturn(ctx context.Context, periodID uuid.UUID) (*entity.VATReturn, error) {
	var ret *entity.VATReturn
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.periodRepo.GetByID(ctx, periodID)
		if err != nil {
			return err
		}
		if period == nil {
			return apperror.NewNotFoundError("Tax period")
		}
		if period.Status == enum.TaxPeriodStatusSubmitted {
			return apperror.NewConflictError("Tax period is already submitted")
		}

		ret, err = s.returnRepo.GetByPeriodID(ctx, periodID)
		if err != nil {
			return err
		}
		if ret == nil {
			return apperror.NewBadRequestError("Generate the return before submitting")
		}

		now := time.Now()
		ret.SubmittedAt = &now
		if err := s.returnRepo.Update(ctx, ret); err != nil {
			return err
		}

		period.Status = enum.TaxPeriodStatusSubmitted
		return s.periodRepo.Update(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// VATReturnExport is the flattened return used by the export endpoints
type VATReturnExport struct {
	RegistrationNo string     `json:"registration_no"`
	BusinessName   string     `json:"business_name"`
	Year           int        `json:"year"`
	Quarter        int        `json:"quarter"`
	PeriodStart    string     `json:"period_start"`
	PeriodEnd      string     `json:"period_end"`
	OutputVAT      float64    `json:"output_vat"`
	InputVAT       float64    `json:"input_vat"`
	VATDue         float64    `json:"vat_due"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
}

// ExportReturn builds the flattened export of a period's return
func (s *TaxService) ExportReturn(ctx context.Context, periodID uuid.UUID) (*VATReturnExport, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, apperror.NewNotFoundError("Tax period")
	}
	ret, err := s.returnRepo.GetByPeriodID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("VAT return")
	}

	return &VATReturnExport{
		RegistrationNo: s.vatRegNo,
		BusinessName:   s.restaurantStr,
		Year:           period.Year,
		Quarter:        period.Quarter,
		PeriodStart:    period.StartDate.Format("2006-01-02"),
		PeriodEnd:      period.EndDate.Format("2006-01-02"),
		OutputVAT:      ret.OutputVAT,
		InputVAT:       ret.InputVAT,
		VATDue:         ret.VATDue,
		Status:         period.Status.String(),
		SubmittedAt:    ret.SubmittedAt,
	}, nil
}

// ExportReturnCSV renders the return as a CSV document: a period header,
// then box-numbered amount lines, then the registration number and the
// submission timestamp (blank while the return is still open).
func (s *TaxService) ExportReturnCSV(ctx context.Context, periodID uuid.UUID) ([]byte, string, error) {
	export, err := s.ExportReturn(ctx, periodID)
	if err != nil {
		return nil, "", err
	}

	submittedAt := ""
	if export.SubmittedAt != nil {
		submittedAt = export.SubmittedAt.UTC().Format(time.RFC3339)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := [][]string{
		{"VAT Return", export.BusinessName, fmt.Sprintf("%d Q%d", export.Year, export.Quarter)},
		{"Period", export.PeriodStart, export.PeriodEnd},
		{"Box Number", "Description", "Amount"},
		{"1", "VAT due on sales (output VAT)", fmt.Sprintf("%.2f", export.OutputVAT)},
		{"4", "VAT reclaimed on purchases (input VAT)", fmt.Sprintf("%.2f", export.InputVAT)},
		{"5", "Net VAT due", fmt.Sprintf("%.2f", export.VATDue)},
		{"Registration Number", export.RegistrationNo},
		{"Submitted At", submittedAt},
	}
	if err := w.WriteAll(records); err != nil {
		return nil, "", apperror.NewPersistenceError()
	}

	filename := fmt.Sprintf("vat-return-%d-Q%d.csv", export.Year, export.Quarter)
	return buf.Bytes(), filename, nil
}

// quarterBounds returns the first and last day of a calendar quarter
func quarterBounds(year, quarter int) (time.Time, time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end
}
