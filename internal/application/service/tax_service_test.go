package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/apperror"
)

func newTaxServiceForTest() (*TaxService, *fakeTaxPeriodRepo, *fakeVATReturnRepo, *fakeOrderRepo, *fakePurchaseRepo) {
	periodRepo := newFakeTaxPeriodRepo()
	returnRepo := newFakeVATReturnRepo()
	orderRepo := newFakeOrderRepo()
	purchaseRepo := newFakePurchaseRepo()
	svc := NewTaxService(periodRepo, returnRepo, orderRepo, purchaseRepo, fakeTxManager{}, "GB123456789", "Test Bistro")
	return svc, periodRepo, returnRepo, orderRepo, purchaseRepo
}

func seedTaxedOrder(t *testing.T, repo *fakeOrderRepo, taxAmount float64, createdAt time.Time, status enum.OrderStatus) {
	t.Helper()
	order := &entity.Order{
		InvoiceNo: "INV-" + uuid.New().String()[:8],
		Status:    status,
		TaxAmount: taxAmount,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), order))
}

func seedApprovedPurchase(t *testing.T, repo *fakePurchaseRepo, vatAmount float64, date time.Time) {
	t.Helper()
	purchase := &entity.Purchase{
		SupplierName: "Produce Co",
		Date:         date,
		VATAmount:    vatAmount,
		Status:       enum.PurchaseStatusApproved,
	}
	require.NoError(t, repo.Create(context.Background(), purchase))
}

func TestCreatePeriodBounds(t *testing.T) {
	svc, _, _, _, _ := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), period.StartDate)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), period.EndDate)
	assert.Equal(t, enum.TaxPeriodStatusOpen, period.Status)
}

func TestCreatePeriodRejectsDuplicate(t *testing.T) {
	svc, _, _, _, _ := newTaxServiceForTest()

	_, err := svc.CreatePeriod(context.Background(), 2026, 1)
	require.NoError(t, err)
	_, err = svc.CreatePeriod(context.Background(), 2026, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = svc.CreatePeriod(context.Background(), 2026, 5)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestGenerateReturnComputesFigures(t *testing.T) {
	svc, _, _, orderRepo, purchaseRepo := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 1)
	require.NoError(t, err)

	inPeriod := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	outOfPeriod := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedTaxedOrder(t, orderRepo, 100.004, inPeriod, enum.OrderStatusCompleted)
	seedTaxedOrder(t, orderRepo, 50.004, inPeriod, enum.OrderStatusCompleted)
	seedTaxedOrder(t, orderRepo, 40.00, inPeriod, enum.OrderStatusCancelled)
	seedTaxedOrder(t, orderRepo, 70.00, outOfPeriod, enum.OrderStatusCompleted)
	seedApprovedPurchase(t, purchaseRepo, 30.00, inPeriod)
	seedApprovedPurchase(t, purchaseRepo, 99.00, outOfPeriod)

	ret, err := svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)

	// 100.004 + 50.004 = 150.008, rounded once to 150.01; cancelled and
	// out-of-period records excluded
	assert.InDelta(t, 150.01, ret.OutputVAT, 0.001)
	assert.InDelta(t, 30.00, ret.InputVAT, 0.001)
	assert.InDelta(t, 120.01, ret.VATDue, 0.001)
}

func TestGenerateReturnIsIdempotent(t *testing.T) {
	svc, _, returnRepo, orderRepo, _ := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 1)
	require.NoError(t, err)
	inPeriod := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	seedTaxedOrder(t, orderRepo, 20.00, inPeriod, enum.OrderStatusCompleted)

	first, err := svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)

	// New trade arrives, regeneration refreshes the same row
	seedTaxedOrder(t, orderRepo, 10.00, inPeriod, enum.OrderStatusCompleted)
	second, err := svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 30.00, second.OutputVAT, 0.001)

	stored, _ := returnRepo.GetByPeriodID(context.Background(), period.ID)
	assert.InDelta(t, 30.00, stored.OutputVAT, 0.001)
}

func TestVATDueCanBeNegative(t *testing.T) {
	svc, _, _, orderRepo, purchaseRepo := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 3)
	require.NoError(t, err)
	inPeriod := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedTaxedOrder(t, orderRepo, 10.00, inPeriod, enum.OrderStatusCompleted)
	seedApprovedPurchase(t, purchaseRepo, 45.00, inPeriod)

	ret, err := svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)
	assert.InDelta(t, -35.00, ret.VATDue, 0.001)
}

func TestSubmitFreezesPeriod(t *testing.T) {
	svc, periodRepo, _, orderRepo, _ := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 1)
	require.NoError(t, err)
	seedTaxedOrder(t, orderRepo, 20.00, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), enum.OrderStatusCompleted)

	// Submit requires a generated return
	_, err = svc.SubmitReturn(context.Background(), period.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)

	ret, err := svc.SubmitReturn(context.Background(), period.ID)
	require.NoError(t, err)
	assert.NotNil(t, ret.SubmittedAt)

	stored, _ := periodRepo.GetByID(context.Background(), period.ID)
	assert.Equal(t, enum.TaxPeriodStatusSubmitted, stored.Status)

	// Frozen both ways
	_, err = svc.GenerateReturn(context.Background(), period.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	_, err = svc.SubmitReturn(context.Background(), period.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestExportReturnCSV(t *testing.T) {
	svc, _, _, orderRepo, _ := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 1)
	require.NoError(t, err)
	seedTaxedOrder(t, orderRepo, 150.01, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), enum.OrderStatusCompleted)
	_, err = svc.GenerateReturn(context.Background(), period.ID)
	require.NoError(t, err)

	data, filename, err := svc.ExportReturnCSV(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, "vat-return-2026-Q1.csv", filename)

	csv := string(data)
	assert.Contains(t, csv, "VAT Return,Test Bistro,2026 Q1")
	assert.Contains(t, csv, "Period,2026-01-01,2026-03-31")
	assert.Contains(t, csv, "Box Number,Description,Amount")
	assert.Contains(t, csv, "1,VAT due on sales (output VAT),150.01")
	assert.Contains(t, csv, "4,VAT reclaimed on purchases (input VAT),0.00")
	assert.Contains(t, csv, "5,Net VAT due,150.01")
	assert.Contains(t, csv, "Registration Number,GB123456789")
	// Not yet submitted, timestamp stays blank
	assert.Contains(t, csv, "Submitted At,")

	_, err = svc.SubmitReturn(context.Background(), period.ID)
	require.NoError(t, err)

	data, _, err = svc.ExportReturnCSV(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Regexp(t, `Submitted At,\d{4}-\d{2}-\d{2}T`, string(data))
}

func TestExportReturnRequiresGeneratedReturn(t *testing.T) {
	svc, _, _, _, _ := newTaxServiceForTest()

	period, err := svc.CreatePeriod(context.Background(), 2026, 4)
	require.NoError(t, err)

	_, err = svc.ExportReturn(context.Background(), period.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.ExportReturn(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
