package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
)

// TableService handles dining table management
type TableService struct {
	tableRepo repository.TableRepository
	userRepo  repository.UserRepository
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, userRepo repository.UserRepository) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		userRepo:  userRepo,
	}
}

// CreateTable adds a table to the floor plan
func (s *TableService) CreateTable(ctx context.Context, number, capacity int) (*entity.Table, error) {
	if number <= 0 {
		return nil, apperror.NewBadRequestError("Table number must be positive")
	}
	if capacity <= 0 {
		return nil, apperror.NewBadRequestError("Table capacity must be positive")
	}

	existing, err := s.tableRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A table with this number already exists")
	}

	table := &entity.Table{
		Number:   number,
		Capacity: capacity,
		Status:   enum.TableStatusAvailable,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// GetTable retrieves a table by ID
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// ListTables lists tables, optionally filtered by status
func (s *TableService) ListTables(ctx context.Context, status *enum.TableStatus) ([]entity.Table, error) {
	return s.tableRepo.List(ctx, status)
}

// UpdateTableStatus sets a table's floor status directly
func (s *TableService) UpdateTableStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if err := s.tableRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	table.Status = status
	return table, nil
}

// AssignWaiter assigns a waiter to a table's section
func (s *TableService) AssignWaiter(ctx context.Context, tableID, waiterID uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	waiter, err := s.userRepo.GetByID(ctx, waiterID)
	if err != nil {
		return nil, err
	}
	if waiter == nil {
		return nil, apperror.NewNotFoundError("Waiter")
	}
	if waiter.Role != entity.RoleWaiter && waiter.Role != entity.RoleManager {
		return nil, apperror.NewBadRequestError("Staff member cannot be assigned to tables")
	}

	table.WaiterID = &waiterID
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable removes a table from the floor plan
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}
	if table.Status == enum.TableStatusOccupied {
		return apperror.NewConflictError("Occupied tables cannot be deleted")
	}
	return s.tableRepo.Delete(ctx, id)
}
