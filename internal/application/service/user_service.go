package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/pagination"
	"github.com/tablewise/tablewise-api/pkg/utils"
)

var validRoles = map[string]bool{
	entity.RoleAdmin:   true,
	entity.RoleManager: true,
	entity.RoleWaiter:  true,
	entity.RoleKitchen: true,
	entity.RoleCashier: true,
}

// UserService handles staff account management
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create staff account input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// CreateUser creates a new staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if !validRoles[input.Role] {
		return nil, apperror.NewBadRequestError("Invalid role: " + input.Role)
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A staff account with this email already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewPersistenceError()
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashed,
		Role:      input.Role,
		Active:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a staff account by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists staff accounts with filtering
func (s *UserService) ListUsers(ctx context.Context, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// UpdateUserInput represents the update staff account input. Nil fields are
// left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
	Active    *bool
}

// UpdateUser updates a staff account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !validRoles[*input.Role] {
			return nil, apperror.NewBadRequestError("Invalid role: " + *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword sets a new password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if user.Password != "" && !utils.CheckPasswordHash(current, user.Password) {
		return apperror.ErrInvalidCredentials
	}
	if len(next) < 8 {
		return apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(next)
	if err != nil {
		return apperror.NewPersistenceError()
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// DeleteUser soft deletes a staff account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}
