package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/oauth"
	"github.com/tablewise/tablewise-api/pkg/utils"
)

// AuthService handles staff authentication
type AuthService struct {
	userRepo     repository.UserRepository
	jwtManager   *utils.JWTManager
	oauthService *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, oauthService *oauth.GoogleOAuthService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		oauthService: oauthService,
	}
}

// TokenPair contains access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult bundles the signed-in user with their tokens
type AuthResult struct {
	User   *entity.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// Login authenticates a staff member with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.Password == "" || !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// GetGoogleAuthURL returns the Google consent URL for staff sign-in
func (s *AuthService) GetGoogleAuthURL(state string) (string, error) {
	if !s.oauthService.IsConfigured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.oauthService.GetAuthURL(state), nil
}

// HandleGoogleCallback completes the Google sign-in flow. Only existing staff
// accounts may sign in this way; an unknown Google email is rejected rather
// than auto-provisioned.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*AuthResult, error) {
	if !s.oauthService.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	token, err := s.oauthService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	info, err := s.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	if !info.VerifiedEmail {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewAppError(403, "No staff account exists for this Google account")
		}
		// Link the Google identity on first sign-in
		user.GoogleID = &info.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if !user.Active {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// GetCurrentUser loads the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.NewPersistenceError()
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.NewPersistenceError()
	}

	return &AuthResult{
		User: user,
		Tokens: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
