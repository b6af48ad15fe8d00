package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/brtdigital/remesa-backend/internal/utils"
	"github.com/brtdigital/remesa-backend/pkg/config"
)

// authService verifies credentials and issues signed tokens carrying the
// user's role.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("user is deactivated")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewValidationError("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.Principal, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, apperrors.NewForbiddenError("invalid or expired token")
	}
	return &models.Principal{
		UserID: claims.Subject,
		Role:   claims.Role,
	}, nil
}
