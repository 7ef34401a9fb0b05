package service

import (
	"context"
	"errors"
	"os"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	// Strict role check: this surface is admin only.
	if user.Role != entity.UserRoleAdmin {
		s.logger.Warn("AUTH", "Non-admin login attempt on admin surface", map[string]interface{}{
			"email": req.Email,
		})
		return nil, errors.New("invalid credentials")
	}
	if user.Status != entity.UserStatusActive {
		return nil, errors.New("account is not active")
	}
	if user.PasswordHash == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "Admin login", map[string]interface{}{
		"email": user.Email,
	})

	return &dto.AdminLoginResponse{
		Token:    signed,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}
