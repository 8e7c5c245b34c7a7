package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/MhiretKiros/TTMS-sub002/internal/config"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, *utils.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)

	// Admin-only account management.
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, userID string, role models.Role) error
	DeleteUser(ctx context.Context, userID string) error
}

type authService struct {
	userRepo interfaces.UserRepository
	config   *config.Config
	logger   *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, cfg *config.Config, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		config:   cfg,
		logger:   log,
	}
}

func (s *authService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if !user.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", user.Role)
	}
	// Registration is open, so the admin role is off limits here. Admins
	// are made by promoting an existing account through the role update.
	if user.Role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be created through registration", workflow.ErrPermissionDenied)
	}
	if len(password) < utils.PasswordMinLength {
		return nil, fmt.Errorf("password must be at least %d characters", utils.PasswordMinLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID.Hex(),
		"username": user.Username,
		"role":     user.Role,
	}).Info("User registered")

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, *utils.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf(utils.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf(utils.ErrInvalidCredentials)
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Username, user.FullName, string(user.Role), s.config.JWT.Secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("username", user.Username).Info("User logged in")
	return user, tokens, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	return utils.RefreshAccessToken(refreshToken, s.config.JWT.Secret)
}

func (s *authService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *authService) UpdateUserRole(ctx context.Context, userID string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userID)
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	s.logger.WithUserID(id).WithField("role", role).Info("User role updated")
	return nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userID)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithUserID(id).Info("User deleted")
	return nil
}
