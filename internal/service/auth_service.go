package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/futsala/futsala-backend/internal/events"
	"github.com/futsala/futsala-backend/internal/models"
	"github.com/futsala/futsala-backend/internal/repository"
	"github.com/futsala/futsala-backend/pkg/rabbitmq"
	"github.com/futsala/futsala-backend/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPhoneTaken         = errors.New("phone number is already registered")
	ErrInvalidRole        = errors.New("invalid role provided")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *token.Manager
	publisher *rabbitmq.Publisher
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, publisher *rabbitmq.Publisher) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, publisher: publisher}
}

func (s *authService) Register(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error) {
	r := models.RoleCustomer
	if role != "" {
		r = models.Role(role)
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
		Role:         r,
		IsVerified:   false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique indexes close the gap between our existence checks and
		// the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, "", "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", "", fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	// The user must still exist; tokens outlive account deletion.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", ErrUserNotFound
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// ForgotPassword stores a hashed one-hour reset token and hands the raw token
// to the notification pipeline. The response to the caller never contains it.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	raw := uuid.NewString()
	sum := sha256.Sum256([]byte(raw))

	if err := s.userRepo.CreateResetToken(ctx, &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(events.PasswordReset, events.PasswordResetEvent{
			Email: user.Email,
			Token: raw,
		})
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}
