package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// OTPStore abstracts the one-time-password cache.
type OTPStore interface {
	Put(ctx context.Context, username, code string, ttl time.Duration) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
}

// AuthService runs the OTP-then-password onboarding flow. Usernames are
// the local part of the corporate address; the configured domain is
// appended before any lookup.
type AuthService struct {
	employees repository.EmployeeRepository
	logins    repository.LoginRepository
	otp       OTPStore
	sender    mail.Sender
	tokens    *auth.TokenManager
	cfg       config.AuthConfig
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(
	employees repository.EmployeeRepository,
	logins repository.LoginRepository,
	otp OTPStore,
	sender mail.Sender,
	tokens *auth.TokenManager,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		employees: employees,
		logins:    logins,
		otp:       otp,
		sender:    sender,
		tokens:    tokens,
		cfg:       cfg,
		logger:    logger,
	}
}

// Session is an issued access token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	EmpID     string    `json:"empID"`
}

// FullEmail expands a bare username into the corporate address. Inputs
// that already carry a domain pass through unchanged.
func (s *AuthService) FullEmail(username string) string {
	if strings.Contains(username, "@") {
		return strings.ToLower(username)
	}
	return strings.ToLower(username) + "@" + s.cfg.EmailDomain
}

// RequestOTP verifies the address belongs to an active employee, creates
// the login row when missing and emails a fresh six-digit code.
func (s *AuthService) RequestOTP(ctx context.Context, username string) error {
	email := s.FullEmail(username)

	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{
				"message": "Contact HR to be added to the Employee List",
			})
		}
		return apperrors.MapError(err)
	}

	if err := s.logins.Upsert(ctx, email, employee.EmpID); err != nil {
		return apperrors.MapError(err)
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.otp.Put(ctx, email, code, s.cfg.OTPTTL()); err != nil {
		return apperrors.MapError(err)
	}

	body := fmt.Sprintf("<p>Your OTP code is: <strong>%s</strong></p>", code)
	if err := s.sender.Send(ctx, email, "Your OTP Code", body); err != nil {
		s.logger.Error("otp email delivery failed",
			zap.String("to", email),
			zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// VerifyOTP checks the code against the cached one. The code survives
// verification so registration can complete afterwards; it disappears on
// its own at expiry.
func (s *AuthService) VerifyOTP(ctx context.Context, username, code string) error {
	email := s.FullEmail(username)

	stored, err := s.otp.Get(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrOTPNotFound) {
			return apperrors.NewValidationError("OTP has expired. Please request a new one.", nil)
		}
		return apperrors.MapError(err)
	}
	if stored != code {
		return apperrors.NewValidationError("Invalid OTP", nil)
	}
	return nil
}

// Register sets the password for a login that passed OTP verification and
// consumes the code.
func (s *AuthService) Register(ctx context.Context, username, code, password string) error {
	if err := s.VerifyOTP(ctx, username, code); err != nil {
		return err
	}
	email := s.FullEmail(username)

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.logins.SetPassword(ctx, email, hash); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.otp.Delete(ctx, email); err != nil {
		s.logger.Warn("otp cleanup failed", zap.String("username", email), zap.Error(err))
	}
	return nil
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	email := s.FullEmail(username)

	login, err := s.logins.GetByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Your Username or Password are incorrect")
		}
		return nil, apperrors.MapError(err)
	}
	if login.PasswordHash == nil {
		return nil, apperrors.NewUnauthorized("Your Username or Password are incorrect")
	}
	if err := auth.ComparePassword(*login.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Your Username or Password are incorrect")
	}

	token, expiresAt, err := s.tokens.GenerateToken(login.EmpID, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, EmpID: login.EmpID}, nil
}

// generateOTP draws a uniform six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
