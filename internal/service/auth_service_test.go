package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func authFixture() (*AuthService, *fakeLoginRepo, *fakeOTPStore, *fakeSender) {
	employee := &domain.Employee{
		EmpID: "E100", Name: "Ravi Kumar", Email: "ravi@corp.example",
		Dept: "Sales", SubDept: "Field", Location: "Hyderabad", Active: true,
	}
	logins := newFakeLoginRepo()
	otp := newFakeOTPStore()
	sender := &fakeSender{}
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		OTPTTLMinutes:         5,
		BcryptCost:            bcrypt.MinCost,
		EmailDomain:           "corp.example",
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	svc := NewAuthService(newFakeEmployeeRepo(employee), logins, otp, sender, tokens, cfg, zap.NewNop())
	return svc, logins, otp, sender
}

func TestRequestOTP_SendsCodeAndCreatesLogin(t *testing.T) {
	svc, logins, otp, sender := authFixture()

	require.NoError(t, svc.RequestOTP(context.Background(), "ravi"))

	login, err := logins.GetByUsername(context.Background(), "ravi@corp.example")
	require.NoError(t, err)
	assert.Equal(t, "E100", login.EmpID)
	assert.Nil(t, login.PasswordHash)

	code, err := otp.Get(context.Background(), "ravi@corp.example")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ravi@corp.example", sent[0].To)
	assert.Equal(t, "Your OTP Code", sent[0].Subject)
	assert.Contains(t, sent[0].Body, code)
}

func TestRequestOTP_UnknownEmployee(t *testing.T) {
	svc, _, _, sender := authFixture()

	err := svc.RequestOTP(context.Background(), "stranger")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Empty(t, sender.messages())
}

func TestVerifyOTP(t *testing.T) {
	svc, _, otp, _ := authFixture()
	require.NoError(t, otp.Put(context.Background(), "ravi@corp.example", "123456", 0))

	assert.NoError(t, svc.VerifyOTP(context.Background(), "ravi", "123456"))

	err := svc.VerifyOTP(context.Background(), "ravi", "999999")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	err = svc.VerifyOTP(context.Background(), "someone-else", "123456")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, logins, otp, _ := authFixture()
	require.NoError(t, svc.RequestOTP(context.Background(), "ravi"))
	code, err := otp.Get(context.Background(), "ravi@corp.example")
	require.NoError(t, err)

	require.NoError(t, svc.Register(context.Background(), "ravi", code, "s3cret-pass"))

	// The stored credential is a bcrypt hash, never the plaintext.
	login, err := logins.GetByUsername(context.Background(), "ravi@corp.example")
	require.NoError(t, err)
	require.NotNil(t, login.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", *login.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*login.PasswordHash), []byte("s3cret-pass")))

	// The code is consumed by registration.
	_, err = otp.Get(context.Background(), "ravi@corp.example")
	require.Error(t, err)

	session, err := svc.Login(context.Background(), "ravi", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "E100", session.EmpID)
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, otp, _ := authFixture()
	require.NoError(t, svc.RequestOTP(context.Background(), "ravi"))
	code, err := otp.Get(context.Background(), "ravi@corp.example")
	require.NoError(t, err)
	require.NoError(t, svc.Register(context.Background(), "ravi", code, "s3cret-pass"))

	_, err = svc.Login(context.Background(), "ravi", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, err = svc.Login(context.Background(), "stranger", "whatever")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLogin_NoPasswordSetYet(t *testing.T) {
	svc, _, _, _ := authFixture()
	require.NoError(t, svc.RequestOTP(context.Background(), "ravi"))

	_, err := svc.Login(context.Background(), "ravi", "anything")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
