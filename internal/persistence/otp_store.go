package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no code is stored for a username, either
// because none was requested or because it expired.
var ErrOTPNotFound = errors.New("otp not found or expired")

// OTPStore keeps one-time passwords with a TTL, keyed by login username.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore builds a Redis-backed store.
func NewOTPStore(r *Redis) *OTPStore {
	return &OTPStore{client: r.Client}
}

func otpKey(username string) string {
	return "otp:" + username
}

// Put stores the code for the username, replacing any previous one.
func (s *OTPStore) Put(ctx context.Context, username, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(username), code, ttl).Err()
}

// Get returns the stored code, or ErrOTPNotFound after expiry.
func (s *OTPStore) Get(ctx context.Context, username string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// Delete removes the code once consumed.
func (s *OTPStore) Delete(ctx context.Context, username string) error {
	return s.client.Del(ctx, otpKey(username)).Err()
}
