package dto

import "time"

// SendOTPRequest payload for requesting a login code. Email is the bare
// username; the corporate domain is appended server-side.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest payload for checking a code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RegisterRequest payload for setting the password after OTP verification.
type RegisterRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	EmpID     string    `json:"empID"`
}
