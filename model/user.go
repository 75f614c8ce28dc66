package model

import "time"

// UserEntity represents the user table entity. Identity is phone-based;
// PhoneConfirmed flips after the first successful OTP verification.
type UserEntity struct {
	ID             uint64     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Phone          string     `db:"phone" json:"phone"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	PhoneConfirmed bool       `db:"phone_confirmed" json:"phone_confirmed"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Phone string
}

// ProfileEntity is the public profile row attached to a user.
type ProfileEntity struct {
	UserID         uint64     `db:"user_id" json:"user_id"`
	Name           string     `db:"name" json:"name"`
	Phone          string     `db:"phone" json:"phone"`
	GovernorateID  *uint64    `db:"governorate_id" json:"governorate_id,omitempty"`
	ProfilePicture string     `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest for phone+password login
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthStatus tells the client which phase the auth flow landed in.
type AuthStatus string

const (
	AuthStatusAuthenticated AuthStatus = "authenticated"
	AuthStatusAwaitingOTP   AuthStatus = "awaiting_otp"
)

// AuthResponse is returned by login, register and OTP verification. Token is
// set only when Status is authenticated.
type AuthResponse struct {
	Status AuthStatus `json:"status"`
	Name   string     `json:"name,omitempty"`
	Phone  string     `json:"phone"`
	Token  string     `json:"token,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type UpdatePasswordRequest struct {
	UserID      uint64
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	UserID         uint64
	Name           string  `json:"name"`
	GovernorateID  *uint64 `json:"governorate_id"`
	ProfilePicture string  `json:"profile_picture"`
}
