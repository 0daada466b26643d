package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Username string `json:"username" validate:"required,handle" example:"kai_16"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"kai_16"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthResponse struct {
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	CreatedAt time.Time        `json:"created_at"`
	Token     TokenPair        `json:"token"`
	Settings  SettingsResponse `json:"settings"`
}
