package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/users/auth/model"
)

// =======================
// Request DTO
// =======================

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (p *LoginDTO) Normalize() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

type RegisterUserDTO struct {
	Name     string `json:"name"     validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=admin coordenacao secretaria professor"`
}

func (p *RegisterUserDTO) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Role = strings.TrimSpace(p.Role)
}

func (p *RegisterUserDTO) ToModel() model.UserModel {
	return model.UserModel{
		UserName:  p.Name,
		UserEmail: p.Email,
		UserRole:  p.Role,
	}
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// =======================
// Response DTO
// =======================

type TokenResponseDTO struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	User         UserResponseDTO `json:"user"`
}

type UserResponseDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	UserRole  string    `json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(m model.UserModel) UserResponseDTO {
	return UserResponseDTO{
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		UserRole:  m.UserRole,
		CreatedAt: m.UserCreatedAt,
	}
}
