package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserModel struct {
	// ============ PK ============
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	// ============ Identidade ============
	UserName  string `gorm:"type:text;not null;column:user_name" json:"user_name"`
	UserEmail string `gorm:"type:text;not null;uniqueIndex;column:user_email" json:"user_email"`
	// hash bcrypt, nunca serializado
	UserPassword string `gorm:"type:text;not null;column:user_password" json:"-"`
	// admin | coordenacao | secretaria | professor
	UserRole     string `gorm:"type:varchar(24);not null;default:'secretaria';column:user_role" json:"user_role"`
	UserIsActive bool   `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	// ============ Audit / Soft delete ============
	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeSave(tx *gorm.DB) error {
	m.UserName = strings.TrimSpace(m.UserName)
	m.UserEmail = strings.ToLower(strings.TrimSpace(m.UserEmail))
	return nil
}

func (m *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.UserPassword = string(hash)
	return nil
}

func (m *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.UserPassword), []byte(plain)) == nil
}
