package demo

import (
	"time"

	"github.com/google/uuid"

	"rotierp/internal/model"
)

// Account is the login entity behind a UserRecord. The password hash never
// leaves this package.
type Account struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Email        string           `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string           `gorm:"type:varchar(255);not null"`
	FirstName    string           `gorm:"type:varchar(100);not null"`
	LastName     string           `gorm:"type:varchar(100)"`
	Phone        string           `gorm:"type:varchar(20)"`
	Role         model.Role       `gorm:"type:varchar(30);not null"`
	Status       model.UserStatus `gorm:"type:varchar(20);default:'ACTIVE'"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Record maps the account to the wire-facing user shape
func (a Account) Record() model.UserRecord {
	return model.UserRecord{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Role:      a.Role,
		Status:    a.Status,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// RefreshToken stores long-lived tokens allowing accounts to request new
// access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
