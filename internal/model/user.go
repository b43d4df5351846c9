package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed set of user roles. The hierarchy is a total order used
// for minimum-role checks; capability inference beyond >= comparison is not
// allowed.
type Role string

const (
	RoleSuperAdmin       Role = "SUPER_ADMIN"
	RoleAdmin            Role = "ADMIN"
	RoleManager          Role = "MANAGER"
	RoleFranchiseManager Role = "FRANCHISE_MANAGER"
	RoleCounterOperator  Role = "COUNTER_OPERATOR"
)

var roleRanks = map[Role]int{
	RoleSuperAdmin:       5,
	RoleAdmin:            4,
	RoleManager:          3,
	RoleFranchiseManager: 2,
	RoleCounterOperator:  1,
}

// Rank maps a role to its position in the hierarchy. Unknown role strings
// rank 0 and therefore never satisfy any minimum.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the five known roles
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// UserStatus enum constants
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// UserRecord is the authenticated user as the backend reports it. It is
// created server-side on registration and mirrored into the client on login
// and profile re-validation.
type UserRecord struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone,omitempty"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FullName joins first and last name for display
func (u UserRecord) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
