package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee status constants share the user status values

// Employee is an HR record, independent of login accounts
type Employee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeCode string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"employeeCode"`
	FirstName    string          `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string          `gorm:"type:varchar(100)" json:"lastName"`
	Phone        string          `gorm:"type:varchar(20)" json:"phone"`
	Department   string          `gorm:"type:varchar(100);index" json:"department"`
	Designation  string          `gorm:"type:varchar(100)" json:"designation"`
	Salary       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"salary"`
	JoinDate     time.Time       `json:"joinDate"`
	Status       UserStatus      `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Attendance status constants
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLeave   = "LEAVE"
	AttendanceHalfDay = "HALF_DAY"
)

// Attendance records one employee-day
type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employeeId"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PayrollEntry is a computed monthly payout for an employee
type PayrollEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"employeeId"`
	Month      string          `gorm:"type:varchar(7);not null;index" json:"month"` // YYYY-MM
	BaseSalary decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"baseSalary"`
	Deductions decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"deductions"`
	NetPay     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"netPay"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
