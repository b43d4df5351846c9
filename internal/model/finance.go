package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice reference type constants
const (
	RefTypeSalesOrder = "SALES_ORDER"
	RefTypeExpense    = "EXPENSE"
)

// ApprovalStatus constants
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Invoice is a financial document generated from a sales order or an expense.
// Only APPROVED invoices count toward revenue reports.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNo      string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoiceNo"`
	ReferenceType  string          `gorm:"type:varchar(20);not null;index" json:"referenceType"`
	ReferenceID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"referenceId"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"taxAmount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"totalAmount"`
	ApprovalStatus string          `gorm:"type:varchar(20);default:'PENDING';index" json:"approvalStatus"`
	ApprovedBy     *uuid.UUID      `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time      `json:"approvedAt,omitempty"`
	Note           string          `gorm:"type:text" json:"note"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Expense category constants
const (
	ExpenseIngredients = "INGREDIENTS"
	ExpenseUtilities   = "UTILITIES"
	ExpenseRent        = "RENT"
	ExpenseSalary      = "SALARY"
	ExpenseOther       = "OTHER"
)

// Expense is a cost entry attributed to a counter, franchise or the factory
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string          `gorm:"type:varchar(30);not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"index;not null" json:"expenseDate"`
	CounterID   *uuid.UUID      `gorm:"type:uuid;index" json:"counterId,omitempty"`
	Note        string          `gorm:"type:text" json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
