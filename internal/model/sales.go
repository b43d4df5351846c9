package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sales channel constants
const (
	ChannelPOS       = "POS"
	ChannelOnline    = "ONLINE"
	ChannelFranchise = "FRANCHISE"
)

// SalesOrder status constants
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

// Payment method constants
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD"
	PaymentUPI  = "UPI"
)

// SalesOrder represents one sale, whether rung up at a counter POS or placed
// through a franchise
type SalesOrder struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo       string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"orderNo"`
	Channel       string           `gorm:"type:varchar(20);not null;index" json:"channel"`
	Status        string           `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	CounterID     *uuid.UUID       `gorm:"type:uuid;index" json:"counterId,omitempty"`
	FranchiseID   *uuid.UUID       `gorm:"type:uuid;index" json:"franchiseId,omitempty"`
	CustomerName  string           `gorm:"type:varchar(255)" json:"customerName"`
	Items         []SalesOrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal      decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	TaxAmount     decimal.Decimal  `gorm:"type:decimal(18,4);default:0" json:"taxAmount"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"totalAmount"`
	PaymentMethod string           `gorm:"type:varchar(20)" json:"paymentMethod"`
	CreatedAt     time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// SalesOrderItem is a line item within a SalesOrder
type SalesOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unitPrice"`
}

// LineTotal is quantity times unit price
func (i SalesOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
