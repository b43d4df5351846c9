package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a finished good sold at counters and franchises
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SKU          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Category     string          `gorm:"type:varchar(100);index" json:"category"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unitPrice"`
	CurrentStock int             `gorm:"default:0;not null" json:"currentStock"`
	ReorderLevel int             `gorm:"default:0" json:"reorderLevel"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RawMaterial represents an input ingredient tracked by the manufacturing
// module (flour, oil, packaging and so on)
type RawMaterial struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Unit         string          `gorm:"type:varchar(20);not null" json:"unit"` // kg, l, pcs
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"currentStock"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"reorderLevel"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unitCost"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BatchStatus constants
const (
	BatchPlanned    = "PLANNED"
	BatchInProgress = "IN_PROGRESS"
	BatchCompleted  = "COMPLETED"
	BatchScrapped   = "SCRAPPED"
)

// ProductionBatch records one manufacturing run of a product
type ProductionBatch struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BatchCode  string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"batchCode"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"productId"`
	Product    *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int        `gorm:"not null" json:"quantity"`
	Status     string     `gorm:"type:varchar(20);default:'PLANNED';index" json:"status"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
