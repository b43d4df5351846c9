package api

import (
	"context"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"

	"github.com/shopspring/decimal"
)

// Manufacturing wraps the /manufacturing endpoints: products, raw materials
// and production batches
type Manufacturing struct {
	c *apiclient.Client
}

type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel int             `json:"reorderLevel"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty"`
	Category     string           `json:"category,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	ReorderLevel *int             `json:"reorderLevel,omitempty"`
}

type CreateBatchRequest struct {
	BatchCode string `json:"batchCode"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (m *Manufacturing) ListProducts(ctx context.Context, q pagination.Query) (pagination.List[model.Product], error) {
	return list[model.Product](ctx, m.c, "/manufacturing/products", q)
}

func (m *Manufacturing) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := m.c.Get(ctx, "/manufacturing/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Manufacturing) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := m.c.Post(ctx, "/manufacturing/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Manufacturing) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := m.c.Put(ctx, "/manufacturing/products/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Manufacturing) DeleteProduct(ctx context.Context, id string) error {
	return m.c.Delete(ctx, "/manufacturing/products/"+id)
}

func (m *Manufacturing) ListRawMaterials(ctx context.Context, q pagination.Query) (pagination.List[model.RawMaterial], error) {
	return list[model.RawMaterial](ctx, m.c, "/manufacturing/raw-materials", q)
}

func (m *Manufacturing) ListBatches(ctx context.Context, q pagination.Query) (pagination.List[model.ProductionBatch], error) {
	return list[model.ProductionBatch](ctx, m.c, "/manufacturing/batches", q)
}

func (m *Manufacturing) CreateBatch(ctx context.Context, req CreateBatchRequest) (*model.ProductionBatch, error) {
	var b model.ProductionBatch
	if err := m.c.Post(ctx, "/manufacturing/batches", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
