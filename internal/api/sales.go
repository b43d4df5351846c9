package api

import (
	"context"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"
)

// Sales wraps the /sales endpoints, covering POS and franchise orders
type Sales struct {
	c *apiclient.Client
}

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Channel       string             `json:"channel"`
	CounterID     string             `json:"counterId,omitempty"`
	FranchiseID   string             `json:"franchiseId,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []OrderItemRequest `json:"items"`
}

func (s *Sales) ListOrders(ctx context.Context, q pagination.Query) (pagination.List[model.SalesOrder], error) {
	return list[model.SalesOrder](ctx, s.c, "/sales/orders", q)
}

func (s *Sales) GetOrder(ctx context.Context, id string) (*model.SalesOrder, error) {
	var o model.SalesOrder
	if err := s.c.Get(ctx, "/sales/orders/"+id, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Sales) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.SalesOrder, error) {
	var o model.SalesOrder
	if err := s.c.Post(ctx, "/sales/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Sales) CancelOrder(ctx context.Context, id string) error {
	return s.c.Post(ctx, "/sales/orders/"+id+"/cancel", nil, nil)
}
