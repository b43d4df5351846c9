package api

import (
	"context"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"
)

// Reports wraps the /reports endpoints. Endpoints return raw record
// collections; summary computation happens client-side in internal/report.
type Reports struct {
	c *apiclient.Client
}

// SalesRecords fetches one page of raw sales orders for a reporting window
func (r *Reports) SalesRecords(ctx context.Context, q pagination.Query) (pagination.List[model.SalesOrder], error) {
	return list[model.SalesOrder](ctx, r.c, "/reports/sales", q)
}

// AllSalesRecords fetches every sales order in the window, walking pages so
// large windows are never aggregated over a truncated set
func (r *Reports) AllSalesRecords(ctx context.Context, q pagination.Query) ([]model.SalesOrder, error) {
	return listAll[model.SalesOrder](ctx, r.c, "/reports/sales", q)
}

// ExpenseRecords fetches one page of raw expenses for a reporting window
func (r *Reports) ExpenseRecords(ctx context.Context, q pagination.Query) (pagination.List[model.Expense], error) {
	return list[model.Expense](ctx, r.c, "/reports/expenses", q)
}

// AllExpenseRecords fetches every expense in the window across pages
func (r *Reports) AllExpenseRecords(ctx context.Context, q pagination.Query) ([]model.Expense, error) {
	return listAll[model.Expense](ctx, r.c, "/reports/expenses", q)
}
