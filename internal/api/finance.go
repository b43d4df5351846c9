package api

import (
	"context"
	"time"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"

	"github.com/shopspring/decimal"
)

// Finance wraps the /finance endpoints: invoices and expenses
type Finance struct {
	c *apiclient.Client
}

type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	CounterID   string          `json:"counterId,omitempty"`
	Note        string          `json:"note,omitempty"`
}

func (f *Finance) ListInvoices(ctx context.Context, q pagination.Query) (pagination.List[model.Invoice], error) {
	return list[model.Invoice](ctx, f.c, "/finance/invoices", q)
}

func (f *Finance) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	if err := f.c.Get(ctx, "/finance/invoices/"+id, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (f *Finance) ApproveInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	if err := f.c.Post(ctx, "/finance/invoices/"+id+"/approve", nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (f *Finance) RejectInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	if err := f.c.Post(ctx, "/finance/invoices/"+id+"/reject", nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (f *Finance) ListExpenses(ctx context.Context, q pagination.Query) (pagination.List[model.Expense], error) {
	return list[model.Expense](ctx, f.c, "/finance/expenses", q)
}

func (f *Finance) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*model.Expense, error) {
	var e model.Expense
	if err := f.c.Post(ctx, "/finance/expenses", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (f *Finance) DeleteExpense(ctx context.Context, id string) error {
	return f.c.Delete(ctx, "/finance/expenses/"+id)
}
