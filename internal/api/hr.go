package api

import (
	"context"
	"time"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"

	"github.com/shopspring/decimal"
)

// HR wraps the /hr endpoints: employees, attendance and payroll
type HR struct {
	c *apiclient.Client
}

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employeeCode"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Department   string          `json:"department"`
	Designation  string          `json:"designation"`
	Salary       decimal.Decimal `json:"salary"`
	JoinDate     time.Time       `json:"joinDate"`
}

type MarkAttendanceRequest struct {
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
}

func (h *HR) ListEmployees(ctx context.Context, q pagination.Query) (pagination.List[model.Employee], error) {
	return list[model.Employee](ctx, h.c, "/hr/employees", q)
}

func (h *HR) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error) {
	var e model.Employee
	if err := h.c.Post(ctx, "/hr/employees", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (h *HR) ListAttendance(ctx context.Context, q pagination.Query) (pagination.List[model.Attendance], error) {
	return list[model.Attendance](ctx, h.c, "/hr/attendance", q)
}

func (h *HR) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (*model.Attendance, error) {
	var a model.Attendance
	if err := h.c.Post(ctx, "/hr/attendance", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (h *HR) ListPayroll(ctx context.Context, q pagination.Query) (pagination.List[model.PayrollEntry], error) {
	return list[model.PayrollEntry](ctx, h.c, "/hr/payroll", q)
}
