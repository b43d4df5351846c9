package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/internal/report"
	"rotierp/pkg/pagination"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Aggregated business reports"}

	var (
		periodFlag string
		fromFlag   string
		toFlag     string
	)
	addWindowFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&periodFlag, "period", string(report.PeriodToday), "reporting period (today, yesterday, this-week, this-month, last-month, custom)")
		c.Flags().StringVar(&fromFlag, "from", "", "custom window start, YYYY-MM-DD")
		c.Flags().StringVar(&toFlag, "to", "", "custom window end, YYYY-MM-DD (exclusive)")
	}

	resolveWindow := func() (report.Window, error) {
		period, err := report.ParsePeriod(periodFlag)
		if err != nil {
			return report.Window{}, err
		}
		if period == report.PeriodCustom {
			if fromFlag == "" || toFlag == "" {
				return report.Window{}, &apiclient.ValidationError{Field: "period", Message: "custom period requires --from and --to"}
			}
			start, err := time.ParseInLocation("2006-01-02", fromFlag, time.Local)
			if err != nil {
				return report.Window{}, &apiclient.ValidationError{Field: "from", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", fromFlag)}
			}
			end, err := time.ParseInLocation("2006-01-02", toFlag, time.Local)
			if err != nil {
				return report.Window{}, &apiclient.ValidationError{Field: "to", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", toFlag)}
			}
			return report.CustomWindow(start, end), nil
		}
		return report.Resolve(period, time.Now())
	}

	sales := &cobra.Command{
		Use:   "sales",
		Short: "Sales summary with per-channel breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWindow()
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			records, err := a.api.Reports.AllSalesRecords(cmd.Context(), pagination.Query{
				From: &w.Start, To: &w.End,
			})
			if err != nil {
				return err
			}

			orderDate := func(o model.SalesOrder) time.Time { return o.CreatedAt }
			orderAmount := func(o model.SalesOrder) decimal.Decimal { return o.TotalAmount }

			summary := report.Aggregate(records, orderDate, orderAmount, w)
			fmt.Printf("window: %s to %s\n", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
			fmt.Printf("orders: %d  revenue: %s  average: %s\n\n", summary.Count, summary.TotalRevenue.String(), summary.Average.String())

			groups := report.GroupBy(records, func(o model.SalesOrder) string { return o.Channel }, orderDate, orderAmount, w)
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{g.Key, fmt.Sprint(g.Count), g.TotalRevenue.String(), g.Share.String() + "%"})
			}
			table("CHANNEL\tORDERS\tREVENUE\tSHARE", rows)
			return nil
		},
	}
	addWindowFlags(sales)

	expenses := &cobra.Command{
		Use:   "expenses",
		Short: "Expense summary with per-category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWindow()
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			records, err := a.api.Reports.AllExpenseRecords(cmd.Context(), pagination.Query{
				From: &w.Start, To: &w.End,
			})
			if err != nil {
				return err
			}

			expenseDate := func(e model.Expense) time.Time { return e.ExpenseDate }
			expenseAmount := func(e model.Expense) decimal.Decimal { return e.Amount }

			summary := report.Aggregate(records, expenseDate, expenseAmount, w)
			fmt.Printf("window: %s to %s\n", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
			fmt.Printf("entries: %d  spent: %s  average: %s\n\n", summary.Count, summary.TotalRevenue.String(), summary.Average.String())

			groups := report.GroupBy(records, func(e model.Expense) string { return e.Category }, expenseDate, expenseAmount, w)
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{g.Key, fmt.Sprint(g.Count), g.TotalRevenue.String(), g.Share.String() + "%"})
			}
			table("CATEGORY\tENTRIES\tSPENT\tSHARE", rows)
			return nil
		},
	}
	addWindowFlags(expenses)

	cmd.AddCommand(sales, expenses)
	return cmd
}
