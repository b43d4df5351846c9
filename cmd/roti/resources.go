package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rotierp/internal/api"
	"rotierp/internal/apiclient"
	"rotierp/pkg/pagination"
)

// queryFlags binds the shared pagination/filter flags to a Query
func queryFlags(cmd *cobra.Command, q *pagination.Query) {
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&q.Search, "search", "", "search term")
	cmd.Flags().StringVar(&q.Status, "status", "", "status filter")
}

func table(header string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func printPagination(p *pagination.Pagination) {
	if p != nil {
		fmt.Printf("page %d/%d, %d total\n", p.Page, p.TotalPages, p.Total)
	}
}

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manufacturing: products"}

	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Manufacturing.ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, p := range result.Items {
				rows = append(rows, []string{p.SKU, p.Name, p.Category, p.UnitPrice.String(), fmt.Sprint(p.CurrentStock)})
			}
			table("SKU\tNAME\tCATEGORY\tPRICE\tSTOCK", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)

	var createReq api.CreateProductRequest
	var price string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if createReq.SKU == "" || createReq.Name == "" || price == "" {
				return &apiclient.ValidationError{Message: "--sku, --name and --price are required"}
			}
			unitPrice, err := decimal.NewFromString(price)
			if err != nil {
				return &apiclient.ValidationError{Field: "price", Message: fmt.Sprintf("%q is not a decimal amount", price)}
			}
			createReq.UnitPrice = unitPrice
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			product, err := a.api.Manufacturing.CreateProduct(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("created product %s (%s)\n", product.SKU, product.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createReq.SKU, "sku", "", "product SKU")
	create.Flags().StringVar(&createReq.Name, "name", "", "product name")
	create.Flags().StringVar(&createReq.Category, "category", "", "category")
	create.Flags().StringVar(&price, "price", "", "unit price")
	create.Flags().IntVar(&createReq.ReorderLevel, "reorder-level", 0, "reorder threshold")

	cmd.AddCommand(list, create)
	return cmd
}

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Sales: orders"}

	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Sales.ListOrders(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, o := range result.Items {
				rows = append(rows, []string{o.OrderNo, o.Channel, o.Status, o.TotalAmount.String(), o.CreatedAt.Format("2006-01-02 15:04")})
			}
			table("ORDER\tCHANNEL\tSTATUS\tTOTAL\tCREATED", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)

	var (
		createReq api.CreateOrderRequest
		items     []string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a sales order",
		Long:  "Create a sales order. Items are given as productID:quantity pairs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return &apiclient.ValidationError{Field: "item", Message: "at least one productID:quantity line is required"}
			}
			for _, raw := range items {
				parts := strings.SplitN(raw, ":", 2)
				if len(parts) != 2 {
					return &apiclient.ValidationError{Field: "item", Message: fmt.Sprintf("%q is not of the form productID:quantity", raw)}
				}
				var qty int
				if _, err := fmt.Sscanf(parts[1], "%d", &qty); err != nil || qty <= 0 {
					return &apiclient.ValidationError{Field: "item", Message: fmt.Sprintf("%q has no positive quantity", raw)}
				}
				createReq.Items = append(createReq.Items, api.OrderItemRequest{ProductID: parts[0], Quantity: qty})
			}
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			order, err := a.api.Sales.CreateOrder(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("created order %s, total %s\n", order.OrderNo, order.TotalAmount.String())
			return nil
		},
	}
	create.Flags().StringVar(&createReq.Channel, "channel", "POS", "sales channel (POS, ONLINE, FRANCHISE)")
	create.Flags().StringVar(&createReq.CounterID, "counter", "", "counter id")
	create.Flags().StringVar(&createReq.FranchiseID, "franchise", "", "franchise id")
	create.Flags().StringVar(&createReq.CustomerName, "customer", "", "customer name")
	create.Flags().StringVar(&createReq.PaymentMethod, "payment", "CASH", "payment method (CASH, CARD, UPI)")
	create.Flags().StringArrayVar(&items, "item", nil, "order line as productID:quantity (repeatable)")

	cmd.AddCommand(list, create)
	return cmd
}

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "employees", Short: "HR: employees"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.HR.ListEmployees(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, e := range result.Items {
				rows = append(rows, []string{e.EmployeeCode, e.FirstName + " " + e.LastName, e.Department, e.Designation, string(e.Status)})
			}
			table("CODE\tNAME\tDEPARTMENT\tDESIGNATION\tSTATUS", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newInvoicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "invoices", Short: "Finance: invoices"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Finance.ListInvoices(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, inv := range result.Items {
				rows = append(rows, []string{inv.InvoiceNo, inv.ReferenceType, inv.TotalAmount.String(), inv.ApprovalStatus})
			}
			table("INVOICE\tREFERENCE\tTOTAL\tAPPROVAL", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			inv, err := a.api.Finance.ApproveInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("invoice %s is now %s\n", inv.InvoiceNo, inv.ApprovalStatus)
			return nil
		},
	}
	cmd.AddCommand(list, approve)
	return cmd
}

func newExpensesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "expenses", Short: "Finance: expenses"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Finance.ListExpenses(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, e := range result.Items {
				rows = append(rows, []string{e.Category, e.Amount.String(), e.ExpenseDate.Format("2006-01-02"), e.Note})
			}
			table("CATEGORY\tAMOUNT\tDATE\tNOTE", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newCountersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "counters", Short: "Sales counters"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Counters.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, c := range result.Items {
				rows = append(rows, []string{c.ID.String(), c.Name, c.Location, string(c.Status)})
			}
			table("ID\tNAME\tLOCATION\tSTATUS", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newHotelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "hotels", Short: "Hotel module"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List hotels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Hotels.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, h := range result.Items {
				rows = append(rows, []string{h.Name, h.Address, fmt.Sprint(h.RoomCount), string(h.Status)})
			}
			table("NAME\tADDRESS\tROOMS\tSTATUS", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newHostelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "hostels", Short: "Hostel module"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List hostels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Hostels.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, h := range result.Items {
				rows = append(rows, []string{h.Name, fmt.Sprintf("%d/%d beds", h.OccupiedBeds, h.TotalBeds), h.MonthlyRent.String(), string(h.Status)})
			}
			table("NAME\tOCCUPANCY\tRENT\tSTATUS", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newFranchisesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "franchises", Short: "Franchise module"}
	var q pagination.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List franchises",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			result, err := a.api.Franchises.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Items))
			for _, f := range result.Items {
				rows = append(rows, []string{f.Name, f.OwnerName, f.Location, f.RoyaltyRate.String(), string(f.Status)})
			}
			table("NAME\tOWNER\tLOCATION\tROYALTY\tSTATUS", rows)
			printPagination(result.Pagination)
			return nil
		},
	}
	queryFlags(list, &q)
	cmd.AddCommand(list)
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "System settings"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			settings, err := a.api.Settings.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(settings))
			for _, s := range settings {
				rows = append(rows, []string{s.Key, s.Value})
			}
			table("KEY\tVALUE", rows)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			setting, err := a.api.Settings.Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", setting.Key, setting.Value)
			return nil
		},
	}
	cmd.AddCommand(list, set)
	return cmd
}
