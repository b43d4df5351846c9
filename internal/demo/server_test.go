package demo

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotierp/internal/api"
	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/internal/report"
	"rotierp/internal/session"
	"rotierp/internal/tokenstore"
	"rotierp/internal/ws"
	"rotierp/pkg/pagination"
)

// harness wires the full client stack against a seeded demo backend, the way
// the CLI does in demo mode
type harness struct {
	srv     *httptest.Server
	backend *Server
	store   *tokenstore.Store
	api     *api.API
	session *session.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	server, err := New(Options{
		DSN:  filepath.Join(t.TempDir(), "demo.db"),
		Seed: true,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	store := tokenstore.Open(filepath.Join(t.TempDir(), "credentials.json"))
	client := apiclient.New(apiclient.Config{
		BaseURL:       srv.URL + "/api",
		StatusBaseURL: srv.URL,
		Store:         store,
	})
	a := api.New(client)
	return &harness{
		srv:     srv,
		backend: server,
		store:   store,
		api:     a,
		session: session.NewManager(a.Auth, store, nil),
	}
}

func (h *harness) login(t *testing.T, email string) *model.UserRecord {
	t.Helper()
	user, err := h.session.Login(context.Background(), email, DemoPassword)
	require.NoError(t, err)
	return user
}

func TestHealthCheckIsPublic(t *testing.T) {
	h := newHarness(t)
	status, err := h.api.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connected", status["database"])
}

func TestLoginAndProfile(t *testing.T) {
	h := newHarness(t)

	user := h.login(t, "manager@roti.local")
	assert.Equal(t, model.RoleManager, user.Role)
	assert.NotNil(t, user.LastLogin)

	fresh, err := h.api.Auth.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, fresh.ID)
	assert.Equal(t, user.Email, fresh.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := newHarness(t)
	_, err := h.session.Login(context.Background(), "manager@roti.local", "nope")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, h.session.IsAuthenticated())
}

func TestSeededProductsList(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")

	products, err := h.api.Manufacturing.ListProducts(context.Background(), pagination.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, products.Items)
	require.NotNil(t, products.Pagination)
	assert.EqualValues(t, len(products.Items), products.Pagination.Total)

	filtered, err := h.api.Manufacturing.ListProducts(context.Background(), pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "ROTI-PLAIN", filtered.Items[0].SKU)
}

func TestCreateOrderDecrementsStockAndRaisesInvoice(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")
	ctx := context.Background()

	products, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	require.Len(t, products.Items, 1)
	product := products.Items[0]

	counters, err := h.api.Counters.List(ctx, pagination.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, counters.Items)

	order, err := h.api.Sales.CreateOrder(ctx, api.CreateOrderRequest{
		Channel:       model.ChannelPOS,
		CounterID:     counters.Items[0].ID.String(),
		PaymentMethod: "CASH",
		Items:         []api.OrderItemRequest{{ProductID: product.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNo)
	expectedSubtotal := product.UnitPrice.Mul(decimal.NewFromInt(3))
	assert.True(t, order.Subtotal.Equal(expectedSubtotal), order.Subtotal.String())
	assert.True(t, order.TotalAmount.GreaterThan(order.Subtotal)) // tax applied

	after, err := h.api.Manufacturing.GetProduct(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.CurrentStock-3, after.CurrentStock)

	// an invoice is raised for the order, pending approval
	h.login(t, "manager@roti.local")
	invoices, err := h.api.Finance.ListInvoices(ctx, pagination.Query{Search: order.OrderNo})
	require.NoError(t, err)
	require.Len(t, invoices.Items, 1)
	assert.Equal(t, "PENDING", invoices.Items[0].ApprovalStatus)
	assert.Equal(t, model.RefTypeSalesOrder, invoices.Items[0].ReferenceType)
}

func TestCreateOrderRejectsInsufficientStock(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")
	ctx := context.Background()

	products, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	require.Len(t, products.Items, 1)

	_, err = h.api.Sales.CreateOrder(ctx, api.CreateOrderRequest{
		Channel:       model.ChannelPOS,
		PaymentMethod: "CASH",
		Items:         []api.OrderItemRequest{{ProductID: products.Items[0].ID.String(), Quantity: 1_000_000}},
	})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsServer())
}

func TestCancelOrderRestocks(t *testing.T) {
	h := newHarness(t)
	h.login(t, "manager@roti.local")
	ctx := context.Background()

	products, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	product := products.Items[0]

	order, err := h.api.Sales.CreateOrder(ctx, api.CreateOrderRequest{
		Channel:       model.ChannelPOS,
		PaymentMethod: "CASH",
		Items:         []api.OrderItemRequest{{ProductID: product.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, h.api.Sales.CancelOrder(ctx, order.ID.String()))

	after, err := h.api.Manufacturing.GetProduct(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.CurrentStock, after.CurrentStock)
}

func TestRoleEnforcement(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")
	ctx := context.Background()

	// product creation needs MANAGER
	_, err := h.api.Manufacturing.CreateProduct(ctx, api.CreateProductRequest{
		SKU: "ROTI-TEST", Name: "Test Roti",
	})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	// settings update needs SUPER_ADMIN even for an admin
	h.login(t, "admin@roti.local")
	_, err = h.api.Settings.Set(ctx, "tax_rate", "0.10")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	h.login(t, "super@roti.local")
	setting, err := h.api.Settings.Set(ctx, "tax_rate", "0.10")
	require.NoError(t, err)
	assert.Equal(t, "0.10", setting.Value)
}

func TestInvoiceApprovalFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")
	ctx := context.Background()

	products, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	_, err = h.api.Sales.CreateOrder(ctx, api.CreateOrderRequest{
		Channel:       model.ChannelPOS,
		PaymentMethod: "CASH",
		Items:         []api.OrderItemRequest{{ProductID: products.Items[0].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	h.login(t, "admin@roti.local")
	invoices, err := h.api.Finance.ListInvoices(ctx, pagination.Query{Status: "PENDING"})
	require.NoError(t, err)
	require.NotEmpty(t, invoices.Items)

	approved, err := h.api.Finance.ApproveInvoice(ctx, invoices.Items[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.ApprovalStatus)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestExpiredAccessTokenRefreshes(t *testing.T) {
	h := newHarness(t)
	h.login(t, "manager@roti.local")

	// corrupt the access token; the refresh token is still good, so the next
	// call must refresh and retry transparently
	require.NoError(t, h.store.Set(tokenstore.KeyAccessToken, "garbage"))

	products, err := h.api.Manufacturing.ListProducts(context.Background(), pagination.Query{})
	require.NoError(t, err)
	assert.NotEmpty(t, products.Items)

	tok, ok := h.store.Get(tokenstore.KeyAccessToken)
	require.True(t, ok)
	assert.NotEqual(t, "garbage", tok)
}

func TestRevokedRefreshTokenEndsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, "manager@roti.local")

	require.NoError(t, h.store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "garbage",
		tokenstore.KeyRefreshToken: "also-garbage",
	}))

	_, err := h.api.Manufacturing.ListProducts(context.Background(), pagination.Query{})
	var authErr *apiclient.AuthExpiredError
	require.ErrorAs(t, err, &authErr)

	_, ok := h.store.AccessToken()
	assert.False(t, ok)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	h := newHarness(t)
	h.login(t, "manager@roti.local")
	ctx := context.Background()

	refresh, ok := h.store.Get(tokenstore.KeyRefreshToken)
	require.True(t, ok)

	h.session.Logout(ctx)
	assert.False(t, h.session.IsAuthenticated())
	_, ok = h.store.AccessToken()
	assert.False(t, ok)

	// the revoked refresh token no longer works
	require.NoError(t, h.store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "garbage",
		tokenstore.KeyRefreshToken: refresh,
	}))
	_, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{})
	var authErr *apiclient.AuthExpiredError
	require.ErrorAs(t, err, &authErr)
}

func TestOrderCreatedEventReachesSubscribers(t *testing.T) {
	h := newHarness(t)
	h.login(t, "operator@roti.local")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, ok := h.store.AccessToken()
	require.True(t, ok)

	events := make(chan ws.Event, 8)
	go func() {
		_ = ws.Listen(ctx, ws.URL(h.srv.URL+"/api"), token, nil, func(ev ws.Event) {
			events <- ev
		})
	}()
	require.Eventually(t, func() bool { return h.backend.hub.ClientCount() == 1 },
		5*time.Second, 10*time.Millisecond, "subscriber never registered")

	products, err := h.api.Manufacturing.ListProducts(ctx, pagination.Query{Search: "ROTI-PLAIN"})
	require.NoError(t, err)
	require.Len(t, products.Items, 1)
	counters, err := h.api.Counters.List(ctx, pagination.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, counters.Items)

	order, err := h.api.Sales.CreateOrder(ctx, api.CreateOrderRequest{
		Channel:       model.ChannelPOS,
		CounterID:     counters.Items[0].ID.String(),
		PaymentMethod: "CASH",
		Items:         []api.OrderItemRequest{{ProductID: products.Items[0].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "order.created", ev.Event)
		assert.Equal(t, order.OrderNo, ev.Data["orderNo"])
	case <-ctx.Done():
		t.Fatal("no event arrived before the deadline")
	}
}

func TestExpenseReportWalksEveryPage(t *testing.T) {
	h := newHarness(t)
	h.login(t, "manager@roti.local")

	day := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		_, err := h.api.Finance.CreateExpense(context.Background(), api.CreateExpenseRequest{
			Category:    model.ExpenseIngredients,
			Amount:      decimal.NewFromInt(10),
			ExpenseDate: day,
		})
		require.NoError(t, err)
	}

	from := day.Add(-time.Hour)
	to := day.Add(time.Hour)
	q := pagination.Query{From: &from, To: &to}

	// A single page tops out at the server's cap even when the client asks
	// for more.
	big := q
	big.Limit = 1000
	page, err := h.api.Reports.ExpenseRecords(context.Background(), big)
	require.NoError(t, err)
	require.NotNil(t, page.Pagination)
	assert.EqualValues(t, 120, page.Pagination.Total)
	assert.Len(t, page.Items, pagination.MaxLimit)

	records, err := h.api.Reports.AllExpenseRecords(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, records, 120)

	summary := report.Aggregate(records,
		func(e model.Expense) time.Time { return e.ExpenseDate },
		func(e model.Expense) decimal.Decimal { return e.Amount },
		report.CustomWindow(from, to))
	assert.Equal(t, 120, summary.Count)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(1200)))
}

func TestRegisterCreatesOperatorAccount(t *testing.T) {
	h := newHarness(t)

	user, err := h.session.Register(context.Background(), api.RegisterRequest{
		Email:     "new@roti.local",
		Password:  "fresh-pass",
		FirstName: "Nina",
		LastName:  "Shah",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCounterOperator, user.Role)
	assert.False(t, h.session.IsAuthenticated()) // register does not sign in

	_, err = h.session.Login(context.Background(), "new@roti.local", "fresh-pass")
	require.NoError(t, err)
}
