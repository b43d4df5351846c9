// Package demo is the embedded Roti Factory ERP backend. It exists so the
// client has an explicit offline/demo mode and a real server to test against,
// instead of silently substituting canned data when the API is down.
package demo

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rotierp/internal/model"
	"rotierp/pkg/response"
)

// Options configures the embedded server
type Options struct {
	DSN    string // sqlite DSN; empty means in-memory
	Secret string // HS256 signing secret
	Logger *zap.Logger
	Seed   bool // load demo fixtures
}

// Server is the demo backend: Gin routes over an embedded sqlite database
type Server struct {
	db     *gorm.DB
	hub    *Hub
	secret []byte
	log    *zap.Logger
	engine *gin.Engine
}

func New(opts Options) (*Server, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dsn := opts.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	secret := opts.Secret
	if secret == "" {
		secret = "roti_demo_secret"
	}

	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:     db,
		hub:    NewHub(log),
		secret: []byte(secret),
		log:    log,
	}
	if opts.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}

	go s.hub.Run()
	s.engine = s.buildRouter()
	return s, nil
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen serves on addr (use 127.0.0.1:0 for an ephemeral port) and returns
// the origin plus a stop function
func (s *Server) Listen(addr string) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: s.engine}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("demo server stopped", zap.Error(err))
		}
	}()
	origin := "http://" + ln.Addr().String()
	stop := func() {
		_ = srv.Close()
	}
	return origin, stop, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Public health check on the unversioned origin
	router.GET("/db-status", func(c *gin.Context) {
		sqlDB, err := s.db.DB()
		status := "connected"
		if err != nil || sqlDB.Ping() != nil {
			status = "unreachable"
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "database": status, "time": time.Now().UTC()})
	})

	// Notification stream
	router.GET("/ws", s.serveWs)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/register", s.handleRegister)
		auth.POST("/refresh", s.handleRefresh)
		auth.POST("/logout", s.handleLogout)
		auth.GET("/profile", s.requireMinRole(model.RoleCounterOperator), s.handleProfile)
	}

	manufacturing := api.Group("/manufacturing")
	{
		manufacturing.GET("/products", s.requireMinRole(model.RoleCounterOperator),
			listHandler[model.Product](s.db, listOptions{search: []string{"sku", "name"}, order: "name"}))
		manufacturing.GET("/products/:id", s.requireMinRole(model.RoleCounterOperator), getHandler[model.Product](s.db))
		manufacturing.POST("/products", s.requireMinRole(model.RoleManager), s.createProduct)
		manufacturing.PUT("/products/:id", s.requireMinRole(model.RoleManager), s.updateProduct)
		manufacturing.DELETE("/products/:id", s.requireMinRole(model.RoleAdmin), deleteHandler[model.Product](s.db))

		manufacturing.GET("/raw-materials", s.requireMinRole(model.RoleManager),
			listHandler[model.RawMaterial](s.db, listOptions{search: []string{"name"}, order: "name"}))
		manufacturing.GET("/batches", s.requireMinRole(model.RoleManager),
			listHandler[model.ProductionBatch](s.db, listOptions{status: "status", dated: "created_at", preload: []string{"Product"}}))
		manufacturing.POST("/batches", s.requireMinRole(model.RoleManager), s.createBatch)
		manufacturing.POST("/batches/:id/complete", s.requireMinRole(model.RoleManager), s.completeBatch)
	}

	sales := api.Group("/sales")
	{
		sales.GET("/orders", s.requireMinRole(model.RoleCounterOperator),
			listHandler[model.SalesOrder](s.db, listOptions{search: []string{"order_no", "customer_name"}, status: "status", dated: "created_at", preload: []string{"Items"}}))
		sales.GET("/orders/:id", s.requireMinRole(model.RoleCounterOperator), getHandler[model.SalesOrder](s.db, "Items"))
		sales.POST("/orders", s.requireMinRole(model.RoleCounterOperator), s.createOrder)
		sales.POST("/orders/:id/cancel", s.requireMinRole(model.RoleManager), s.cancelOrder)
	}

	finance := api.Group("/finance")
	{
		finance.GET("/invoices", s.requireMinRole(model.RoleManager),
			listHandler[model.Invoice](s.db, listOptions{search: []string{"invoice_no"}, status: "approval_status", dated: "created_at"}))
		finance.GET("/invoices/:id", s.requireMinRole(model.RoleManager), getHandler[model.Invoice](s.db))
		finance.POST("/invoices/:id/approve", s.requireMinRole(model.RoleAdmin), s.decideInvoice(true))
		finance.POST("/invoices/:id/reject", s.requireMinRole(model.RoleAdmin), s.decideInvoice(false))

		finance.GET("/expenses", s.requireMinRole(model.RoleManager),
			listHandler[model.Expense](s.db, listOptions{status: "category", dated: "expense_date"}))
		finance.POST("/expenses", s.requireMinRole(model.RoleManager), s.createExpense)
		finance.DELETE("/expenses/:id", s.requireMinRole(model.RoleAdmin), deleteHandler[model.Expense](s.db))
	}

	hr := api.Group("/hr")
	{
		hr.GET("/employees", s.requireMinRole(model.RoleManager),
			listHandler[model.Employee](s.db, listOptions{search: []string{"employee_code", "first_name", "last_name"}, status: "status", order: "employee_code"}))
		hr.POST("/employees", s.requireMinRole(model.RoleAdmin), s.createEmployee)
		hr.GET("/attendance", s.requireMinRole(model.RoleManager),
			listHandler[model.Attendance](s.db, listOptions{status: "status", dated: "date", order: "date DESC"}))
		hr.POST("/attendance", s.requireMinRole(model.RoleManager), s.markAttendance)
		hr.GET("/payroll", s.requireMinRole(model.RoleAdmin),
			listHandler[model.PayrollEntry](s.db, listOptions{order: "month DESC"}))
	}

	api.GET("/counters", s.requireMinRole(model.RoleCounterOperator),
		listHandler[model.Counter](s.db, listOptions{search: []string{"name", "location"}, status: "status", order: "name"}))
	api.POST("/counters", s.requireMinRole(model.RoleAdmin), s.createCounter)
	api.DELETE("/counters/:id", s.requireMinRole(model.RoleAdmin), deleteHandler[model.Counter](s.db))

	api.GET("/hotels", s.requireMinRole(model.RoleManager),
		listHandler[model.Hotel](s.db, listOptions{search: []string{"name", "address"}, status: "status", order: "name"}))
	api.GET("/hotels/:id/bookings", s.requireMinRole(model.RoleManager),
		listHandler[model.HotelBooking](s.db, listOptions{status: "status", dated: "check_in", pathColumn: "hotel_id", pathParam: "id"}))
	api.POST("/hotels/:id/bookings", s.requireMinRole(model.RoleManager), s.createBooking)

	api.GET("/hostels", s.requireMinRole(model.RoleManager),
		listHandler[model.Hostel](s.db, listOptions{search: []string{"name", "address"}, status: "status", order: "name"}))

	api.GET("/franchises", s.requireMinRole(model.RoleFranchiseManager),
		listHandler[model.Franchise](s.db, listOptions{search: []string{"name", "owner_name"}, status: "status", order: "name"}))
	api.POST("/franchises", s.requireMinRole(model.RoleAdmin), s.createFranchise)

	settings := api.Group("/settings")
	{
		settings.GET("", s.requireMinRole(model.RoleManager), s.listSettings)
		settings.PUT("/:key", s.requireMinRole(model.RoleSuperAdmin), s.putSetting)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/sales", s.requireMinRole(model.RoleManager),
			listHandler[model.SalesOrder](s.db, listOptions{status: "channel", dated: "created_at"}))
		reports.GET("/expenses", s.requireMinRole(model.RoleManager),
			listHandler[model.Expense](s.db, listOptions{status: "category", dated: "expense_date"}))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Route not found"))
	})

	return router
}
