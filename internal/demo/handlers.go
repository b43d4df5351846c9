package demo

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rotierp/internal/model"
	"rotierp/pkg/response"
)

// --- Manufacturing ---

type productRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	ReorderLevel int             `json:"reorderLevel"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	product := model.Product{
		ID:           uuid.New(),
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
	}
	if err := s.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "SKU already exists"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

func (s *Server) updateProduct(c *gin.Context) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Product not found"))
		return
	}
	var req struct {
		Name         string           `json:"name"`
		Category     string           `json:"category"`
		UnitPrice    *decimal.Decimal `json:"unitPrice"`
		ReorderLevel *int             `json:"reorderLevel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}
	if err := s.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to update product"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

type batchRequest struct {
	BatchCode string `json:"batchCode" binding:"required"`
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// createBatch plans a production run; completing it adds the quantity to the
// product's stock
func (s *Server) createBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	productID, _ := uuid.Parse(req.ProductID)
	var product model.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unknown product"))
		return
	}
	batch := model.ProductionBatch{
		ID:        uuid.New(),
		BatchCode: req.BatchCode,
		ProductID: productID,
		Quantity:  req.Quantity,
		Status:    model.BatchPlanned,
	}
	if err := s.db.Create(&batch).Error; err != nil {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Batch code already exists"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, batch))
}

func (s *Server) completeBatch(c *gin.Context) {
	var batch model.ProductionBatch
	if err := s.db.First(&batch, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Batch not found"))
		return
	}
	if batch.Status == model.BatchCompleted {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Batch already completed"))
		return
	}
	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		batch.Status = model.BatchCompleted
		batch.FinishedAt = &now
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}
		return tx.Model(&model.Product{}).Where("id = ?", batch.ProductID).
			Update("current_stock", gorm.Expr("current_stock + ?", batch.Quantity)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to complete batch"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, batch))
}

// --- Sales ---

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	Channel       string             `json:"channel" binding:"required,oneof=POS ONLINE FRANCHISE"`
	CounterID     string             `json:"counterId" binding:"omitempty,uuid"`
	FranchiseID   string             `json:"franchiseId" binding:"omitempty,uuid"`
	CustomerName  string             `json:"customerName"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=CASH CARD UPI"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// createOrder rings up a sale: decrement stock, write the order and its
// invoice in one transaction, then broadcast events
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order := model.SalesOrder{
		ID:            uuid.New(),
		OrderNo:       fmt.Sprintf("SO-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.NewString()[:8])),
		Channel:       req.Channel,
		Status:        model.OrderCompleted,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
	}
	if req.CounterID != "" {
		id, _ := uuid.Parse(req.CounterID)
		order.CounterID = &id
	}
	if req.FranchiseID != "" {
		id, _ := uuid.Parse(req.FranchiseID)
		order.FranchiseID = &id
	}

	var lowStock []model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		for _, item := range req.Items {
			productID, _ := uuid.Parse(item.ProductID)
			var product model.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				return fmt.Errorf("unknown product %s", item.ProductID)
			}
			if product.CurrentStock < item.Quantity {
				return fmt.Errorf("insufficient stock for %s", product.SKU)
			}
			product.CurrentStock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			if product.CurrentStock <= product.ReorderLevel {
				lowStock = append(lowStock, product)
			}
			line := model.SalesOrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: productID,
				Quantity:  item.Quantity,
				UnitPrice: product.UnitPrice,
			}
			order.Items = append(order.Items, line)
			subtotal = subtotal.Add(line.LineTotal())
		}

		order.Subtotal = subtotal
		order.TaxAmount = subtotal.Mul(s.taxRate(tx)).Round(4)
		order.TotalAmount = order.Subtotal.Add(order.TaxAmount)
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		invoice := model.Invoice{
			ID:            uuid.New(),
			InvoiceNo:     "INV-" + order.OrderNo,
			ReferenceType: model.RefTypeSalesOrder,
			ReferenceID:   order.ID,
			Subtotal:      order.Subtotal,
			TaxAmount:     order.TaxAmount,
			TotalAmount:   order.TotalAmount,
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	s.hub.Broadcast("order.created", map[string]interface{}{
		"orderNo": order.OrderNo,
		"channel": order.Channel,
		"total":   order.TotalAmount.String(),
	})
	for _, p := range lowStock {
		s.hub.Broadcast("stock.low", map[string]interface{}{
			"sku":          p.SKU,
			"currentStock": p.CurrentStock,
		})
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

func (s *Server) cancelOrder(c *gin.Context) {
	var order model.SalesOrder
	if err := s.db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Order not found"))
		return
	}
	if order.Status == model.OrderCancelled {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Order already cancelled"))
		return
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := tx.Model(&model.Product{}).Where("id = ?", item.ProductID).
				Update("current_stock", gorm.Expr("current_stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&order).Update("status", model.OrderCancelled).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to cancel order"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"cancelled": true}))
}

// taxRate reads the configurable sales tax fraction, defaulting to 5%
func (s *Server) taxRate(tx *gorm.DB) decimal.Decimal {
	var setting model.Setting
	if err := tx.First(&setting, "key = ?", "tax_rate").Error; err == nil {
		if rate, err := decimal.NewFromString(setting.Value); err == nil {
			return rate
		}
	}
	return decimal.NewFromFloat(0.05)
}

// --- Finance ---

func (s *Server) decideInvoice(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice model.Invoice
		if err := s.db.First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
			return
		}
		if invoice.ApprovalStatus != model.ApprovalPending {
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Invoice already decided"))
			return
		}
		now := time.Now()
		invoice.ApprovalStatus = model.ApprovalApproved
		if !approve {
			invoice.ApprovalStatus = model.ApprovalRejected
		}
		if id, err := uuid.Parse(c.GetString("accountID")); err == nil {
			invoice.ApprovedBy = &id
		}
		invoice.ApprovedAt = &now
		if err := s.db.Save(&invoice).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to update invoice"))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
	}
}

type expenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	CounterID   string          `json:"counterId" binding:"omitempty,uuid"`
	Note        string          `json:"note"`
}

func (s *Server) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Amount must be positive"))
		return
	}
	expense := model.Expense{
		ID:          uuid.New(),
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
		Note:        req.Note,
	}
	if req.CounterID != "" {
		id, _ := uuid.Parse(req.CounterID)
		expense.CounterID = &id
	}
	if err := s.db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to create expense"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, expense))
}

// --- HR ---

type employeeRequest struct {
	EmployeeCode string          `json:"employeeCode" binding:"required"`
	FirstName    string          `json:"firstName" binding:"required"`
	LastName     string          `json:"lastName"`
	Phone        string          `json:"phone"`
	Department   string          `json:"department" binding:"required"`
	Designation  string          `json:"designation"`
	Salary       decimal.Decimal `json:"salary" binding:"required"`
	JoinDate     time.Time       `json:"joinDate"`
}

func (s *Server) createEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	employee := model.Employee{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Department:   req.Department,
		Designation:  req.Designation,
		Salary:       req.Salary,
		JoinDate:     req.JoinDate,
		Status:       model.StatusActive,
	}
	if err := s.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Employee code already exists"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, employee))
}

type attendanceRequest struct {
	EmployeeID string    `json:"employeeId" binding:"required,uuid"`
	Date       time.Time `json:"date" binding:"required"`
	Status     string    `json:"status" binding:"required,oneof=PRESENT ABSENT LEAVE HALF_DAY"`
}

func (s *Server) markAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	employeeID, _ := uuid.Parse(req.EmployeeID)
	record := model.Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       req.Date,
		Status:     req.Status,
	}
	if err := s.db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to record attendance"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// --- Sites ---

func (s *Server) createCounter(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	counter := model.Counter{ID: uuid.New(), Name: req.Name, Location: req.Location, Status: model.StatusActive}
	if err := s.db.Create(&counter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to create counter"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, counter))
}

func (s *Server) createFranchise(c *gin.Context) {
	var req struct {
		Name        string          `json:"name" binding:"required"`
		OwnerName   string          `json:"ownerName" binding:"required"`
		Phone       string          `json:"phone"`
		Location    string          `json:"location"`
		RoyaltyRate decimal.Decimal `json:"royaltyRate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	franchise := model.Franchise{
		ID:          uuid.New(),
		Name:        req.Name,
		OwnerName:   req.OwnerName,
		Phone:       req.Phone,
		Location:    req.Location,
		RoyaltyRate: req.RoyaltyRate,
		Status:      model.StatusActive,
	}
	if err := s.db.Create(&franchise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to create franchise"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, franchise))
}

func (s *Server) createBooking(c *gin.Context) {
	var hotel model.Hotel
	if err := s.db.First(&hotel, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Hotel not found"))
		return
	}
	var req struct {
		GuestName string          `json:"guestName" binding:"required"`
		RoomNo    string          `json:"roomNo" binding:"required"`
		Rate      decimal.Decimal `json:"rate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	booking := model.HotelBooking{
		ID:        uuid.New(),
		HotelID:   hotel.ID,
		GuestName: req.GuestName,
		RoomNo:    req.RoomNo,
		CheckIn:   time.Now(),
		Rate:      req.Rate,
		Status:    model.BookingReserved,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to create booking"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// --- Settings ---

func (s *Server) listSettings(c *gin.Context) {
	settings := []model.Setting{}
	if err := s.db.Order("key").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list settings"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

func (s *Server) putSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	setting := model.Setting{Key: c.Param("key"), Value: req.Value}
	if err := s.db.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to save setting"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}
