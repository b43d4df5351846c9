package demo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"rotierp/internal/model"
)

// DemoPassword is the password every seeded account accepts
const DemoPassword = "roti123"

// seed loads the demo fixtures: one account per role plus a small spread of
// resources so every module has something to show. Idempotent per database.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	accounts := []Account{
		{ID: uuid.New(), Email: "super@roti.local", FirstName: "Sarita", LastName: "Rao", Role: model.RoleSuperAdmin},
		{ID: uuid.New(), Email: "admin@roti.local", FirstName: "Arjun", LastName: "Mehta", Role: model.RoleAdmin},
		{ID: uuid.New(), Email: "manager@roti.local", FirstName: "Meera", LastName: "Iyer", Role: model.RoleManager},
		{ID: uuid.New(), Email: "franchise@roti.local", FirstName: "Farhan", LastName: "Khan", Role: model.RoleFranchiseManager},
		{ID: uuid.New(), Email: "operator@roti.local", FirstName: "Omkar", LastName: "Patil", Role: model.RoleCounterOperator},
	}
	for i := range accounts {
		accounts[i].PasswordHash = string(hash)
		accounts[i].Status = model.StatusActive
		if err := s.db.Create(&accounts[i]).Error; err != nil {
			return err
		}
	}

	products := []model.Product{
		{ID: uuid.New(), SKU: "ROTI-PLAIN", Name: "Plain Roti", Category: "Breads", UnitPrice: decimal.NewFromFloat(8), CurrentStock: 500, ReorderLevel: 100},
		{ID: uuid.New(), SKU: "ROTI-BUTTER", Name: "Butter Roti", Category: "Breads", UnitPrice: decimal.NewFromFloat(12), CurrentStock: 300, ReorderLevel: 80},
		{ID: uuid.New(), SKU: "PARATHA-ALOO", Name: "Aloo Paratha", Category: "Breads", UnitPrice: decimal.NewFromFloat(25), CurrentStock: 150, ReorderLevel: 40},
		{ID: uuid.New(), SKU: "NAAN-GARLIC", Name: "Garlic Naan", Category: "Breads", UnitPrice: decimal.NewFromFloat(30), CurrentStock: 120, ReorderLevel: 30},
	}
	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	materials := []model.RawMaterial{
		{ID: uuid.New(), Name: "Wheat Flour", Unit: "kg", CurrentStock: decimal.NewFromInt(800), ReorderLevel: decimal.NewFromInt(200), UnitCost: decimal.NewFromFloat(32.5)},
		{ID: uuid.New(), Name: "Ghee", Unit: "l", CurrentStock: decimal.NewFromInt(60), ReorderLevel: decimal.NewFromInt(20), UnitCost: decimal.NewFromFloat(540)},
		{ID: uuid.New(), Name: "Packaging Boxes", Unit: "pcs", CurrentStock: decimal.NewFromInt(2500), ReorderLevel: decimal.NewFromInt(500), UnitCost: decimal.NewFromFloat(4)},
	}
	if err := s.db.Create(&materials).Error; err != nil {
		return err
	}

	counters := []model.Counter{
		{ID: uuid.New(), Name: "Factory Outlet", Location: "Pune MIDC", Status: model.StatusActive},
		{ID: uuid.New(), Name: "Station Road Counter", Location: "Pune Station", Status: model.StatusActive},
	}
	if err := s.db.Create(&counters).Error; err != nil {
		return err
	}

	franchises := []model.Franchise{
		{ID: uuid.New(), Name: "Roti Express Kothrud", OwnerName: "Vikram Shinde", Phone: "+91-9820011223", Location: "Kothrud", RoyaltyRate: decimal.NewFromFloat(0.05), Status: model.StatusActive},
	}
	if err := s.db.Create(&franchises).Error; err != nil {
		return err
	}

	hotels := []model.Hotel{
		{ID: uuid.New(), Name: "Roti Residency", Address: "FC Road, Pune", RoomCount: 24, Status: model.StatusActive},
	}
	if err := s.db.Create(&hotels).Error; err != nil {
		return err
	}

	hostels := []model.Hostel{
		{ID: uuid.New(), Name: "Roti Workers Hostel", Address: "MIDC Phase 2", TotalBeds: 60, OccupiedBeds: 48, MonthlyRent: decimal.NewFromInt(3500), Status: model.StatusActive},
	}
	if err := s.db.Create(&hostels).Error; err != nil {
		return err
	}

	employees := []model.Employee{
		{ID: uuid.New(), EmployeeCode: "EMP-001", FirstName: "Ravi", LastName: "Kulkarni", Department: "Production", Designation: "Head Baker", Salary: decimal.NewFromInt(28000), JoinDate: time.Now().AddDate(-2, 0, 0), Status: model.StatusActive},
		{ID: uuid.New(), EmployeeCode: "EMP-002", FirstName: "Sunita", LastName: "Jadhav", Department: "Sales", Designation: "Counter Staff", Salary: decimal.NewFromInt(18000), JoinDate: time.Now().AddDate(-1, -3, 0), Status: model.StatusActive},
	}
	if err := s.db.Create(&employees).Error; err != nil {
		return err
	}

	settings := []model.Setting{
		{Key: "tax_rate", Value: "0.05"},
		{Key: "currency", Value: "INR"},
		{Key: "business_name", Value: "Roti Factory"},
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return err
	}

	// A few historical orders so reports have data on day one
	now := time.Now()
	for i, fix := range []struct {
		daysAgo int
		qty     int
		channel string
	}{
		{0, 20, model.ChannelPOS},
		{0, 35, model.ChannelFranchise},
		{1, 50, model.ChannelPOS},
		{3, 15, model.ChannelOnline},
	} {
		p := products[i%len(products)]
		created := now.AddDate(0, 0, -fix.daysAgo)
		subtotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(fix.qty)))
		tax := subtotal.Mul(decimal.NewFromFloat(0.05)).Round(4)
		order := model.SalesOrder{
			ID:            uuid.New(),
			OrderNo:       "SO-SEED-" + uuid.NewString()[:8],
			Channel:       fix.channel,
			Status:        model.OrderCompleted,
			CounterID:     &counters[0].ID,
			PaymentMethod: model.PaymentCash,
			Subtotal:      subtotal,
			TaxAmount:     tax,
			TotalAmount:   subtotal.Add(tax),
			CreatedAt:     created,
			Items: []model.SalesOrderItem{
				{ID: uuid.New(), ProductID: p.ID, Quantity: fix.qty, UnitPrice: p.UnitPrice},
			},
		}
		if err := s.db.Create(&order).Error; err != nil {
			return err
		}
	}

	expenses := []model.Expense{
		{ID: uuid.New(), Category: model.ExpenseIngredients, Amount: decimal.NewFromInt(12500), ExpenseDate: now.AddDate(0, 0, -2), CounterID: &counters[0].ID, Note: "Weekly flour purchase"},
		{ID: uuid.New(), Category: model.ExpenseUtilities, Amount: decimal.NewFromInt(4200), ExpenseDate: now.AddDate(0, 0, -5), Note: "Electricity"},
	}
	return s.db.Create(&expenses).Error
}
