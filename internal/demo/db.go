package demo

import (
	"rotierp/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDB initializes the embedded sqlite database and migrates the schema.
// The default DSN is in-memory, so `roti demo` starts with seed data only.
func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&Account{},
		&RefreshToken{},
		&model.Product{},
		&model.RawMaterial{},
		&model.ProductionBatch{},
		&model.SalesOrder{},
		&model.SalesOrderItem{},
		&model.Invoice{},
		&model.Expense{},
		&model.Employee{},
		&model.Attendance{},
		&model.PayrollEntry{},
		&model.Counter{},
		&model.Franchise{},
		&model.Hotel{},
		&model.HotelBooking{},
		&model.Hostel{},
		&model.Setting{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
