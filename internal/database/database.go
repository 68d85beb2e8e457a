package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"fitflow/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Case{},
		&domain.BOQ{},
		&domain.BOQItem{},
		&domain.Quotation{},
		&domain.QuotationItem{},
		&domain.BidRound{},
		&domain.Bid{},
		&domain.ProcurementPlan{},
		&domain.Expense{},
		&domain.CatalogItem{},
		&domain.Vendor{},
		&domain.Task{},
		&domain.Activity{},
		&domain.CaseDocument{},
	)
}
