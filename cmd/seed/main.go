package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"fitflow/internal/database"
	"fitflow/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fitflow.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (child tables first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM expenses")
	db.Exec("DELETE FROM procurement_plans")
	db.Exec("DELETE FROM bids")
	db.Exec("DELETE FROM bid_rounds")
	db.Exec("DELETE FROM quotation_items")
	db.Exec("DELETE FROM quotations")
	db.Exec("DELETE FROM boq_items")
	db.Exec("DELETE FROM boqs")
	db.Exec("DELETE FROM case_documents")
	db.Exec("DELETE FROM activities")
	db.Exec("DELETE FROM tasks")
	db.Exec("DELETE FROM cases")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM vendors")
	db.Exec("DELETE FROM catalog_items")

	// ================== VENDORS ==================
	log.Println("Creating vendors...")
	vendors := []domain.Vendor{
		{CompanyName: "Sharma Interiors Pvt Ltd", ContactPerson: "R. Sharma", Email: "bids@sharmainteriors.in", Phone: "+91 98100 12345"},
		{CompanyName: "Apex Modular Works", ContactPerson: "K. Iyer", Email: "sales@apexmodular.in", Phone: "+91 98200 54321"},
		{CompanyName: "GreenLeaf Furnishings", ContactPerson: "P. Nair", Email: "quotes@greenleaf.in", Phone: "+91 99300 67890"},
	}
	for i := range vendors {
		db.Create(&vendors[i])
	}

	// ================== CATALOG ==================
	log.Println("Creating catalog items...")
	items := []domain.CatalogItem{
		{Name: "Gypsum board 12.5mm", Unit: "sqft", Rate: 85},
		{Name: "Laminate flooring oak", Unit: "sqft", Rate: 210},
		{Name: "POP false ceiling", Unit: "sqft", Rate: 120},
		{Name: "Modular workstation", Unit: "nos", Rate: 18500},
		{Name: "LED panel light 2x2", Unit: "nos", Rate: 1450},
		{Name: "Emulsion paint premium", Unit: "sqft", Rate: 32},
		{Name: "Glass partition 10mm toughened", Unit: "sqft", Rate: 650},
		{Name: "Vitrified tile 600x600", Unit: "sqft", Rate: 95},
	}
	for i := range items {
		db.Create(&items[i])
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	type seedUser struct {
		email    string
		name     string
		role     domain.UserRole
		vendorID *int64
	}
	seeds := []seedUser{
		{"admin@fitflow.in", "Admin", domain.RoleAdmin, nil},
		{"head@fitflow.in", "Project Head", domain.RoleProjectHead, nil},
		{"auditor@fitflow.in", "Auditor", domain.RoleAuditor, nil},
		{"procurement@fitflow.in", "Procurement", domain.RoleProcurement, nil},
		{"accounts@fitflow.in", "Accounts", domain.RoleAccounts, nil},
		{"client@fitflow.in", "Client", domain.RoleClient, nil},
		{"vendor1@fitflow.in", "Sharma Interiors", domain.RoleVendor, &vendors[0].ID},
		{"vendor2@fitflow.in", "Apex Modular", domain.RoleVendor, &vendors[1].ID},
		{"vendor3@fitflow.in", "GreenLeaf", domain.RoleVendor, &vendors[2].ID},
	}
	for _, s := range seeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
			Name:         s.name,
			VendorID:     s.vendorID,
		}
		db.Create(&u)
		fmt.Printf("  %-12s %s / password123\n", s.role, s.email)
	}

	log.Println("Seed complete")
}
