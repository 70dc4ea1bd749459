package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hexaparts/procurement-api/internal/config"
	"github.com/hexaparts/procurement-api/internal/database"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/repository"
)

// Seeds a demo organization with parties and suppliers so the webhook flow
// can be exercised end to end. Supplier phones default to a single test
// number; override with SEED_SUPPLIER_PHONE to receive the RFQs yourself.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	ctx := context.Background()
	orgRepo := repository.NewOrganizationRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	existing, err := orgRepo.GetFirst(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if existing != nil {
		fmt.Println("Database already has data. Skipping seed.")
		return nil
	}

	org := &domain.Organization{
		Name:           "Cedars Motors & Trading Co.",
		WhatsAppNumber: "+97477671777",
	}
	if err := orgRepo.Create(ctx, org); err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	parties := []*domain.Party{
		{
			OrganizationID: org.ID,
			Name:           "Ahmed",
			Role:           domain.PartyRoleBuyer,
			Phone:          "+97455001111",
			ApprovalLimit:  500,
		},
		{
			OrganizationID: org.ID,
			Name:           "Raslan",
			Role:           domain.PartyRoleApprover,
			Phone:          "+97455002222",
		},
		{
			OrganizationID: org.ID,
			Name:           "Khalid",
			Role:           domain.PartyRoleRequester,
			Phone:          "+97455003333",
		},
	}
	for _, p := range parties {
		if err := partyRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create party %s: %w", p.Name, err)
		}
	}

	supplierPhone := os.Getenv("SEED_SUPPLIER_PHONE")
	if supplierPhone == "" {
		supplierPhone = "+97455009999"
	}

	suppliers := []*domain.Supplier{
		{
			OrganizationID: org.ID,
			Name:           "Gulf Auto Care",
			ContactName:    "Ali",
			Phone:          supplierPhone,
			Categories:     []string{"transmission", "engine", "suspension", "filters"},
			Location:       "Industrial Area, Doha",
			IsActive:       true,
		},
		{
			OrganizationID: org.ID,
			Name:           "Global Auto Parts",
			ContactName:    "Hassan",
			Phone:          supplierPhone,
			Categories:     []string{"general", "body", "electrical", "brakes"},
			Location:       "Industrial Area, Doha",
			IsActive:       true,
		},
		{
			OrganizationID: org.ID,
			Name:           "Mohamed (Sharjah)",
			ContactName:    "Mohamed",
			Phone:          supplierPhone,
			Categories:     []string{"transmission", "engine"},
			Location:       "Sharjah, UAE",
			IsActive:       true,
		},
	}
	for _, s := range suppliers {
		if err := supplierRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("failed to create supplier %s: %w", s.Name, err)
		}
	}

	fmt.Println("Demo data seeded successfully!")
	fmt.Printf("  Organization: %s\n", org.Name)
	fmt.Printf("  Parties: %d\n", len(parties))
	fmt.Printf("  Suppliers: %d (phone %s)\n", len(suppliers), supplierPhone)
	return nil
}
