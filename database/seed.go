package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/bookmypg/api/model"
	"github.com/bookmypg/api/utils/auth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given database
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedSampleListings(); err != nil {
		return fmt.Errorf("failed to seed sample listings: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	// Check if an admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@bookmypg.com"
	}
	if adminPassword == "" {
		log.Println("⚠️  ADMIN_PASSWORD environment variable not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", adminEmail)
	return nil
}

// SeedSampleListings creates a sample college with one attached PG
func (s *Seeder) SeedSampleListings() error {
	var count int64
	if err := s.db.Model(&model.College{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Colleges already present, skipping sample listings...")
		return nil
	}

	college := model.College{
		Name:    "Sample University",
		Address: "123 University Road, Sample City",
	}
	if err := s.db.Create(&college).Error; err != nil {
		return err
	}

	facilities, err := json.Marshal([]string{"wifi", "laundry", "meals"})
	if err != nil {
		return err
	}

	pg := model.PG{
		Name:       "Comfort PG",
		Address:    "45 College Lane, Sample City",
		Price:      8500,
		Facilities: datatypes.JSON(facilities),
		CollegeID:  &college.ID,
	}
	if err := s.db.Create(&pg).Error; err != nil {
		return err
	}

	log.Printf("✅ Sample listings created: %s, %s", college.Name, pg.Name)
	return nil
}
