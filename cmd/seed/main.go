package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clienttrack/internal/config"
	"clienttrack/internal/db"
	"clienttrack/internal/model"
)

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Client{}, &model.Project{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	if err := seedDemoData(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Printf("Seeded demo user %q (password %q)", demoUsername, demoPassword)
}

func seedDemoData(ctx context.Context, gormDB *gorm.DB) error {
	var existing model.User
	err := gormDB.WithContext(ctx).Where("username = ?", demoUsername).First(&existing).Error
	if err == nil {
		log.Println("Demo user already exists, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &model.User{Username: demoUsername, PasswordHash: string(hashed)}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		acme := &model.Client{
			UserID:  user.ID,
			Name:    "Acme Ltd",
			Company: "Acme",
			Email:   "hello@acme.example",
			Phone:   "020 7946 0000",
			Status:  model.ClientStatusActive,
		}
		northwind := &model.Client{
			UserID: user.ID,
			Name:   "Northwind",
			Status: model.ClientStatusLead,
		}
		for _, client := range []*model.Client{acme, northwind} {
			if err := tx.Create(client).Error; err != nil {
				return err
			}
		}

		deadline := time.Now().AddDate(0, 1, 0)
		projects := []*model.Project{
			{
				ClientID:    acme.ID,
				Name:        "Website redesign",
				Description: "Marketing site refresh",
				Value:       decimal.NewFromInt(4500),
				Status:      "In progress",
				Importance:  model.ImportanceHigh,
				Deadline:    &deadline,
			},
			{
				ClientID:   acme.ID,
				Name:       "SEO audit",
				Value:      decimal.NewFromInt(800),
				Importance: model.ImportanceLow,
			},
			{
				ClientID:   northwind.ID,
				Name:       "Discovery workshop",
				Value:      decimal.NewFromInt(1200),
				Importance: model.ImportanceMedium,
			},
		}
		for _, project := range projects {
			if err := tx.Create(project).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
