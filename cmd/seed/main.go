package main

import (
	"log"
	"os"

	"jobreach-be/internal/model"
	"jobreach-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: no .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: failed to connect to database:", err)
	}

	color.Cyan("Seeding subscription plans...")

	plans := []model.Plan{
		{
			Id:           uuid.New(),
			Name:         "Free",
			Slug:         "free",
			Price:        0,
			Description:  "Guest-level features plus a saved account",
			AiDailyLimit: 5,
		},
		{
			Id:           uuid.New(),
			Name:         "Pro",
			Slug:         "pro",
			Price:        99000,
			Description:  "Unlimited targets, semantic matching, higher AI quota",
			AiDailyLimit: 100,
		},
	}

	for _, plan := range plans {
		var existing model.Plan
		err := db.Where("slug = ?", plan.Slug).First(&existing).Error
		if err == nil {
			color.Yellow("Plan %q already exists, skipping", plan.Slug)
			continue
		}
		if err := db.Create(&plan).Error; err != nil {
			color.Red("Failed to create plan %q: %v", plan.Slug, err)
			continue
		}
		color.Green("Created plan %q", plan.Slug)
	}

	color.Green("Seeding complete.")
}
