package main

import (
	"log"
	"os"

	"jobreach-be/internal/model"
	"jobreach-be/pkg/database"

	"github.com/fatih/color"
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

	color.Cyan("Starting GORM migration...")

	color.Yellow("Step 1: extensions")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Yellow("Step 2: AutoMigrate")
	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.UserProvider{},
		&model.EmailVerificationToken{},
		&model.UserRefreshToken{},

		&model.GuestSession{},
		&model.LinkAttempt{},

		&model.UserProfile{},
		&model.UserSummary{},
		&model.TargetCriteria{},

		&model.Company{},
		&model.CompanyEmbedding{},
		&model.Contact{},
		&model.Interaction{},
		&model.GeneratedMessage{},

		&model.Plan{},
		&model.Subscription{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Yellow("Step 3: vector index")
	postMigrationSQL := []string{
		// ivfflat wants rows before building lists; fall back silently on
		// an empty table.
		`CREATE INDEX IF NOT EXISTS idx_company_embeddings_embedding
		 ON company_embeddings USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: database migration completed.")
}
