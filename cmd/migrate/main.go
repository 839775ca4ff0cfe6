package main

import (
	"log"

	"agency-configurator-be/internal/config"
	"agency-configurator-be/internal/model"
	"agency-configurator-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultOptions())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 2: Creating constraints...")
	postMigrationSQL := []string{
		// one recommendation list per question and answer value
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_answers_question_value ON answers (question_id, value);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status_created ON leads (status, created_at DESC);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed!")
}
