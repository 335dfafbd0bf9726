package main

import (
	"log"
	"os"

	"ai-recruiting-be/internal/model"
	"ai-recruiting-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	orgIdStr := os.Getenv("SEED_ORG_ID")
	if orgIdStr == "" {
		log.Fatal("Error: SEED_ORG_ID is not set")
	}
	orgId, err := uuid.Parse(orgIdStr)
	if err != nil {
		log.Fatal("Error: SEED_ORG_ID is not a valid uuid:", err)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding sample candidates...")

	candidates := []model.Candidate{
		{OrgId: orgId, FullName: "Ada Lovelace", Email: "ada@example.com", ParseStatus: "queued"},
		{OrgId: orgId, FullName: "Grace Hopper", Email: "grace@example.com", ParseStatus: "queued"},
		{OrgId: orgId, FullName: "Alan Kay", Email: "alan@example.com", ParseStatus: "queued"},
	}

	for _, c := range candidates {
		var existing model.Candidate
		if err := db.Where("org_id = ? AND email = ?", orgId, c.Email).First(&existing).Error; err == nil {
			log.Printf("Candidate '%s' already exists, skipping...", c.Email)
			continue
		}

		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating candidate '%s': %v", c.FullName, err)
		} else {
			log.Printf("Created candidate: %s (%s)", c.FullName, c.Email)
		}
	}

	log.Println("Seeding completed!")
}
