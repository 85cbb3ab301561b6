package main

import (
	"log"
	"os"

	"seo-assistant-be/internal/model"
	"seo-assistant-be/pkg/database"

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

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo workspace...")

	demoUser := model.User{
		Email:    "demo@seo-assistant.local",
		FullName: "Demo User",
		Role:     "user",
		Status:   "active",
	}
	if err := db.Where("email = ?", demoUser.Email).FirstOrCreate(&demoUser).Error; err != nil {
		log.Fatalf("Error seeding demo user: %v", err)
	}
	log.Printf("Demo user: %s (%s)", demoUser.Email, demoUser.Id)

	demoProject := model.Project{
		UserId:   demoUser.Id,
		Name:     "Demo Store",
		Domain:   "demostore.example.com",
		Location: "United States",
	}
	if err := db.Where("user_id = ? AND domain = ?", demoUser.Id, demoProject.Domain).FirstOrCreate(&demoProject).Error; err != nil {
		log.Fatalf("Error seeding demo project: %v", err)
	}
	log.Printf("Demo project: %s (%s)", demoProject.Name, demoProject.Id)

	keywords := []model.TrackedKeyword{
		{ProjectId: demoProject.Id, Keyword: "running shoes", IsActive: true, SearchVolume: 74000, Difficulty: 68, Intent: "commercial", CPC: 1.42, Trend: "up"},
		{ProjectId: demoProject.Id, Keyword: "best trail running shoes", IsActive: true, SearchVolume: 12100, Difficulty: 51, Intent: "commercial", CPC: 1.10, Trend: "stable"},
		{ProjectId: demoProject.Id, Keyword: "how to choose running shoes", IsActive: true, SearchVolume: 2900, Difficulty: 34, Intent: "informational", CPC: 0.45, Trend: "up"},
		{ProjectId: demoProject.Id, Keyword: "running shoes sale", IsActive: false, SearchVolume: 8100, Difficulty: 44, Intent: "transactional", CPC: 0.98, Trend: "down"},
	}

	for _, kw := range keywords {
		if err := db.Where("project_id = ? AND keyword = ?", kw.ProjectId, kw.Keyword).FirstOrCreate(&kw).Error; err != nil {
			log.Printf("Error seeding keyword '%s': %v", kw.Keyword, err)
		} else {
			log.Printf("Seeded keyword: %s", kw.Keyword)
		}
	}

	log.Println("Demo workspace seeding completed!")

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)
}
