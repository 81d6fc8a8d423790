package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
	"golang.org/x/crypto/bcrypt"
)

type seedItem struct {
	name     string
	category models.ItemCategory
	quantity int
}

var starterInventory = []seedItem{
	{"Rice", models.CategoryFood, 200},
	{"Canned Sardines", models.CategoryFood, 150},
	{"Instant Noodles", models.CategoryFood, 300},
	{"Drinking Water", models.CategoryFood, 120},
	{"Blankets", models.CategoryClothing, 80},
	{"T-Shirts", models.CategoryClothing, 100},
	{"Paracetamol", models.CategoryMedicine, 60},
	{"First Aid Kits", models.CategoryMedicine, 25},
	{"Soap", models.CategoryHygiene, 90},
	{"Toothpaste", models.CategoryHygiene, 75},
	{"Tarpaulins", models.CategoryShelter, 40},
	{"Flashlights", models.CategoryOthers, 30},
}

type seedFamily struct {
	username  string
	firstName string
	lastName  string
	barangay  string
	contact   string
}

var sampleFamilies = []seedFamily{
	{"delacruz_fam", "Juan", "Dela Cruz", "San Isidro", "09171234001"},
	{"reyes_fam", "Maria", "Reyes", "Poblacion", "09171234002"},
	{"santos_fam", "Pedro", "Santos", "San Roque", "09171234003"},
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🌱 Seeding starter inventory...")

	created := 0
	for _, s := range starterInventory {
		_, wasCreated, err := services.UpsertItem(database.DB, s.name, s.category, s.quantity)
		if err != nil {
			log.Printf("Failed to seed item %s: %v", s.name, err)
			continue
		}
		if wasCreated {
			created++
		}
	}
	fmt.Printf("✅ Seeded inventory: %d new items of %d\n", created, len(starterInventory))

	fmt.Println("🌱 Seeding sample families...")

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte("relief123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash sample password: %v", err)
	}

	familiesCreated := 0
	for _, f := range sampleFamilies {
		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", f.username).Count(&count)
		if count > 0 {
			continue
		}

		user := models.User{
			Username:     f.username,
			PasswordHash: string(hashedBytes),
			Role:         models.RoleFamilyHead,
			FirstName:    f.firstName,
			LastName:     f.lastName,
			Address:      "Purok 1",
			City:         "Tacloban",
			Barangay:     f.barangay,
			Contact:      f.contact,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Failed to seed family %s: %v", f.username, err)
			continue
		}
		if _, err := services.NotifyNewUser(database.DB, &user); err != nil {
			log.Printf("Failed to record notification for %s: %v", f.username, err)
		}
		familiesCreated++
	}
	fmt.Printf("✅ Seeded %d sample families\n", familiesCreated)
}
