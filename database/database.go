package database

import (
	"fmt"
	"log"

	config "github.com/skimonitor/api/configs"
	"github.com/skimonitor/api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.Instructor{},
		&models.Lesson{},
		&models.Booking{},
		&models.PaymentTransaction{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	hashed := string(hashedPassword)
	adminUser := models.User{
		Name:     config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: &hashed,
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
}

func ptr(f float64) *float64 { return &f }

// SeedStations loads the static resort catalog. Stations are reference data:
// they are never mutated through the API.
func SeedStations() {
	var count int64
	if err := DB.Model(&models.Station{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check station catalog: %v", err)
	}
	if count > 0 {
		return
	}

	stations := []models.Station{
		{Name: "Chamonix-Mont-Blanc", Region: "Haute-Savoie", Altitude: 1035, Latitude: ptr(45.9237), Longitude: ptr(6.8694)},
		{Name: "Val Thorens", Region: "Savoie", Altitude: 2300, Latitude: ptr(45.2979), Longitude: ptr(6.5800)},
		{Name: "Courchevel", Region: "Savoie", Altitude: 1850, Latitude: ptr(45.4154), Longitude: ptr(6.6345)},
		{Name: "Val d'Isère", Region: "Savoie", Altitude: 1850, Latitude: ptr(45.4481), Longitude: ptr(6.9803)},
		{Name: "Tignes", Region: "Savoie", Altitude: 2100, Latitude: ptr(45.4686), Longitude: ptr(6.9060)},
		{Name: "Les Arcs", Region: "Savoie", Altitude: 1600, Latitude: ptr(45.5724), Longitude: ptr(6.8294)},
		{Name: "La Plagne", Region: "Savoie", Altitude: 1970, Latitude: ptr(45.5063), Longitude: ptr(6.6776)},
		{Name: "Méribel", Region: "Savoie", Altitude: 1450, Latitude: ptr(45.3967), Longitude: ptr(6.5661)},
		{Name: "Alpe d'Huez", Region: "Isère", Altitude: 1860, Latitude: ptr(45.0909), Longitude: ptr(6.0686)},
		{Name: "Les Deux Alpes", Region: "Isère", Altitude: 1650, Latitude: ptr(45.0117), Longitude: ptr(6.1247)},
		{Name: "Serre Chevalier", Region: "Hautes-Alpes", Altitude: 1400, Latitude: ptr(44.9413), Longitude: ptr(6.5531)},
		{Name: "Avoriaz", Region: "Haute-Savoie", Altitude: 1800, Latitude: ptr(46.1912), Longitude: ptr(6.7709)},
	}

	if err := DB.Create(&stations).Error; err != nil {
		log.Fatalf("🔥 Failed to seed station catalog: %v", err)
	}

	log.Printf("✅ Seeded %d stations", len(stations))
}
