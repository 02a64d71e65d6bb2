package main

import (
	"log"
	"os"
	"time"

	"github.com/qasemB/blog-back-end/internal/config"
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/store"
	"github.com/qasemB/blog-back-end/internal/utils"
)

// Seeds the default admin account exactly once. Credentials can be
// overridden through ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	cfg := config.Load()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	adminUsername := getEnv("ADMIN_USERNAME", "admin")
	adminEmail := getEnv("ADMIN_EMAIL", "admin@blog.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123")

	users := db.Users()
	existing, found := users.Find(func(u models.User) bool { return u.Username == adminUsername })
	if found {
		log.Println("Admin user already exists:", existing.Username)
		log.Println("  Email:", existing.Email)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		ID:           utils.NewID(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.Insert(admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created successfully!")
	log.Println("  Username:", admin.Username)
	log.Println("  Email:", admin.Email)
	log.Println("Change the default password after first login.")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
