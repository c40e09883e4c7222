package database

import (
	"log"
	"os"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the operator account on first boot if it does not exist.
func SeedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@brandloop.id"
	}
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin-change-me"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Seed] bcrypt failed: %v", err)
		return
	}
	admin := &models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		FullName:     "Brandloop Admin",
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[Seed] admin create failed: %v", err)
		return
	}
	log.Printf("[Seed] admin account created: %s", email)
}
