// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
)

// SeedRootAgent creates the initial top-level agent from the environment so a
// fresh deployment has someone who can log in.
func SeedRootAgent() error {
	email := os.Getenv("ROOT_AGENT_EMAIL")
	password := os.Getenv("ROOT_AGENT_PASSWORD")
	if email == "" || password == "" {
		log.Println("ROOT_AGENT_EMAIL/ROOT_AGENT_PASSWORD not set. Skipping root agent seeding.")
		return nil
	}

	var existing models.Agent
	err := utils.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Root agent already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	agent := models.Agent{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := utils.DB.Create(&agent).Error; err != nil {
		return err
	}

	log.Println("Root agent seeded successfully.")
	return nil
}

// SeedCatalogue loads a small starter college/course catalogue when the
// catalogue is empty.
func SeedCatalogue() error {
	var count int64
	if err := utils.DB.Model(&models.College{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalogue already populated. Skipping seeding.")
		return nil
	}

	colleges := []models.College{
		{
			Name: "Seneca College", Country: "Canada", City: "Toronto",
			Website: "https://www.senecacollege.ca",
			Courses: []models.Course{
				{Name: "Computer Programming", Level: "Diploma", DurationYears: 2, FirstYearFee: 16500, TotalFee: 33000},
				{Name: "Business Management", Level: "Diploma", DurationYears: 2, FirstYearFee: 15000, TotalFee: 30000},
			},
		},
		{
			Name: "Conestoga College", Country: "Canada", City: "Kitchener",
			Website: "https://www.conestogac.on.ca",
			Courses: []models.Course{
				{Name: "Project Management", Level: "Graduate Certificate", DurationYears: 1, FirstYearFee: 18000, TotalFee: 18000},
			},
		},
	}

	for _, college := range colleges {
		if err := utils.DB.Create(&college).Error; err != nil {
			return err
		}
	}

	log.Println("Starter catalogue seeded successfully.")
	return nil
}
