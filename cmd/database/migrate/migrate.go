package migration

import (
	"Product-Scanner/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"product", &entities.Product{}},
		{"scan history", &entities.ScanHistory{}},
		{"scanner", &entities.Scanner{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}

	return nil
}
