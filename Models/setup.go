package Models

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ImageVault/Config"
)

var DB *gorm.DB

func Connect() {
	var (
		connection *gorm.DB
		err        error
	)

	// Production runs MySQL; sqlite keeps local runs dependency-free.
	if dsn := Config.Getenv("DB_DSN", ""); dsn != "" {
		connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		connection, err = gorm.Open(sqlite.Open(Config.Getenv("DB_PATH", "database.db")), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) error {
	// 1. Base tables with no foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Category{},
	); err != nil {
		return err
	}

	// 2. Tables that reference users and categories
	if err := db.AutoMigrate(
		&NamingField{},
		&Task{},
		&TaskRequirement{},
	); err != nil {
		return err
	}

	// 3. Images reference tasks, users and categories
	return db.AutoMigrate(&Image{})
}
