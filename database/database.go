package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/lolobelaiba-droid/graduation-guardian/configs"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Template{},
		&models.TemplateField{},
		&models.Certificate{},
		&models.CustomField{},
		&models.Setting{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// OpenStore opens the storage backend named by STORAGE_BACKEND: Postgres,
// or a directory of JSON files under DATA_DIR.
func OpenStore() *store.Store {
	switch backend := config.ConfigDefault("STORAGE_BACKEND", BackendFile); backend {
	case BackendPostgres:
		ConnectDB()
		Migrate()
		return store.NewGormStore(DB)
	case BackendFile:
		dir := config.ConfigDefault("DATA_DIR", "./data")
		st, err := store.NewFileStore(dir)
		if err != nil {
			log.Fatalf("🔥 Failed to open file store in %s: %v", dir, err)
		}
		log.Printf("✅ File store ready in %s", dir)
		return st
	default:
		log.Fatalf("🔥 Unknown STORAGE_BACKEND %q", backend)
	}
	return nil
}
