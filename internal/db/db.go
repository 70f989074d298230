package db

import (
	"os"

	"chirp/internal/logger"
	"chirp/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=chirp port=5432 sslmode=disable"
	}

	var err error
	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which the services map to the conflict error kind.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}

	logger.L.Info("database connection established")

	if err := Migrate(DB); err != nil {
		logger.L.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.L.Info("database migration completed")
}

// Migrate creates/updates the schema. Split out so tests can run it against
// their own gorm connection.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	)
}
