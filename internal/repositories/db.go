package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/YhormT/kelis-backend/internal/config"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// InitDB opens the Postgres connection, tunes the pool and migrates the
// schema.
func InitDB() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "kelis"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which backs duplicate-reference rejection.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", 0))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 0))

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.TopUp{},
		&models.Transaction{},
		&models.IdempotencyKey{},
		&models.SmsMessage{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Println("database connected and migrated")
	return nil
}

// gormStore implements Store on top of GORM.
type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM handle in the Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Atomic runs fn in one database transaction. The callback receives a store
// bound to that transaction; the wrapped scope commits only if fn returns
// nil.
func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
