package database

import (
	"fmt"
	"pos-terminal/internal/common/models"
	"pos-terminal/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	models := []interface{}{
		&models.PaymentHandoff{},
		&models.OrphanedOrder{},
	}

	for _, model := range models {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_orphaned_orders_unresolved ON orphaned_orders(resolved, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_handoffs_session ON payment_handoffs(session_id, created_at)`,
	}
	if db.Config != nil && db.Config.Driver == MYSQL {
		// MySQL has no IF NOT EXISTS for indexes; AutoMigrate tags cover the essentials there.
		return nil
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}
	return nil
}
