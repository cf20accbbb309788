package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

// Models lists every persisted entity, parents before children
func Models() []interface{} {
	return []interface{}{
		&domain.EditorialPost{},
		&domain.UserPost{},
		&domain.Comment{},
		&domain.UserPostComment{},
		&domain.Like{},
		&domain.CommentLike{},
		&domain.UserPostLike{},
		&domain.UserPostCommentLike{},
		&domain.Profile{},
		&domain.MediaOrphan{},
	}
}

// AutoMigrate creates or updates tables, indexes and foreign keys for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate migrates one model at a time and logs what happened to each table
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table
		existed := migrator.HasTable(model)

		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", table),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}

		logger.Info("Migrated table",
			zap.String("table", table),
			zap.Bool("was_existing", existed),
		)
	}

	return nil
}
