package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"community-feed-api/internal/database"
	"community-feed-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewInMemory(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedEditorialPost(t *testing.T, db *gorm.DB, slug string, published bool, createdAt time.Time) *domain.EditorialPost {
	t.Helper()
	post := &domain.EditorialPost{
		BaseModel: domain.BaseModel{CreatedAt: createdAt.UTC()},
		Title:     slug,
		Slug:      slug,
		Body:      "body",
		Published: published,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedUserPost(t *testing.T, db *gorm.DB, authorID uuid.UUID, approved bool, createdAt time.Time) *domain.UserPost {
	t.Helper()
	post := &domain.UserPost{
		BaseModel:   domain.BaseModel{CreatedAt: createdAt.UTC()},
		AuthorID:    authorID,
		Title:       "community",
		Body:        "body",
		IsApproved:  approved,
		SubmittedOn: datatypes.Date(time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

var ctx = context.Background()
