package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"community-feed-api/internal/domain"
)

func TestProfileRepository_CaseInsensitiveUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	owner := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Profile{UserID: owner, Username: "Mina.K", Avatar: "a.png"}))

	found, err := repo.FindByUsername(ctx, "mina.k")
	require.NoError(t, err)
	assert.Equal(t, owner, found.UserID)
	assert.Equal(t, "Mina.K", found.Username)

	taken, err := repo.UsernameTaken(ctx, "MINA.K", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameTaken(ctx, "MINA.K", owner)
	require.NoError(t, err)
	assert.False(t, taken, "own username is excluded")

	err = repo.Create(ctx, &domain.Profile{UserID: uuid.New(), Username: "mina.K", Avatar: "a.png"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProfileRepository_UpdateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)

	b := &domain.Profile{UserID: uuid.New(), Username: "bravo", Avatar: "a.png"}
	a := &domain.Profile{UserID: uuid.New(), Username: "Alpha", Avatar: "a.png"}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, a))

	b.Username = "Charlie"
	b.Bio = "hello"
	require.NoError(t, repo.Update(ctx, b))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Username)
	assert.Equal(t, "Charlie", list[1].Username)
	assert.Equal(t, "hello", list[1].Bio)

	found, err := repo.FindByUserID(ctx, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", found.Username)
}
