package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditLogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.AuditLogModel{})
	require.NoError(t, err)

	return db
}

func TestAuditLogRepository_Append(t *testing.T) {
	db := setupAuditLogTestDB(t)
	repo := NewGormAuditLogRepository(db)
	ctx := context.Background()

	actor := uuid.New()
	returnID := uuid.New()

	entry := shared.NewAuditLog(&actor, "return.finalized", "return", returnID, `{"number":"RET-20260830-0001"}`)
	err := repo.Append(ctx, entry)
	require.NoError(t, err)

	found, err := repo.FindByEntity(ctx, "return", returnID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entry.ID, found[0].ID)
	assert.Equal(t, "return.finalized", found[0].Action)
	require.NotNil(t, found[0].Actor)
	assert.Equal(t, actor, *found[0].Actor)
	assert.Equal(t, `{"number":"RET-20260830-0001"}`, found[0].Detail)
}

func TestAuditLogRepository_FindByEntity(t *testing.T) {
	db := setupAuditLogTestDB(t)
	repo := NewGormAuditLogRepository(db)
	ctx := context.Background()

	returnID := uuid.New()
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	actions := []string{"return.drafted", "return.finalized"}
	for i, action := range actions {
		entry := shared.NewAuditLog(nil, action, "return", returnID, "")
		entry.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Append(ctx, entry))
	}

	// Entry for another entity type with the same ID must not leak in.
	other := shared.NewAuditLog(nil, "order.cancelled", "order", returnID, "")
	require.NoError(t, repo.Append(ctx, other))

	t.Run("returns entries newest first", func(t *testing.T) {
		found, err := repo.FindByEntity(ctx, "return", returnID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "return.finalized", found[0].Action)
		assert.Equal(t, "return.drafted", found[1].Action)
	})

	t.Run("supports system entries with no actor", func(t *testing.T) {
		found, err := repo.FindByEntity(ctx, "return", returnID)
		require.NoError(t, err)
		assert.Nil(t, found[0].Actor)
	})

	t.Run("returns empty slice for unknown entity", func(t *testing.T) {
		found, err := repo.FindByEntity(ctx, "credit", uuid.New())
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
