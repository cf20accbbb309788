package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"community-feed-api/internal/client"
	"community-feed-api/internal/repository"
)

// DefaultCleanupBatchSize bounds how many orphans one run removes
const DefaultCleanupBatchSize = 100

// CleanupJob removes media objects left behind by deleted posts
type CleanupJob struct {
	orphanRepo repository.MediaOrphanRepository
	storage    client.MediaStorage
	logger     *zap.Logger
	batchSize  int
	timeout    time.Duration
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	orphanRepo repository.MediaOrphanRepository,
	storage client.MediaStorage,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		orphanRepo: orphanRepo,
		storage:    storage,
		logger:     logger,
		batchSize:  DefaultCleanupBatchSize,
		timeout:    2 * time.Minute,
	}
}

// Run deletes one batch of orphaned objects from storage, then forgets the
// rows whose object is gone. Rows whose delete failed stay for the next run.
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	orphans, err := j.orphanRepo.FindBatch(ctx, j.batchSize)
	if err != nil {
		j.logger.Error("Failed to find orphaned media", zap.Error(err))
		return
	}

	if len(orphans) == 0 {
		j.logger.Debug("No orphaned media found")
		return
	}

	var removed []uuid.UUID
	failCount := 0

	for _, orphan := range orphans {
		if orphan.Key == "" {
			// nothing to remove from storage
			removed = append(removed, orphan.ID)
			continue
		}

		if err := j.storage.DeleteFile(ctx, orphan.Key); err != nil {
			j.logger.Error("Failed to delete orphaned media",
				zap.String("orphan_id", orphan.ID.String()),
				zap.String("file_key", orphan.Key),
				zap.Error(err),
			)
			failCount++
			continue
		}

		removed = append(removed, orphan.ID)
		j.logger.Debug("Deleted orphaned media", zap.String("file_key", orphan.Key))
	}

	if len(removed) > 0 {
		if err := j.orphanRepo.DeleteBatch(ctx, removed); err != nil {
			j.logger.Error("Failed to delete orphan records",
				zap.Int("count", len(removed)),
				zap.Error(err),
			)
		}
	}

	j.logger.Info("Media cleanup completed",
		zap.Int("found", len(orphans)),
		zap.Int("removed", len(removed)),
		zap.Int("failed", failCount),
	)
}
