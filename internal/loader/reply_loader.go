package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/repository"
)

// ReplyLoader batches direct-reply lookups for one request. Keys requested
// within the wait window are resolved with a single FindByParentIDs query.
// Create one per request; results are cached for the loader's lifetime.
type ReplyLoader struct {
	loader *dataloader.Loader
}

// NewReplyLoader creates a loader reading replies from repo
func NewReplyLoader(repo repository.CommentRepository) *ReplyLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		parentIDs := make([]uuid.UUID, 0, len(keys))
		for i, key := range keys {
			id, err := uuid.Parse(key.String())
			if err != nil {
				results[i] = &dataloader.Result{Error: fmt.Errorf("invalid comment id %q: %w", key.String(), err)}
				continue
			}
			parentIDs = append(parentIDs, id)
		}

		repliesByParent, err := repo.FindByParentIDs(ctx, parentIDs)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		// results must line up with keys
		for i, key := range keys {
			if results[i] != nil {
				continue
			}
			id, _ := uuid.Parse(key.String())
			replies := repliesByParent[id]
			if replies == nil {
				replies = []*domain.Comment{}
			}
			results[i] = &dataloader.Result{Data: replies}
		}
		return results
	}

	return &ReplyLoader{
		loader: dataloader.NewBatchedLoader(batchFn,
			dataloader.WithWait(time.Millisecond),
			dataloader.WithBatchCapacity(500),
		),
	}
}

// Load returns the direct replies of parentID, newest first
func (l *ReplyLoader) Load(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error) {
	data, err := l.loader.Load(ctx, dataloader.StringKey(parentID.String()))()
	if err != nil {
		return nil, err
	}
	return data.([]*domain.Comment), nil
}

// LoadMany returns the direct replies of every parent in one batch
func (l *ReplyLoader) LoadMany(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]*domain.Comment, error) {
	out := make(map[uuid.UUID][]*domain.Comment, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	keys := make(dataloader.Keys, len(parentIDs))
	for i, id := range parentIDs {
		keys[i] = dataloader.StringKey(id.String())
	}

	data, errs := l.loader.LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for i, id := range parentIDs {
		out[id] = data[i].([]*domain.Comment)
	}
	return out, nil
}
