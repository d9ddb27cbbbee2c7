package sqlite

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/example/tpp/internal/ctxutil"
	"github.com/example/tpp/internal/ports/secondary"
)

// ActivityWriterAdapter implements secondary.ActivityWriter using an ActivityRepository.
type ActivityWriterAdapter struct {
	repo secondary.ActivityRepository
}

// NewActivityWriterAdapter creates a new ActivityWriterAdapter.
func NewActivityWriterAdapter(repo secondary.ActivityRepository) *ActivityWriterAdapter {
	return &ActivityWriterAdapter{repo: repo}
}

// Record writes an activity entry attributed to the device in ctx.
func (w *ActivityWriterAdapter) Record(ctx context.Context, action, dateKey, detail string) error {
	return w.repo.Create(ctx, &secondary.ActivityRecord{
		ID:      ulid.Make().String(),
		ActorID: ctxutil.DeviceFromContext(ctx),
		Action:  action,
		DateKey: dateKey,
		Detail:  detail,
	})
}

// Ensure ActivityWriterAdapter implements the interface
var _ secondary.ActivityWriter = (*ActivityWriterAdapter)(nil)
