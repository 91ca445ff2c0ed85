package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// snapshot is the stored hierarchy together with the data version it was
// read at.
type snapshot struct {
	Version   int64
	Hierarchy domain.Hierarchy
}

// loadSnapshot reads the version and the hierarchy inside one transaction so
// they always agree.
func loadSnapshot(ctx context.Context, uow db.UnitOfWork) (snapshot, error) {
	var snap snapshot
	err := uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := repository.NewRepos(tx)
		v, err := repos.Version.Get(ctx)
		if err != nil {
			return err
		}
		h, err := repository.LoadHierarchy(ctx, repos)
		if err != nil {
			return err
		}
		snap = snapshot{Version: v, Hierarchy: h}
		return nil
	})
	if err != nil {
		return snapshot{}, fmt.Errorf("loading hierarchy: %w", err)
	}
	return snap, nil
}

// ErrInvalidPayload marks import payloads rejected by validation.
var ErrInvalidPayload = errors.New("import validation failed")

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf(" (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w%s", ErrInvalidPayload, msg)
}

// timelineError maps engine sentinel errors onto request error codes.
func timelineError(err error) *app.TimelineError {
	code := app.TimelineErrInvalidRange
	switch {
	case errors.Is(err, timeline.ErrUnknownGranularity):
		code = app.TimelineErrInvalidGranularity
	case errors.Is(err, timeline.ErrTooManyColumns):
		code = app.TimelineErrTooManyColumns
	}
	return &app.TimelineError{Code: code, Message: err.Error()}
}

func nowOr(clock func() time.Time, override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	if clock != nil {
		return clock()
	}
	return time.Now()
}

func normalizedKeyword(kw string) string {
	return hierarchy.NormalizeKeyword(kw)
}

func sortedIDs(ids []string) []string {
	return hierarchy.NewExpansion(ids...).IDs()
}
