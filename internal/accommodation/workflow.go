// Package accommodation holds the authorize-then-delete workflow for a single
// accommodation record.
package accommodation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type RecordStore interface {
	// FetchByID returns (nil, false, nil) when no record exists.
	FetchByID(ctx context.Context, id ID) (*Record, bool, error)
	DeleteByID(ctx context.Context, id ID) error
}

type IdentityResolver interface {
	ResolveCaller(ctx context.Context, token string) (Identity, error)
}

type MediaStore interface {
	// DeleteMany must treat an empty key list as a successful no-op.
	DeleteMany(ctx context.Context, keys []string) error
}

// Collaborators are long-lived clients shared by every invocation.
type Collaborators struct {
	Records  RecordStore
	Identity IdentityResolver
	Media    MediaStore
}

// Workflow is an accommodation that has been looked up and whose deletion
// has been authorized for the caller. The only way to get one is NewWorkflow.
type Workflow struct {
	id      ID
	ownerID ID
	images  []string

	records RecordStore
	media   MediaStore
}

// NewWorkflow loads the accommodation and checks that the caller owns it.
// It fails with a *NotFoundError or an *UnauthorizedError and never returns
// a partially initialized workflow.
func NewWorkflow(ctx context.Context, id ID, accessToken string, c Collaborators) (*Workflow, error) {
	rec, err := lookup(ctx, c.Records, id)
	if err != nil {
		return nil, err
	}

	w := &Workflow{
		id:      rec.ID,
		ownerID: rec.OwnerID,
		images:  append([]string(nil), rec.Images...),
		records: c.Records,
		media:   c.Media,
	}

	if err := w.authorize(ctx, c.Identity, accessToken); err != nil {
		return nil, err
	}
	return w, nil
}

func lookup(ctx context.Context, store RecordStore, id ID) (*Record, error) {
	if store == nil {
		return nil, &NotFoundError{ID: id, Cause: errors.New("no record store configured")}
	}
	rec, ok, err := store.FetchByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{ID: id, Cause: err}
	}
	if !ok || rec == nil {
		return nil, &NotFoundError{ID: id}
	}
	if rec.ID.IsZero() {
		rec.ID = id
	}
	return rec, nil
}

func (w *Workflow) authorize(ctx context.Context, resolver IdentityResolver, accessToken string) error {
	if resolver == nil {
		return &UnauthorizedError{ID: w.id, Cause: errors.New("no identity resolver configured")}
	}
	caller, err := resolver.ResolveCaller(ctx, accessToken)
	if err != nil {
		return &UnauthorizedError{ID: w.id, Cause: err}
	}

	owner := strings.TrimSpace(w.ownerID.String())
	if owner == "" {
		return &UnauthorizedError{ID: w.id, Caller: caller.Username, Cause: errors.New("record has no owner")}
	}
	if caller.Username != owner {
		return &UnauthorizedError{
			ID:     w.id,
			Caller: caller.Username,
			Cause:  fmt.Errorf("caller %q is not the owner", caller.Username),
		}
	}
	return nil
}

func (w *Workflow) ID() ID { return w.id }

func (w *Workflow) OwnerID() ID { return w.ownerID }

func (w *Workflow) Images() []string {
	return append([]string(nil), w.images...)
}

// Delete removes the media objects and then the record. A record delete
// failure after the media is gone leaves the record pointing at missing
// objects; nothing is rolled back.
func (w *Workflow) Delete(ctx context.Context) error {
	if w.media == nil || w.records == nil {
		return &OperationFailure{ID: w.id, Stage: StageMedia, Err: errors.New("delete collaborators not configured")}
	}
	if err := w.media.DeleteMany(ctx, w.Images()); err != nil {
		return &OperationFailure{ID: w.id, Stage: StageMedia, Err: err}
	}
	if err := w.records.DeleteByID(ctx, w.id); err != nil {
		return &OperationFailure{ID: w.id, Stage: StageRecord, Err: err}
	}
	return nil
}
