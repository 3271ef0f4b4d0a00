package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/metrics"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

// noteUseCaseWithMetrics decorates NoteUseCase with metrics instrumentation.
type noteUseCaseWithMetrics struct {
	next    NoteUseCase
	metrics metrics.BusinessMetrics
}

// NewNoteUseCaseWithMetrics wraps a NoteUseCase with metrics recording.
func NewNoteUseCaseWithMetrics(useCase NoteUseCase, m metrics.BusinessMetrics) NoteUseCase {
	return &noteUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (n *noteUseCaseWithMetrics) record(ctx context.Context, operation string, err error, start time.Time) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	n.metrics.RecordOperation(ctx, "notes", operation, status)
	n.metrics.RecordDuration(ctx, "notes", operation, time.Since(start), status)
}

// Create records metrics for note creation.
func (n *noteUseCaseWithMetrics) Create(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Create(ctx, dek, input)
	n.record(ctx, "note_create", err, start)
	return note, err
}

// Update records metrics for note updates.
func (n *noteUseCaseWithMetrics) Update(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	id string,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Update(ctx, dek, id, input)
	n.record(ctx, "note_update", err, start)
	return note, err
}

// Get records metrics for note reads.
func (n *noteUseCaseWithMetrics) Get(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	id string,
) (*notesDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Get(ctx, dek, id)
	n.record(ctx, "note_get", err, start)
	return note, err
}

// List records metrics for bulk loads, plus one "skipped" operation per
// record that failed to decrypt.
func (n *noteUseCaseWithMetrics) List(ctx context.Context, dek *cryptoDomain.Dek) (*notesDomain.NoteList, error) {
	start := time.Now()
	list, err := n.next.List(ctx, dek)
	n.record(ctx, "note_list", err, start)
	if list != nil {
		for range list.Skipped {
			n.metrics.RecordOperation(ctx, "notes", "note_decrypt", metrics.StatusSkipped)
		}
	}
	return list, err
}

// Delete records metrics for note deletion.
func (n *noteUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := n.next.Delete(ctx, id)
	n.record(ctx, "note_delete", err, start)
	return err
}
