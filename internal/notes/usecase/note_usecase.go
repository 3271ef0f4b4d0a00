package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
	appValidation "github.com/allisson/clinicnotes/internal/validation"
)

// DefaultDecryptWorkers bounds List fan-out when no positive limit is configured.
const DefaultDecryptWorkers = 4

// noteUseCase implements NoteUseCase.
type noteUseCase struct {
	recordRepo     RecordRepository
	codec          NoteCodec
	decryptWorkers int
	logger         *slog.Logger
	now            func() time.Time
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(
	recordRepo RecordRepository,
	codec NoteCodec,
	decryptWorkers int,
	logger *slog.Logger,
) NoteUseCase {
	if decryptWorkers <= 0 {
		decryptWorkers = DefaultDecryptWorkers
	}
	return &noteUseCase{
		recordRepo:     recordRepo,
		codec:          codec,
		decryptWorkers: decryptWorkers,
		logger:         logger,
		now:            time.Now,
	}
}

func validateInput(input *notesDomain.NoteInput) error {
	if err := input.Validate(); err != nil {
		return apperrors.Wrap(notesDomain.ErrInvalidNote, appValidation.WrapValidationError(err).Error())
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Wrap(notesDomain.ErrInvalidNote, "note id is required")
	}
	return nil
}

// Create encrypts and stores a new note.
func (n *noteUseCase) Create(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	note := &notesDomain.Note{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: n.now().UTC(),
	}
	input.Apply(note)

	if err := n.seal(ctx, note, dek); err != nil {
		return nil, err
	}

	n.logger.Info("note created", slog.String("note_id", note.ID))
	return note, nil
}

// Update decrypts the existing note, applies the new fields and stores it again.
func (n *noteUseCase) Update(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	id string,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	note, err := n.Get(ctx, dek, id)
	if err != nil {
		return nil, err
	}
	input.Apply(note)

	if err := n.seal(ctx, note, dek); err != nil {
		return nil, err
	}

	n.logger.Info("note updated", slog.String("note_id", note.ID))
	return note, nil
}

func (n *noteUseCase) seal(ctx context.Context, note *notesDomain.Note, dek *cryptoDomain.Dek) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	record, err := n.codec.Encode(note, dek)
	if err != nil {
		return err
	}
	return n.recordRepo.Save(ctx, record)
}

// Get loads and decrypts one note.
func (n *noteUseCase) Get(ctx context.Context, dek *cryptoDomain.Dek, id string) (*notesDomain.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	record, err := n.recordRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return n.codec.Decode(record, dek)
}

// List loads every record and decrypts them concurrently.
//
// Order follows the repository (newest first). A record that fails to decode is
// logged and its id added to Skipped, as is a row the repository flagged
// Malformed. Only storage and context errors are returned.
func (n *noteUseCase) List(ctx context.Context, dek *cryptoDomain.Dek) (*notesDomain.NoteList, error) {
	records, err := n.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Each worker writes only its own slot; a nil slot marks a skipped record.
	decoded := make([]*notesDomain.Note, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.decryptWorkers)

	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if record.Malformed {
				n.logger.Warn("skipping malformed note row", slog.String("note_id", record.ID))
				return nil
			}
			note, err := n.codec.Decode(record, dek)
			if err != nil {
				n.logger.Warn("skipping undecryptable note",
					slog.String("note_id", record.ID),
					slog.Any("error", err),
				)
				return nil
			}
			decoded[i] = note
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &notesDomain.NoteList{
		Notes:   make([]*notesDomain.Note, 0, len(records)),
		Skipped: make([]string, 0),
	}
	for i, note := range decoded {
		if note == nil {
			result.Skipped = append(result.Skipped, records[i].ID)
			continue
		}
		result.Notes = append(result.Notes, note)
	}

	if len(result.Skipped) > 0 {
		n.logger.Warn("notes skipped during list",
			slog.Int("skipped", len(result.Skipped)),
			slog.Int("total", len(records)),
		)
	}
	return result, nil
}

// Delete removes a note record.
func (n *noteUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	deleted, err := n.recordRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notesDomain.ErrNoteNotFound
	}

	n.logger.Info("note deleted", slog.String("note_id", id))
	return nil
}
