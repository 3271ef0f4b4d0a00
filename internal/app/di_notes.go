package app

import (
	"fmt"

	"github.com/allisson/clinicnotes/internal/database"
	notesRepository "github.com/allisson/clinicnotes/internal/notes/repository"
	notesService "github.com/allisson/clinicnotes/internal/notes/service"
	notesUseCase "github.com/allisson/clinicnotes/internal/notes/usecase"
)

// RecordRepository returns the encrypted record repository for the configured driver.
func (c *Container) RecordRepository() (notesUseCase.RecordRepository, error) {
	var err error
	c.recordRepositoryInit.Do(func() {
		c.recordRepository, err = c.initRecordRepository()
		if err != nil {
			c.setInitError("recordRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("recordRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.recordRepository, nil
}

// NoteCodec returns the note codec.
func (c *Container) NoteCodec() *notesService.NoteCodec {
	c.noteCodecInit.Do(func() {
		c.noteCodec = notesService.NewNoteCodec(c.RecordCipher())
	})
	return c.noteCodec
}

// NoteUseCase returns the note use case, wrapped with metrics.
func (c *Container) NoteUseCase() (notesUseCase.NoteUseCase, error) {
	var err error
	c.noteUseCaseInit.Do(func() {
		c.noteUseCase, err = c.initNoteUseCase()
		if err != nil {
			c.setInitError("noteUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("noteUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.noteUseCase, nil
}

func (c *Container) initRecordRepository() (notesUseCase.RecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return notesRepository.NewSQLiteRecordRepository(db), nil
	case database.DriverPostgres:
		return notesRepository.NewPostgreSQLRecordRepository(db), nil
	case database.DriverMySQL:
		return notesRepository.NewMySQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initNoteUseCase() (notesUseCase.NoteUseCase, error) {
	repo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for note use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for note use case: %w", err)
	}

	useCase := notesUseCase.NewNoteUseCase(repo, c.NoteCodec(), c.config.NotesDecryptWorkers, c.Logger())
	return notesUseCase.NewNoteUseCaseWithMetrics(useCase, businessMetrics), nil
}
