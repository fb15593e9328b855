package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// JournalEntryRepository define el puerto de persistencia para asientos contables.
type JournalEntryRepository interface {
	Create(ctx context.Context, je *entity.JournalEntry) error
	GetByName(ctx context.Context, name string) (*entity.JournalEntry, error)
	ListByReference(ctx context.Context, doctype, name string) ([]*entity.JournalEntry, error)
}
