package roster

import "context"

type Repository interface {
	CreateEntry(ctx context.Context, entry *Entry) error
	GetEntry(ctx context.Context, entryID string) (*Entry, error)
	ListEntries(ctx context.Context, churchID string, kind Kind) ([]Entry, error)
	UpdateEntry(ctx context.Context, entry *Entry) error
	SetEntryActive(ctx context.Context, entryID string, active bool) error
	DeleteEntry(ctx context.Context, entryID string) error
	HasUserEntry(ctx context.Context, churchID string, kind Kind, userID string) (bool, error)
}
