package ports

import "github.com/aretw0/infobot/pkg/domain"

// RecordStore is the read-only catalog view the resolvers depend on.
// Implementations must be safe for concurrent reads.
type RecordStore interface {
	// FindByName returns the first record, in store order, whose name contains query
	// case-insensitively.
	FindByName(query string) (domain.Record, bool)

	// FindByLocation returns every record whose location contains query case-insensitively.
	FindByLocation(query string) []domain.Record
}
