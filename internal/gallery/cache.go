package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/campus-ease/presence/internal/domain"
)

// PersonLister is the slice of the embedding store the cache needs
type PersonLister interface {
	ListEnabled(ctx context.Context, limit int) ([]domain.Person, error)
}

// Entry is the per-identity metadata kept alongside a matrix row
type Entry struct {
	PersonID uuid.UUID
	Name     string
	RosterID string
	Role     string
}

// Snapshot is an immutable view of the gallery at one refresh instant.
// Matrix is row-major: row i (Dim floats) is the embedding of Entries[i].
// Snapshots are replaced wholesale, never mutated, so concurrent readers
// always see a complete gallery.
type Snapshot struct {
	Entries  []Entry
	Matrix   []float32
	Dim      int
	LoadedAt time.Time
}

// Len returns the number of identities in the snapshot
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Row returns the embedding row for entry i
func (s *Snapshot) Row(i int) []float32 {
	return s.Matrix[i*s.Dim : (i+1)*s.Dim]
}

// Cache keeps a time-bounded in-memory mirror of all recognition-enabled
// identities, loaded as a dense matrix for vectorized matching.
type Cache struct {
	store  PersonLister
	logger *slog.Logger
	dim    int
	ttl    time.Duration

	snap atomic.Pointer[Snapshot]
}

// New creates an empty cache; call Refresh (or EnsureFresh) to populate it
func New(store PersonLister, logger *slog.Logger, dim int, ttl time.Duration) *Cache {
	return &Cache{
		store:  store,
		logger: logger,
		dim:    dim,
		ttl:    ttl,
	}
}

// Refresh fetches all recognition-enabled identities and atomically replaces
// the snapshot. On failure the previous snapshot stays in place: stale data
// beats no data.
func (c *Cache) Refresh(ctx context.Context) error {
	persons, err := c.store.ListEnabled(ctx, 0)
	if err != nil {
		return fmt.Errorf("refresh gallery: %w", err)
	}

	snap := &Snapshot{
		Entries:  make([]Entry, 0, len(persons)),
		Matrix:   make([]float32, 0, len(persons)*c.dim),
		Dim:      c.dim,
		LoadedAt: time.Now(),
	}

	for _, p := range persons {
		if p.EmbeddingData == "" {
			continue
		}
		embedding, err := domain.DecodeEmbedding(p.EmbeddingData, c.dim)
		if err != nil {
			// a corrupt row must not poison the whole gallery
			c.logger.Warn("dropping person with undecodable embedding",
				slog.String("person_id", p.ID.String()),
				slog.String("name", p.Name),
				slog.Any("error", err),
			)
			continue
		}
		snap.Entries = append(snap.Entries, Entry{
			PersonID: p.ID,
			Name:     p.Name,
			RosterID: p.RosterID,
			Role:     p.Role,
		})
		snap.Matrix = append(snap.Matrix, embedding...)
	}

	c.snap.Store(snap)
	c.logger.Info("gallery refreshed", slog.Int("persons", len(snap.Entries)))
	return nil
}

// EnsureFresh refreshes only when the snapshot is missing or older than the
// staleness window. The check is deliberately not atomic across callers:
// two concurrent refreshes waste work but cannot corrupt the snapshot.
// A failed refresh is absorbed when a previous snapshot can still serve.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	snap := c.snap.Load()
	if snap != nil && time.Since(snap.LoadedAt) <= c.ttl {
		return nil
	}

	if err := c.Refresh(ctx); err != nil {
		if snap != nil {
			c.logger.Warn("gallery refresh failed, serving stale snapshot",
				slog.Duration("age", time.Since(snap.LoadedAt)),
				slog.Any("error", err),
			)
			return nil
		}
		return err
	}
	return nil
}

// Snapshot returns the current snapshot, or nil before the first refresh
func (c *Cache) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Age returns the time since the last successful refresh
func (c *Cache) Age() time.Duration {
	snap := c.snap.Load()
	if snap == nil {
		return 0
	}
	return time.Since(snap.LoadedAt)
}

// Len returns the number of cached identities
func (c *Cache) Len() int {
	return c.snap.Load().Len()
}
