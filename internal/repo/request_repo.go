// Package repo implements the in-memory request repository: an ordered
// collection of request records with create, update, delete, and filter
// operations, persisted whole after every mutation.
//
// The collection is the single source of truth for the process. Records are
// kept newest-first (new records are prepended). Identifier generation uses
// a monotonic sequence seeded from the highest numeric suffix present at
// load time, so an identifier is never reused even after deletion.
//
// Error semantics:
//   - When a request is not found, functions return ErrNotFound.
//   - A failed persistence write after a mutation is logged and dropped;
//     the in-memory mutation is not rolled back.
package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("request not found")

// FilterAll is the sentinel that disables an exact-match filter.
const FilterAll = "ALL"

// idPrefix is the generated-identifier prefix; suffixes are zero-padded to
// three digits minimum.
const idPrefix = "REQ-"

// Persister stores and retrieves the whole request collection. The concrete
// implementation lives in the store package; tests substitute stubs.
type Persister interface {
	Load(ctx context.Context) []domain.Request
	Save(ctx context.Context, records []domain.Request) error
}

// Query is the conjunctive filter predicate set. Search matches
// case-insensitively against client name, ID, and operator name. The exact
// filters are disabled when empty or set to FilterAll.
type Query struct {
	Search string
	Status string
	Type   string
	Driver string
}

// RequestRepo owns the ordered in-memory request collection.
// It is safe for concurrent use.
type RequestRepo struct {
	persister Persister

	mu       sync.Mutex
	requests []domain.Request
	nextSeq  int
}

// New loads the persisted collection through p and seeds the identifier
// sequence from the highest numeric suffix found.
func New(ctx context.Context, p Persister) *RequestRepo {
	records := p.Load(ctx)
	next := 1
	for _, rec := range records {
		if n, ok := idSuffix(rec.ID); ok && n >= next {
			next = n + 1
		}
	}
	return &RequestRepo{persister: p, requests: records, nextSeq: next}
}

// idSuffix extracts the numeric suffix from a generated identifier.
func idSuffix(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Create validates in, assigns the next identifier and a UTC creation
// timestamp, prepends the record, and persists the collection.
func (r *RequestRepo) Create(ctx context.Context, in domain.RequestInput) (domain.Request, error) {
	if err := in.Validate(); err != nil {
		return domain.Request{}, err
	}

	r.mu.Lock()
	rec := domain.Request{
		ID:                   fmt.Sprintf("%s%03d", idPrefix, r.nextSeq),
		CreatedAt:            time.Now().UTC(),
		ClientName:           in.ClientName,
		ClientContact:        in.ClientContact,
		RequestType:          in.RequestType,
		PickupLocation:       in.PickupLocation,
		DropoffLocation:      in.DropoffLocation,
		PickupDate:           in.PickupDate,
		ReturnDate:           in.ReturnDate,
		VehicleGroup:         in.VehicleGroup,
		AssignedDriver:       in.AssignedDriver,
		AssignedVehiclePlate: in.AssignedVehiclePlate,
		OperatorName:         in.OperatorName,
		Status:               in.Status,
		Notes:                in.Notes,
		EstimatedCost:        in.EstimatedCost,
	}
	r.nextSeq++
	r.requests = append([]domain.Request{rec}, r.requests...)
	snapshot := r.copyLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return rec, nil
}

// Update merges the non-nil fields of patch into the record with the given
// id, leaving ID and CreatedAt untouched, and persists the collection.
// It returns ErrNotFound when no record matches.
func (r *RequestRepo) Update(ctx context.Context, id string, patch domain.RequestPatch) (domain.Request, error) {
	if err := patch.Validate(); err != nil {
		return domain.Request{}, err
	}

	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return domain.Request{}, ErrNotFound
	}
	patch.Apply(&r.requests[i])
	rec := r.requests[i]
	snapshot := r.copyLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return rec, nil
}

// Delete removes the record with the given id and reports whether a record
// was removed. The collection is persisted only when something changed.
// Confirming destructive intent is the caller's responsibility.
func (r *RequestRepo) Delete(ctx context.Context, id string) bool {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.requests = append(r.requests[:i], r.requests[i+1:]...)
	snapshot := r.copyLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return true
}

// Get returns the record with the given id, or ErrNotFound.
func (r *RequestRepo) Get(id string) (domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.requests[i], nil
	}
	return domain.Request{}, ErrNotFound
}

// List returns a copy of the full collection in its current order
// (newest first).
func (r *RequestRepo) List() []domain.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLocked()
}

// Filter returns the records matching all active predicates in q, preserving
// the collection order. All predicates disabled is a pass-through.
func (r *RequestRepo) Filter(q Query) []domain.Request {
	search := strings.ToLower(q.Search)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Request, 0, len(r.requests))
	for _, rec := range r.requests {
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.ClientName), search) &&
			!strings.Contains(strings.ToLower(rec.ID), search) &&
			!strings.Contains(strings.ToLower(rec.OperatorName), search) {
			continue
		}
		if active(q.Status) && string(rec.Status) != q.Status {
			continue
		}
		if active(q.Type) && string(rec.RequestType) != q.Type {
			continue
		}
		if active(q.Driver) && rec.AssignedDriver != q.Driver {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Drivers returns the sorted set of distinct assigned drivers, used to feed
// the driver filter.
func (r *RequestRepo) Drivers() []string {
	r.mu.Lock()
	seen := make(map[string]struct{})
	for _, rec := range r.requests {
		if rec.AssignedDriver != "" {
			seen[rec.AssignedDriver] = struct{}{}
		}
	}
	r.mu.Unlock()

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of records in the collection.
func (r *RequestRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// active reports whether an exact-match filter value is in effect.
func active(v string) bool { return v != "" && v != FilterAll }

// indexLocked returns the position of id in the collection, or -1.
// Caller must hold r.mu.
func (r *RequestRepo) indexLocked(id string) int {
	for i := range r.requests {
		if r.requests[i].ID == id {
			return i
		}
	}
	return -1
}

// copyLocked returns a shallow copy of the collection. Caller must hold r.mu.
func (r *RequestRepo) copyLocked() []domain.Request {
	out := make([]domain.Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// persist writes the snapshot through the persister. Failures are logged and
// dropped; in-memory and persisted state may diverge until the next
// successful save.
func (r *RequestRepo) persist(ctx context.Context, snapshot []domain.Request) {
	if err := r.persister.Save(ctx, snapshot); err != nil {
		log.Warn().Err(err).Int("records", len(snapshot)).Msg("persist failed, keeping in-memory state")
	}
}
