// Package stats derives aggregate counts from a request collection
// snapshot. Everything here is a pure function over the input slice;
// summaries are recomputed from scratch on each read, which is fine at the
// expected scale of hundreds of records.
package stats

import "github.com/frotaops/go-fleet-backend/internal/domain"

// Summary holds the aggregate counts for a collection snapshot.
type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Rentals    int `json:"rentals"`
	Transfers  int `json:"transfers"`

	// Revenue is the sum of estimated costs across all records.
	Revenue float64 `json:"revenue"`

	PerStatus map[domain.Status]int      `json:"per_status"`
	PerType   map[domain.RequestType]int `json:"per_type"`
}

// Compute scans records once and returns the aggregate summary.
func Compute(records []domain.Request) Summary {
	s := Summary{
		Total:     len(records),
		PerStatus: make(map[domain.Status]int),
		PerType:   make(map[domain.RequestType]int),
	}
	for _, r := range records {
		s.PerStatus[r.Status]++
		s.PerType[r.RequestType]++
		s.Revenue += r.EstimatedCost
	}
	s.Pending = s.PerStatus[domain.StatusPending]
	s.Confirmed = s.PerStatus[domain.StatusConfirmed]
	s.InProgress = s.PerStatus[domain.StatusInProgress]
	s.Completed = s.PerStatus[domain.StatusCompleted]
	s.Cancelled = s.PerStatus[domain.StatusCancelled]
	s.Rentals = s.PerType[domain.TypeRental]
	s.Transfers = s.PerType[domain.TypeTransfer]
	return s
}
