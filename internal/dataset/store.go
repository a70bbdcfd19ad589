// Package dataset holds uploaded series and sweep result sets in memory
// so the dashboard can prepare multiple views of one upload.
package dataset

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/prism/internal/core"
)

// Dataset is one uploaded collection: a raw series, a sweep result set,
// or both.
type Dataset struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Kind      core.CoordKind     `json:"kind"`
	Points    []core.RawPoint    `json:"points,omitempty"`
	Results   []core.SweepResult `json:"results,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store is a bounded in-memory dataset store. The oldest dataset is
// evicted when capacity is reached.
type Store struct {
	datasets map[string]*Dataset
	order    []string
	maxSize  int
	mu       sync.RWMutex
}

// NewStore creates a store holding at most maxSize datasets.
func NewStore(maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Store{
		datasets: make(map[string]*Dataset),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
	}
}

// Save stores a dataset and returns its assigned ID.
func (s *Store) Save(d Dataset) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()
	if d.Kind == "" {
		d.Kind = core.CoordOrdinal
	}

	if len(s.datasets) >= s.maxSize && len(s.order) > 0 {
		oldest := s.order[0]
		delete(s.datasets, oldest)
		s.order = s.order[1:]
	}

	s.datasets[d.ID] = &d
	s.order = append(s.order, d.ID)

	return d.ID
}

// Get retrieves a dataset by ID.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.datasets[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}

	// Deep copy so callers cannot mutate stored state through the
	// returned slices and maps.
	dCopy := *d
	dCopy.Points = clonePoints(d.Points)
	dCopy.Results = cloneResults(d.Results)
	return &dCopy, nil
}

func clonePoints(in []core.RawPoint) []core.RawPoint {
	if in == nil {
		return nil
	}
	out := make([]core.RawPoint, len(in))
	for i, p := range in {
		cp := make(core.RawPoint, len(p))
		for k, v := range p {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

func cloneResults(in []core.SweepResult) []core.SweepResult {
	if in == nil {
		return nil
	}
	out := make([]core.SweepResult, len(in))
	for i, r := range in {
		out[i] = core.SweepResult{
			Label:   r.Label,
			Params:  cloneFloats(r.Params),
			Metrics: cloneFloats(r.Metrics),
		}
	}
	return out
}

func cloneFloats(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Delete removes a dataset by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		return core.ErrDatasetNotFound
	}
	delete(s.datasets, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all stored datasets, oldest first.
func (s *Store) List() []Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Dataset, 0, len(s.order))
	for _, id := range s.order {
		if d, ok := s.datasets[id]; ok {
			out = append(out, *d)
		}
	}
	return out
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
