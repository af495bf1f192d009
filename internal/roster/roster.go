// Package roster maintains the in-memory candidate collection for one
// user's session: newest-first ordering, search filtering, and exclusive
// detail selection. Every mutation is mirrored wholesale to the store.
package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iajcodes/HireC/internal/types"
)

// Saver is the slice of the local store the roster depends on.
type Saver interface {
	LoadRoster(ctx context.Context, email string) ([]types.Candidate, error)
	SaveRoster(ctx context.Context, email string, roster []types.Candidate) error
}

// ErrCandidateNotFound indicates no candidate with the id is in the roster.
type ErrCandidateNotFound struct {
	ID string
}

func (e *ErrCandidateNotFound) Error() string {
	return "candidate not found: " + e.ID
}

// Roster is the ordered candidate collection for one user. Entries are
// never mutated after insertion; changes happen by full re-save.
type Roster struct {
	email string
	store Saver

	mu         sync.Mutex
	candidates []types.Candidate
	selected   string // id of the candidate open in detail view, "" when none
}

// New creates an empty roster bound to email and the store. Call Load to
// hydrate it with previously persisted candidates.
func New(email string, store Saver) *Roster {
	return &Roster{email: email, store: store, candidates: []types.Candidate{}}
}

// Email returns the owning user's email.
func (r *Roster) Email() string {
	return r.email
}

// Load replaces the in-memory sequence with the persisted one.
func (r *Roster) Load(ctx context.Context) error {
	candidates, err := r.store.LoadRoster(ctx, r.email)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = candidates
	r.selected = ""
	return nil
}

// newID combines a time-ordered component with a random one so collisions
// within a roster are negligible.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add assigns an id if absent, prepends the candidate, persists the full
// updated sequence, and selects the new entry for detail display. The
// id-assigned candidate is returned.
func (r *Roster) Add(ctx context.Context, candidate types.Candidate) (types.Candidate, error) {
	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return types.Candidate{}, err
	}
	if candidate.ID == "" {
		candidate.ID = newID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]types.Candidate, 0, len(r.candidates)+1)
	updated = append(updated, candidate)
	updated = append(updated, r.candidates...)

	if err := r.store.SaveRoster(ctx, r.email, updated); err != nil {
		return types.Candidate{}, fmt.Errorf("failed to persist roster: %w", err)
	}

	r.candidates = updated
	r.selected = candidate.ID
	return candidate, nil
}

// All returns a copy of the full roster, newest first.
func (r *Roster) All() []types.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Len returns the number of candidates in the roster.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.candidates)
}

// Filter returns the candidates matching term with a case-insensitive
// substring match across name, summary, skills, and each experience's
// role, company, and description. An empty term returns the full roster.
// The projection is pure and recomputed on every call.
func (r *Roster) Filter(term string) []types.Candidate {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.All()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		if matches(c, term) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c types.Candidate, term string) bool {
	if contains(c.Name, term) || contains(c.Summary, term) {
		return true
	}
	for _, skill := range c.Skills {
		if contains(skill, term) {
			return true
		}
	}
	for _, exp := range c.Experience {
		if contains(exp.Role, term) || contains(exp.Company, term) || contains(exp.Description, term) {
			return true
		}
	}
	return false
}

func contains(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

// Select marks the candidate with id as open in detail view, replacing any
// prior selection, and returns it.
func (r *Roster) Select(id string) (types.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.candidates {
		if c.ID == id {
			r.selected = id
			return c, nil
		}
	}
	return types.Candidate{}, &ErrCandidateNotFound{ID: id}
}

// Selected returns the candidate open in detail view, or nil when none is.
func (r *Roster) Selected() *types.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.selected == "" {
		return nil
	}
	for _, c := range r.candidates {
		if c.ID == r.selected {
			out := c
			return &out
		}
	}
	return nil
}

// Deselect closes the detail view.
func (r *Roster) Deselect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = ""
}
