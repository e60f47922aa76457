// Package client implements the finance state store backing the UI layer:
// the current session, the loaded transaction list, the fixed category set,
// and the derived aggregates used for dashboards and charts.
package client

import (
	"math"
	"sort"
	"time"

	"fintrack/internal/models"
)

// defaultCategoryID is the seeded "Outros" category, used when a new entry
// carries no category.
const defaultCategoryID = 6

// Session identifies the logged-in user.
type Session struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Entry is a single income or expense record held by the store. The JSON
// field names mirror the backend's transaction payload.
type Entry struct {
	ID          uint                   `json:"id"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Type        models.TransactionType `json:"type"`
	CategoryID  uint                   `json:"category_id"`
	Date        time.Time              `json:"date"`
}

// Category is the client-side category reference data.
type Category struct {
	ID    uint                `json:"id"`
	Name  string              `json:"name"`
	Type  models.CategoryType `json:"type"`
	Color string              `json:"color"`
}

// CategorySummary aggregates the entries of one category.
type CategorySummary struct {
	Category
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Options configures a Store.
type Options struct {
	// DemoData seeds sample entries on the first login of a user. Off by
	// default; enabled explicitly rather than inferred from a build mode.
	DemoData bool

	// State, when set, persists the session user, last-used entry kind,
	// and category list across restarts. Entries are never persisted.
	State *StateStore

	// API, when set, lets the store load the authoritative entry list
	// from the backend.
	API *APIClient
}

// Store holds client-side finance state. A Store is tied to one application
// lifecycle: construct it at startup, discard it at teardown. It is not safe
// for concurrent use.
type Store struct {
	user       *Session
	entries    []Entry
	categories []Category
	loading    bool
	err        error
	lastKind   models.TransactionType
	dataLoaded bool

	opts Options
	now  func() time.Time
}

// New creates a Store with the fixed category set and no session.
func New(opts Options) *Store {
	return &Store{
		categories: seedCategories(),
		lastKind:   models.TransactionTypeExpense,
		opts:       opts,
		now:        time.Now,
	}
}

// seedCategories returns the fixed client-side category reference set.
func seedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Alimentação", Type: models.CategoryTypeExpense, Color: "#FF6384"},
		{ID: 2, Name: "Transporte", Type: models.CategoryTypeExpense, Color: "#36A2EB"},
		{ID: 3, Name: "Moradia", Type: models.CategoryTypeExpense, Color: "#FFCE56"},
		{ID: 4, Name: "Salário", Type: models.CategoryTypeIncome, Color: "#4BC0C0"},
		{ID: 5, Name: "Investimentos", Type: models.CategoryTypeIncome, Color: "#9966FF"},
		{ID: 6, Name: "Outros", Type: models.CategoryTypeBoth, Color: "#FF9F40"},
	}
}

// User returns the current session user, or nil when logged out.
func (s *Store) User() *Session { return s.user }

// Entries returns the loaded entry list, most recent insertion first.
func (s *Store) Entries() []Entry { return s.entries }

// Categories returns the category reference set.
func (s *Store) Categories() []Category { return s.categories }

// Loading reports whether a data load is in progress.
func (s *Store) Loading() bool { return s.loading }

// Err returns the error recorded by the last failed action, if any.
func (s *Store) Err() error { return s.err }

// LastKind returns the last-used entry kind.
func (s *Store) LastKind() models.TransactionType { return s.lastKind }

// DataLoaded reports whether the initial data load has completed.
func (s *Store) DataLoaded() bool { return s.dataLoaded }

// Login sets the session user. A newly identified user (different id, or no
// previous session) resets the entry list and the data-loaded marker before
// the optional demo-data seed runs.
func (s *Store) Login(user Session) error {
	isNewUser := s.user == nil || s.user.ID != user.ID

	if isNewUser {
		s.entries = nil
		s.dataLoaded = false
		s.lastKind = models.TransactionTypeExpense
		s.user = &user

		if s.opts.DemoData {
			s.loadDemoData()
		}
	} else {
		s.user = &user
	}

	return s.persist()
}

// Logout clears all session-scoped state, the entry list included, and
// removes the persisted namespace.
func (s *Store) Logout() error {
	s.user = nil
	s.entries = nil
	s.dataLoaded = false
	s.lastKind = models.TransactionTypeExpense
	s.err = nil

	if s.opts.State != nil {
		return s.opts.State.Clear()
	}
	return nil
}

// SetLastKind records the last-used entry kind.
func (s *Store) SetLastKind(kind models.TransactionType) error {
	s.lastKind = kind
	return s.persist()
}

// AddEntry assigns a local id, fills defaults, and prepends the entry so the
// list stays most-recent-first by insertion position.
func (s *Store) AddEntry(input Entry) Entry {
	entry := input
	entry.ID = s.nextID()
	if entry.CategoryID == 0 {
		entry.CategoryID = defaultCategoryID
	}
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}
	if entry.Amount < 0 || math.IsNaN(entry.Amount) {
		entry.Amount = 0
	}

	s.entries = append([]Entry{entry}, s.entries...)
	return entry
}

// RemoveEntry removes the entry with the given id. No-op when absent.
func (s *Store) RemoveEntry(id uint) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// nextID returns one more than the highest id present, or 1 for an empty list.
func (s *Store) nextID() uint {
	var max uint
	for _, e := range s.entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// TotalIncome sums the amounts of all income entries.
func (s *Store) TotalIncome() float64 {
	var sum float64
	for _, e := range s.entries {
		if e.Type == models.TransactionTypeIncome {
			sum += e.Amount
		}
	}
	return sum
}

// TotalExpense sums the amounts of all expense entries.
func (s *Store) TotalExpense() float64 {
	var sum float64
	for _, e := range s.entries {
		if e.Type == models.TransactionTypeExpense {
			sum += e.Amount
		}
	}
	return sum
}

// Balance is income minus expense.
func (s *Store) Balance() float64 {
	return s.TotalIncome() - s.TotalExpense()
}

// CategoryTotals returns one summary per category that has at least one
// entry and a non-zero total. Totals are absolute values.
func (s *Store) CategoryTotals() []CategorySummary {
	var result []CategorySummary
	for _, cat := range s.categories {
		var total float64
		var count int
		for _, e := range s.entries {
			if e.CategoryID == cat.ID {
				total += e.Amount
				count++
			}
		}
		if count == 0 {
			continue
		}
		if abs := math.Abs(total); abs > 0 {
			result = append(result, CategorySummary{Category: cat, Total: abs, Count: count})
		}
	}
	return result
}

// Recent returns the five most recent entries by date.
func (s *Store) Recent() []Entry {
	sorted := make([]Entry, len(s.entries))
	copy(sorted, s.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	return sorted
}

// loadDemoData replaces the entry list with a small sample set.
func (s *Store) loadDemoData() {
	s.loading = true
	s.entries = []Entry{
		{ID: 1, Description: "Salário", Amount: 5000, Type: models.TransactionTypeIncome, CategoryID: 4, Date: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Description: "Aluguel", Amount: 1500, Type: models.TransactionTypeExpense, CategoryID: 3, Date: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Description: "Supermercado", Amount: 800, Type: models.TransactionTypeExpense, CategoryID: 1, Date: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Description: "Transporte", Amount: 300, Type: models.TransactionTypeExpense, CategoryID: 2, Date: time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 5, Description: "Dividendos", Amount: 200, Type: models.TransactionTypeIncome, CategoryID: 5, Date: time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC)},
	}
	s.dataLoaded = true
	s.loading = false
}

// persist saves the configured state subset, when persistence is enabled.
func (s *Store) persist() error {
	if s.opts.State == nil {
		return nil
	}
	return s.opts.State.Save(persistedState{
		User:       s.user,
		LastKind:   s.lastKind,
		Categories: s.categories,
	})
}

// Restore loads the persisted state subset. The entry list is never
// persisted: it is always empty after a restore, and the data-loaded marker
// is cleared, regardless of what a previous session held.
func (s *Store) Restore() error {
	if s.opts.State == nil {
		return nil
	}

	state, found, err := s.opts.State.Load()
	if err != nil {
		s.err = err
		return err
	}
	if !found {
		return nil
	}

	s.user = state.User
	if state.LastKind != "" {
		s.lastKind = state.LastKind
	}
	if len(state.Categories) > 0 {
		s.categories = state.Categories
	}

	s.entries = nil
	s.dataLoaded = false
	return nil
}
