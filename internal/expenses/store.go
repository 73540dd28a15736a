// Package expenses owns the ordered list of expense records and the total
// budget, persisting both to a key-value store on every mutation.
package expenses

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Storage keys.
const (
	ItemsKey  = "Items"
	BudgetKey = "TotalBudget"
)

// KV is the durable string-keyed storage the Store persists to.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store holds the in-memory expense state. It is not safe for concurrent use;
// there is exactly one mutator.
type Store struct {
	kv     KV
	logger *slog.Logger

	items  []model.Expense
	budget decimal.Decimal

	// Last write error per key; a successful write of one key does not
	// clear the other's.
	itemsErr  error
	budgetErr error
}

// storedItem is the persisted shape of an expense. Amount is written as a
// JSON number.
type storedItem struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
}

// Load restores the store from kv. Absent or malformed data yields an empty
// list and a zero budget; Load never fails.
func Load(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		kv:     kv,
		logger: logger.With("component", "expenses"),
		budget: decimal.Zero,
	}

	if raw, ok, err := kv.Get(ItemsKey); err != nil {
		s.logger.Warn("reading items failed", "error", err)
	} else if ok {
		items, err := decodeItems(raw, s.logger)
		if err != nil {
			s.logger.Warn("discarding malformed items", "error", err)
		} else {
			s.items = items
		}
	}

	if raw, ok, err := kv.Get(BudgetKey); err != nil {
		s.logger.Warn("reading budget failed", "error", err)
	} else if ok {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			s.logger.Warn("discarding malformed budget", "value", raw, "error", err)
		} else {
			s.budget = d
		}
	}

	s.logger.Debug("loaded", "items", len(s.items), "budget", s.budget.String())
	return s
}

// decodeItems parses the persisted list. Records with a missing ID or a
// negative amount are skipped with a warning.
func decodeItems(raw string, logger *slog.Logger) ([]model.Expense, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	items := make([]model.Expense, 0, len(stored))
	for i, si := range stored {
		amount, err := decimal.NewFromString(si.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("item %d amount %q: %w", i, si.Amount, err)
		}
		if si.ID == uuid.Nil {
			logger.Warn("skipping stored item without id", "index", i, "name", si.Name)
			continue
		}
		if amount.IsNegative() {
			logger.Warn("skipping stored item with negative amount", "index", i, "id", si.ID, "amount", amount.String())
			continue
		}
		items = append(items, model.Expense{
			ID:     si.ID,
			Name:   si.Name,
			Type:   si.Type,
			Amount: amount,
		})
	}
	return items, nil
}

func encodeItems(items []model.Expense) (string, error) {
	stored := make([]storedItem, len(items))
	for i, e := range items {
		stored[i] = storedItem{
			ID:     e.ID,
			Name:   e.Name,
			Type:   e.Type,
			Amount: json.Number(e.Amount.String()),
		}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Add appends e and persists the full list.
func (s *Store) Add(e model.Expense) {
	s.items = append(s.items, e)
	s.persistItems()
}

// Remove deletes every record whose ID is in ids, persists, and returns the
// number removed. Unknown IDs are ignored.
func (s *Store) Remove(ids ...uuid.UUID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]model.Expense, 0, len(s.items))
	for _, e := range s.items {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	if removed > 0 {
		s.persistItems()
	}
	return removed
}

// RemoveAt removes records by their offsets within the view filtered to
// typeFilter. Offsets are resolved to IDs before anything is removed, so
// they all refer to the same view. Out-of-range offsets are ignored.
func (s *Store) RemoveAt(typeFilter string, offsets ...int) int {
	view := s.Filtered(typeFilter)
	ids := make([]uuid.UUID, 0, len(offsets))
	for _, off := range offsets {
		if off < 0 || off >= len(view) {
			continue
		}
		ids = append(ids, view[off].ID)
	}
	return s.Remove(ids...)
}

// SetBudget replaces the total budget and persists it.
func (s *Store) SetBudget(d decimal.Decimal) {
	s.budget = d
	if err := s.kv.Set(BudgetKey, d.String()); err != nil {
		s.budgetErr = err
		s.logger.Error("persisting budget failed", "error", err)
		return
	}
	s.budgetErr = nil
}

// Items returns a copy of the records in insertion order.
func (s *Store) Items() []model.Expense {
	out := make([]model.Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Filtered returns the records whose type equals typeFilter, in insertion
// order. An empty filter returns all records.
func (s *Store) Filtered(typeFilter string) []model.Expense {
	return pipeline.FilterByType(s.Items(), typeFilter)
}

// Budget returns the total budget.
func (s *Store) Budget() decimal.Decimal {
	return s.budget
}

// State returns a snapshot of the budget and records.
func (s *Store) State() model.BudgetState {
	return model.BudgetState{TotalBudget: s.budget, Records: s.Items()}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.items)
}

// PersistErr reports whether storage is behind memory. It returns the
// error from the latest write of the items list or, failing that, of the
// budget. It is nil once each key's latest write has succeeded.
func (s *Store) PersistErr() error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	return s.budgetErr
}

func (s *Store) persistItems() {
	raw, err := encodeItems(s.items)
	if err == nil {
		err = s.kv.Set(ItemsKey, raw)
	}
	if err != nil {
		s.itemsErr = err
		s.logger.Error("persisting items failed", "error", err, "items", len(s.items))
		return
	}
	s.itemsErr = nil
}
