// Package store holds the in-memory item collection and its id counter.
package store

import (
	"fmt"
	"sync"

	"itemd/internal/errors"
)

const (
	// DefaultCapacity is the maximum number of live items unless configured otherwise
	DefaultCapacity = 100
	// MaxNameBytes is the upper bound on an item name; callers validate
	// names against it before reaching the store
	MaxNameBytes = 63
)

// Item is the managed resource record
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Store is a fixed-capacity, insertion-ordered item collection.
// Ids are assigned from a counter that never decreases and never reuses
// a value, including ids of deleted items. Every method takes the store
// mutex for its whole read/scan/mutate sequence, so handlers may run
// concurrently against one Store.
type Store struct {
	mu       sync.Mutex
	items    []Item
	nextID   int
	capacity int
	seed     []SeedItem
}

// New creates an empty store. The seed items are installed lazily the
// first time an item operation observes the store empty, which includes
// the state after every item has been deleted.
func New(capacity int, seed []SeedItem) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		items:    make([]Item, 0, capacity),
		nextID:   1,
		capacity: capacity,
		seed:     seed,
	}
}

// ensureSeeded installs the sample items when the store is empty.
// Must be called with mu held. Seeded items consume ids from the live
// counter, so they never collide with previously deleted items.
func (s *Store) ensureSeeded() {
	if len(s.items) != 0 {
		return
	}
	for _, sd := range s.seed {
		if len(s.items) >= s.capacity {
			break
		}
		s.items = append(s.items, Item{ID: s.nextID, Name: sd.Name, Value: sd.Value})
		s.nextID++
	}
}

// List returns all live items in insertion order
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id, or an ITEM_NOT_FOUND error
func (s *Store) Get(id int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()

	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, errors.New(errors.ItemNotFound, fmt.Sprintf("no item with id %d", id), nil)
}

// Create appends a new item and assigns it the next id. Fails with a
// CAPACITY_EXCEEDED error when the store is full; the id counter is not
// advanced on failure.
func (s *Store) Create(name string, value int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()

	if len(s.items) >= s.capacity {
		return Item{}, errors.New(errors.CapacityExceeded, fmt.Sprintf("store already holds %d items", s.capacity), nil)
	}

	it := Item{ID: s.nextID, Name: name, Value: value}
	s.nextID++
	s.items = append(s.items, it)
	return it, nil
}

// Update mutates the supplied fields of an existing item in place.
// A nil field is left untouched. The id never changes.
func (s *Store) Update(id int, name *string, value *int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if name != nil {
			s.items[i].Name = *name
		}
		if value != nil {
			s.items[i].Value = *value
		}
		return s.items[i], nil
	}
	return Item{}, errors.New(errors.ItemNotFound, fmt.Sprintf("no item with id %d", id), nil)
}

// Delete removes the item with the given id. Later entries shift one
// position earlier to close the gap, preserving the relative order of
// the remainder; O(n) is an accepted bound for the fixed capacity.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return nil
	}
	return errors.New(errors.ItemNotFound, fmt.Sprintf("no item with id %d", id), nil)
}

// Full reports whether the store is at capacity. Counts as an item
// operation for seeding purposes: an empty store is seeded first.
func (s *Store) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()
	return len(s.items) >= s.capacity
}

// Len returns the current number of live items without triggering the
// lazy seed; diagnostic endpoints observe the store as-is.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Capacity returns the fixed maximum number of live items
func (s *Store) Capacity() int {
	return s.capacity
}
