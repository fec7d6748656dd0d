package schedule

import (
	"sync"
)

// Repository defines the concurrency-safe contract for accessing and mutating
// day schedules.
type Repository interface {
	// Snapshot returns a copy of the schedule for date. A date that has never
	// been touched is materialized as an empty day.
	Snapshot(date Date) DaySchedule

	// Transact runs fn with exclusive access to the store. fn mutates working
	// copies obtained from the Tx; they are written back only if fn returns
	// nil, so a failed operation leaves every day unchanged.
	Transact(fn func(tx *Tx) error) error

	// Find locates an item by identity. Every day is scanned; there is no
	// secondary index.
	Find(id ItemID) (Date, Item, bool)

	// DayCount returns the number of materialized days. Used for metrics.
	DayCount() int

	// ItemCount returns the number of items across all days. Used for metrics.
	ItemCount() int
}

// InMemoryRepository is a concurrency-safe implementation of Repository.
// A single lock covers every day, so multi-day operations such as a
// reschedule are atomic.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a new repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given Store.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// Snapshot implements Repository.Snapshot.
func (r *InMemoryRepository) Snapshot(date Date) DaySchedule {
	r.mu.RLock()
	if d, ok := r.store.GetDay(date); ok {
		snap := *d.clone()
		r.mu.RUnlock()
		return snap
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.getOrCreateDayLocked(date).clone()
}

// Transact implements Repository.Transact.
func (r *InMemoryRepository) Transact(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{store: r.store, working: make(map[Date]*DaySchedule)}
	if err := fn(tx); err != nil {
		return err
	}
	for _, d := range tx.working {
		sortItems(d.Items)
		r.store.SetDay(d)
	}
	return nil
}

// Find implements Repository.Find.
func (r *InMemoryRepository) Find(id ItemID) (Date, Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return findLocked(r.store, nil, id)
}

// DayCount implements Repository.DayCount.
func (r *InMemoryRepository) DayCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store.ListDates())
}

// ItemCount implements Repository.ItemCount.
func (r *InMemoryRepository) ItemCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, date := range r.store.ListDates() {
		if d, ok := r.store.GetDay(date); ok {
			n += len(d.Items)
		}
	}
	return n
}

// getOrCreateDayLocked returns an existing day or creates a new one.
// Caller must hold r.mu in write mode.
func (r *InMemoryRepository) getOrCreateDayLocked(date Date) *DaySchedule {
	if d, ok := r.store.GetDay(date); ok {
		return d
	}
	d := newDaySchedule(date)
	r.store.SetDay(d)
	return d
}

// Tx gives a Transact callback access to working copies of days.
type Tx struct {
	store   Store
	working map[Date]*DaySchedule
}

// Day returns the working copy of date, materializing the day if needed.
// Repeated calls for the same date return the same copy.
func (tx *Tx) Day(date Date) *DaySchedule {
	if d, ok := tx.working[date]; ok {
		return d
	}
	var d *DaySchedule
	if stored, ok := tx.store.GetDay(date); ok {
		d = stored.clone()
	} else {
		d = newDaySchedule(date)
	}
	tx.working[date] = d
	return d
}

// Find locates an item by identity, taking uncommitted changes into account.
func (tx *Tx) Find(id ItemID) (Date, Item, bool) {
	return findLocked(tx.store, tx.working, id)
}

func findLocked(store Store, working map[Date]*DaySchedule, id ItemID) (Date, Item, bool) {
	dates := store.ListDates()
	for date := range working {
		if _, ok := store.GetDay(date); !ok {
			dates = append(dates, date)
		}
	}
	sortDates(dates)

	for _, date := range dates {
		d, ok := working[date]
		if !ok {
			d, ok = store.GetDay(date)
			if !ok {
				continue
			}
		}
		if i := d.indexOf(id); i >= 0 {
			return date, d.Items[i], true
		}
	}
	return Date{}, Item{}, false
}
