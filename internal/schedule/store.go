package schedule

// Store is the persistence abstraction for day schedules.
// The Repository uses Store for all reads and writes and owns the locking;
// Store implementations need not be safe for concurrent use.
type Store interface {
	GetDay(date Date) (*DaySchedule, bool)
	SetDay(d *DaySchedule)
	ListDates() []Date
}

// InMemoryStore is an in-memory implementation of Store. Days are retained
// for the lifetime of the process.
type InMemoryStore struct {
	days map[Date]*DaySchedule
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		days: make(map[Date]*DaySchedule),
	}
}

// GetDay implements Store.GetDay.
func (s *InMemoryStore) GetDay(date Date) (*DaySchedule, bool) {
	d, ok := s.days[date]
	return d, ok
}

// SetDay implements Store.SetDay.
func (s *InMemoryStore) SetDay(d *DaySchedule) {
	s.days[d.Date] = d
}

// ListDates implements Store.ListDates. Dates are returned in ascending order.
func (s *InMemoryStore) ListDates() []Date {
	dates := make([]Date, 0, len(s.days))
	for date := range s.days {
		dates = append(dates, date)
	}
	sortDates(dates)
	return dates
}
