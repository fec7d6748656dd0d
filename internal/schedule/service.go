package schedule

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCoverageDays is the number of days EnsureCoverage and GetWeek span
// when no positive count is given.
const DefaultCoverageDays = 7

// DefaultMaxSpanDays caps how many days a single GetWeek or EnsureCoverage
// call may touch.
const DefaultMaxSpanDays = 366

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	// Location is the local time model every instant is normalized to.
	// Defaults to time.Local.
	Location *time.Location

	// FillerTitle and FillerPlaylist are applied to generated gap filler.
	FillerTitle    string
	FillerPlaylist string

	// MaxSpanDays caps multi-day operations. Defaults to DefaultMaxSpanDays.
	MaxSpanDays int

	// IDGenerator produces identities for new items. Defaults to random UUIDs.
	IDGenerator func() ItemID
}

// Service applies the scheduling rules and delegates storage to Repository.
type Service struct {
	repo           Repository
	loc            *time.Location
	fillerTitle    string
	fillerPlaylist string
	maxSpan        int
	newID          func() ItemID
}

// NewService returns a Service backed by repo.
func NewService(repo Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.FillerTitle == "" {
		opts.FillerTitle = DefaultFillerTitle
	}
	if opts.MaxSpanDays <= 0 {
		opts.MaxSpanDays = DefaultMaxSpanDays
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = func() ItemID { return ItemID(uuid.NewString()) }
	}
	return &Service{
		repo:           repo,
		loc:            opts.Location,
		fillerTitle:    opts.FillerTitle,
		fillerPlaylist: opts.FillerPlaylist,
		maxSpan:        opts.MaxSpanDays,
		newID:          opts.IDGenerator,
	}
}

// Location returns the location the service normalizes instants to.
func (s *Service) Location() *time.Location {
	return s.loc
}

// MaxSpanDays returns the largest day count GetWeek and EnsureCoverage accept.
func (s *Service) MaxSpanDays() int {
	return s.maxSpan
}

// DateOf returns the local calendar date t falls on.
func (s *Service) DateOf(t time.Time) Date {
	return DateOf(t.In(s.loc))
}

// GetDay returns the sorted schedule for date.
func (s *Service) GetDay(date Date) DaySchedule {
	return s.repo.Snapshot(date)
}

// GetWeek returns the schedules of n consecutive days starting at start.
// n is capped at MaxSpanDays.
func (s *Service) GetWeek(start Date, n int) []DaySchedule {
	n = s.span(n)
	days := make([]DaySchedule, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, s.repo.Snapshot(start.AddDays(i)))
	}
	return days
}

// AddContent inserts item into the timeline of date. The item is clamped to
// the day boundary; filler it overlaps is split around it. A conflict with
// non-filler content returns a *ConflictError and leaves the day unchanged.
// An empty ID is replaced by a fresh identity.
func (s *Service) AddContent(date Date, item Item) (Item, error) {
	if vErr := validateItem(item, false); vErr != nil {
		return Item{}, vErr
	}

	var stored Item
	err := s.repo.Transact(func(tx *Tx) error {
		var err error
		stored, err = s.insertLocked(tx, date, item)
		return err
	})
	if err != nil {
		return Item{}, err
	}
	return stored, nil
}

func (s *Service) insertLocked(tx *Tx, date Date, item Item) (Item, error) {
	if item.ID == "" {
		item.ID = s.newID()
	} else if _, _, exists := tx.Find(item.ID); exists {
		return Item{}, validationError("id", "an item with this id is already scheduled")
	}

	day := tx.Day(date)
	items, stored, err := insertItem(day.Items, date.Window(s.loc), item, s.newID)
	if err != nil {
		return Item{}, err
	}
	day.Items = items
	return stored, nil
}

// RemoveContent removes the item with id from date and reports whether it
// was there.
func (s *Service) RemoveContent(date Date, id ItemID) bool {
	removed := false
	_ = s.repo.Transact(func(tx *Tx) error {
		removed = tx.Day(date).remove(id)
		return nil
	})
	return removed
}

// FillGapsWithMusic covers every uncovered range of date with filler and
// returns the filler it created. A day with no gaps is left untouched.
func (s *Service) FillGapsWithMusic(date Date) []Item {
	var created []Item
	_ = s.repo.Transact(func(tx *Tx) error {
		day := tx.Day(date)
		day.Items, created = fillGaps(day.Items, date.Window(s.loc), s.fillerTitle, s.fillerPlaylist, s.newID)
		return nil
	})
	return created
}

// EnsureCoverage fills the gaps of n consecutive days starting at start and
// returns how many filler items were created. n is capped at MaxSpanDays.
func (s *Service) EnsureCoverage(start Date, n int) int {
	n = s.span(n)
	total := 0
	for i := 0; i < n; i++ {
		total += len(s.FillGapsWithMusic(start.AddDays(i)))
	}
	return total
}

func (s *Service) span(n int) int {
	switch {
	case n <= 0:
		return DefaultCoverageDays
	case n > s.maxSpan:
		return s.maxSpan
	}
	return n
}

// Coverage returns how much of date is occupied and how long the day is.
func (s *Service) Coverage(date Date) (occupied, length time.Duration) {
	day := s.repo.Snapshot(date)
	w := date.Window(s.loc)
	return covered(day.Items, w), w.End.Sub(w.Start)
}

// AddEvent normalizes item to local time, validates it, and adds it to the
// date its start falls on.
func (s *Service) AddEvent(item Item) (Item, error) {
	if !item.Start.IsZero() {
		item.Start = item.Start.In(s.loc)
	}
	if !item.End.IsZero() {
		item.End = item.End.In(s.loc)
	}
	if vErr := validateItem(item, true); vErr != nil {
		return Item{}, vErr
	}
	return s.AddContent(DateOf(item.Start), item)
}

// GetItem looks up an item by identity.
func (s *Service) GetItem(id ItemID) (Date, Item, error) {
	date, it, ok := s.repo.Find(id)
	if !ok {
		return Date{}, Item{}, ErrNotFound
	}
	return date, it, nil
}

// RescheduleEvent moves the item to newStart, keeping its duration. The item
// is re-inserted through the same conflict resolution as AddContent; if that
// fails the item stays where it was.
func (s *Service) RescheduleEvent(id ItemID, newStart time.Time) (Item, error) {
	if newStart.IsZero() {
		return Item{}, validationError("start", "start is required")
	}
	start := newStart.In(s.loc)

	var stored Item
	err := s.repo.Transact(func(tx *Tx) error {
		oldDate, it, ok := tx.Find(id)
		if !ok {
			return ErrNotFound
		}
		tx.Day(oldDate).remove(id)

		moved := it
		moved.Start = start
		moved.End = start.Add(it.Duration())

		date := DateOf(start)
		day := tx.Day(date)
		items, inserted, err := insertItem(day.Items, date.Window(s.loc), moved, s.newID)
		if err != nil {
			return err
		}
		day.Items = items
		stored = inserted
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	return stored, nil
}

// DeleteEvent removes the item with id from whichever day holds it and
// reports whether it was found.
func (s *Service) DeleteEvent(id ItemID) bool {
	removed := false
	_ = s.repo.Transact(func(tx *Tx) error {
		date, _, ok := tx.Find(id)
		if ok {
			removed = tx.Day(date).remove(id)
		}
		return nil
	})
	return removed
}

// AddHost adds a host to a live session. The derived studio follows the new
// host count.
func (s *Service) AddHost(id ItemID) (Item, error) {
	return s.updateLive(id, func(l *LiveDetails) error {
		l.HostCount++
		return nil
	})
}

// RemoveHost removes a host from a live session. A session keeps at least
// one host; ErrHostFloor is returned otherwise.
func (s *Service) RemoveHost(id ItemID) (Item, error) {
	return s.updateLive(id, func(l *LiveDetails) error {
		if l.HostCount <= 1 {
			return ErrHostFloor
		}
		l.HostCount--
		return nil
	})
}

// AddGuest marks a live session as having a guest.
func (s *Service) AddGuest(id ItemID) (Item, error) {
	return s.updateLive(id, func(l *LiveDetails) error {
		l.HasGuest = true
		return nil
	})
}

// RemoveGuest clears the guest flag of a live session.
func (s *Service) RemoveGuest(id ItemID) (Item, error) {
	return s.updateLive(id, func(l *LiveDetails) error {
		l.HasGuest = false
		return nil
	})
}

func (s *Service) updateLive(id ItemID, fn func(l *LiveDetails) error) (Item, error) {
	var updated Item
	err := s.repo.Transact(func(tx *Tx) error {
		date, it, ok := tx.Find(id)
		if !ok {
			return ErrNotFound
		}
		if it.Kind != KindLiveSession {
			return ErrNotLiveSession
		}
		if err := fn(&it.Live); err != nil {
			return err
		}
		day := tx.Day(date)
		day.Items[day.indexOf(id)] = it
		updated = it
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	return updated, nil
}
