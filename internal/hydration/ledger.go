package hydration

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

// Mode tells Upsert whether a draft is a new entry or an edit.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Draft is the user-editable part of a record as it leaves the entry form.
// ID is required in ModeEdit and ignored in ModeCreate.
type Draft struct {
	ID     string
	Dosage int
	Time   string
}

// MutationKind names the persistence action a ledger change requires.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Mutation describes one ledger change for the caller to persist. For
// deletes, Record is the removed record.
type Mutation struct {
	Kind   MutationKind
	Record domain.IntakeRecord
}

// Ledger is the ordered set of one user's intake records for a day bucket.
// It is a plain value owned by a single caller; it does no locking.
type Ledger struct {
	userID  string
	records []domain.IntakeRecord
	lastSeq int64
	clock   Clock
	newID   func() string
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used for new records' date bucket and
// timestamps.
func WithClock(c Clock) Option {
	return func(l *Ledger) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithIDGenerator sets the id source for new records.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// NewLedger wraps records, which must already be in insertion order. The
// slice is copied.
func NewLedger(userID string, records []domain.IntakeRecord, opts ...Option) *Ledger {
	l := &Ledger{
		userID:  userID,
		records: append([]domain.IntakeRecord(nil), records...),
		clock:   SystemClock,
		newID:   uuid.NewString,
	}
	for _, r := range l.records {
		if r.Seq > l.lastSeq {
			l.lastSeq = r.Seq
		}
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Records returns a copy of the records in insertion order.
func (l *Ledger) Records() []domain.IntakeRecord {
	return append([]domain.IntakeRecord(nil), l.records...)
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Total returns the day's consumed volume in milliliters.
func (l *Ledger) Total() int { return TotalDosage(l.records) }

// DefaultDosage is DefaultDosageForNewEntry over the ledger's records.
func (l *Ledger) DefaultDosage() int { return DefaultDosageForNewEntry(l.records) }

// FindByID returns the record with id or ErrRecordNotFound.
func (l *Ledger) FindByID(id string) (domain.IntakeRecord, error) {
	return FindByID(l.records, id)
}

// FindByID looks id up in records. A miss returns ErrRecordNotFound so
// the edit form can show an unavailable state instead of failing.
func FindByID(records []domain.IntakeRecord, id string) (domain.IntakeRecord, error) {
	if i := indexOf(records, id); i >= 0 {
		return records[i], nil
	}
	return domain.IntakeRecord{}, ErrRecordNotFound
}

// Upsert applies a draft. The time is validated and normalized, and the
// dosage is clamped to [0, MaxDosage] in both modes.
//
// ModeCreate appends a record with a fresh id, the next insertion position,
// and the date bucket of the clock at call time. ModeEdit overwrites dosage
// and time of the record with d.ID in place; id, position and date bucket
// are preserved. Concurrent edits are last-writer-wins.
func (l *Ledger) Upsert(d Draft, mode Mode) (domain.IntakeRecord, Mutation, error) {
	switch mode {
	case ModeCreate, ModeEdit:
	default:
		return domain.IntakeRecord{}, Mutation{}, fmt.Errorf("%w: unknown mode %s", ErrMalformedRecord, mode)
	}
	if mode == ModeEdit && d.ID == "" {
		return domain.IntakeRecord{}, Mutation{}, fmt.Errorf("%w: edit requires an id", ErrMalformedRecord)
	}
	clock, err := NormalizeClock(d.Time)
	if err != nil {
		return domain.IntakeRecord{}, Mutation{}, err
	}
	dosage := NormalizeDosage(d.Dosage)
	now := l.clock()

	if mode == ModeEdit {
		i := indexOf(l.records, d.ID)
		if i < 0 {
			return domain.IntakeRecord{}, Mutation{}, ErrRecordNotFound
		}
		rec := &l.records[i]
		rec.Dosage = dosage
		rec.Time = clock
		rec.UpdatedAt = now.UTC()
		return *rec, Mutation{Kind: MutationUpdate, Record: *rec}, nil
	}

	key := domain.DayKeyOf(now)
	l.lastSeq++
	rec := domain.IntakeRecord{
		ID:        l.newID(),
		UserID:    l.userID,
		Seq:       l.lastSeq,
		Dosage:    dosage,
		Time:      clock,
		Day:       key.Day,
		Month:     key.Month,
		Year:      key.Year,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	l.records = append(l.records, rec)
	return rec, Mutation{Kind: MutationCreate, Record: rec}, nil
}

// Remove deletes the record with id. A miss leaves the ledger unchanged and
// returns ErrRecordNotFound.
func (l *Ledger) Remove(id string) (Mutation, error) {
	i := indexOf(l.records, id)
	if i < 0 {
		return Mutation{}, ErrRecordNotFound
	}
	rec := l.records[i]
	l.records = append(l.records[:i], l.records[i+1:]...)
	return Mutation{Kind: MutationDelete, Record: rec}, nil
}

func indexOf(records []domain.IntakeRecord, id string) int {
	if id == "" {
		return -1
	}
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
