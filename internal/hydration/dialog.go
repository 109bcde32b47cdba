package hydration

import (
	"errors"
	"fmt"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

// DialogState is the lifecycle state of one add/edit entry dialog.
type DialogState string

const (
	DialogIdle        DialogState = "idle"
	DialogEditing     DialogState = "editing"
	DialogSaving      DialogState = "saving"
	DialogClosed      DialogState = "closed"
	DialogUnavailable DialogState = "unavailable"
)

// IsTerminal reports whether no further input is accepted in s.
func (s DialogState) IsTerminal() bool {
	return s == DialogClosed
}

func isAllowedDialogTransition(from, to DialogState) bool {
	switch from {
	case DialogIdle, DialogEditing:
		return to == DialogEditing || to == DialogSaving || to == DialogClosed
	case DialogSaving:
		return to == DialogClosed || to == DialogEditing || to == DialogUnavailable
	case DialogUnavailable:
		return to == DialogClosed
	default:
		return false
	}
}

// Dialog is the state of an add/edit entry form. Every method is a pure
// transition returning the next value; the receiver is never modified.
// Defaults are seeded once on open and never re-seeded.
type Dialog struct {
	Mode     Mode
	RecordID string
	State    DialogState
	Dosage   int
	Time     string
}

// OpenCreateDialog prefills a new entry with the last-added dosage and the
// current time, snapshotted once.
func OpenCreateDialog(records []domain.IntakeRecord, clock Clock) Dialog {
	return Dialog{
		Mode:   ModeCreate,
		State:  DialogIdle,
		Dosage: DefaultDosageForNewEntry(records),
		Time:   DefaultTimeNow(clock),
	}
}

// OpenEditDialog prefills the form from the record with id. When the record
// is gone the dialog opens in DialogUnavailable and ErrRecordNotFound is
// returned alongside it.
func OpenEditDialog(records []domain.IntakeRecord, id string) (Dialog, error) {
	rec, err := FindByID(records, id)
	if err != nil {
		return Dialog{Mode: ModeEdit, RecordID: id, State: DialogUnavailable}, err
	}
	return Dialog{
		Mode:     ModeEdit,
		RecordID: rec.ID,
		State:    DialogIdle,
		Dosage:   rec.Dosage,
		Time:     rec.Time,
	}, nil
}

// Increment adds one step via the stepper control.
func (d Dialog) Increment() (Dialog, error) {
	return d.edit(func(n *Dialog) {
		n.Dosage = ClampDosage(IncrementDosage(n.Dosage), FloorStepper)
	})
}

// Decrement removes one step via the stepper control.
func (d Dialog) Decrement() (Dialog, error) {
	return d.edit(func(n *Dialog) {
		n.Dosage = ClampDosage(DecrementDosage(n.Dosage), FloorStepper)
	})
}

// InputDosage applies text typed into the numeric field.
func (d Dialog) InputDosage(text string) (Dialog, error) {
	return d.edit(func(n *Dialog) {
		n.Dosage = CoerceDosageText(text)
	})
}

// SetDosage applies an already numeric value from the numeric field.
func (d Dialog) SetDosage(v int) (Dialog, error) {
	return d.edit(func(n *Dialog) {
		n.Dosage = ClampDosage(v, FloorDirectInput)
	})
}

// InputTime stores the time field verbatim; it is validated on save.
func (d Dialog) InputTime(text string) (Dialog, error) {
	return d.edit(func(n *Dialog) {
		n.Time = text
	})
}

// Draft returns the form contents as an upsert draft.
func (d Dialog) Draft() Draft {
	return Draft{ID: d.RecordID, Dosage: d.Dosage, Time: d.Time}
}

// Save passes the draft through Saving into l.Upsert. On success the dialog
// is Closed and reflects the stored record. On failure it returns to Editing
// (bad time) or becomes Unavailable (record removed meanwhile).
func (d Dialog) Save(l *Ledger) (Dialog, domain.IntakeRecord, Mutation, error) {
	saving, err := d.to(DialogSaving)
	if err != nil {
		return d, domain.IntakeRecord{}, Mutation{}, err
	}
	rec, mut, err := l.Upsert(saving.Draft(), saving.Mode)
	if err != nil {
		next := DialogEditing
		if errors.Is(err, ErrRecordNotFound) {
			next = DialogUnavailable
		}
		failed, _ := saving.to(next)
		return failed, domain.IntakeRecord{}, Mutation{}, err
	}
	closed, _ := saving.to(DialogClosed)
	closed.RecordID = rec.ID
	closed.Dosage = rec.Dosage
	closed.Time = rec.Time
	return closed, rec, mut, nil
}

// Dismiss closes the dialog and drops unsaved input. Dismissing a closed
// dialog is a no-op.
func (d Dialog) Dismiss() Dialog {
	if closed, err := d.to(DialogClosed); err == nil {
		return closed
	}
	return d
}

func (d Dialog) edit(apply func(*Dialog)) (Dialog, error) {
	next, err := d.to(DialogEditing)
	if err != nil {
		return d, err
	}
	apply(&next)
	return next, nil
}

func (d Dialog) to(s DialogState) (Dialog, error) {
	if !isAllowedDialogTransition(d.State, s) {
		return d, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.State, s)
	}
	d.State = s
	return d, nil
}
