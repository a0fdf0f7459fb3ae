// Package directory holds the in-memory employee roster behind a repository
// that owns its locking and snapshot persistence.
//
// Mutations persist a version-stamped snapshot synchronously; a failed save
// is logged and the in-memory change stands (availability over strict
// consistency with the backing store).
package directory

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateEmail is returned by Add when the email is already present.
	ErrDuplicateEmail = errors.New("directory: email already exists")
	// ErrNotFound is returned when no employee matches the given email.
	ErrNotFound = errors.New("directory: employee not found")
)

// Employee is one roster entry. Email is the identity and is matched
// case-insensitively everywhere. BirthdayMonth 0 means unset.
type Employee struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	BirthdayMonth int    `json:"birthday_month"`
	BirthdayDay   int    `json:"birthday_day"`
	Department    string `json:"department"`
	Title         string `json:"title"`
}

// Snapshot is the persisted form of the roster. A stored snapshot with a
// version lower than the seed version is stale and gets overwritten.
type Snapshot struct {
	Version   int        `json:"version"`
	Employees []Employee `json:"employees"`
}

// SnapshotStore persists roster snapshots. A nil store disables persistence.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	SaveSnapshot(ctx context.Context, snap Snapshot) error
}

// Patch carries a partial employee update; nil fields are left unchanged.
type Patch struct {
	Name          *string `json:"name"`
	Department    *string `json:"department"`
	Title         *string `json:"title"`
	BirthdayMonth *int    `json:"birthday_month"`
	BirthdayDay   *int    `json:"birthday_day"`
}

// Directory is the employee repository.
type Directory struct {
	mu        sync.RWMutex
	employees []Employee
	store     SnapshotStore
	version   int
}

// New returns a Directory seeded with the built-in roster. store may be nil
// when object storage is unavailable; the roster then lives in memory only.
func New(store SnapshotStore) *Directory {
	d := &Directory{
		employees: append([]Employee(nil), seedEmployees...),
		store:     store,
		version:   seedVersion,
	}
	d.sortLocked()
	return d
}

// Sync reconciles the in-memory roster with the stored snapshot. An absent
// snapshot is initialized from the seed; a snapshot older than the seed
// version is overwritten; otherwise the stored roster is adopted.
func (d *Directory) Sync(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	snap, err := d.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if snap == nil {
		slog.InfoContext(ctx, "initializing employee snapshot from seed", "version", d.version, "count", len(d.employees))
		d.persistLocked(ctx)
		return nil
	}
	if snap.Version < d.version {
		slog.InfoContext(ctx, "stored employee snapshot is stale, re-syncing from seed",
			"stored_version", snap.Version, "seed_version", d.version)
		d.persistLocked(ctx)
		return nil
	}
	d.employees = append([]Employee(nil), snap.Employees...)
	d.version = snap.Version
	slog.InfoContext(ctx, "loaded employees from snapshot", "version", snap.Version, "count", len(d.employees))
	return nil
}

// List returns a copy of the roster in its stored order (name ascending).
func (d *Directory) List() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Employee(nil), d.employees...)
}

// Count reports the roster size.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.employees)
}

// Find looks up an employee by name: exact case-insensitive match first,
// then the first case-insensitive substring match.
func (d *Directory) Find(name string) (Employee, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, emp := range d.employees {
		if strings.ToLower(emp.Name) == needle {
			return emp, true
		}
	}
	for _, emp := range d.employees {
		if strings.Contains(strings.ToLower(emp.Name), needle) {
			return emp, true
		}
	}
	return Employee{}, false
}

// FindByEmail looks up an employee by exact case-insensitive email.
func (d *Directory) FindByEmail(email string) (Employee, bool) {
	needle := strings.ToLower(strings.TrimSpace(email))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, emp := range d.employees {
		if strings.ToLower(emp.Email) == needle {
			return emp, true
		}
	}
	return Employee{}, false
}

// Birthdays returns employees whose birthday falls in month (1-12),
// sorted ascending by day.
func (d *Directory) Birthdays(month int) []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Employee
	for _, emp := range d.employees {
		if emp.BirthdayMonth == month {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BirthdayDay < out[j].BirthdayDay })
	return out
}

// Add appends a new employee and re-sorts the roster. The email must not
// already be present (case-insensitive).
func (d *Directory) Add(ctx context.Context, emp Employee) (Employee, error) {
	emp.Name = strings.TrimSpace(emp.Name)
	emp.Email = strings.TrimSpace(emp.Email)

	d.mu.Lock()
	defer d.mu.Unlock()
	lower := strings.ToLower(emp.Email)
	for _, existing := range d.employees {
		if strings.ToLower(existing.Email) == lower {
			return Employee{}, ErrDuplicateEmail
		}
	}
	d.employees = append(d.employees, emp)
	d.sortLocked()
	d.persistLocked(ctx)
	return emp, nil
}

// Remove deletes the employee with the given email (case-insensitive).
func (d *Directory) Remove(ctx context.Context, email string) error {
	lower := strings.ToLower(strings.TrimSpace(email))

	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.employees[:0]
	removed := false
	for _, emp := range d.employees {
		if strings.ToLower(emp.Email) == lower {
			removed = true
			continue
		}
		kept = append(kept, emp)
	}
	if !removed {
		return ErrNotFound
	}
	d.employees = kept
	d.persistLocked(ctx)
	return nil
}

// Update merges the non-nil patch fields into the employee with the given
// email and returns the updated record.
func (d *Directory) Update(ctx context.Context, email string, p Patch) (Employee, error) {
	lower := strings.ToLower(strings.TrimSpace(email))

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.employees {
		if strings.ToLower(d.employees[i].Email) != lower {
			continue
		}
		emp := &d.employees[i]
		if p.Name != nil {
			emp.Name = strings.TrimSpace(*p.Name)
		}
		if p.Department != nil {
			emp.Department = strings.TrimSpace(*p.Department)
		}
		if p.Title != nil {
			emp.Title = strings.TrimSpace(*p.Title)
		}
		if p.BirthdayMonth != nil {
			emp.BirthdayMonth = *p.BirthdayMonth
		}
		if p.BirthdayDay != nil {
			emp.BirthdayDay = *p.BirthdayDay
		}
		updated := *emp
		// Re-sort in case the name changed; emp is invalid past this point.
		d.sortLocked()
		d.persistLocked(ctx)
		return updated, nil
	}
	return Employee{}, ErrNotFound
}

// Reseed replaces the roster with the built-in seed and persists it,
// discarding any stored edits. Unlike the request-path mutations this
// propagates the save error; it backs an explicit operator command.
func (d *Directory) Reseed(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees = append([]Employee(nil), seedEmployees...)
	d.version = seedVersion
	d.sortLocked()
	if d.store == nil {
		return errors.New("directory: no snapshot store configured")
	}
	snap := Snapshot{Version: d.version, Employees: append([]Employee(nil), d.employees...)}
	return d.store.SaveSnapshot(ctx, snap)
}

// sortLocked orders the roster by name, case-insensitive. Callers hold mu.
func (d *Directory) sortLocked() {
	sort.Slice(d.employees, func(i, j int) bool {
		return strings.ToLower(d.employees[i].Name) < strings.ToLower(d.employees[j].Name)
	})
}

// persistLocked saves the snapshot. A failure is logged, never propagated:
// the in-memory mutation already happened and stays.
func (d *Directory) persistLocked(ctx context.Context) {
	if d.store == nil {
		return
	}
	snap := Snapshot{Version: d.version, Employees: append([]Employee(nil), d.employees...)}
	if err := d.store.SaveSnapshot(ctx, snap); err != nil {
		slog.WarnContext(ctx, "employee snapshot save failed", "error", err)
	}
}
