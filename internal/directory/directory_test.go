package directory

import (
	"context"
	"errors"
	"testing"
)

// memSnapshots records saves and serves a canned snapshot.
type memSnapshots struct {
	stored    *Snapshot
	saves     int
	loadErr   error
	saveErr   error
	lastSaved Snapshot
}

func (m *memSnapshots) LoadSnapshot(context.Context) (*Snapshot, error) {
	return m.stored, m.loadErr
}

func (m *memSnapshots) SaveSnapshot(_ context.Context, snap Snapshot) error {
	m.saves++
	m.lastSaved = snap
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = &snap
	return nil
}

func TestNew_SeedSortedByName(t *testing.T) {
	t.Parallel()
	d := New(nil)
	list := d.List()
	if len(list) != 12 {
		t.Fatalf("seed count = %d, want 12", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Errorf("list not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}

func TestFind_ExactBeforeSubstring(t *testing.T) {
	t.Parallel()
	d := New(nil)

	emp, ok := d.Find("dylanne crugnale")
	if !ok {
		t.Fatal("exact case-insensitive match not found")
	}
	if emp.Email != "dylanne.crugnale@brite.co" {
		t.Errorf("email = %q", emp.Email)
	}

	emp, ok = d.Find("ortbal")
	if !ok {
		t.Fatal("substring match not found")
	}
	if emp.Name != "John Ortbal" {
		t.Errorf("substring match = %q, want John Ortbal", emp.Name)
	}

	if _, ok := d.Find("nobody at all"); ok {
		t.Error("unexpected match for unknown name")
	}
}

func TestAdd_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()
	d := New(nil)

	_, err := d.Add(context.Background(), Employee{Name: "Dupe", Email: "ALEX.JOHNSON@brite.co"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
	if d.Count() != 12 {
		t.Errorf("count changed on rejected add: %d", d.Count())
	}
}

func TestAdd_AppendsAndResorts(t *testing.T) {
	t.Parallel()
	snaps := &memSnapshots{}
	d := New(snaps)

	_, err := d.Add(context.Background(), Employee{Name: "Aaron First", Email: "aaron.first@brite.co"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	list := d.List()
	if list[0].Name != "Aaron First" {
		t.Errorf("list[0] = %q, want the new alphabetically-first employee", list[0].Name)
	}
	if snaps.saves != 1 {
		t.Errorf("snapshot saves = %d, want 1", snaps.saves)
	}
	if snaps.lastSaved.Version == 0 {
		t.Error("saved snapshot carries no version")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	d := New(nil)

	if err := d.Remove(context.Background(), "missing@brite.co"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove missing: err = %v, want ErrNotFound", err)
	}
	if d.Count() != 12 {
		t.Fatalf("count after failed remove = %d", d.Count())
	}

	if err := d.Remove(context.Background(), "RILEY.KIM@brite.co"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d.Count() != 11 {
		t.Errorf("count after remove = %d, want 11", d.Count())
	}
	if _, ok := d.FindByEmail("riley.kim@brite.co"); ok {
		t.Error("removed employee still present")
	}
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	t.Parallel()
	d := New(nil)

	title := "Principal Engineer"
	emp, err := d.Update(context.Background(), "alex.johnson@brite.co", Patch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if emp.Title != "Principal Engineer" {
		t.Errorf("title = %q", emp.Title)
	}
	if emp.Name != "Alex Johnson" || emp.Department != "Engineering" || emp.BirthdayMonth != 7 {
		t.Errorf("untouched fields changed: %+v", emp)
	}

	if _, err := d.Update(context.Background(), "ghost@brite.co", Patch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestBirthdays_FilteredAndDaySorted(t *testing.T) {
	t.Parallel()
	d := New(nil)
	for _, emp := range []Employee{
		{Name: "Zed Late", Email: "zed.late@brite.co", BirthdayMonth: 7, BirthdayDay: 30},
		{Name: "Ann Early", Email: "ann.early@brite.co", BirthdayMonth: 7, BirthdayDay: 1},
	} {
		if _, err := d.Add(context.Background(), emp); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	july := d.Birthdays(7)
	if len(july) != 3 {
		t.Fatalf("july birthdays = %d, want 3", len(july))
	}
	days := []int{july[0].BirthdayDay, july[1].BirthdayDay, july[2].BirthdayDay}
	if days[0] != 1 || days[1] != 3 || days[2] != 30 {
		t.Errorf("days = %v, want ascending [1 3 30]", days)
	}
	for _, emp := range july {
		if emp.BirthdayMonth != 7 {
			t.Errorf("employee %q has month %d", emp.Name, emp.BirthdayMonth)
		}
	}

	if got := d.Birthdays(0); len(got) != 0 {
		t.Errorf("month 0 returned %d entries", len(got))
	}
}

func TestMutationSurvivesFailedSave(t *testing.T) {
	t.Parallel()
	snaps := &memSnapshots{saveErr: errors.New("bucket offline")}
	d := New(snaps)

	if _, err := d.Add(context.Background(), Employee{Name: "Kept Anyway", Email: "kept.anyway@brite.co"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := d.FindByEmail("kept.anyway@brite.co"); !ok {
		t.Error("in-memory mutation rolled back on snapshot save failure")
	}
}

func TestSync(t *testing.T) {
	t.Parallel()

	t.Run("absent snapshot seeds the store", func(t *testing.T) {
		t.Parallel()
		snaps := &memSnapshots{}
		d := New(snaps)
		if err := d.Sync(context.Background()); err != nil {
			t.Fatalf("sync: %v", err)
		}
		if snaps.saves != 1 {
			t.Fatalf("saves = %d, want 1", snaps.saves)
		}
		if len(snaps.lastSaved.Employees) != 12 {
			t.Errorf("seeded %d employees", len(snaps.lastSaved.Employees))
		}
	})

	t.Run("stale version overwritten with seed", func(t *testing.T) {
		t.Parallel()
		snaps := &memSnapshots{stored: &Snapshot{
			Version:   1,
			Employees: []Employee{{Name: "Old Timer", Email: "old@brite.co"}},
		}}
		d := New(snaps)
		if err := d.Sync(context.Background()); err != nil {
			t.Fatalf("sync: %v", err)
		}
		if _, ok := d.FindByEmail("old@brite.co"); ok {
			t.Error("stale roster adopted instead of overwritten")
		}
		if snaps.saves != 1 {
			t.Errorf("saves = %d, want 1", snaps.saves)
		}
	})

	t.Run("current version adopted", func(t *testing.T) {
		t.Parallel()
		snaps := &memSnapshots{stored: &Snapshot{
			Version:   seedVersion + 5,
			Employees: []Employee{{Name: "Stored Person", Email: "stored@brite.co"}},
		}}
		d := New(snaps)
		if err := d.Sync(context.Background()); err != nil {
			t.Fatalf("sync: %v", err)
		}
		if d.Count() != 1 {
			t.Fatalf("count = %d, want stored roster of 1", d.Count())
		}
		if snaps.saves != 0 {
			t.Errorf("unexpected save during adopt: %d", snaps.saves)
		}
	})
}
