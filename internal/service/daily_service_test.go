package service

import (
	"errors"
	"testing"
	"time"

	"kinderpost/internal/models"
	"kinderpost/internal/repository"
)

func TestCheckInGate(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "gate")

	meal := &models.Meal{ChildID: fx.child.ID, Date: "2026-03-02", Title: "Porridge"}
	if _, err := env.daily.RecordMeal(fx.teacher, meal); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("RecordMeal before check-in = %v, want ErrNotCheckedIn", err)
	}

	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:15"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	if _, err := env.daily.RecordMeal(fx.teacher, meal); err != nil {
		t.Fatalf("RecordMeal after check-in failed: %v", err)
	}

	// The gate is per date; the next day starts closed again
	nextDay := &models.Mood{ChildID: fx.child.ID, Date: "2026-03-03", Mood: models.MoodHappy}
	if _, err := env.daily.RecordMood(fx.teacher, nextDay); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("RecordMood on unopened date = %v, want ErrNotCheckedIn", err)
	}
}

func TestCheckInTwice(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "twice")

	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:00"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:30"); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second CheckIn = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "checkout")

	if _, err := env.daily.CheckOut(fx.teacher, fx.child.ID, "2026-03-02", "16:00"); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("CheckOut without check-in = %v, want ErrNotCheckedIn", err)
	}
}

func TestNapSleepWindow(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "nap")

	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:00"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"valid window", "12:30", "13:45", nil},
		{"inverted window", "14:00", "13:00", ErrInvalidSleepWindow},
		{"empty window", "13:00", "13:00", ErrInvalidSleepWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.daily.RecordNap(fx.teacher, &models.Nap{
				ChildID:   fx.child.ID,
				Date:      "2026-03-02",
				SleepFrom: tt.from,
				SleepTo:   tt.to,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordNap(%s, %s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestParentCannotWriteRecords(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "parentwrite")

	// Readable but not writable: deny, not masked
	if _, err := env.daily.CheckIn(fx.parent, fx.child.ID, "2026-03-02", "08:00"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("parent CheckIn = %v, want ErrAccessDenied", err)
	}
}

func TestForeignChildMasked(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "masked-a")
	other := env.seedHierarchy(t, "masked-b")

	// A foreign parent cannot even learn the child exists
	if _, err := env.daily.CheckIn(other.parent, fx.child.ID, "2026-03-02", "08:00"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign parent CheckIn = %v, want ErrNotFound", err)
	}

	// Staff out of scope get a plain denial, not the mask
	if _, err := env.daily.CheckIn(other.teacher, fx.child.ID, "2026-03-02", "08:00"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign teacher CheckIn = %v, want ErrAccessDenied", err)
	}
}

func TestForeignAdminRecordDenied(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "fadmin-a")
	other := env.seedHierarchy(t, "fadmin-b")

	// Even with the child's day opened, an admin of another kindergarten
	// is denied rather than told the child does not exist
	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:00"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	meal := &models.Meal{ChildID: fx.child.ID, Date: "2026-03-02", Title: "Soup"}
	if _, err := env.daily.RecordMeal(other.admin, meal); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign admin RecordMeal = %v, want ErrAccessDenied", err)
	}
}

func TestRecordListingScoped(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "scope-a")
	other := env.seedHierarchy(t, "scope-b")

	for _, f := range []*fixture{fx, other} {
		if _, err := env.daily.CheckIn(f.teacher, f.child.ID, "2026-03-02", "08:00"); err != nil {
			t.Fatalf("CheckIn failed: %v", err)
		}
		if _, err := env.daily.RecordMeal(f.teacher, &models.Meal{ChildID: f.child.ID, Date: "2026-03-02", Title: "Soup"}); err != nil {
			t.Fatalf("RecordMeal failed: %v", err)
		}
	}

	meals, err := env.daily.ListMeals(fx.parent, repository.RecordFilter{})
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("parent sees %d meals, want 1", len(meals))
	}
	if meals[0].ChildID != fx.child.ID {
		t.Errorf("parent sees meal of child %d, want %d", meals[0].ChildID, fx.child.ID)
	}

	all, err := env.daily.ListMeals(fx.superadmin, repository.RecordFilter{})
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("superadmin sees %d meals, want 2", len(all))
	}

	// Filters AND-compose with the scope; an unsatisfiable mix is empty
	none, err := env.daily.ListMeals(fx.parent, repository.RecordFilter{ChildID: other.child.ID})
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("parent filtering a foreign child sees %d meals, want 0", len(none))
	}
}

func TestInvalidRecordValues(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "values")

	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:00"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	if _, err := env.daily.RecordMeal(fx.teacher, &models.Meal{
		ChildID: fx.child.ID, Date: "2026-03-02", Title: "Soup", AppetiteLevel: "ravenous",
	}); !errors.Is(err, ErrInvalidAppetite) {
		t.Errorf("unknown appetite = %v, want ErrInvalidAppetite", err)
	}

	if _, err := env.daily.RecordMood(fx.teacher, &models.Mood{
		ChildID: fx.child.ID, Date: "2026-03-02", Mood: "ecstatic",
	}); !errors.Is(err, ErrInvalidMood) {
		t.Errorf("unknown mood = %v, want ErrInvalidMood", err)
	}

	// Missing appetite defaults to normal
	meal, err := env.daily.RecordMeal(fx.teacher, &models.Meal{ChildID: fx.child.ID, Date: "2026-03-02", Title: "Soup"})
	if err != nil {
		t.Fatalf("RecordMeal failed: %v", err)
	}
	if meal.AppetiteLevel != models.AppetiteNormal {
		t.Errorf("default appetite = %q, want %q", meal.AppetiteLevel, models.AppetiteNormal)
	}
}

func TestMealIntakeTimeDefaults(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "intake")

	if _, err := env.daily.CheckIn(fx.teacher, fx.child.ID, "2026-03-02", "08:00"); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	meal, err := env.daily.RecordMeal(fx.teacher, &models.Meal{ChildID: fx.child.ID, Date: "2026-03-02", Title: "Soup"})
	if err != nil {
		t.Fatalf("RecordMeal failed: %v", err)
	}
	if meal.IntakeTime == "" {
		t.Fatal("missing intake time was not defaulted")
	}
	if _, err := time.Parse("15:04", meal.IntakeTime); err != nil {
		t.Errorf("defaulted intake time %q is not HH:MM", meal.IntakeTime)
	}
}
