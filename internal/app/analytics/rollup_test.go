// internal/app/analytics/rollup_test.go
package analytics

import (
	"testing"
	"time"

	"github.com/dalemusser/hackhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConversionRate(t *testing.T) {
	cases := []struct {
		name string
		regs int64
		subs int64
		want float64
	}{
		{"zero registrations guards division", 0, 5, 0},
		{"zero submissions", 10, 0, 0},
		{"plain ratio", 10, 4, 40},
		{"rounds to one decimal", 3, 1, 33.3},
		{"rounds half up", 8, 5, 62.5},
		{"over one hundred is legal", 4, 6, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := conversionRate(tc.regs, tc.subs); got != tc.want {
				t.Fatalf("conversionRate(%d, %d) = %v, want %v", tc.regs, tc.subs, got, tc.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	if got := percentage(0, 0); got != 0 {
		t.Fatalf("percentage(0, 0) = %v, want 0", got)
	}
	if got := percentage(1, 3); got != 33.3 {
		t.Fatalf("percentage(1, 3) = %v, want 33.3", got)
	}
}

func TestBuildRollupsZeroForAbsentEvents(t *testing.T) {
	evA := models.Event{ID: primitive.NewObjectID(), Title: "Alpha"}
	evB := models.Event{ID: primitive.NewObjectID(), Title: "Beta"}

	regs := map[primitive.ObjectID]windowCounts{
		evA.ID: {Total: 10, Last24: 3},
	}
	subs := map[primitive.ObjectID]windowCounts{
		evA.ID: {Total: 4, Last24: 1},
	}

	out := buildRollups([]models.Event{evA, evB}, regs, subs)
	if len(out) != 2 {
		t.Fatalf("expected 2 rollups, got %d", len(out))
	}

	a := out[0].Metrics
	if a.Registrations != 10 || a.Submissions != 4 || a.Conversion != 40 || a.Activity24h != 4 {
		t.Fatalf("unexpected metrics for event A: %+v", a)
	}

	b := out[1].Metrics
	if b.Registrations != 0 || b.Submissions != 0 || b.Conversion != 0 || b.Activity24h != 0 {
		t.Fatalf("event with no records should roll up to zeros, got %+v", b)
	}
}

func TestSortRollupsDefaultStartDateDesc(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rollups := []EventRollup{
		{Title: "older", StartDate: base},
		{Title: "newest", StartDate: base.AddDate(0, 0, 2)},
		{Title: "middle", StartDate: base.AddDate(0, 0, 1)},
	}

	sortRollups(rollups, "", "")

	want := []string{"newest", "middle", "older"}
	for i, w := range want {
		if rollups[i].Title != w {
			t.Fatalf("position %d: got %q, want %q", i, rollups[i].Title, w)
		}
	}
}

func TestSortRollupsByMetricAscending(t *testing.T) {
	rollups := []EventRollup{
		{Title: "high", Metrics: Metrics{Conversion: 80}},
		{Title: "low", Metrics: Metrics{Conversion: 10}},
		{Title: "mid", Metrics: Metrics{Conversion: 50}},
	}

	sortRollups(rollups, SortConversion, "asc")

	want := []string{"low", "mid", "high"}
	for i, w := range want {
		if rollups[i].Title != w {
			t.Fatalf("position %d: got %q, want %q", i, rollups[i].Title, w)
		}
	}
}

func TestSortRollupsStableOnTies(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rollups := []EventRollup{
		{Title: "first", StartDate: date},
		{Title: "second", StartDate: date},
		{Title: "third", StartDate: date},
	}

	sortRollups(rollups, SortStartDate, "desc")

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if rollups[i].Title != w {
			t.Fatalf("ties must keep insertion order: position %d got %q, want %q", i, rollups[i].Title, w)
		}
	}
}
