package itinerary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nspraveen/tripnest/internal/store"
)

type memoryStorage struct {
	data map[string]any
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: map[string]any{}}
}

func (m *memoryStorage) Get(key string, out any) error {
	value, ok := m.data[key]
	if !ok {
		return store.ErrNotFound
	}
	saved, ok := value.(persistedItinerary)
	if !ok {
		return store.ErrNotFound
	}
	*out.(*persistedItinerary) = saved
	return nil
}

func (m *memoryStorage) Put(key string, value any) error {
	m.data[key] = value
	return nil
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(context.Context, string, int, int, int) (string, error) {
	return f.text, f.err
}

func fixedPlanner(gen GeneratorAPI) *Planner {
	p := New(newMemoryStorage(), gen)
	p.now = func() time.Time {
		return time.Date(2026, time.September, 1, 15, 30, 0, 0, time.UTC)
	}
	p.pick = func(int) int { return 0 }
	return p
}

func TestAddManual_Validation(t *testing.T) {
	p := fixedPlanner(nil)

	if err := p.AddManual("", "see the tower"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty date, got %v", err)
	}
	if err := p.AddManual("2026-09-02", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty description, got %v", err)
	}
	if err := p.AddManual("02/09/2026", "see the tower"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed date, got %v", err)
	}
	if err := p.AddManual("2026-09-02", "see the tower"); err != nil {
		t.Fatalf("AddManual returned error: %v", err)
	}
	if len(p.Entries()) != 1 {
		t.Fatalf("expected one entry, got %d", len(p.Entries()))
	}
}

func TestRemoveAndToggle_IndexBounds(t *testing.T) {
	p := fixedPlanner(nil)
	_ = p.AddManual("2026-09-02", "see the tower")

	if err := p.Remove(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := p.ToggleComplete(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	if err := p.ToggleComplete(0); err != nil {
		t.Fatalf("ToggleComplete returned error: %v", err)
	}
	if !p.Entries()[0].Completed {
		t.Fatalf("entry not marked complete")
	}
	if err := p.ToggleComplete(0); err != nil {
		t.Fatalf("second ToggleComplete returned error: %v", err)
	}
	if p.Entries()[0].Completed {
		t.Fatalf("toggle did not flip back")
	}

	if err := p.Remove(0); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(p.Entries()) != 0 {
		t.Fatalf("expected empty itinerary")
	}
}

func TestGenerate_LocalTemplates(t *testing.T) {
	p := fixedPlanner(nil)

	if err := p.Generate(context.Background(), "Lisbon", 3, 1500, 2); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	entries := p.Entries()
	if len(entries) != 9 {
		t.Fatalf("expected 3 days x 3 slots, got %d entries", len(entries))
	}
	if entries[0].Date != "2026-09-01" || entries[8].Date != "2026-09-03" {
		t.Fatalf("unexpected date range: %s .. %s", entries[0].Date, entries[8].Date)
	}
	if !strings.HasPrefix(entries[0].Description, "Morning: ") {
		t.Fatalf("expected slot prefix, got %q", entries[0].Description)
	}
	if !strings.Contains(entries[0].Description, "Lisbon") {
		t.Fatalf("destination not substituted: %q", entries[0].Description)
	}
	if strings.Contains(entries[0].Description, "{destination}") {
		t.Fatalf("placeholder leaked: %q", entries[0].Description)
	}

	details := p.Details()
	if details.Destination != "Lisbon" || details.Days != 3 || details.Budget != 1500 || details.Travelers != 2 {
		t.Fatalf("details not recorded: %+v", details)
	}
}

func TestGenerate_ReplacesExistingEntries(t *testing.T) {
	p := fixedPlanner(nil)
	_ = p.AddManual("2026-09-10", "old entry")

	if err := p.Generate(context.Background(), "Rome", 1, 0, 1); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for _, entry := range p.Entries() {
		if entry.Description == "old entry" {
			t.Fatalf("generation must replace the list, old entry survived")
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	p := fixedPlanner(nil)

	if err := p.Generate(context.Background(), "  ", 2, 0, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty destination, got %v", err)
	}
	if err := p.Generate(context.Background(), "Rome", 0, 0, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero days, got %v", err)
	}
}

func TestGenerate_RemoteTextIsParsed(t *testing.T) {
	gen := &fakeGenerator{text: strings.Join([]string{
		"Day 1:",
		"- Walk the old town",
		"- Visit the castle",
		"",
		"Day 2:",
		"* Morning market tour",
		"2026-09-05",
		"Ferry to the islands",
	}, "\n")}
	p := fixedPlanner(gen)

	if err := p.Generate(context.Background(), "Porto", 2, 800, 1); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	entries := p.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 activities, got %d: %+v", len(entries), entries)
	}
	if entries[0].Date != "2026-09-01" || entries[0].Description != "Walk the old town" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[2].Date != "2026-09-02" {
		t.Fatalf("Day 2 header not applied: %+v", entries[2])
	}
	if entries[3].Date != "2026-09-05" {
		t.Fatalf("explicit date header not applied: %+v", entries[3])
	}
}

func TestGenerate_RemoteFailureLeavesItineraryAlone(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("generator down")}
	p := fixedPlanner(gen)
	_ = p.AddManual("2026-09-10", "keep me")

	if err := p.Generate(context.Background(), "Porto", 2, 800, 1); err == nil {
		t.Fatalf("expected generator error to surface")
	}
	if len(p.Entries()) != 1 || p.Entries()[0].Description != "keep me" {
		t.Fatalf("failed generation must not touch entries: %+v", p.Entries())
	}
}

func TestGroupByDate_OrdersDaysAndPreservesInsertion(t *testing.T) {
	p := fixedPlanner(nil)
	_ = p.AddManual("2026-09-03", "later day")
	_ = p.AddManual("2026-09-01", "first thing")
	_ = p.AddManual("2026-09-01", "second thing")

	days := p.GroupByDate()
	if len(days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(days))
	}
	if days[0].Date != "2026-09-01" || days[1].Date != "2026-09-03" {
		t.Fatalf("days not ascending: %s, %s", days[0].Date, days[1].Date)
	}
	if days[0].Entries[0].Description != "first thing" || days[0].Entries[1].Description != "second thing" {
		t.Fatalf("insertion order lost within day: %+v", days[0].Entries)
	}
}

func TestPersistRestore_RoundTrip(t *testing.T) {
	storage := newMemoryStorage()
	p := New(storage, nil)
	p.now = func() time.Time { return time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC) }
	p.pick = func(int) int { return 0 }

	_ = p.Generate(context.Background(), "Kyoto", 2, 2000, 2)
	_ = p.ToggleComplete(0)
	if err := p.Persist(); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	restored := New(storage, nil)
	restored.Restore()

	if len(restored.Entries()) != 6 {
		t.Fatalf("expected 6 restored entries, got %d", len(restored.Entries()))
	}
	if !restored.Entries()[0].Completed {
		t.Fatalf("completion flag lost in round trip")
	}
	if restored.Details().Destination != "Kyoto" {
		t.Fatalf("details lost in round trip: %+v", restored.Details())
	}
}

func TestRestore_MissingRecordUsesDefaults(t *testing.T) {
	p := New(newMemoryStorage(), nil)
	p.Restore()

	details := p.Details()
	if details.Days != 1 || details.Budget != 1000 || details.Travelers != 1 {
		t.Fatalf("unexpected defaults: %+v", details)
	}
	if len(p.Entries()) != 0 {
		t.Fatalf("expected empty itinerary")
	}
}

func TestExportText_FormatAndFilename(t *testing.T) {
	p := fixedPlanner(nil)
	_ = p.Generate(context.Background(), "Lisbon", 1, 900, 2)
	_ = p.ToggleComplete(0)

	filename, content := p.ExportText()
	if filename != "Lisbon-itinerary.txt" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !strings.HasPrefix(content, "Travel Itinerary for Lisbon\n\n") {
		t.Fatalf("unexpected header: %q", content[:40])
	}
	if !strings.Contains(content, "Duration: 1 days\nBudget: $900\nTravelers: 2\n") {
		t.Fatalf("trip summary missing: %q", content)
	}
	if !strings.Contains(content, "✓") {
		t.Fatalf("completed marker missing: %q", content)
	}

	empty := fixedPlanner(nil)
	name, _ := empty.ExportText()
	if name != "trip-itinerary.txt" {
		t.Fatalf("expected fallback filename, got %q", name)
	}
}

func TestEntries_ReturnsACopy(t *testing.T) {
	p := fixedPlanner(nil)
	_ = p.AddManual("2026-09-02", "original")

	entries := p.Entries()
	entries[0].Description = "mutated"

	if p.Entries()[0].Description != "original" {
		t.Fatalf("internal state leaked through Entries")
	}
}
