// Package itinerary merges generated suggestions and user-added entries
// into a date-grouped trip plan that survives restarts and exports to a
// plain-text document.
package itinerary

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ghodss/yaml"

	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/store"
)

var (
	ErrValidation      = errors.New("itinerary validation failed")
	ErrIndexOutOfRange = errors.New("itinerary index out of range")
)

const dateLayout = "2006-01-02"

//go:embed templates.yaml
var templatesYAML []byte

var activityTemplates = mustTemplates()

func mustTemplates() []string {
	var doc struct {
		ActivityTemplates []string `json:"activity_templates"`
	}
	if err := yaml.Unmarshal(templatesYAML, &doc); err != nil {
		panic("itinerary: parse embedded templates: " + err.Error())
	}
	if len(doc.ActivityTemplates) == 0 {
		panic("itinerary: embedded template set is empty")
	}
	return doc.ActivityTemplates
}

// GeneratorAPI is the optional remote generation collaborator. When it is
// absent the planner generates from the local template set.
type GeneratorAPI interface {
	Generate(ctx context.Context, destination string, days, budget, travelers int) (string, error)
}

type Storage interface {
	Get(key string, out any) error
	Put(key string, value any) error
}

type Details struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      int    `json:"budget"`
	Travelers   int    `json:"travelers"`
}

type persistedItinerary struct {
	Entries     []domain.ItineraryEntry `json:"entries"`
	Destination string                  `json:"destination"`
	Days        int                     `json:"days"`
	Budget      int                     `json:"budget"`
	Travelers   int                     `json:"travelers"`
}

type Planner struct {
	store Storage
	gen   GeneratorAPI

	mu      sync.Mutex
	entries []domain.ItineraryEntry
	details Details

	now  func() time.Time
	pick func(n int) int
}

func New(storage Storage, gen GeneratorAPI) *Planner {
	return &Planner{
		store:   storage,
		gen:     gen,
		details: Details{Days: 1, Budget: 1000, Travelers: 1},
		now:     time.Now,
		pick:    rand.Intn,
	}
}

func (p *Planner) AddManual(date, description string) error {
	date = strings.TrimSpace(date)
	description = strings.TrimSpace(description)
	if date == "" || description == "" {
		return fmt.Errorf("%w: date and description are required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be %s", ErrValidation, dateLayout)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, domain.ItineraryEntry{Date: date, Description: description})
	return nil
}

func (p *Planner) Remove(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.entries) {
		return ErrIndexOutOfRange
	}
	p.entries = append(p.entries[:index], p.entries[index+1:]...)
	return nil
}

func (p *Planner) ToggleComplete(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.entries) {
		return ErrIndexOutOfRange
	}
	p.entries[index].Completed = !p.entries[index].Completed
	return nil
}

// Generate replaces the whole itinerary with suggestions for the trip.
// With a remote generator configured its free-text answer is parsed into
// dated entries; otherwise the local template set produces three entries
// per day starting today.
func (p *Planner) Generate(ctx context.Context, destination string, days, budget, travelers int) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if days < 1 {
		return fmt.Errorf("%w: the trip needs at least one day", ErrValidation)
	}
	if budget < 0 {
		budget = 0
	}
	if travelers < 1 {
		travelers = 1
	}

	start := p.startOfToday()

	var entries []domain.ItineraryEntry
	if p.gen != nil {
		text, err := p.gen.Generate(ctx, destination, days, budget, travelers)
		if err != nil {
			return err
		}
		entries = parseGeneratedText(text, start)
	} else {
		entries = p.generateLocal(destination, days, start)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = entries
	p.details = Details{Destination: destination, Days: days, Budget: budget, Travelers: travelers}
	return nil
}

func (p *Planner) generateLocal(destination string, days int, start time.Time) []domain.ItineraryEntry {
	slots := []string{"Morning", "Afternoon", "Evening"}
	entries := make([]domain.ItineraryEntry, 0, days*len(slots))
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)
		for _, slot := range slots {
			template := activityTemplates[p.pick(len(activityTemplates))]
			activity := strings.ReplaceAll(template, "{destination}", destination)
			entries = append(entries, domain.ItineraryEntry{
				Date:        date,
				Description: slot + ": " + activity,
			})
		}
	}
	return entries
}

// parseGeneratedText turns the generator's free text into entries: a line
// that reads as a date becomes the current day header, anything else is
// an activity under it.
func parseGeneratedText(text string, start time.Time) []domain.ItineraryEntry {
	current := start.Format(dateLayout)
	var entries []domain.ItineraryEntry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if date, ok := parseDateHeader(line, start); ok {
			current = date
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		if line == "" {
			continue
		}
		entries = append(entries, domain.ItineraryEntry{Date: current, Description: line})
	}
	return entries
}

func parseDateHeader(line string, start time.Time) (string, bool) {
	header := strings.TrimSuffix(strings.TrimSpace(line), ":")

	for _, layout := range []string{dateLayout, "January 2, 2006", "Jan 2, 2006", "2 January 2006"} {
		if t, err := time.Parse(layout, header); err == nil {
			return t.Format(dateLayout), true
		}
	}

	// "Day N" headers are relative to the trip start.
	if rest, ok := strings.CutPrefix(strings.ToLower(header), "day "); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 1 {
			return start.AddDate(0, 0, n-1).Format(dateLayout), true
		}
	}
	return "", false
}

// GroupByDate buckets entries by calendar day, days ascending, insertion
// order preserved within a day.
func (p *Planner) GroupByDate() []domain.ItineraryDay {
	p.mu.Lock()
	defer p.mu.Unlock()

	byDate := make(map[string][]domain.ItineraryEntry)
	var dates []string
	for _, entry := range p.entries {
		if _, seen := byDate[entry.Date]; !seen {
			dates = append(dates, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}
	sort.Strings(dates)

	days := make([]domain.ItineraryDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, domain.ItineraryDay{Date: date, Entries: byDate[date]})
	}
	return days
}

func (p *Planner) Entries() []domain.ItineraryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ItineraryEntry(nil), p.entries...)
}

func (p *Planner) Details() Details {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details
}

// Persist writes the itinerary and its trip details as one durable unit.
func (p *Planner) Persist() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.Put(store.KeyItinerary, persistedItinerary{
		Entries:     p.entries,
		Destination: p.details.Destination,
		Days:        p.details.Days,
		Budget:      p.details.Budget,
		Travelers:   p.details.Travelers,
	})
}

// Restore loads the saved itinerary, degrading to the defaults when the
// record is missing or corrupt.
func (p *Planner) Restore() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = nil
	p.details = Details{Days: 1, Budget: 1000, Travelers: 1}

	var saved persistedItinerary
	if err := p.store.Get(store.KeyItinerary, &saved); err != nil {
		return
	}

	p.entries = saved.Entries
	p.details = Details{
		Destination: saved.Destination,
		Days:        saved.Days,
		Budget:      saved.Budget,
		Travelers:   saved.Travelers,
	}
	if p.details.Days < 1 {
		p.details.Days = 1
	}
	if p.details.Budget <= 0 {
		p.details.Budget = 1000
	}
	if p.details.Travelers < 1 {
		p.details.Travelers = 1
	}
}

// ExportText renders the plan as a downloadable UTF-8 text document and
// returns the suggested file name with it.
func (p *Planner) ExportText() (filename, content string) {
	details := p.Details()
	days := p.GroupByDate()

	var b strings.Builder
	fmt.Fprintf(&b, "Travel Itinerary for %s\n\n", details.Destination)
	fmt.Fprintf(&b, "Duration: %d days\nBudget: $%d\nTravelers: %d\n\n", details.Days, details.Budget, details.Travelers)

	for _, day := range days {
		for _, entry := range day.Entries {
			b.WriteString(day.Date + ": " + entry.Description)
			if entry.Completed {
				b.WriteString(" ✓")
			}
			b.WriteString("\n")
		}
	}

	name := strings.TrimSpace(details.Destination)
	if name == "" {
		name = "trip"
	}
	return name + "-itinerary.txt", b.String()
}

func (p *Planner) startOfToday() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
