// Package blogfeed is the reader-facing blog surface: a seeded list of
// articles refreshed from the collaborator, plus locally stored drafts
// and saved-article bookmarks.
package blogfeed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ghodss/yaml"

	"github.com/nspraveen/tripnest/internal/collection"
	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/sanitize"
	"github.com/nspraveen/tripnest/internal/store"
)

var ErrValidation = errors.New("blog validation failed")

//go:embed seed_blogs.yaml
var seedYAML []byte

var seedBlogs = mustSeeds()

func mustSeeds() []domain.Blog {
	var doc struct {
		SeedBlogs []struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Author string `json:"author"`
			Body   string `json:"body"`
		} `json:"seed_blogs"`
	}
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		panic("blogfeed: parse embedded seeds: " + err.Error())
	}

	blogs := make([]domain.Blog, 0, len(doc.SeedBlogs))
	for _, s := range doc.SeedBlogs {
		blogs = append(blogs, domain.Blog{
			ID:            s.ID,
			Title:         s.Title,
			AuthorName:    s.Author,
			Body:          sanitize.HTML(s.Body),
			ApprovalState: domain.BlogApproved,
		})
	}
	return blogs
}

type BlogsAPI interface {
	List(ctx context.Context) ([]domain.Blog, error)
	Submit(ctx context.Context, penName, title, body string) error
}

type Storage interface {
	Get(key string, out any) error
	Put(key string, value any) error
}

type Feed struct {
	blogs BlogsAPI
	store Storage

	mu         sync.Mutex
	items      []domain.Blog
	generation uint64

	now func() time.Time
}

func New(blogs BlogsAPI, storage Storage) *Feed {
	return &Feed{
		blogs: blogs,
		store: storage,
		items: append([]domain.Blog(nil), seedBlogs...),
		now:   time.Now,
	}
}

// Refresh fetches the published list and merges it over the seeds. A
// refresh that was overtaken by a newer one discards its result instead
// of clobbering it.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	fetched, err := f.blogs.List(ctx)
	if err != nil {
		return err
	}
	for i := range fetched {
		fetched[i].Body = sanitize.HTML(fetched[i].Body)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		return nil
	}
	f.items = Reconcile(seedBlogs, fetched)
	return nil
}

// Reconcile merges fetched blogs over the defaults by id. Defaults keep
// their position, a fetched blog with the same id replaces the default
// in place, and fetched-only blogs follow in fetch order.
func Reconcile(defaults, fetched []domain.Blog) []domain.Blog {
	byID := make(map[string]domain.Blog, len(fetched))
	for _, blog := range fetched {
		byID[blog.ID] = blog
	}

	merged := make([]domain.Blog, 0, len(defaults)+len(fetched))
	for _, blog := range defaults {
		if override, ok := byID[blog.ID]; ok {
			merged = append(merged, override)
			delete(byID, blog.ID)
			continue
		}
		merged = append(merged, blog)
	}
	for _, blog := range fetched {
		if _, pending := byID[blog.ID]; pending {
			merged = append(merged, blog)
			delete(byID, blog.ID)
		}
	}
	return merged
}

func (f *Feed) Items() []domain.Blog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Blog(nil), f.items...)
}

// Search filters the feed by a substring of the title or body.
func (f *Feed) Search(query string) []domain.Blog {
	return collection.Derive(f.Items(), collection.Criteria{Query: query}, collection.BlogFields())
}

// ReadMinutes estimates reading time at 200 words per minute, never
// reporting less than a minute. The count runs over the visible text,
// not the markup.
func ReadMinutes(body string) int {
	words := len(strings.Fields(sanitize.Text(body)))
	minutes := int(math.Round(float64(words) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Submit sends an article for moderation. All three fields are required.
func (f *Feed) Submit(ctx context.Context, penName, title, body string) error {
	penName = strings.TrimSpace(penName)
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if penName == "" || title == "" || body == "" {
		return fmt.Errorf("%w: pen name, title and body are required", ErrValidation)
	}
	return f.blogs.Submit(ctx, penName, title, body)
}

// SaveDraft stores an in-progress article locally without submitting it.
func (f *Feed) SaveDraft(penName, title, body string) error {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: a draft needs a title or a body", ErrValidation)
	}

	drafts := f.Drafts()
	drafts = append(drafts, domain.BlogDraft{
		PenName: strings.TrimSpace(penName),
		Title:   strings.TrimSpace(title),
		Body:    body,
		SavedAt: f.now(),
	})
	return f.store.Put(store.KeyDraftBlogs, drafts)
}

func (f *Feed) Drafts() []domain.BlogDraft {
	var drafts []domain.BlogDraft
	if err := f.store.Get(store.KeyDraftBlogs, &drafts); err != nil {
		return nil
	}
	return drafts
}

func (f *Feed) DiscardDraft(index int) error {
	drafts := f.Drafts()
	if index < 0 || index >= len(drafts) {
		return fmt.Errorf("%w: no draft at index %d", ErrValidation, index)
	}
	drafts = append(drafts[:index], drafts[index+1:]...)
	return f.store.Put(store.KeyDraftBlogs, drafts)
}

// ToggleSaved flips the bookmark on an article and reports whether it is
// saved afterwards.
func (f *Feed) ToggleSaved(id string) (bool, error) {
	ids := f.SavedIDs()

	saved := false
	kept := ids[:0]
	for _, existing := range ids {
		if existing == id {
			saved = true
			continue
		}
		kept = append(kept, existing)
	}
	if !saved {
		kept = append(kept, id)
	}
	sort.Strings(kept)

	if err := f.store.Put(store.KeySavedBlogIDs, kept); err != nil {
		return false, err
	}
	return !saved, nil
}

func (f *Feed) SavedIDs() []string {
	var ids []string
	if err := f.store.Get(store.KeySavedBlogIDs, &ids); err != nil {
		return nil
	}
	return ids
}
