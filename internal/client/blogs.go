package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nspraveen/tripnest/internal/domain"
)

type Blogs struct {
	rest
}

func NewBlogs(baseURL string, doer HTTPDoer) *Blogs {
	return &Blogs{rest: newREST(baseURL, doer)}
}

// blogDTO matches the blogs service wire shape ("blogs" carries the body,
// "name" the pen name). Items may arrive without ids; the list position
// becomes the id then.
type blogDTO struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Title string      `json:"title"`
	Body  string      `json:"blogs"`
}

func (b *Blogs) List(ctx context.Context) ([]domain.Blog, error) {
	return b.fetch(ctx, "/api/blogs", domain.BlogApproved)
}

func (b *Blogs) Pending(ctx context.Context) ([]domain.Blog, error) {
	return b.fetch(ctx, "/api/blogs/pending", domain.BlogPending)
}

func (b *Blogs) fetch(ctx context.Context, path string, state domain.ApprovalState) ([]domain.Blog, error) {
	var dtos []blogDTO
	if err := b.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}

	blogs := make([]domain.Blog, 0, len(dtos))
	for i, dto := range dtos {
		id := dto.ID.String()
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		blogs = append(blogs, domain.Blog{
			ID:            id,
			Title:         dto.Title,
			Body:          dto.Body,
			AuthorName:    dto.Name,
			ApprovalState: state,
		})
	}
	return blogs, nil
}

func (b *Blogs) Approve(ctx context.Context, id string) error {
	return b.call(ctx, http.MethodPut, "/api/blogs/approve/"+url.PathEscape(id))
}

// Reject deletes the submission; there is no rejected archive.
func (b *Blogs) Reject(ctx context.Context, id string) error {
	return b.call(ctx, http.MethodDelete, "/api/blogs/reject/"+url.PathEscape(id))
}

func (b *Blogs) Submit(ctx context.Context, penName, title, body string) error {
	payload := map[string]string{
		"name":  penName,
		"title": title,
		"blogs": body,
	}
	return b.postJSON(ctx, "/api/blogs/submit", payload, nil)
}
