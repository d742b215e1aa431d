// Package moderation is the admin-side pending queue. A submission is
// either approved or deleted; neither transition can be undone. The
// pending count is always the length of the list, never bookkept apart
// from it.
package moderation

import (
	"context"
	"errors"
	"sync"

	"github.com/nspraveen/tripnest/internal/domain"
)

var ErrNotPending = errors.New("submission is not pending")

type BlogsAPI interface {
	Pending(ctx context.Context) ([]domain.Blog, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type Queue struct {
	blogs BlogsAPI

	mu      sync.Mutex
	pending []domain.Blog
}

func NewQueue(blogs BlogsAPI) *Queue {
	return &Queue{blogs: blogs}
}

func (q *Queue) Load(ctx context.Context) error {
	items, err := q.blogs.Pending(ctx)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = items
	return nil
}

func (q *Queue) Pending() []domain.Blog {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.Blog(nil), q.pending...)
}

func (q *Queue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Approve transitions a submission out of the queue. The item is removed
// optimistically and restored at its original position if the
// collaborator refuses the transition.
func (q *Queue) Approve(ctx context.Context, id string) error {
	return q.transition(ctx, id, q.blogs.Approve)
}

// Reject deletes the submission; see Approve for the rollback behavior.
func (q *Queue) Reject(ctx context.Context, id string) error {
	return q.transition(ctx, id, q.blogs.Reject)
}

func (q *Queue) transition(ctx context.Context, id string, apply func(context.Context, string) error) error {
	q.mu.Lock()
	index := -1
	for i, blog := range q.pending {
		if blog.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		q.mu.Unlock()
		return ErrNotPending
	}
	removed := q.pending[index]
	q.pending = append(q.pending[:index], q.pending[index+1:]...)
	q.mu.Unlock()

	if err := apply(ctx, id); err != nil {
		q.mu.Lock()
		if index > len(q.pending) {
			index = len(q.pending)
		}
		q.pending = append(q.pending[:index], append([]domain.Blog{removed}, q.pending[index:]...)...)
		q.mu.Unlock()
		return err
	}
	return nil
}
