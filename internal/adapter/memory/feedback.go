package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// FeedbackRepo stores ratings and comments scoped to a published deck.
type FeedbackRepo struct {
	s *Store
}

// AddComment stores a comment. Comments are written by a collaborator
// outside this service; the method exists for dev seeding and tests.
func (r *FeedbackRepo) AddComment(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	var out *domain.Comment
	err := r.s.write(ctx, func(st *state) error {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if _, ok := st.comments[c.ID]; ok {
			return fmt.Errorf("comment %s: %w", c.ID, domain.ErrAlreadyExists)
		}
		if c.Lifecycle.State == "" {
			c.Lifecycle = domain.Active()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = r.s.stamp()
		}
		stored := c
		st.comments[c.ID] = &stored
		out = &c
		return nil
	})
	return out, err
}

// AddRating stores or replaces userID's rating of a published deck.
func (r *FeedbackRepo) AddRating(ctx context.Context, rt domain.Rating) error {
	return r.s.write(ctx, func(st *state) error {
		if rt.CreatedAt.IsZero() {
			rt.CreatedAt = r.s.stamp()
		}
		list := st.ratings[rt.PublishedID]
		for i := range list {
			if list[i].UserID == rt.UserID {
				list[i] = rt
				return nil
			}
		}
		st.ratings[rt.PublishedID] = append(list, rt)
		return nil
	})
}

// DeleteByPublishedID removes every rating and comment of a published deck.
func (r *FeedbackRepo) DeleteByPublishedID(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		n = int64(len(st.ratings[publishedID]))
		delete(st.ratings, publishedID)
		for id, c := range st.comments {
			if c.PublishedID == publishedID {
				delete(st.comments, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

// GetComment returns a comment regardless of its lifecycle state.
func (r *FeedbackRepo) GetComment(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	var out *domain.Comment
	err := r.s.read(func(st *state) error {
		c, ok := st.comments[id]
		if !ok {
			return notFound("comment", id)
		}
		cp := *c
		out = &cp
		return nil
	})
	return out, err
}

// SetCommentLifecycle changes the moderation state of a comment.
func (r *FeedbackRepo) SetCommentLifecycle(ctx context.Context, id uuid.UUID, l domain.Lifecycle) error {
	return r.s.write(ctx, func(st *state) error {
		c, ok := st.comments[id]
		if !ok {
			return notFound("comment", id)
		}
		c.Lifecycle = l
		return nil
	})
}

// CountByPublishedID returns how many ratings and comments a published deck has.
func (r *FeedbackRepo) CountByPublishedID(_ context.Context, publishedID uuid.UUID) (ratings, comments int) {
	_ = r.s.read(func(st *state) error {
		ratings = len(st.ratings[publishedID])
		for _, c := range st.comments {
			if c.PublishedID == publishedID {
				comments++
			}
		}
		return nil
	})
	return ratings, comments
}
