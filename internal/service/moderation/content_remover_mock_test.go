package moderation

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ contentRemover = &contentRemoverMock{}

type contentRemoverMock struct {
	ModerationRemoveCommentFunc  func(ctx context.Context, commentID uuid.UUID, reason string) error
	ModerationSoftDeleteFunc     func(ctx context.Context, publishedID uuid.UUID, reason string) error
	ModerationSoftDeleteCardFunc func(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, reason string) error

	calls struct {
		ModerationRemoveComment []struct {
			Ctx       context.Context
			CommentID uuid.UUID
			Reason    string
		}
		ModerationSoftDelete []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
			Reason      string
		}
		ModerationSoftDeleteCard []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
			CardID      uuid.UUID
			Reason      string
		}
	}
	lockModerationRemoveComment  sync.RWMutex
	lockModerationSoftDelete     sync.RWMutex
	lockModerationSoftDeleteCard sync.RWMutex
}

func (mock *contentRemoverMock) ModerationRemoveComment(ctx context.Context, commentID uuid.UUID, reason string) error {
	if mock.ModerationRemoveCommentFunc == nil {
		panic("contentRemoverMock.ModerationRemoveCommentFunc: method is nil but contentRemover.ModerationRemoveComment was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CommentID uuid.UUID
		Reason    string
	}{Ctx: ctx, CommentID: commentID, Reason: reason}
	mock.lockModerationRemoveComment.Lock()
	mock.calls.ModerationRemoveComment = append(mock.calls.ModerationRemoveComment, callInfo)
	mock.lockModerationRemoveComment.Unlock()
	return mock.ModerationRemoveCommentFunc(ctx, commentID, reason)
}

func (mock *contentRemoverMock) ModerationRemoveCommentCalls() []struct {
	Ctx       context.Context
	CommentID uuid.UUID
	Reason    string
} {
	mock.lockModerationRemoveComment.RLock()
	calls := mock.calls.ModerationRemoveComment
	mock.lockModerationRemoveComment.RUnlock()
	return calls
}

func (mock *contentRemoverMock) ModerationSoftDelete(ctx context.Context, publishedID uuid.UUID, reason string) error {
	if mock.ModerationSoftDeleteFunc == nil {
		panic("contentRemoverMock.ModerationSoftDeleteFunc: method is nil but contentRemover.ModerationSoftDelete was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
		Reason      string
	}{Ctx: ctx, PublishedID: publishedID, Reason: reason}
	mock.lockModerationSoftDelete.Lock()
	mock.calls.ModerationSoftDelete = append(mock.calls.ModerationSoftDelete, callInfo)
	mock.lockModerationSoftDelete.Unlock()
	return mock.ModerationSoftDeleteFunc(ctx, publishedID, reason)
}

func (mock *contentRemoverMock) ModerationSoftDeleteCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
	Reason      string
} {
	mock.lockModerationSoftDelete.RLock()
	calls := mock.calls.ModerationSoftDelete
	mock.lockModerationSoftDelete.RUnlock()
	return calls
}

func (mock *contentRemoverMock) ModerationSoftDeleteCard(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, reason string) error {
	if mock.ModerationSoftDeleteCardFunc == nil {
		panic("contentRemoverMock.ModerationSoftDeleteCardFunc: method is nil but contentRemover.ModerationSoftDeleteCard was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
		CardID      uuid.UUID
		Reason      string
	}{Ctx: ctx, PublishedID: publishedID, CardID: cardID, Reason: reason}
	mock.lockModerationSoftDeleteCard.Lock()
	mock.calls.ModerationSoftDeleteCard = append(mock.calls.ModerationSoftDeleteCard, callInfo)
	mock.lockModerationSoftDeleteCard.Unlock()
	return mock.ModerationSoftDeleteCardFunc(ctx, publishedID, cardID, reason)
}

func (mock *contentRemoverMock) ModerationSoftDeleteCardCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
	CardID      uuid.UUID
	Reason      string
} {
	mock.lockModerationSoftDeleteCard.RLock()
	calls := mock.calls.ModerationSoftDeleteCard
	mock.lockModerationSoftDeleteCard.RUnlock()
	return calls
}
