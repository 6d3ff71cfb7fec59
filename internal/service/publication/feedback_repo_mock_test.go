package publication

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ feedbackRepo = &feedbackRepoMock{}

type feedbackRepoMock struct {
	DeleteByPublishedIDFunc func(ctx context.Context, publishedID uuid.UUID) (int64, error)
	GetCommentFunc          func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	SetCommentLifecycleFunc func(ctx context.Context, id uuid.UUID, l domain.Lifecycle) error

	calls struct {
		DeleteByPublishedID []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
		}
		GetComment []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		SetCommentLifecycle []struct {
			Ctx context.Context
			Id  uuid.UUID
			L   domain.Lifecycle
		}
	}
	lockDeleteByPublishedID sync.RWMutex
	lockGetComment          sync.RWMutex
	lockSetCommentLifecycle sync.RWMutex
}

func (mock *feedbackRepoMock) DeleteByPublishedID(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	if mock.DeleteByPublishedIDFunc == nil {
		panic("feedbackRepoMock.DeleteByPublishedIDFunc: method is nil but feedbackRepo.DeleteByPublishedID was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
	}{Ctx: ctx, PublishedID: publishedID}
	mock.lockDeleteByPublishedID.Lock()
	mock.calls.DeleteByPublishedID = append(mock.calls.DeleteByPublishedID, callInfo)
	mock.lockDeleteByPublishedID.Unlock()
	return mock.DeleteByPublishedIDFunc(ctx, publishedID)
}

func (mock *feedbackRepoMock) DeleteByPublishedIDCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
} {
	mock.lockDeleteByPublishedID.RLock()
	calls := mock.calls.DeleteByPublishedID
	mock.lockDeleteByPublishedID.RUnlock()
	return calls
}

func (mock *feedbackRepoMock) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if mock.GetCommentFunc == nil {
		panic("feedbackRepoMock.GetCommentFunc: method is nil but feedbackRepo.GetComment was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetComment.Lock()
	mock.calls.GetComment = append(mock.calls.GetComment, callInfo)
	mock.lockGetComment.Unlock()
	return mock.GetCommentFunc(ctx, id)
}

func (mock *feedbackRepoMock) GetCommentCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetComment.RLock()
	calls := mock.calls.GetComment
	mock.lockGetComment.RUnlock()
	return calls
}

func (mock *feedbackRepoMock) SetCommentLifecycle(ctx context.Context, id uuid.UUID, l domain.Lifecycle) error {
	if mock.SetCommentLifecycleFunc == nil {
		panic("feedbackRepoMock.SetCommentLifecycleFunc: method is nil but feedbackRepo.SetCommentLifecycle was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		L   domain.Lifecycle
	}{Ctx: ctx, Id: id, L: l}
	mock.lockSetCommentLifecycle.Lock()
	mock.calls.SetCommentLifecycle = append(mock.calls.SetCommentLifecycle, callInfo)
	mock.lockSetCommentLifecycle.Unlock()
	return mock.SetCommentLifecycleFunc(ctx, id, l)
}

func (mock *feedbackRepoMock) SetCommentLifecycleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	L   domain.Lifecycle
} {
	mock.lockSetCommentLifecycle.RLock()
	calls := mock.calls.SetCommentLifecycle
	mock.lockSetCommentLifecycle.RUnlock()
	return calls
}
