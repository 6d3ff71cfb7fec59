package replica

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ publishedRepo = &publishedRepoMock{}

type publishedRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	IncrementDownloadsFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		IncrementDownloads []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID            sync.RWMutex
	lockIncrementDownloads sync.RWMutex
}

func (mock *publishedRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error) {
	if mock.GetByIDFunc == nil {
		panic("publishedRepoMock.GetByIDFunc: method is nil but publishedRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *publishedRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *publishedRepoMock) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	if mock.IncrementDownloadsFunc == nil {
		panic("publishedRepoMock.IncrementDownloadsFunc: method is nil but publishedRepo.IncrementDownloads was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockIncrementDownloads.Lock()
	mock.calls.IncrementDownloads = append(mock.calls.IncrementDownloads, callInfo)
	mock.lockIncrementDownloads.Unlock()
	return mock.IncrementDownloadsFunc(ctx, id)
}

func (mock *publishedRepoMock) IncrementDownloadsCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockIncrementDownloads.RLock()
	calls := mock.calls.IncrementDownloads
	mock.lockIncrementDownloads.RUnlock()
	return calls
}
