package publication

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ deckRepo = &deckRepoMock{}

type deckRepoMock struct {
	ClearPublishedRefFunc        func(ctx context.Context, publishedID uuid.UUID) (int64, error)
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error)
	SoftDeleteCardInReplicasFunc func(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, l domain.Lifecycle) (int64, error)
	UpdateFunc                   func(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)

	calls struct {
		ClearPublishedRef []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		SoftDeleteCardInReplicas []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
			CardID      uuid.UUID
			L           domain.Lifecycle
		}
		Update []struct {
			Ctx context.Context
			D   *domain.OwnerDeck
		}
	}
	lockClearPublishedRef        sync.RWMutex
	lockGetByID                  sync.RWMutex
	lockSoftDeleteCardInReplicas sync.RWMutex
	lockUpdate                   sync.RWMutex
}

func (mock *deckRepoMock) ClearPublishedRef(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	if mock.ClearPublishedRefFunc == nil {
		panic("deckRepoMock.ClearPublishedRefFunc: method is nil but deckRepo.ClearPublishedRef was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
	}{Ctx: ctx, PublishedID: publishedID}
	mock.lockClearPublishedRef.Lock()
	mock.calls.ClearPublishedRef = append(mock.calls.ClearPublishedRef, callInfo)
	mock.lockClearPublishedRef.Unlock()
	return mock.ClearPublishedRefFunc(ctx, publishedID)
}

func (mock *deckRepoMock) ClearPublishedRefCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
} {
	mock.lockClearPublishedRef.RLock()
	calls := mock.calls.ClearPublishedRef
	mock.lockClearPublishedRef.RUnlock()
	return calls
}

func (mock *deckRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error) {
	if mock.GetByIDFunc == nil {
		panic("deckRepoMock.GetByIDFunc: method is nil but deckRepo.GetByID was just called")
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

func (mock *deckRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *deckRepoMock) SoftDeleteCardInReplicas(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, l domain.Lifecycle) (int64, error) {
	if mock.SoftDeleteCardInReplicasFunc == nil {
		panic("deckRepoMock.SoftDeleteCardInReplicasFunc: method is nil but deckRepo.SoftDeleteCardInReplicas was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
		CardID      uuid.UUID
		L           domain.Lifecycle
	}{Ctx: ctx, PublishedID: publishedID, CardID: cardID, L: l}
	mock.lockSoftDeleteCardInReplicas.Lock()
	mock.calls.SoftDeleteCardInReplicas = append(mock.calls.SoftDeleteCardInReplicas, callInfo)
	mock.lockSoftDeleteCardInReplicas.Unlock()
	return mock.SoftDeleteCardInReplicasFunc(ctx, publishedID, cardID, l)
}

func (mock *deckRepoMock) SoftDeleteCardInReplicasCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
	CardID      uuid.UUID
	L           domain.Lifecycle
} {
	mock.lockSoftDeleteCardInReplicas.RLock()
	calls := mock.calls.SoftDeleteCardInReplicas
	mock.lockSoftDeleteCardInReplicas.RUnlock()
	return calls
}

func (mock *deckRepoMock) Update(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	if mock.UpdateFunc == nil {
		panic("deckRepoMock.UpdateFunc: method is nil but deckRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   *domain.OwnerDeck
	}{Ctx: ctx, D: d}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *deckRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	D   *domain.OwnerDeck
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
