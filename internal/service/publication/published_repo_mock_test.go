package publication

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ publishedRepo = &publishedRepoMock{}

type publishedRepoMock struct {
	CreateFunc           func(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	ListPublicFunc       func(ctx context.Context, filter domain.PublishedListFilter) ([]domain.PublishedDeck, int, error)
	ReplaceCardsFunc     func(ctx context.Context, publishedID uuid.UUID, cards []domain.Card) error
	SetCardLifecycleFunc func(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, l domain.Lifecycle) error
	UpdateFunc           func(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.PublishedDeck
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListPublic []struct {
			Ctx    context.Context
			Filter domain.PublishedListFilter
		}
		ReplaceCards []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
			Cards       []domain.Card
		}
		SetCardLifecycle []struct {
			Ctx         context.Context
			PublishedID uuid.UUID
			CardID      uuid.UUID
			L           domain.Lifecycle
		}
		Update []struct {
			Ctx context.Context
			P   *domain.PublishedDeck
		}
	}
	lockCreate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockListPublic       sync.RWMutex
	lockReplaceCards     sync.RWMutex
	lockSetCardLifecycle sync.RWMutex
	lockUpdate           sync.RWMutex
}

func (mock *publishedRepoMock) Create(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	if mock.CreateFunc == nil {
		panic("publishedRepoMock.CreateFunc: method is nil but publishedRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.PublishedDeck
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *publishedRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.PublishedDeck
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *publishedRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("publishedRepoMock.DeleteFunc: method is nil but publishedRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *publishedRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
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

func (mock *publishedRepoMock) ListPublic(ctx context.Context, filter domain.PublishedListFilter) ([]domain.PublishedDeck, int, error) {
	if mock.ListPublicFunc == nil {
		panic("publishedRepoMock.ListPublicFunc: method is nil but publishedRepo.ListPublic was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.PublishedListFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListPublic.Lock()
	mock.calls.ListPublic = append(mock.calls.ListPublic, callInfo)
	mock.lockListPublic.Unlock()
	return mock.ListPublicFunc(ctx, filter)
}

func (mock *publishedRepoMock) ListPublicCalls() []struct {
	Ctx    context.Context
	Filter domain.PublishedListFilter
} {
	mock.lockListPublic.RLock()
	calls := mock.calls.ListPublic
	mock.lockListPublic.RUnlock()
	return calls
}

func (mock *publishedRepoMock) ReplaceCards(ctx context.Context, publishedID uuid.UUID, cards []domain.Card) error {
	if mock.ReplaceCardsFunc == nil {
		panic("publishedRepoMock.ReplaceCardsFunc: method is nil but publishedRepo.ReplaceCards was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
		Cards       []domain.Card
	}{Ctx: ctx, PublishedID: publishedID, Cards: cards}
	mock.lockReplaceCards.Lock()
	mock.calls.ReplaceCards = append(mock.calls.ReplaceCards, callInfo)
	mock.lockReplaceCards.Unlock()
	return mock.ReplaceCardsFunc(ctx, publishedID, cards)
}

func (mock *publishedRepoMock) ReplaceCardsCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
	Cards       []domain.Card
} {
	mock.lockReplaceCards.RLock()
	calls := mock.calls.ReplaceCards
	mock.lockReplaceCards.RUnlock()
	return calls
}

func (mock *publishedRepoMock) SetCardLifecycle(ctx context.Context, publishedID uuid.UUID, cardID uuid.UUID, l domain.Lifecycle) error {
	if mock.SetCardLifecycleFunc == nil {
		panic("publishedRepoMock.SetCardLifecycleFunc: method is nil but publishedRepo.SetCardLifecycle was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PublishedID uuid.UUID
		CardID      uuid.UUID
		L           domain.Lifecycle
	}{Ctx: ctx, PublishedID: publishedID, CardID: cardID, L: l}
	mock.lockSetCardLifecycle.Lock()
	mock.calls.SetCardLifecycle = append(mock.calls.SetCardLifecycle, callInfo)
	mock.lockSetCardLifecycle.Unlock()
	return mock.SetCardLifecycleFunc(ctx, publishedID, cardID, l)
}

func (mock *publishedRepoMock) SetCardLifecycleCalls() []struct {
	Ctx         context.Context
	PublishedID uuid.UUID
	CardID      uuid.UUID
	L           domain.Lifecycle
} {
	mock.lockSetCardLifecycle.RLock()
	calls := mock.calls.SetCardLifecycle
	mock.lockSetCardLifecycle.RUnlock()
	return calls
}

func (mock *publishedRepoMock) Update(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	if mock.UpdateFunc == nil {
		panic("publishedRepoMock.UpdateFunc: method is nil but publishedRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.PublishedDeck
	}{Ctx: ctx, P: p}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *publishedRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	P   *domain.PublishedDeck
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
