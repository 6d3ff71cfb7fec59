package replica

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ deckRepo = &deckRepoMock{}

type deckRepoMock struct {
	CreateFunc       func(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)
	FindBySourceFunc func(ctx context.Context, ownerID uuid.UUID, publishedID uuid.UUID) (*domain.OwnerDeck, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error)
	ReplaceCardsFunc func(ctx context.Context, deckID uuid.UUID, cards []domain.Card) error
	SetCardFlagFunc  func(ctx context.Context, deckID uuid.UUID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error)
	UpdateFunc       func(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			D   *domain.OwnerDeck
		}
		FindBySource []struct {
			Ctx         context.Context
			OwnerID     uuid.UUID
			PublishedID uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ReplaceCards []struct {
			Ctx    context.Context
			DeckID uuid.UUID
			Cards  []domain.Card
		}
		SetCardFlag []struct {
			Ctx    context.Context
			DeckID uuid.UUID
			CardID uuid.UUID
			Flag   domain.CardFlag
			Value  bool
		}
		Update []struct {
			Ctx context.Context
			D   *domain.OwnerDeck
		}
	}
	lockCreate       sync.RWMutex
	lockFindBySource sync.RWMutex
	lockGetByID      sync.RWMutex
	lockReplaceCards sync.RWMutex
	lockSetCardFlag  sync.RWMutex
	lockUpdate       sync.RWMutex
}

func (mock *deckRepoMock) Create(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	if mock.CreateFunc == nil {
		panic("deckRepoMock.CreateFunc: method is nil but deckRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   *domain.OwnerDeck
	}{Ctx: ctx, D: d}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *deckRepoMock) CreateCalls() []struct {
	Ctx context.Context
	D   *domain.OwnerDeck
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *deckRepoMock) FindBySource(ctx context.Context, ownerID uuid.UUID, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	if mock.FindBySourceFunc == nil {
		panic("deckRepoMock.FindBySourceFunc: method is nil but deckRepo.FindBySource was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		OwnerID     uuid.UUID
		PublishedID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID, PublishedID: publishedID}
	mock.lockFindBySource.Lock()
	mock.calls.FindBySource = append(mock.calls.FindBySource, callInfo)
	mock.lockFindBySource.Unlock()
	return mock.FindBySourceFunc(ctx, ownerID, publishedID)
}

func (mock *deckRepoMock) FindBySourceCalls() []struct {
	Ctx         context.Context
	OwnerID     uuid.UUID
	PublishedID uuid.UUID
} {
	mock.lockFindBySource.RLock()
	calls := mock.calls.FindBySource
	mock.lockFindBySource.RUnlock()
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

func (mock *deckRepoMock) ReplaceCards(ctx context.Context, deckID uuid.UUID, cards []domain.Card) error {
	if mock.ReplaceCardsFunc == nil {
		panic("deckRepoMock.ReplaceCardsFunc: method is nil but deckRepo.ReplaceCards was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		DeckID uuid.UUID
		Cards  []domain.Card
	}{Ctx: ctx, DeckID: deckID, Cards: cards}
	mock.lockReplaceCards.Lock()
	mock.calls.ReplaceCards = append(mock.calls.ReplaceCards, callInfo)
	mock.lockReplaceCards.Unlock()
	return mock.ReplaceCardsFunc(ctx, deckID, cards)
}

func (mock *deckRepoMock) ReplaceCardsCalls() []struct {
	Ctx    context.Context
	DeckID uuid.UUID
	Cards  []domain.Card
} {
	mock.lockReplaceCards.RLock()
	calls := mock.calls.ReplaceCards
	mock.lockReplaceCards.RUnlock()
	return calls
}

func (mock *deckRepoMock) SetCardFlag(ctx context.Context, deckID uuid.UUID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error) {
	if mock.SetCardFlagFunc == nil {
		panic("deckRepoMock.SetCardFlagFunc: method is nil but deckRepo.SetCardFlag was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		DeckID uuid.UUID
		CardID uuid.UUID
		Flag   domain.CardFlag
		Value  bool
	}{Ctx: ctx, DeckID: deckID, CardID: cardID, Flag: flag, Value: value}
	mock.lockSetCardFlag.Lock()
	mock.calls.SetCardFlag = append(mock.calls.SetCardFlag, callInfo)
	mock.lockSetCardFlag.Unlock()
	return mock.SetCardFlagFunc(ctx, deckID, cardID, flag, value)
}

func (mock *deckRepoMock) SetCardFlagCalls() []struct {
	Ctx    context.Context
	DeckID uuid.UUID
	CardID uuid.UUID
	Flag   domain.CardFlag
	Value  bool
} {
	mock.lockSetCardFlag.RLock()
	calls := mock.calls.SetCardFlag
	mock.lockSetCardFlag.RUnlock()
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
