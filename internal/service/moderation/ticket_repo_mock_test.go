package moderation

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"sync"
)

var _ ticketRepo = &ticketRepoMock{}

type ticketRepoMock struct {
	AppendActionsFunc func(ctx context.Context, ticketID uuid.UUID, actions []domain.TicketAction) ([]domain.TicketAction, error)
	CreateFunc        func(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	ListFunc          func(ctx context.Context, filter domain.TicketListFilter) ([]domain.Ticket, int, error)
	ListActionsFunc   func(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error)
	UpdateFunc        func(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)

	calls struct {
		AppendActions []struct {
			Ctx      context.Context
			TicketID uuid.UUID
			Actions  []domain.TicketAction
		}
		Create []struct {
			Ctx context.Context
			T   *domain.Ticket
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.TicketListFilter
		}
		ListActions []struct {
			Ctx      context.Context
			TicketID uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			T   *domain.Ticket
		}
	}
	lockAppendActions sync.RWMutex
	lockCreate        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockListActions   sync.RWMutex
	lockUpdate        sync.RWMutex
}

func (mock *ticketRepoMock) AppendActions(ctx context.Context, ticketID uuid.UUID, actions []domain.TicketAction) ([]domain.TicketAction, error) {
	if mock.AppendActionsFunc == nil {
		panic("ticketRepoMock.AppendActionsFunc: method is nil but ticketRepo.AppendActions was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TicketID uuid.UUID
		Actions  []domain.TicketAction
	}{Ctx: ctx, TicketID: ticketID, Actions: actions}
	mock.lockAppendActions.Lock()
	mock.calls.AppendActions = append(mock.calls.AppendActions, callInfo)
	mock.lockAppendActions.Unlock()
	return mock.AppendActionsFunc(ctx, ticketID, actions)
}

func (mock *ticketRepoMock) AppendActionsCalls() []struct {
	Ctx      context.Context
	TicketID uuid.UUID
	Actions  []domain.TicketAction
} {
	mock.lockAppendActions.RLock()
	calls := mock.calls.AppendActions
	mock.lockAppendActions.RUnlock()
	return calls
}

func (mock *ticketRepoMock) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	if mock.CreateFunc == nil {
		panic("ticketRepoMock.CreateFunc: method is nil but ticketRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Ticket
	}{Ctx: ctx, T: t}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *ticketRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   *domain.Ticket
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *ticketRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	if mock.GetByIDFunc == nil {
		panic("ticketRepoMock.GetByIDFunc: method is nil but ticketRepo.GetByID was just called")
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

func (mock *ticketRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *ticketRepoMock) List(ctx context.Context, filter domain.TicketListFilter) ([]domain.Ticket, int, error) {
	if mock.ListFunc == nil {
		panic("ticketRepoMock.ListFunc: method is nil but ticketRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.TicketListFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *ticketRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.TicketListFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *ticketRepoMock) ListActions(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error) {
	if mock.ListActionsFunc == nil {
		panic("ticketRepoMock.ListActionsFunc: method is nil but ticketRepo.ListActions was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TicketID uuid.UUID
	}{Ctx: ctx, TicketID: ticketID}
	mock.lockListActions.Lock()
	mock.calls.ListActions = append(mock.calls.ListActions, callInfo)
	mock.lockListActions.Unlock()
	return mock.ListActionsFunc(ctx, ticketID)
}

func (mock *ticketRepoMock) ListActionsCalls() []struct {
	Ctx      context.Context
	TicketID uuid.UUID
} {
	mock.lockListActions.RLock()
	calls := mock.calls.ListActions
	mock.lockListActions.RUnlock()
	return calls
}

func (mock *ticketRepoMock) Update(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	if mock.UpdateFunc == nil {
		panic("ticketRepoMock.UpdateFunc: method is nil but ticketRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Ticket
	}{Ctx: ctx, T: t}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, t)
}

func (mock *ticketRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	T   *domain.Ticket
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
