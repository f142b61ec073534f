package client

import (
	"context"
	"sync"
)

type StubClientRepo struct {
	mu      sync.RWMutex
	clients map[int]Client
	nextId  int
}

func NewStubClientRepo() *StubClientRepo {
	return &StubClientRepo{
		clients: make(map[int]Client),
		nextId:  1,
	}
}

func (r *StubClientRepo) CreateClient(ctx context.Context, c Client) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.Id = r.nextId
	r.clients[c.Id] = c
	r.nextId++
	return c.Id, nil
}

func (r *StubClientRepo) GetClient(ctx context.Context, id int) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

func (r *StubClientRepo) GetClientByTaxId(ctx context.Context, taxId string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.TaxId != "" && c.TaxId == taxId {
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

func (r *StubClientRepo) GetClientByAccountUid(ctx context.Context, accountUid string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.AccountUid != "" && c.AccountUid == accountUid {
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

func (r *StubClientRepo) GetAllClients(ctx context.Context) ([]Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Client, 0, len(r.clients))
	for id := 1; id < r.nextId; id++ {
		if c, ok := r.clients[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *StubClientRepo) UpdateClient(ctx context.Context, c Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.Id]; !ok {
		return ErrClientNotFound
	}
	r.clients[c.Id] = c
	return nil
}

func (r *StubClientRepo) DeleteClient(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}
