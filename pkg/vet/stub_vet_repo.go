package vet

import (
	"context"
	"sync"
)

type StubVetRepo struct {
	mu     sync.RWMutex
	vets   map[int]Veterinarian
	nextId int
}

func NewStubVetRepo() *StubVetRepo {
	return &StubVetRepo{
		vets:   make(map[int]Veterinarian),
		nextId: 1,
	}
}

func (r *StubVetRepo) CreateVet(ctx context.Context, v Veterinarian) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.Id = r.nextId
	r.vets[v.Id] = v
	r.nextId++
	return v.Id, nil
}

func (r *StubVetRepo) GetVet(ctx context.Context, id int) (Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vets[id]
	if !ok {
		return Veterinarian{}, ErrVetNotFound
	}
	return v, nil
}

func (r *StubVetRepo) GetAllVets(ctx context.Context) ([]Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Veterinarian, 0, len(r.vets))
	for id := 1; id < r.nextId; id++ {
		if v, ok := r.vets[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *StubVetRepo) UpdateVet(ctx context.Context, v Veterinarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vets[v.Id]; !ok {
		return ErrVetNotFound
	}
	r.vets[v.Id] = v
	return nil
}

func (r *StubVetRepo) DeleteVet(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vets[id]; !ok {
		return ErrVetNotFound
	}
	delete(r.vets, id)
	return nil
}
