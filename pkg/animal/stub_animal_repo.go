package animal

import (
	"context"
	"sync"
)

type StubAnimalRepo struct {
	mu      sync.RWMutex
	animals map[int]Animal
	nextId  int
}

func NewStubAnimalRepo() *StubAnimalRepo {
	return &StubAnimalRepo{
		animals: make(map[int]Animal),
		nextId:  1,
	}
}

func (r *StubAnimalRepo) CreateAnimal(ctx context.Context, a Animal) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.Id = r.nextId
	r.animals[a.Id] = a
	r.nextId++
	return a.Id, nil
}

func (r *StubAnimalRepo) GetAnimal(ctx context.Context, id int) (Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.animals[id]
	if !ok {
		return Animal{}, ErrAnimalNotFound
	}
	return a, nil
}

func (r *StubAnimalRepo) GetAllAnimals(ctx context.Context) ([]Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Animal, 0, len(r.animals))
	for id := 1; id < r.nextId; id++ {
		if a, ok := r.animals[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *StubAnimalRepo) GetAnimalsByOwner(ctx context.Context, ownerId int) ([]Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Animal, 0, len(r.animals))
	for id := 1; id < r.nextId; id++ {
		if a, ok := r.animals[id]; ok && a.OwnerId == ownerId {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *StubAnimalRepo) UpdateAnimal(ctx context.Context, a Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.animals[a.Id]
	if !ok {
		return ErrAnimalNotFound
	}
	a.OwnerId = existing.OwnerId
	a.OwnerName = existing.OwnerName
	a.OwnerTaxId = existing.OwnerTaxId
	r.animals[a.Id] = a
	return nil
}

func (r *StubAnimalRepo) DeleteAnimal(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[id]; !ok {
		return ErrAnimalNotFound
	}
	delete(r.animals, id)
	return nil
}
