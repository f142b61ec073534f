package animal

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
)

// OwnerProvider resolves the owning client when an animal is registered
// against a CPF typed in at the desk.
type OwnerProvider interface {
	FindByTaxId(ctx context.Context, taxId string) (client.Client, error)
}

type Service interface {
	RegisterAnimal(ctx context.Context, a Animal, ownerTaxId string) (Animal, error)
	GetAnimal(ctx context.Context, id int) (Animal, error)
	GetAllAnimals(ctx context.Context) ([]Animal, error)
	GetAnimalsOf(ctx context.Context, ownerId int) ([]Animal, error)
	GetCurrentClientAnimals(ctx context.Context) ([]Animal, error)
	UpdateAnimal(ctx context.Context, a Animal) (Animal, error)
	DeleteAnimal(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo   Repo
	owners OwnerProvider
}

func NewAnimalService(repo Repo, owners OwnerProvider) *ServiceImpl {
	return &ServiceImpl{repo: repo, owners: owners}
}

// RegisterAnimal stores a new animal under the client identified by
// ownerTaxId. A lookup miss is reported as client.ErrClientNotFound so the
// caller can reject the request instead of creating an orphan record.
func (s *ServiceImpl) RegisterAnimal(ctx context.Context, a Animal, ownerTaxId string) (Animal, error) {
	if err := validateAnimal(a); err != nil {
		return Animal{}, err
	}

	owner, err := s.owners.FindByTaxId(ctx, ownerTaxId)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return Animal{}, err
		}
		return Animal{}, fmt.Errorf("failed to resolve owner: %w", err)
	}
	a.OwnerId = owner.Id
	a.OwnerName = owner.Name
	a.OwnerTaxId = owner.TaxId

	id, err := s.repo.CreateAnimal(ctx, a)
	if err != nil {
		return Animal{}, fmt.Errorf("failed to create animal: %w", err)
	}
	a.Id = id
	return a, nil
}

func (s *ServiceImpl) GetAnimal(ctx context.Context, id int) (Animal, error) {
	return s.repo.GetAnimal(ctx, id)
}

func (s *ServiceImpl) GetAllAnimals(ctx context.Context) ([]Animal, error) {
	return s.repo.GetAllAnimals(ctx)
}

func (s *ServiceImpl) GetAnimalsOf(ctx context.Context, ownerId int) ([]Animal, error) {
	return s.repo.GetAnimalsByOwner(ctx, ownerId)
}

// GetCurrentClientAnimals lists the pets of the client bound to the
// authenticated account on the context.
func (s *ServiceImpl) GetCurrentClientAnimals(ctx context.Context) ([]Animal, error) {
	ownerId, err := client.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAnimalsByOwner(ctx, ownerId)
}

func (s *ServiceImpl) UpdateAnimal(ctx context.Context, a Animal) (Animal, error) {
	if err := validateAnimal(a); err != nil {
		return Animal{}, err
	}
	if err := s.repo.UpdateAnimal(ctx, a); err != nil {
		return Animal{}, err
	}
	return s.repo.GetAnimal(ctx, a.Id)
}

func (s *ServiceImpl) DeleteAnimal(ctx context.Context, id int) error {
	return s.repo.DeleteAnimal(ctx, id)
}

func validateAnimal(a Animal) error {
	errs := rest.ValidationErrors{}
	if a.Name == "" {
		errs["nome"] = "Este campo é obrigatório."
	}
	if !a.Species.Valid() {
		errs["especie"] = "Espécie inválida."
	}
	if a.Age != nil && *a.Age < 0 {
		errs["idade"] = "Idade não pode ser negativa."
	}
	if a.Weight != nil && *a.Weight < 0 {
		errs["peso"] = "Peso não pode ser negativo."
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
