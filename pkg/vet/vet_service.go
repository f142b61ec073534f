package vet

import (
	"context"
	"fmt"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
)

type Service interface {
	CreateVet(ctx context.Context, v Veterinarian) (Veterinarian, error)
	GetVet(ctx context.Context, id int) (Veterinarian, error)
	GetAllVets(ctx context.Context) ([]Veterinarian, error)
	UpdateVet(ctx context.Context, v Veterinarian) (Veterinarian, error)
	DeleteVet(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewVetService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateVet(ctx context.Context, v Veterinarian) (Veterinarian, error) {
	if v.Name == "" {
		return Veterinarian{}, rest.ValidationErrors{"nome": "Este campo é obrigatório."}
	}
	id, err := s.repo.CreateVet(ctx, v)
	if err != nil {
		return Veterinarian{}, fmt.Errorf("failed to create veterinarian: %w", err)
	}
	v.Id = id
	return v, nil
}

func (s *ServiceImpl) GetVet(ctx context.Context, id int) (Veterinarian, error) {
	return s.repo.GetVet(ctx, id)
}

func (s *ServiceImpl) GetAllVets(ctx context.Context) ([]Veterinarian, error) {
	return s.repo.GetAllVets(ctx)
}

func (s *ServiceImpl) UpdateVet(ctx context.Context, v Veterinarian) (Veterinarian, error) {
	if v.Name == "" {
		return Veterinarian{}, rest.ValidationErrors{"nome": "Este campo é obrigatório."}
	}
	if err := s.repo.UpdateVet(ctx, v); err != nil {
		return Veterinarian{}, err
	}
	return v, nil
}

func (s *ServiceImpl) DeleteVet(ctx context.Context, id int) error {
	return s.repo.DeleteVet(ctx, id)
}
