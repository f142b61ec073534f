package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
)

type Service interface {
	CreateClient(ctx context.Context, c Client) (Client, error)
	GetClient(ctx context.Context, id int) (Client, error)
	FindByTaxId(ctx context.Context, taxId string) (Client, error)
	GetClientByAccountUid(ctx context.Context, accountUid string) (Client, error)
	GetAllClients(ctx context.Context) ([]Client, error)
	UpdateClient(ctx context.Context, c Client) (Client, error)
	DeleteClient(ctx context.Context, id int) error
	GetCurrentClient(ctx context.Context) (Client, error)
}

var taxIdPattern = regexp.MustCompile(`^\d{11}$`)

type ServiceImpl struct {
	repo Repo
}

func NewClientService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateClient(ctx context.Context, c Client) (Client, error) {
	if err := validateClient(c); err != nil {
		return Client{}, err
	}
	id, err := s.repo.CreateClient(ctx, c)
	if err != nil {
		return Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	c.Id = id
	return c, nil
}

func (s *ServiceImpl) GetClient(ctx context.Context, id int) (Client, error) {
	return s.repo.GetClient(ctx, id)
}

// FindByTaxId resolves a client by CPF, the lookup key the booking desk uses.
func (s *ServiceImpl) FindByTaxId(ctx context.Context, taxId string) (Client, error) {
	return s.repo.GetClientByTaxId(ctx, taxId)
}

func (s *ServiceImpl) GetClientByAccountUid(ctx context.Context, accountUid string) (Client, error) {
	return s.repo.GetClientByAccountUid(ctx, accountUid)
}

func (s *ServiceImpl) GetAllClients(ctx context.Context) ([]Client, error) {
	return s.repo.GetAllClients(ctx)
}

func (s *ServiceImpl) UpdateClient(ctx context.Context, c Client) (Client, error) {
	if err := validateClient(c); err != nil {
		return Client{}, err
	}
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *ServiceImpl) DeleteClient(ctx context.Context, id int) error {
	return s.repo.DeleteClient(ctx, id)
}

// GetCurrentClient returns the client record bound to the authenticated
// account on the request context.
func (s *ServiceImpl) GetCurrentClient(ctx context.Context) (Client, error) {
	id, err := CurrentId(ctx)
	if err != nil {
		return Client{}, err
	}
	return s.repo.GetClient(ctx, id)
}

func validateClient(c Client) error {
	errs := rest.ValidationErrors{}
	if c.Name == "" {
		errs["nome"] = "Este campo é obrigatório."
	}
	if c.TaxId != "" && !taxIdPattern.MatchString(c.TaxId) {
		errs["cpf"] = "CPF deve conter 11 dígitos."
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
