package animal

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ownerProviderStub struct {
	owners map[string]client.Client
}

func (s *ownerProviderStub) FindByTaxId(ctx context.Context, taxId string) (client.Client, error) {
	owner, ok := s.owners[taxId]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return owner, nil
}

func setupService() *ServiceImpl {
	owners := &ownerProviderStub{owners: map[string]client.Client{
		"12345678901": {Id: 1, Name: "Maria Silva", TaxId: "12345678901"},
	}}
	return NewAnimalService(NewStubAnimalRepo(), owners)
}

func TestRegisterAnimal(t *testing.T) {
	service := setupService()

	registered, err := service.RegisterAnimal(context.Background(), Animal{
		Name:    "Rex",
		Species: SpeciesDog,
		Breed:   "Vira-lata",
	}, "12345678901")

	require.NoError(t, err)
	assert.Equal(t, 1, registered.Id)
	assert.Equal(t, 1, registered.OwnerId)
	assert.Equal(t, "Maria Silva", registered.OwnerName)
	assert.Equal(t, "12345678901", registered.OwnerTaxId)
}

func TestRegisterAnimal_UnknownOwner(t *testing.T) {
	service := setupService()

	_, err := service.RegisterAnimal(context.Background(), Animal{
		Name:    "Rex",
		Species: SpeciesDog,
	}, "00000000000")

	assert.True(t, errors.Is(err, client.ErrClientNotFound))
}

func TestRegisterAnimal_InvalidSpecies(t *testing.T) {
	service := setupService()

	_, err := service.RegisterAnimal(context.Background(), Animal{
		Name:    "Rex",
		Species: "X",
	}, "12345678901")

	var errs rest.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Espécie inválida.", errs["especie"])
}

func TestRegisterAnimal_NegativeAgeAndWeight(t *testing.T) {
	service := setupService()
	age := -1
	weight := -2.5

	_, err := service.RegisterAnimal(context.Background(), Animal{
		Name:    "Rex",
		Species: SpeciesDog,
		Age:     &age,
		Weight:  &weight,
	}, "12345678901")

	var errs rest.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "idade")
	assert.Contains(t, errs, "peso")
}

func TestUpdateAnimal_PreservesOwner(t *testing.T) {
	service := setupService()
	registered, err := service.RegisterAnimal(context.Background(), Animal{
		Name:    "Rex",
		Species: SpeciesDog,
	}, "12345678901")
	require.NoError(t, err)

	updated, err := service.UpdateAnimal(context.Background(), Animal{
		Id:      registered.Id,
		Name:    "Rex Jr",
		Species: SpeciesDog,
	})

	require.NoError(t, err)
	assert.Equal(t, "Rex Jr", updated.Name)
	assert.Equal(t, 1, updated.OwnerId)
	assert.Equal(t, "Maria Silva", updated.OwnerName)
}

func TestGetCurrentClientAnimals(t *testing.T) {
	service := setupService()
	_, err := service.RegisterAnimal(context.Background(), Animal{Name: "Rex", Species: SpeciesDog}, "12345678901")
	require.NoError(t, err)
	_, err = service.RegisterAnimal(context.Background(), Animal{Name: "Mimi", Species: SpeciesCat}, "12345678901")
	require.NoError(t, err)

	ctx := client.WithClient(context.Background(), client.Client{Id: 1, Name: "Maria Silva"})
	animals, err := service.GetCurrentClientAnimals(ctx)

	require.NoError(t, err)
	require.Len(t, animals, 2)
	assert.Equal(t, "Rex", animals[0].Name)
	assert.Equal(t, "Mimi", animals[1].Name)
}

func TestGetCurrentClientAnimals_NoAccountBound(t *testing.T) {
	service := setupService()

	_, err := service.GetCurrentClientAnimals(context.Background())

	assert.True(t, errors.Is(err, client.ErrNoClient))
}

func TestSpeciesDisplayName(t *testing.T) {
	assert.Equal(t, "Cachorro", SpeciesDog.DisplayName())
	assert.Equal(t, "Gato", SpeciesCat.DisplayName())
	assert.Equal(t, "Outros", SpeciesOther.DisplayName())
	assert.Equal(t, "Desconhecido", Species("X").DisplayName())
}
