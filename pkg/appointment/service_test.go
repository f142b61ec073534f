package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animalProviderStub struct {
	animals map[int]animal.Animal
}

func (s *animalProviderStub) GetAnimal(ctx context.Context, id int) (animal.Animal, error) {
	a, ok := s.animals[id]
	if !ok {
		return animal.Animal{}, animal.ErrAnimalNotFound
	}
	return a, nil
}

type vetProviderStub struct {
	vets map[int]vet.Veterinarian
}

func (s *vetProviderStub) GetVet(ctx context.Context, id int) (vet.Veterinarian, error) {
	v, ok := s.vets[id]
	if !ok {
		return vet.Veterinarian{}, vet.ErrVetNotFound
	}
	return v, nil
}

func setupService() (*ServiceImpl, *RepositoryStub) {
	repo := NewRepositoryStub()
	animals := &animalProviderStub{animals: map[int]animal.Animal{
		1: {Id: 1, Name: "Rex", Species: animal.SpeciesDog, OwnerId: 1},
		2: {Id: 2, Name: "Mimi", Species: animal.SpeciesCat, OwnerId: 2},
	}}
	vets := &vetProviderStub{vets: map[int]vet.Veterinarian{
		1: {Id: 1, Name: "Dra. Ana", Crmv: "SP-12345"},
		2: {Id: 2, Name: "Dr. João", Crmv: "SP-67890"},
	}}
	return NewService(repo, animals, vets), repo
}

func newBooking(animalId int, vetId *int, at time.Time) Appointment {
	return Appointment{
		AnimalId:       animalId,
		VeterinarianId: vetId,
		Date:           at,
		Reason:         "Consulta de rotina",
	}
}

func intPtr(v int) *int {
	return &v
}

func TestBook(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	booked, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))

	require.NoError(t, err)
	assert.NotZero(t, booked.Id)
	assert.Equal(t, StatusScheduled, booked.Status)
	assert.True(t, booked.Date.Equal(at))
}

func TestBook_SameVetSameInstantRejected(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))
	require.NoError(t, err)

	_, err = service.Book(context.Background(), newBooking(2, intPtr(1), at))

	var conflict *DoubleBookedError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.VeterinarianId)
	assert.True(t, conflict.Timestamp.Equal(at))
}

func TestBook_OneSecondApartAllowed(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))
	require.NoError(t, err)

	// The rule is exact-instant equality, not an interval overlap.
	_, err = service.Book(context.Background(), newBooking(2, intPtr(1), at.Add(time.Second)))
	assert.NoError(t, err)
}

func TestBook_DifferentVetsSameInstantAllowed(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))
	require.NoError(t, err)

	_, err = service.Book(context.Background(), newBooking(2, intPtr(2), at))
	assert.NoError(t, err)
}

func TestBook_UnassignedNeverConflicts(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, nil, at))
	require.NoError(t, err)

	_, err = service.Book(context.Background(), newBooking(2, nil, at))
	assert.NoError(t, err)
}

func TestBook_UnknownVetRejected(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, intPtr(999), at))

	assert.True(t, errors.Is(err, vet.ErrVetNotFound))
}

func TestBook_UnknownAnimalRejected(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(999, intPtr(1), at))

	assert.True(t, errors.Is(err, animal.ErrAnimalNotFound))
}

func TestBook_MissingFields(t *testing.T) {
	service, _ := setupService()

	_, err := service.Book(context.Background(), Appointment{})

	var errs rest.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "animal")
	assert.Contains(t, errs, "data")
	assert.Contains(t, errs, "motivo")
}

func TestBook_InvalidStatus(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	booking := newBooking(1, intPtr(1), at)
	booking.Status = "pendente"
	_, err := service.Book(context.Background(), booking)

	var errs rest.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "status")
}

func TestReschedule_ExcludesOwnId(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	booked, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))
	require.NoError(t, err)

	// Saving the appointment without moving it must not collide with itself.
	update := newBooking(1, intPtr(1), at)
	update.Id = booked.Id
	update.Notes = "Trazer exames anteriores"
	rescheduled, err := service.Reschedule(context.Background(), update)

	require.NoError(t, err)
	assert.Equal(t, "Trazer exames anteriores", rescheduled.Notes)
	assert.Equal(t, StatusScheduled, rescheduled.Status)
}

func TestReschedule_IntoTakenSlotRejected(t *testing.T) {
	service, _ := setupService()
	first := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 9, 9, 11, 0, 0, 0, time.UTC)

	_, err := service.Book(context.Background(), newBooking(1, intPtr(1), first))
	require.NoError(t, err)
	booked, err := service.Book(context.Background(), newBooking(2, intPtr(1), second))
	require.NoError(t, err)

	update := newBooking(2, intPtr(1), first)
	update.Id = booked.Id
	_, err = service.Reschedule(context.Background(), update)

	var conflict *DoubleBookedError
	assert.ErrorAs(t, err, &conflict)
}

func TestReschedule_NotFound(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	update := newBooking(1, intPtr(1), at)
	update.Id = 404
	_, err := service.Reschedule(context.Background(), update)

	assert.True(t, errors.Is(err, ErrAppointmentNotFound))
}

func TestChangeStatus(t *testing.T) {
	service, _ := setupService()
	at := time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)

	booked, err := service.Book(context.Background(), newBooking(1, intPtr(1), at))
	require.NoError(t, err)

	updated, err := service.ChangeStatus(context.Background(), booked.Id, StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestChangeStatus_Invalid(t *testing.T) {
	service, _ := setupService()

	_, err := service.ChangeStatus(context.Background(), 1, "arquivada")

	var errs rest.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "status")
}

func TestGetSummary(t *testing.T) {
	service, _ := setupService()
	base := time.Date(2025, 9, 9, 8, 0, 0, 0, time.UTC)

	first, err := service.Book(context.Background(), newBooking(1, intPtr(1), base))
	require.NoError(t, err)
	_, err = service.Book(context.Background(), newBooking(2, intPtr(1), base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = service.Book(context.Background(), newBooking(1, nil, base.Add(2*time.Hour)))
	require.NoError(t, err)

	_, err = service.ChangeStatus(context.Background(), first.Id, StatusCancelled)
	require.NoError(t, err)

	summary, err := service.GetSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scheduled)
	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, 1, summary.Cancelled)
	assert.Equal(t, 3, summary.Total)
}
