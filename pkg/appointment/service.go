package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
)

// AnimalProvider resolves the animal a booking refers to.
type AnimalProvider interface {
	GetAnimal(ctx context.Context, id int) (animal.Animal, error)
}

// VetProvider resolves the veterinarian a booking refers to.
type VetProvider interface {
	GetVet(ctx context.Context, id int) (vet.Veterinarian, error)
}

type Service interface {
	Book(ctx context.Context, a Appointment) (Appointment, error)
	Reschedule(ctx context.Context, a Appointment) (Appointment, error)
	GetAppointment(ctx context.Context, id int) (Appointment, error)
	GetAllAppointments(ctx context.Context) ([]Appointment, error)
	GetAppointmentsByVet(ctx context.Context, vetId int) ([]Appointment, error)
	GetCurrentClientAppointments(ctx context.Context) ([]Appointment, error)
	ChangeStatus(ctx context.Context, id int, status Status) (Appointment, error)
	DeleteAppointment(ctx context.Context, id int) error
	GetSummary(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	repo    Repository
	animals AnimalProvider
	vets    VetProvider
}

func NewService(repo Repository, animals AnimalProvider, vets VetProvider) *ServiceImpl {
	return &ServiceImpl{repo: repo, animals: animals, vets: vets}
}

// Book validates and persists a new appointment. The referenced animal and
// veterinarian must exist; the veterinarian must be free at the requested
// instant (see checkConflict).
func (s *ServiceImpl) Book(ctx context.Context, a Appointment) (Appointment, error) {
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}

	if err := s.resolveReferences(ctx, a); err != nil {
		return Appointment{}, err
	}
	if err := s.checkConflict(ctx, a.VeterinarianId, a.Date, 0); err != nil {
		return Appointment{}, err
	}

	id, err := s.repo.StoreAppointment(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	return s.repo.GetAppointment(ctx, id)
}

// Reschedule updates an existing appointment, re-running the conflict check
// with the appointment's own id excluded so it does not collide with itself.
func (s *ServiceImpl) Reschedule(ctx context.Context, a Appointment) (Appointment, error) {
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}

	existing, err := s.repo.GetAppointment(ctx, a.Id)
	if err != nil {
		return Appointment{}, err
	}
	if a.Status == "" {
		a.Status = existing.Status
	}
	if !a.Status.Valid() {
		return Appointment{}, rest.ValidationErrors{"status": "Status inválido."}
	}

	if err := s.resolveReferences(ctx, a); err != nil {
		return Appointment{}, err
	}
	if err := s.checkConflict(ctx, a.VeterinarianId, a.Date, a.Id); err != nil {
		return Appointment{}, err
	}

	if err := s.repo.UpdateAppointment(ctx, a); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetAppointment(ctx, a.Id)
}

func (s *ServiceImpl) GetAppointment(ctx context.Context, id int) (Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *ServiceImpl) GetAllAppointments(ctx context.Context) ([]Appointment, error) {
	return s.repo.GetAllAppointments(ctx)
}

func (s *ServiceImpl) GetAppointmentsByVet(ctx context.Context, vetId int) ([]Appointment, error) {
	return s.repo.GetAppointmentsByVet(ctx, vetId)
}

// GetCurrentClientAppointments lists appointments of the animals owned by the
// client bound to the authenticated account.
func (s *ServiceImpl) GetCurrentClientAppointments(ctx context.Context) ([]Appointment, error) {
	ownerId, err := client.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAppointmentsByOwner(ctx, ownerId)
}

func (s *ServiceImpl) ChangeStatus(ctx context.Context, id int, status Status) (Appointment, error) {
	if !status.Valid() {
		return Appointment{}, rest.ValidationErrors{"status": "Status inválido."}
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetAppointment(ctx, id)
}

func (s *ServiceImpl) DeleteAppointment(ctx context.Context, id int) error {
	return s.repo.DeleteAppointment(ctx, id)
}

func (s *ServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	return s.repo.CountByStatus(ctx)
}

// resolveReferences rejects bookings pointing at records that do not exist.
// Note the asymmetry with the calendar feed, which silently renders an
// all-available week for an unknown veterinarian id.
func (s *ServiceImpl) resolveReferences(ctx context.Context, a Appointment) error {
	if _, err := s.animals.GetAnimal(ctx, a.AnimalId); err != nil {
		if errors.Is(err, animal.ErrAnimalNotFound) {
			return err
		}
		return fmt.Errorf("failed to resolve animal: %w", err)
	}
	if a.VeterinarianId != nil {
		if _, err := s.vets.GetVet(ctx, *a.VeterinarianId); err != nil {
			if errors.Is(err, vet.ErrVetNotFound) {
				return err
			}
			return fmt.Errorf("failed to resolve veterinarian: %w", err)
		}
	}
	return nil
}

// checkConflict enforces the double-booking rule: a veterinarian cannot have
// two appointments at the same exact instant. An unassigned appointment
// (nil veterinarian) never conflicts. Equality is exact; two bookings one
// second apart do not conflict here. This pre-check gives the caller a clean
// error; the unique index on (veterinario_id, data) is what makes the rule
// hold under concurrent requests.
func (s *ServiceImpl) checkConflict(ctx context.Context, vetId *int, at time.Time, excludeId int) error {
	if vetId == nil {
		return nil
	}
	count, err := s.repo.CountConflicting(ctx, *vetId, at, excludeId)
	if err != nil {
		return fmt.Errorf("failed to check for conflicts: %w", err)
	}
	if count > 0 {
		return &DoubleBookedError{VeterinarianId: *vetId, Timestamp: at}
	}
	return nil
}

func validateAppointment(a Appointment) error {
	errs := rest.ValidationErrors{}
	if a.AnimalId == 0 {
		errs["animal"] = "Este campo é obrigatório."
	}
	if a.Date.IsZero() {
		errs["data"] = "Este campo é obrigatório."
	}
	if a.Reason == "" {
		errs["motivo"] = "Este campo é obrigatório."
	}
	if a.Status != "" && !a.Status.Valid() {
		errs["status"] = "Status inválido."
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
