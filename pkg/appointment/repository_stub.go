package appointment

import (
	"context"
	"sync"
	"time"
)

// RepositoryStub is an in-memory Repository for tests. It enforces the
// (veterinarian, timestamp) uniqueness the real schema enforces with its
// partial unique index.
type RepositoryStub struct {
	mu           sync.RWMutex
	appointments map[int]Appointment
	nextId       int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		appointments: make(map[int]Appointment),
		nextId:       1,
	}
}

func (r *RepositoryStub) StoreAppointment(ctx context.Context, a Appointment) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.uniqueViolated(a, 0); err != nil {
		return 0, err
	}

	a.Id = r.nextId
	r.appointments[a.Id] = a
	r.nextId++
	return a.Id, nil
}

func (r *RepositoryStub) GetAppointment(ctx context.Context, id int) (Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

func (r *RepositoryStub) GetAllAppointments(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.collect(func(a Appointment) bool { return true })
	// Newest first, matching the repository ordering.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[i].Date.Before(result[j].Date) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *RepositoryStub) GetAppointmentsByVet(ctx context.Context, vetId int) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(a Appointment) bool {
		return a.VeterinarianId != nil && *a.VeterinarianId == vetId
	}), nil
}

func (r *RepositoryStub) GetAppointmentsByOwner(ctx context.Context, ownerId int) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(a Appointment) bool {
		return a.Animal.OwnerId == ownerId
	}), nil
}

func (r *RepositoryStub) CountConflicting(ctx context.Context, vetId int, at time.Time, excludeId int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, a := range r.appointments {
		if a.Id == excludeId {
			continue
		}
		if a.VeterinarianId != nil && *a.VeterinarianId == vetId && a.Date.Equal(at) {
			count++
		}
	}
	return count, nil
}

func (r *RepositoryStub) UpdateAppointment(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[a.Id]; !ok {
		return ErrAppointmentNotFound
	}
	if err := r.uniqueViolated(a, a.Id); err != nil {
		return err
	}
	r.appointments[a.Id] = a
	return nil
}

func (r *RepositoryStub) UpdateStatus(ctx context.Context, id int, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	a.Status = status
	r.appointments[id] = a
	return nil
}

func (r *RepositoryStub) DeleteAppointment(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *RepositoryStub) CountByStatus(ctx context.Context) (Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summary Summary
	for _, a := range r.appointments {
		switch a.Status {
		case StatusScheduled:
			summary.Scheduled++
		case StatusCompleted:
			summary.Completed++
		case StatusCancelled:
			summary.Cancelled++
		}
		summary.Total++
	}
	return summary, nil
}

func (r *RepositoryStub) collect(keep func(Appointment) bool) []Appointment {
	result := make([]Appointment, 0, len(r.appointments))
	for id := 1; id < r.nextId; id++ {
		if a, ok := r.appointments[id]; ok && keep(a) {
			result = append(result, a)
		}
	}
	return result
}

func (r *RepositoryStub) uniqueViolated(candidate Appointment, excludeId int) error {
	if candidate.VeterinarianId == nil {
		return nil
	}
	for _, a := range r.appointments {
		if a.Id == excludeId {
			continue
		}
		if a.VeterinarianId != nil && *a.VeterinarianId == *candidate.VeterinarianId && a.Date.Equal(candidate.Date) {
			return &DoubleBookedError{VeterinarianId: *candidate.VeterinarianId, Timestamp: candidate.Date}
		}
	}
	return nil
}
