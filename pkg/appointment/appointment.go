package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// DoubleBookedError reports a booking rejected because the veterinarian
// already has an appointment at the exact same instant.
type DoubleBookedError struct {
	VeterinarianId int
	Timestamp      time.Time
}

func (e *DoubleBookedError) Error() string {
	return fmt.Sprintf("veterinarian %d is already booked at %s", e.VeterinarianId, e.Timestamp.Format(time.RFC3339))
}

// Status is the closed lifecycle set of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a consultation booked for an animal, optionally assigned to
// a veterinarian. The veterinarian reference is nullable: a consultation can
// be provisionally unassigned, and it survives the deletion of its
// veterinarian with a null reference. Animal and Veterinarian carry the
// eagerly loaded display records.
type Appointment struct {
	Id             int
	AnimalId       int
	VeterinarianId *int
	Date           time.Time
	Reason         string
	Notes          string
	Status         Status

	Animal       animal.Animal
	Veterinarian *vet.Veterinarian
}

// Summary holds appointment counts per status plus the total.
type Summary struct {
	Scheduled int
	Completed int
	Cancelled int
	Total     int
}
