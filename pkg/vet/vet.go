package vet

import "errors"

var ErrVetNotFound = errors.New("veterinarian not found")

// Veterinarian is a doctor on the clinic staff. Read-only from the
// scheduler's perspective; managed through the admin surface.
type Veterinarian struct {
	Id        int
	Name      string
	Crmv      string
	Specialty string
	Contact   string
}
