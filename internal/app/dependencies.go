package app

import (
	"database/sql"

	"github.com/clinicadobicho/clinicadobicho/internal/config"
	"github.com/clinicadobicho/clinicadobicho/internal/utils"
	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/appointment"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/clinicadobicho/clinicadobicho/pkg/schedule"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ClientService client.Service
	ClientHandler *client.Handler

	AnimalService animal.Service
	AnimalHandler *animal.Handler

	VetService vet.Service
	VetHandler *vet.Handler

	AppointmentRepo    appointment.Repository
	AppointmentService appointment.Service
	AppointmentHandler *appointment.Handler

	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.ClientService = client.NewClientService(client.NewClientRepo(db))
	deps.ClientHandler = client.NewHandler(deps.ClientService)

	deps.AnimalService = animal.NewAnimalService(animal.NewAnimalRepo(db), deps.ClientService)
	deps.AnimalHandler = animal.NewHandler(deps.AnimalService)

	deps.VetService = vet.NewVetService(vet.NewVetRepo(db))
	deps.VetHandler = vet.NewHandler(deps.VetService)

	deps.AppointmentRepo = appointment.NewRepository(db)
	deps.AppointmentService = appointment.NewService(deps.AppointmentRepo, deps.AnimalService, deps.VetService)
	deps.AppointmentHandler = appointment.NewHandler(deps.AppointmentService)

	deps.Clock = &utils.SystemClock{}
	scheduleService, err := schedule.NewService(deps.AppointmentService.GetAppointmentsByVet, deps.Clock, cfg.Clinic.Timezone)
	if err != nil {
		return nil, err
	}
	deps.ScheduleService = scheduleService
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	return deps, nil
}
