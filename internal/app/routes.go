package app

import (
	"github.com/clinicadobicho/clinicadobicho/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Clients
	r.HandleFunc("/api/clientes", deps.ClientHandler.FindByTaxId).Queries("cpf", "{cpf}").Methods("GET")
	r.HandleFunc("/api/clientes", deps.ClientHandler.ListClients).Methods("GET")
	r.HandleFunc("/api/clientes", deps.ClientHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/clientes/{clienteId}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/clientes/{clienteId}", deps.ClientHandler.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/clientes/{clienteId}", deps.ClientHandler.DeleteClient).Methods("DELETE")
	r.HandleFunc("/api/clientes/{clienteId}/animais", deps.AnimalHandler.ListOwnerAnimals).Methods("GET")

	// Animals
	r.HandleFunc("/api/animais", deps.AnimalHandler.ListAnimals).Methods("GET")
	r.HandleFunc("/api/animais", deps.AnimalHandler.RegisterAnimal).Methods("POST")
	r.HandleFunc("/api/animais/{animalId}", deps.AnimalHandler.GetAnimal).Methods("GET")
	r.HandleFunc("/api/animais/{animalId}", deps.AnimalHandler.UpdateAnimal).Methods("PUT")
	r.HandleFunc("/api/animais/{animalId}", deps.AnimalHandler.DeleteAnimal).Methods("DELETE")

	// Veterinarians
	r.HandleFunc("/api/veterinarios", deps.VetHandler.ListVets).Methods("GET")
	r.HandleFunc("/api/veterinarios", deps.VetHandler.CreateVet).Methods("POST")
	r.HandleFunc("/api/veterinarios/{vetId}", deps.VetHandler.GetVet).Methods("GET")
	r.HandleFunc("/api/veterinarios/{vetId}", deps.VetHandler.UpdateVet).Methods("PUT")
	r.HandleFunc("/api/veterinarios/{vetId}", deps.VetHandler.DeleteVet).Methods("DELETE")

	// Appointments
	r.HandleFunc("/api/consultas/resumo", deps.AppointmentHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/consultas", deps.AppointmentHandler.ListAppointments).Methods("GET")
	r.HandleFunc("/api/consultas", deps.AppointmentHandler.Book).Methods("POST")
	r.HandleFunc("/api/consultas/{consultaId}", deps.AppointmentHandler.GetAppointment).Methods("GET")
	r.HandleFunc("/api/consultas/{consultaId}", deps.AppointmentHandler.Reschedule).Methods("PUT")
	r.HandleFunc("/api/consultas/{consultaId}/status", deps.AppointmentHandler.ChangeStatus).Methods("PUT")
	r.HandleFunc("/api/consultas/{consultaId}", deps.AppointmentHandler.DeleteAppointment).Methods("DELETE")

	// Availability calendar feed
	r.HandleFunc("/api/agenda", deps.ScheduleHandler.GetCalendar).Methods("GET")

	// Current account
	r.HandleFunc("/api/me", deps.ClientHandler.CurrentClient).Methods("GET")
	r.HandleFunc("/api/me/animais", deps.AnimalHandler.ListMyAnimals).Methods("GET")
	r.HandleFunc("/api/me/consultas", deps.AppointmentHandler.ListMyAppointments).Methods("GET")
}
