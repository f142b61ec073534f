package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// SerializationMode selects the output shape of an appointment. Create
// echoes the flat references the caller sent; Default nests the display
// serializers for the animal (with owner) and the veterinarian.
type SerializationMode int

const (
	SerializeDefault SerializationMode = iota
	SerializeCreate
)

// AppointmentRequest is the booking/reschedule input: flat ids plus an
// RFC3339 timestamp.
type AppointmentRequest struct {
	Animal      int    `json:"animal"`
	Veterinario *int   `json:"veterinario"`
	Data        string `json:"data"`
	Motivo      string `json:"motivo"`
	Observacoes string `json:"observacoes"`
	Status      string `json:"status"`
}

type AppointmentCreateDTO struct {
	Id          int    `json:"id"`
	Animal      int    `json:"animal"`
	Veterinario *int   `json:"veterinario"`
	Data        string `json:"data"`
	Motivo      string `json:"motivo"`
	Observacoes string `json:"observacoes"`
	Status      string `json:"status"`
}

type AppointmentDTO struct {
	Id          int               `json:"id"`
	Animal      AnimalNestedDTO   `json:"animal"`
	Veterinario *vet.VetSimpleDTO `json:"veterinario"`
	Data        string            `json:"data"`
	Motivo      string            `json:"motivo"`
	Observacoes string            `json:"observacoes"`
	Status      string            `json:"status"`
}

type AnimalNestedDTO struct {
	Id          int            `json:"id"`
	Nome        string         `json:"nome"`
	Especie     string         `json:"especie"`
	TipoEspecie string         `json:"tipo_especie"`
	Raca        string         `json:"raca"`
	Idade       *int           `json:"idade"`
	Peso        *float64       `json:"peso"`
	Dono        OwnerNestedDTO `json:"dono"`
}

type OwnerNestedDTO struct {
	Id   int    `json:"id"`
	Nome string `json:"nome"`
	Cpf  string `json:"cpf"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type SummaryDTO struct {
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// Book handles POST /api/consultas.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidate, err := requestToAppointment(req)
	if err != nil {
		writeValidationErrors(w, err)
		return
	}

	booked, err := h.service.Book(r.Context(), candidate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(appointmentToJSON(booked, SerializeCreate)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Reschedule handles PUT /api/consultas/{consultaId}.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["consultaId"])
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidate, err := requestToAppointment(req)
	if err != nil {
		writeValidationErrors(w, err)
		return
	}
	candidate.Id = id

	updated, err := h.service.Reschedule(r.Context(), candidate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(appointmentToJSON(updated, SerializeDefault)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListAppointments handles GET /api/consultas, newest first.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.GetAllAppointments(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAppointmentList(w, appointments)
}

// ListMyAppointments serves the logged-in client's consultations tab. Auth
// requirement is checked explicitly at entry.
func (h *Handler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.GetCurrentClientAppointments(r.Context())
	if err != nil {
		if errors.Is(err, client.ErrNoClient) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAppointmentList(w, appointments)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["consultaId"])
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	found, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(appointmentToJSON(found, SerializeDefault)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ChangeStatus handles PUT /api/consultas/{consultaId}/status.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["consultaId"])
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.ChangeStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(appointmentToJSON(updated, SerializeDefault)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["consultaId"])
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /api/consultas/resumo.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryDTO{
		Scheduled: summary.Scheduled,
		Completed: summary.Completed,
		Cancelled: summary.Cancelled,
		Total:     summary.Total,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErrs rest.ValidationErrors
	var doubleBooked *DoubleBookedError
	switch {
	case errors.As(err, &validationErrs):
		writeValidationErrors(w, validationErrs)
	case errors.As(err, &doubleBooked):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Já existe uma consulta agendada para este horário com este veterinário.",
			Details: doubleBooked.Error(),
		})
	case errors.Is(err, ErrAppointmentNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, animal.ErrAnimalNotFound):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Animal não encontrado."})
	case errors.Is(err, vet.ErrVetNotFound):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Veterinário não encontrado."})
	default:
		log.Errorf("appointment request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeValidationErrors(w http.ResponseWriter, err error) {
	var validationErrs rest.ValidationErrors
	if !errors.As(err, &validationErrs) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
}

func writeAppointmentList(w http.ResponseWriter, appointments []Appointment) {
	dtos := make([]any, 0, len(appointments))
	for _, a := range appointments {
		dtos = append(dtos, appointmentToJSON(a, SerializeDefault))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func requestToAppointment(req AppointmentRequest) (Appointment, error) {
	a := Appointment{
		AnimalId:       req.Animal,
		VeterinarianId: req.Veterinario,
		Reason:         req.Motivo,
		Notes:          req.Observacoes,
		Status:         Status(req.Status),
	}
	if req.Data != "" {
		parsed, err := time.Parse(time.RFC3339, req.Data)
		if err != nil {
			return Appointment{}, rest.ValidationErrors{"data": "Data deve estar no formato RFC3339."}
		}
		a.Date = parsed
	}
	return a, nil
}

func appointmentToJSON(a Appointment, mode SerializationMode) any {
	switch mode {
	case SerializeCreate:
		return AppointmentCreateDTO{
			Id:          a.Id,
			Animal:      a.AnimalId,
			Veterinario: a.VeterinarianId,
			Data:        a.Date.Format(time.RFC3339),
			Motivo:      a.Reason,
			Observacoes: a.Notes,
			Status:      string(a.Status),
		}
	default:
		dto := AppointmentDTO{
			Id: a.Id,
			Animal: AnimalNestedDTO{
				Id:          a.Animal.Id,
				Nome:        a.Animal.Name,
				Especie:     string(a.Animal.Species),
				TipoEspecie: a.Animal.Species.DisplayName(),
				Raca:        a.Animal.Breed,
				Idade:       a.Animal.Age,
				Peso:        a.Animal.Weight,
				Dono: OwnerNestedDTO{
					Id:   a.Animal.OwnerId,
					Nome: a.Animal.OwnerName,
					Cpf:  a.Animal.OwnerTaxId,
				},
			},
			Data:        a.Date.Format(time.RFC3339),
			Motivo:      a.Reason,
			Observacoes: a.Notes,
			Status:      string(a.Status),
		}
		if a.Veterinarian != nil {
			dto.Veterinario = &vet.VetSimpleDTO{
				Id:            a.Veterinarian.Id,
				Nome:          a.Veterinarian.Name,
				Especialidade: a.Veterinarian.Specialty,
			}
		}
		return dto
	}
}
