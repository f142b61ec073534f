package vet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type VetDTO struct {
	Id            int    `json:"id"`
	Nome          string `json:"nome"`
	Crmv          string `json:"crmv"`
	Especialidade string `json:"especialidade"`
	Contato       string `json:"contato"`
}

// VetSimpleDTO is the reduced shape nested inside appointment responses.
type VetSimpleDTO struct {
	Id            int    `json:"id"`
	Nome          string `json:"nome"`
	Especialidade string `json:"especialidade"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateVet(w http.ResponseWriter, r *http.Request) {
	var dto VetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateVet(r.Context(), dtoToVet(dto))
	if err != nil {
		var validationErrs rest.ValidationErrors
		if errors.As(err, &validationErrs) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(vetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListVets(w http.ResponseWriter, r *http.Request) {
	vets, err := h.service.GetAllVets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]VetDTO, 0, len(vets))
	for _, v := range vets {
		dtos = append(dtos, vetToDTO(v))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetVet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["vetId"])
	if err != nil {
		http.Error(w, "invalid veterinarian id", http.StatusBadRequest)
		return
	}

	found, err := h.service.GetVet(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVetNotFound) {
			http.Error(w, "veterinarian not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(vetToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateVet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["vetId"])
	if err != nil {
		http.Error(w, "invalid veterinarian id", http.StatusBadRequest)
		return
	}

	var dto VetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := dtoToVet(dto)
	v.Id = id

	updated, err := h.service.UpdateVet(r.Context(), v)
	if err != nil {
		var validationErrs rest.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
		case errors.Is(err, ErrVetNotFound):
			http.Error(w, "veterinarian not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(vetToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteVet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["vetId"])
	if err != nil {
		http.Error(w, "invalid veterinarian id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteVet(r.Context(), id); err != nil {
		if errors.Is(err, ErrVetNotFound) {
			http.Error(w, "veterinarian not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func vetToDTO(v Veterinarian) VetDTO {
	return VetDTO{
		Id:            v.Id,
		Nome:          v.Name,
		Crmv:          v.Crmv,
		Especialidade: v.Specialty,
		Contato:       v.Contact,
	}
}

func dtoToVet(dto VetDTO) Veterinarian {
	return Veterinarian{
		Id:        dto.Id,
		Name:      dto.Nome,
		Crmv:      dto.Crmv,
		Specialty: dto.Especialidade,
		Contact:   dto.Contato,
	}
}
