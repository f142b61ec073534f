package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

type ClientDTO struct {
	Id       int    `json:"id"`
	Usuario  string `json:"usuario,omitempty"`
	Nome     string `json:"nome"`
	Cpf      string `json:"cpf"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Endereco string `json:"endereco"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateClient(r.Context(), dtoToClient(dto))
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
	if err := json.NewEncoder(w).Encode(clientToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.GetAllClients(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, clientToDTO(c))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// FindByTaxId handles the booking-desk lookup: GET /api/clientes?cpf=...
func (h *Handler) FindByTaxId(w http.ResponseWriter, r *http.Request) {
	cpf := r.URL.Query().Get("cpf")

	found, err := h.service.FindByTaxId(r.Context(), cpf)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Cliente não encontrado."})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	found, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := dtoToClient(dto)
	c.Id = id

	updated, err := h.service.UpdateClient(r.Context(), c)
	if err != nil {
		var validationErrs rest.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
		case errors.Is(err, ErrClientNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentClient returns the record of the client bound to the authenticated
// account. Auth requirement is checked explicitly at entry.
func (h *Handler) CurrentClient(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.GetCurrentClient(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoClient) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		log.Errorf("failed to get current client: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func clientToDTO(c Client) ClientDTO {
	return ClientDTO{
		Id:       c.Id,
		Usuario:  c.AccountUid,
		Nome:     c.Name,
		Cpf:      c.TaxId,
		Telefone: c.Phone,
		Email:    c.Email,
		Endereco: c.Address,
	}
}

func dtoToClient(dto ClientDTO) Client {
	return Client{
		Id:         dto.Id,
		AccountUid: dto.Usuario,
		Name:       dto.Nome,
		TaxId:      dto.Cpf,
		Phone:      dto.Telefone,
		Email:      dto.Email,
		Address:    dto.Endereco,
	}
}
