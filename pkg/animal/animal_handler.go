package animal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type AnimalDTO struct {
	Id          int       `json:"id"`
	Nome        string    `json:"nome"`
	Especie     string    `json:"especie"`
	TipoEspecie string    `json:"tipo_especie"`
	Raca        string    `json:"raca"`
	Idade       *int      `json:"idade"`
	Peso        *float64  `json:"peso"`
	Dono        *OwnerDTO `json:"dono,omitempty"`
	Cpf         string    `json:"cpf,omitempty"` // write-only: owner lookup key on create
}

// OwnerDTO is the reduced client shape nested in animal responses.
type OwnerDTO struct {
	Id   int    `json:"id"`
	Nome string `json:"nome"`
	Cpf  string `json:"cpf"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) RegisterAnimal(w http.ResponseWriter, r *http.Request) {
	var dto AnimalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.RegisterAnimal(r.Context(), dtoToAnimal(dto), dto.Cpf)
	if err != nil {
		var validationErrs rest.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
		case errors.Is(err, client.ErrClientNotFound):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Cliente não encontrado."})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(animalToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.service.GetAllAnimals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAnimalList(w, animals)
}

// ListOwnerAnimals lists the animals of one client: GET /api/clientes/{clienteId}/animais
func (h *Handler) ListOwnerAnimals(w http.ResponseWriter, r *http.Request) {
	ownerId, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	animals, err := h.service.GetAnimalsOf(r.Context(), ownerId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAnimalList(w, animals)
}

// ListMyAnimals serves the logged-in client's pets tab. Auth requirement is
// checked explicitly at entry.
func (h *Handler) ListMyAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.service.GetCurrentClientAnimals(r.Context())
	if err != nil {
		if errors.Is(err, client.ErrNoClient) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAnimalList(w, animals)
}

func (h *Handler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["animalId"])
	if err != nil {
		http.Error(w, "invalid animal id", http.StatusBadRequest)
		return
	}

	found, err := h.service.GetAnimal(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAnimalNotFound) {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(animalToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["animalId"])
	if err != nil {
		http.Error(w, "invalid animal id", http.StatusBadRequest)
		return
	}

	var dto AnimalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a := dtoToAnimal(dto)
	a.Id = id

	updated, err := h.service.UpdateAnimal(r.Context(), a)
	if err != nil {
		var validationErrs rest.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ValidationErrorResponse{Errors: validationErrs})
		case errors.Is(err, ErrAnimalNotFound):
			http.Error(w, "animal not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(animalToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["animalId"])
	if err != nil {
		http.Error(w, "invalid animal id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAnimal(r.Context(), id); err != nil {
		if errors.Is(err, ErrAnimalNotFound) {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAnimalList(w http.ResponseWriter, animals []Animal) {
	dtos := make([]AnimalDTO, 0, len(animals))
	for _, a := range animals {
		dtos = append(dtos, animalToDTO(a))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func animalToDTO(a Animal) AnimalDTO {
	return AnimalDTO{
		Id:          a.Id,
		Nome:        a.Name,
		Especie:     string(a.Species),
		TipoEspecie: a.Species.DisplayName(),
		Raca:        a.Breed,
		Idade:       a.Age,
		Peso:        a.Weight,
		Dono: &OwnerDTO{
			Id:   a.OwnerId,
			Nome: a.OwnerName,
			Cpf:  a.OwnerTaxId,
		},
	}
}

func dtoToAnimal(dto AnimalDTO) Animal {
	return Animal{
		Id:      dto.Id,
		Name:    dto.Nome,
		Species: Species(dto.Especie),
		Breed:   dto.Raca,
		Age:     dto.Idade,
		Weight:  dto.Peso,
	}
}
