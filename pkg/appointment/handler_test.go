package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/rest"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*mux.Router, *ServiceImpl) {
	service, _ := setupService()
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/consultas/resumo", handler.GetSummary).Methods("GET")
	r.HandleFunc("/api/consultas", handler.ListAppointments).Methods("GET")
	r.HandleFunc("/api/consultas", handler.Book).Methods("POST")
	r.HandleFunc("/api/consultas/{consultaId}", handler.GetAppointment).Methods("GET")
	r.HandleFunc("/api/consultas/{consultaId}", handler.Reschedule).Methods("PUT")
	r.HandleFunc("/api/consultas/{consultaId}/status", handler.ChangeStatus).Methods("PUT")
	r.HandleFunc("/api/consultas/{consultaId}", handler.DeleteAppointment).Methods("DELETE")
	return r, service
}

func doRequest(t *testing.T, r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerBook(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto AppointmentCreateDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, 1, dto.Id)
	assert.Equal(t, 1, dto.Animal)
	require.NotNil(t, dto.Veterinario)
	assert.Equal(t, 1, *dto.Veterinario)
	assert.Equal(t, "Vacinação", dto.Motivo)
	assert.Equal(t, string(StatusScheduled), dto.Status)
}

func TestHandlerBook_Conflict(t *testing.T) {
	r, _ := setupRouter()
	body := `{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`

	rec := doRequest(t, r, "POST", "/api/consultas", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "POST", "/api/consultas", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Já existe uma consulta agendada para este horário com este veterinário.", resp.Error)
}

func TestHandlerBook_MissingFields(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp rest.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Este campo é obrigatório.", resp.Errors["animal"])
	assert.Equal(t, "Este campo é obrigatório.", resp.Errors["data"])
	assert.Equal(t, "Este campo é obrigatório.", resp.Errors["motivo"])
}

func TestHandlerBook_BadDate(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "data": "09/09/2025 10:00", "motivo": "Vacinação"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp rest.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "data")
}

func TestHandlerBook_UnknownVet(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 999, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Veterinário não encontrado.", resp.Error)
}

func TestHandlerBook_UnknownAnimal(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 999, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Animal não encontrado.", resp.Error)
}

func TestHandlerReschedule(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "PUT", "/api/consultas/1",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T11:00:00-03:00", "motivo": "Vacinação"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto AppointmentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	moved, err := time.Parse(time.RFC3339, dto.Data)
	require.NoError(t, err)
	assert.Equal(t, 11, moved.Hour())
}

func TestHandlerGetAppointment_NotFound(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "GET", "/api/consultas/404", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerChangeStatus(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "PUT", "/api/consultas/1/status", `{"status": "cancelled"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto AppointmentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "cancelled", dto.Status)
}

func TestHandlerChangeStatus_Invalid(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "PUT", "/api/consultas/1/status", `{"status": "arquivada"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp rest.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "status")
}

func TestHandlerDeleteAppointment(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "DELETE", "/api/consultas/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, r, "GET", "/api/consultas/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerGetSummary(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 1, "veterinario": 1, "data": "2025-09-09T10:00:00-03:00", "motivo": "Vacinação"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, r, "POST", "/api/consultas",
		`{"animal": 2, "veterinario": 2, "data": "2025-09-09T10:00:00-03:00", "motivo": "Check-up"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "GET", "/api/consultas/resumo", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var summary SummaryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Scheduled)
	assert.Equal(t, 2, summary.Total)
}
