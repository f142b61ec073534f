package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreAppointment(ctx context.Context, a Appointment) (int, error)
	GetAppointment(ctx context.Context, id int) (Appointment, error)
	GetAllAppointments(ctx context.Context) ([]Appointment, error)
	GetAppointmentsByVet(ctx context.Context, vetId int) ([]Appointment, error)
	GetAppointmentsByOwner(ctx context.Context, ownerId int) ([]Appointment, error)
	CountConflicting(ctx context.Context, vetId int, at time.Time, excludeId int) (int, error)
	UpdateAppointment(ctx context.Context, a Appointment) error
	UpdateStatus(ctx context.Context, id int, status Status) error
	DeleteAppointment(ctx context.Context, id int) error
	CountByStatus(ctx context.Context) (Summary, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const uniqueViolation = "23505"

// appointmentColumns joins in the animal (with its owner) and veterinarian
// display fields so list responses and the calendar need no extra queries.
const appointmentColumns = `
	co.id, co.animal_id, co.veterinario_id, co.data, co.motivo, co.observacoes, co.status,
	a.nome, a.especie, a.raca, a.idade, a.peso, a.dono_id, cl.nome, COALESCE(cl.cpf, ''),
	v.id, v.nome, v.especialidade`

const appointmentJoins = `
	FROM consulta co
	JOIN animal a ON a.id = co.animal_id
	JOIN cliente cl ON cl.id = a.dono_id
	LEFT JOIN medico_veterinario v ON v.id = co.veterinario_id`

func (r *RepositoryImpl) StoreAppointment(ctx context.Context, a Appointment) (int, error) {
	query := `INSERT INTO consulta (animal_id, veterinario_id, data, motivo, observacoes, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, a.AnimalId, a.VeterinarianId, a.Date, a.Reason, a.Notes, string(a.Status)).Scan(&id)
	if err != nil {
		if conflictErr := asDoubleBooked(err, a); conflictErr != nil {
			return 0, conflictErr
		}
		err := fmt.Errorf("could not insert appointment: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetAppointment(ctx context.Context, id int) (Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE co.id = $1`

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan appointment: %w", err)
		log.Error(err)
		return Appointment{}, err
	}
	return a, nil
}

// GetAllAppointments lists every appointment, newest first.
func (r *RepositoryImpl) GetAllAppointments(ctx context.Context) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` ORDER BY co.data DESC`
	return r.queryAppointments(ctx, query)
}

// GetAppointmentsByVet lists a veterinarian's appointments in persisted-id
// order, the order the calendar feed exposes booked events in.
func (r *RepositoryImpl) GetAppointmentsByVet(ctx context.Context, vetId int) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE co.veterinario_id = $1 ORDER BY co.id`
	return r.queryAppointments(ctx, query, vetId)
}

func (r *RepositoryImpl) GetAppointmentsByOwner(ctx context.Context, ownerId int) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE a.dono_id = $1 ORDER BY co.data DESC`
	return r.queryAppointments(ctx, query, ownerId)
}

// CountConflicting counts appointments of the given veterinarian at exactly
// the given instant, excluding excludeId (0 when booking a new appointment).
func (r *RepositoryImpl) CountConflicting(ctx context.Context, vetId int, at time.Time, excludeId int) (int, error) {
	query := `SELECT COUNT(*) FROM consulta WHERE veterinario_id = $1 AND data = $2 AND id <> $3`

	var count int
	if err := r.db.QueryRowContext(ctx, query, vetId, at, excludeId).Scan(&count); err != nil {
		err := fmt.Errorf("could not count conflicting appointments: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *RepositoryImpl) UpdateAppointment(ctx context.Context, a Appointment) error {
	query := `UPDATE consulta SET animal_id = $1, veterinario_id = $2, data = $3, motivo = $4, observacoes = $5, status = $6
			  WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query, a.AnimalId, a.VeterinarianId, a.Date, a.Reason, a.Notes, string(a.Status), a.Id)
	if err != nil {
		if conflictErr := asDoubleBooked(err, a); conflictErr != nil {
			return conflictErr
		}
		err := fmt.Errorf("could not update appointment: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, id int, status Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE consulta SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		err := fmt.Errorf("could not update appointment status: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteAppointment(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consulta WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete appointment: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *RepositoryImpl) CountByStatus(ctx context.Context) (Summary, error) {
	query := `SELECT status, COUNT(*) FROM consulta GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not count appointments: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return Summary{}, err
		}
		switch Status(status) {
		case StatusScheduled:
			summary.Scheduled = count
		case StatusCompleted:
			summary.Completed = count
		case StatusCancelled:
			summary.Cancelled = count
		}
		summary.Total += count
	}
	return summary, rows.Err()
}

func (r *RepositoryImpl) queryAppointments(ctx context.Context, query string, args ...any) ([]Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query appointments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	appointments := make([]Appointment, 0, 10)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row scanner) (Appointment, error) {
	var a Appointment
	var vetId sql.NullInt64
	var status string
	var species string
	var age sql.NullInt64
	var weight sql.NullFloat64
	var joinedVetId sql.NullInt64
	var joinedVetName, joinedVetSpecialty sql.NullString

	err := row.Scan(
		&a.Id, &a.AnimalId, &vetId, &a.Date, &a.Reason, &a.Notes, &status,
		&a.Animal.Name, &species, &a.Animal.Breed, &age, &weight, &a.Animal.OwnerId, &a.Animal.OwnerName, &a.Animal.OwnerTaxId,
		&joinedVetId, &joinedVetName, &joinedVetSpecialty,
	)
	if err != nil {
		return Appointment{}, err
	}

	a.Status = Status(status)
	a.Animal.Id = a.AnimalId
	a.Animal.Species = animal.Species(species)
	if age.Valid {
		v := int(age.Int64)
		a.Animal.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		a.Animal.Weight = &v
	}
	if vetId.Valid {
		id := int(vetId.Int64)
		a.VeterinarianId = &id
	}
	if joinedVetId.Valid {
		a.Veterinarian = &vet.Veterinarian{
			Id:        int(joinedVetId.Int64),
			Name:      joinedVetName.String,
			Specialty: joinedVetSpecialty.String,
		}
	}
	return a, nil
}

// asDoubleBooked translates a unique violation on the (veterinario_id, data)
// index into the business conflict error, so two racing booking requests
// cannot both commit even though the service pre-check is not transactional.
func asDoubleBooked(err error, a Appointment) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && a.VeterinarianId != nil {
		return &DoubleBookedError{VeterinarianId: *a.VeterinarianId, Timestamp: a.Date}
	}
	return nil
}
