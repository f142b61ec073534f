package vet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateVet(ctx context.Context, v Veterinarian) (int, error)
	GetVet(ctx context.Context, id int) (Veterinarian, error)
	GetAllVets(ctx context.Context) ([]Veterinarian, error)
	UpdateVet(ctx context.Context, v Veterinarian) error
	DeleteVet(ctx context.Context, id int) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewVetRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateVet(ctx context.Context, v Veterinarian) (int, error) {
	query := `INSERT INTO medico_veterinario (nome, crmv, especialidade, contato)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, v.Name, v.Crmv, v.Specialty, v.Contact).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert veterinarian: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetVet(ctx context.Context, id int) (Veterinarian, error) {
	query := `SELECT id, nome, crmv, especialidade, contato FROM medico_veterinario WHERE id = $1`

	var v Veterinarian
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.Id, &v.Name, &v.Crmv, &v.Specialty, &v.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return Veterinarian{}, ErrVetNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan veterinarian: %w", err)
		log.Error(err)
		return Veterinarian{}, err
	}
	return v, nil
}

func (r *RepoImpl) GetAllVets(ctx context.Context) ([]Veterinarian, error) {
	query := `SELECT id, nome, crmv, especialidade, contato FROM medico_veterinario ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query veterinarians: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	vets := make([]Veterinarian, 0, 10)
	for rows.Next() {
		var v Veterinarian
		if err := rows.Scan(&v.Id, &v.Name, &v.Crmv, &v.Specialty, &v.Contact); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		vets = append(vets, v)
	}
	return vets, rows.Err()
}

func (r *RepoImpl) UpdateVet(ctx context.Context, v Veterinarian) error {
	query := `UPDATE medico_veterinario SET nome = $1, crmv = $2, especialidade = $3, contato = $4 WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, v.Name, v.Crmv, v.Specialty, v.Contact, v.Id)
	if err != nil {
		err := fmt.Errorf("could not update veterinarian: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVetNotFound
	}
	return nil
}

func (r *RepoImpl) DeleteVet(ctx context.Context, id int) error {
	// Appointments referencing this veterinarian survive with a NULL
	// reference (ON DELETE SET NULL).
	result, err := r.db.ExecContext(ctx, `DELETE FROM medico_veterinario WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete veterinarian: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVetNotFound
	}
	return nil
}
