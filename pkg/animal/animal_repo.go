package animal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateAnimal(ctx context.Context, a Animal) (int, error)
	GetAnimal(ctx context.Context, id int) (Animal, error)
	GetAllAnimals(ctx context.Context) ([]Animal, error)
	GetAnimalsByOwner(ctx context.Context, ownerId int) ([]Animal, error)
	UpdateAnimal(ctx context.Context, a Animal) error
	DeleteAnimal(ctx context.Context, id int) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewAnimalRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const animalColumns = `a.id, a.nome, a.especie, a.raca, a.idade, a.peso, a.dono_id, c.nome, COALESCE(c.cpf, '')`

func (r *RepoImpl) CreateAnimal(ctx context.Context, a Animal) (int, error) {
	query := `INSERT INTO animal (nome, especie, raca, idade, peso, dono_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, a.Name, string(a.Species), a.Breed, a.Age, a.Weight, a.OwnerId).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert animal: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAnimal(ctx context.Context, id int) (Animal, error) {
	query := `SELECT ` + animalColumns + `
			  FROM animal a
			  JOIN cliente c ON c.id = a.dono_id
			  WHERE a.id = $1`

	a, err := scanAnimal(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Animal{}, ErrAnimalNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan animal: %w", err)
		log.Error(err)
		return Animal{}, err
	}
	return a, nil
}

func (r *RepoImpl) GetAllAnimals(ctx context.Context) ([]Animal, error) {
	query := `SELECT ` + animalColumns + `
			  FROM animal a
			  JOIN cliente c ON c.id = a.dono_id
			  ORDER BY a.id`
	return r.queryAnimals(ctx, query)
}

func (r *RepoImpl) GetAnimalsByOwner(ctx context.Context, ownerId int) ([]Animal, error) {
	query := `SELECT ` + animalColumns + `
			  FROM animal a
			  JOIN cliente c ON c.id = a.dono_id
			  WHERE a.dono_id = $1
			  ORDER BY a.id`
	return r.queryAnimals(ctx, query, ownerId)
}

func (r *RepoImpl) UpdateAnimal(ctx context.Context, a Animal) error {
	query := `UPDATE animal SET nome = $1, especie = $2, raca = $3, idade = $4, peso = $5 WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query, a.Name, string(a.Species), a.Breed, a.Age, a.Weight, a.Id)
	if err != nil {
		err := fmt.Errorf("could not update animal: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAnimalNotFound
	}
	return nil
}

func (r *RepoImpl) DeleteAnimal(ctx context.Context, id int) error {
	// Appointments of the animal go with it (ON DELETE CASCADE).
	result, err := r.db.ExecContext(ctx, `DELETE FROM animal WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete animal: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAnimalNotFound
	}
	return nil
}

func (r *RepoImpl) queryAnimals(ctx context.Context, query string, args ...any) ([]Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query animals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	animals := make([]Animal, 0, 10)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row scanner) (Animal, error) {
	var a Animal
	var species string
	var age sql.NullInt64
	var weight sql.NullFloat64
	err := row.Scan(&a.Id, &a.Name, &species, &a.Breed, &age, &weight, &a.OwnerId, &a.OwnerName, &a.OwnerTaxId)
	if err != nil {
		return Animal{}, err
	}
	a.Species = Species(species)
	if age.Valid {
		v := int(age.Int64)
		a.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		a.Weight = &v
	}
	return a, nil
}
