package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateClient(ctx context.Context, c Client) (int, error)
	GetClient(ctx context.Context, id int) (Client, error)
	GetClientByTaxId(ctx context.Context, taxId string) (Client, error)
	GetClientByAccountUid(ctx context.Context, accountUid string) (Client, error)
	GetAllClients(ctx context.Context) ([]Client, error)
	UpdateClient(ctx context.Context, c Client) error
	DeleteClient(ctx context.Context, id int) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateClient(ctx context.Context, c Client) (int, error) {
	query := `INSERT INTO cliente (usuario_uid, nome, cpf, telefone, email, endereco)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		nullString(c.AccountUid), c.Name, nullString(c.TaxId), c.Phone, c.Email, c.Address,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert client: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetClient(ctx context.Context, id int) (Client, error) {
	query := `SELECT id, usuario_uid, nome, cpf, telefone, email, endereco
			  FROM cliente WHERE id = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, id))
}

func (r *RepoImpl) GetClientByTaxId(ctx context.Context, taxId string) (Client, error) {
	query := `SELECT id, usuario_uid, nome, cpf, telefone, email, endereco
			  FROM cliente WHERE cpf = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, taxId))
}

func (r *RepoImpl) GetClientByAccountUid(ctx context.Context, accountUid string) (Client, error) {
	query := `SELECT id, usuario_uid, nome, cpf, telefone, email, endereco
			  FROM cliente WHERE usuario_uid = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, accountUid))
}

func (r *RepoImpl) GetAllClients(ctx context.Context) ([]Client, error) {
	query := `SELECT id, usuario_uid, nome, cpf, telefone, email, endereco
			  FROM cliente ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query clients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	clients := make([]Client, 0, 10)
	for rows.Next() {
		var c Client
		var accountUid, taxId sql.NullString
		if err := rows.Scan(&c.Id, &accountUid, &c.Name, &taxId, &c.Phone, &c.Email, &c.Address); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		c.AccountUid = accountUid.String
		c.TaxId = taxId.String
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *RepoImpl) UpdateClient(ctx context.Context, c Client) error {
	query := `UPDATE cliente SET usuario_uid = $1, nome = $2, cpf = $3, telefone = $4, email = $5, endereco = $6
			  WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		nullString(c.AccountUid), c.Name, nullString(c.TaxId), c.Phone, c.Email, c.Address, c.Id)
	if err != nil {
		err := fmt.Errorf("could not update client: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *RepoImpl) DeleteClient(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cliente WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete client: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *RepoImpl) scanClient(row *sql.Row) (Client, error) {
	var c Client
	var accountUid, taxId sql.NullString
	err := row.Scan(&c.Id, &accountUid, &c.Name, &taxId, &c.Phone, &c.Email, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrClientNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan client: %w", err)
		log.Error(err)
		return Client{}, err
	}
	c.AccountUid = accountUid.String
	c.TaxId = taxId.String
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
