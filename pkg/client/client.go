package client

import "errors"

var ErrClientNotFound = errors.New("client not found")

// Client is a pet owner registered at the clinic. AccountUID links the record
// to an authenticated login account and may be empty: walk-in clients are
// registered at the desk without one.
type Client struct {
	Id         int
	AccountUid string
	Name       string
	TaxId      string
	Phone      string
	Email      string
	Address    string
}
