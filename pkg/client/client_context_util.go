package client

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const ClientKey contextKey = "client"

var ErrNoClient = errors.New("no client bound to request")

// CurrentId retrieves the authenticated client's ID from the context.
// Returns ErrNoClient if no client account is bound to the request.
func CurrentId(ctx context.Context) (int, error) {
	c, ok := ctx.Value(ClientKey).(Client)
	if !ok {
		log.Trace("client not found in context")
		return 0, ErrNoClient
	}
	return c.Id, nil
}

func CurrentClient(ctx context.Context) (Client, error) {
	c, ok := ctx.Value(ClientKey).(Client)
	if !ok {
		log.Trace("client not found in context")
		return Client{}, ErrNoClient
	}
	return c, nil
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ClientKey, c)
}
