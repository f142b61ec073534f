package app

import (
	"errors"
	"net/http"

	"github.com/clinicadobicho/clinicadobicho/internal/config"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Tag every request with an id for log correlation.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get("X-Request-Id")
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", requestId)
			log.Debugf("request %s: %s %s", requestId, req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})

	// Propagate the authenticated account into context for downstream
	// services. The header is set by the auth layer in front of this
	// service; token verification is not done here.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			accountUid := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if accountUid != "" {
				c, err := deps.ClientService.GetClientByAccountUid(ctx, accountUid)
				if err != nil {
					if errors.Is(err, client.ErrClientNotFound) {
						// Staff accounts have no client record; handlers
						// that need one check the context themselves.
						log.Debugf("no client record for account: %s", accountUid)
					} else {
						log.Errorf("failed to resolve account: %v", err)
						http.Error(w, err.Error(), http.StatusInternalServerError)
						return
					}
				} else {
					ctx = client.WithClient(ctx, c)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
