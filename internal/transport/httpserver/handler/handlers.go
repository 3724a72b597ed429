package handler

import (
	"net/http"

	"church-hub-go/internal/domain/church"
	"church-hub-go/internal/domain/invite"
	"church-hub-go/internal/domain/joinrequest"
	"church-hub-go/internal/domain/roster"
	"church-hub-go/internal/transport/httpserver/middleware"
	"church-hub-go/pkg/logger"
)

// Handlers bundles the HTTP handlers for every resource, sharing one
// logger and the domain services they delegate to.
type Handlers struct {
	churches     *church.Service
	invites      *invite.Service
	joinRequests *joinrequest.Service
	rosters      *roster.Service
	log          logger.Logger
}

func New(
	churches *church.Service,
	invites *invite.Service,
	joinRequests *joinrequest.Service,
	rosters *roster.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		churches:     churches,
		invites:      invites,
		joinRequests: joinRequests,
		rosters:      rosters,
		log:          log,
	}
}

// identityFromRequest pulls the authenticated user out of the request
// context. Routes behind the auth middleware always have one.
func identityFromRequest(r *http.Request) (church.Identity, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return church.Identity{}, false
	}
	return church.Identity{
		UserID:      user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
	}, true
}
