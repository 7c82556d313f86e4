// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Region  *RegionHandler
	Walk    *WalkHandler
	Image   *ImageHandler
	Auth    *AuthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Region:  NewRegionHandler(s, services.Region),
		Walk:    NewWalkHandler(s, services.Walk),
		Image:   NewImageHandler(s, services.Image),
		Auth:    NewAuthHandler(s, services.Auth),
	}
}
