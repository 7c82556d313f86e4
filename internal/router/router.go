// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/nzwalks/internal/config"
	"github.com/deppfellow/nzwalks/internal/handler"
	"github.com/deppfellow/nzwalks/internal/lib/storage"
	"github.com/deppfellow/nzwalks/internal/middleware"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// system routes and the /api/v1 resource routes.
//
// Order matters: the request id and the request logger must exist before
// anything that can fail, so every error response and log line carries them.
func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.Global.BodyLimit(),
		mw.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerImageFiles(router, &s.Config.Storage)

	v1 := router.Group("/api/v1")
	registerRegionRoutes(v1, h)
	registerWalkRoutes(v1, h, mw.Auth)
	registerImageRoutes(v1, h)
	registerAuthRoutes(v1, h)

	return router
}

func registerRegionRoutes(v1 *echo.Group, h *handler.Handlers) {
	regions := v1.Group("/regions")

	regions.GET("/get-all-regions", handler.Handle(h.Region.ListRegions, http.StatusOK))
	regions.GET("/get-region/:id", handler.Handle(h.Region.GetRegion, http.StatusOK)).Name = handler.RouteGetRegion
	regions.POST("/create-region", handler.Handle(h.Region.CreateRegion, http.StatusCreated))
	regions.PUT("/update-region/:id", handler.Handle(h.Region.UpdateRegion, http.StatusOK))
	regions.DELETE("/delete-region/:id", handler.Handle(h.Region.DeleteRegion, http.StatusOK))
}

// registerWalkRoutes puts every walk route behind a bearer token. Readers
// and writers may read; only writers may change walks.
func registerWalkRoutes(v1 *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	walks := v1.Group("/walks", auth.RequireAuth)

	canRead := auth.RequireRoles(model.RoleReader, model.RoleWriter)
	canWrite := auth.RequireRoles(model.RoleWriter)

	walks.GET("/get-all-walks", handler.Handle(h.Walk.ListWalks, http.StatusOK), canRead)
	walks.GET("/get-walk/:id", handler.Handle(h.Walk.GetWalk, http.StatusOK), canRead).Name = handler.RouteGetWalk
	walks.POST("/create-walk", handler.Handle(h.Walk.CreateWalk, http.StatusCreated), canWrite)
	walks.PUT("/update-walk/:id", handler.Handle(h.Walk.UpdateWalk, http.StatusOK), canWrite)
	walks.DELETE("/delete-walk/:id", handler.Handle(h.Walk.DeleteWalk, http.StatusOK), canWrite)
}

func registerImageRoutes(v1 *echo.Group, h *handler.Handlers) {
	v1.POST("/images/upload", handler.Handle(h.Image.UploadImage, http.StatusOK))
}

func registerAuthRoutes(v1 *echo.Group, h *handler.Handlers) {
	auth := v1.Group("/auth")

	auth.POST("/register", handler.Handle(h.Auth.Register, http.StatusOK))
	auth.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK))
}

// registerImageFiles serves uploads from disk when the local store is in
// use. S3 objects are served by the bucket's own public URL.
func registerImageFiles(router *echo.Echo, cfg *config.StorageConfig) {
	if cfg.Driver != config.StorageDriverLocal {
		return
	}
	router.Static(storage.LocalPublicPrefix, cfg.LocalDir)
}
