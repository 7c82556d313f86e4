package handler

import (
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/labstack/echo/v4"
)

const RouteGetWalk = "get-walk"

type WalkHandler struct {
	Handler
	walks *service.WalkService
}

func NewWalkHandler(s *server.Server, walks *service.WalkService) *WalkHandler {
	return &WalkHandler{
		Handler: NewHandler(s),
		walks:   walks,
	}
}

func (h *WalkHandler) ListWalks(c echo.Context, q *dto.ListQuery) ([]dto.WalkResponse, error) {
	walks, err := h.walks.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return dto.FromWalks(walks), nil
}

func (h *WalkHandler) GetWalk(c echo.Context, p *dto.IDParam) (*dto.WalkResponse, error) {
	id, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}

	walk, err := h.walks.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromWalk(walk)
	return &resp, nil
}

func (h *WalkHandler) CreateWalk(c echo.Context, r *dto.CreateWalkRequest) (*dto.DataResponse[dto.WalkResponse], error) {
	walk, err := h.walks.Create(c.Request().Context(), r)
	if err != nil {
		return nil, err
	}

	setLocation(c, RouteGetWalk, walk.ID.String())

	return &dto.DataResponse[dto.WalkResponse]{
		Message: "Walk created successfully.",
		Data:    dto.FromWalk(walk),
	}, nil
}

func (h *WalkHandler) UpdateWalk(c echo.Context, r *dto.UpdateWalkRequest) (*dto.DataResponse[dto.WalkResponse], error) {
	id, err := parseID(r.ID)
	if err != nil {
		return nil, err
	}

	walk, err := h.walks.Update(c.Request().Context(), id, r)
	if err != nil {
		return nil, err
	}

	return &dto.DataResponse[dto.WalkResponse]{
		Message: "Walk updated successfully.",
		Data:    dto.FromWalk(walk),
	}, nil
}

func (h *WalkHandler) DeleteWalk(c echo.Context, p *dto.IDParam) (*dto.MessageResponse, error) {
	id, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}

	if err := h.walks.Delete(c.Request().Context(), id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Walk deleted successfully."}, nil
}
