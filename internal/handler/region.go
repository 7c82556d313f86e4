package handler

import (
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/labstack/echo/v4"
)

// RouteGetRegion names the single-region route; Location headers are built from it.
const RouteGetRegion = "get-region"

type RegionHandler struct {
	Handler
	regions *service.RegionService
}

func NewRegionHandler(s *server.Server, regions *service.RegionService) *RegionHandler {
	return &RegionHandler{
		Handler: NewHandler(s),
		regions: regions,
	}
}

func (h *RegionHandler) ListRegions(c echo.Context, q *dto.ListQuery) ([]dto.RegionResponse, error) {
	regions, err := h.regions.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return dto.FromRegions(regions), nil
}

func (h *RegionHandler) GetRegion(c echo.Context, p *dto.IDParam) (*dto.RegionResponse, error) {
	id, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}

	region, err := h.regions.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRegion(region)
	return &resp, nil
}

// CreateRegion answers 201 with a Location header pointing at get-region.
func (h *RegionHandler) CreateRegion(c echo.Context, r *dto.CreateRegionRequest) (*dto.DataResponse[dto.RegionResponse], error) {
	region, err := h.regions.Create(c.Request().Context(), r)
	if err != nil {
		return nil, err
	}

	setLocation(c, RouteGetRegion, region.ID.String())

	return &dto.DataResponse[dto.RegionResponse]{
		Message: "Region created successfully.",
		Data:    dto.FromRegion(region),
	}, nil
}

func (h *RegionHandler) UpdateRegion(c echo.Context, r *dto.UpdateRegionRequest) (*dto.DataResponse[dto.RegionResponse], error) {
	id, err := parseID(r.ID)
	if err != nil {
		return nil, err
	}

	region, err := h.regions.Update(c.Request().Context(), id, r)
	if err != nil {
		return nil, err
	}

	return &dto.DataResponse[dto.RegionResponse]{
		Message: "Region updated successfully.",
		Data:    dto.FromRegion(region),
	}, nil
}

func (h *RegionHandler) DeleteRegion(c echo.Context, p *dto.IDParam) (*dto.MessageResponse, error) {
	id, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}

	if err := h.regions.Delete(c.Request().Context(), id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Region deleted successfully."}, nil
}

// setLocation points the Location header at the named route filled with params.
func setLocation(c echo.Context, routeName string, params ...any) {
	if path := c.Echo().Reverse(routeName, params...); path != "" {
		c.Response().Header().Set(echo.HeaderLocation, requestBaseURL(c)+path)
	}
}
