package handler

import (
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/labstack/echo/v4"
)

type ImageHandler struct {
	Handler
	images *service.ImageService
}

func NewImageHandler(s *server.Server, images *service.ImageService) *ImageHandler {
	return &ImageHandler{
		Handler: NewHandler(s),
		images:  images,
	}
}

// UploadImage stores the multipart "file" part. Every validation problem
// (name, extension, size) is reported in one 400.
func (h *ImageHandler) UploadImage(c echo.Context, r *dto.UploadImageRequest) (*dto.DataResponse[dto.ImageResponse], error) {
	image, err := h.images.Upload(c.Request().Context(), r, requestBaseURL(c))
	if err != nil {
		return nil, err
	}

	return &dto.DataResponse[dto.ImageResponse]{
		Message: "Image uploaded successfully",
		Data:    dto.FromImage(image),
	}, nil
}
