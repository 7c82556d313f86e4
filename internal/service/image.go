package service

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/lib/storage"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/pkg/errors"
)

type ImageService struct {
	images *repository.ImageRepository
	store  storage.ImageStore
}

func NewImageService(images *repository.ImageRepository, store storage.ImageStore) *ImageService {
	return &ImageService{images: images, store: store}
}

// Upload stores the file as <fileName><ext>, overwriting any previous upload
// with the same key, and records its metadata. baseURL is the scheme and
// host the request arrived on.
func (s *ImageService) Upload(ctx context.Context, req *dto.UploadImageRequest, baseURL string) (*model.Image, error) {
	image := req.ToEntity()
	key := image.FileName + image.FileExtension

	src, err := req.File.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	if err := s.store.Save(ctx, key, src, req.File.Size, req.ContentType()); err != nil {
		return nil, errors.Wrap(err, "storing image")
	}

	image.FilePath = s.store.URL(baseURL, key)

	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}
