package dto

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// MaxImageSize is the largest accepted upload, 10 MiB.
	MaxImageSize = 10 * 1024 * 1024

	UnsupportedExtensionMessage = "Unsupported file extension"
	FileTooLargeMessage         = "File is more than 10mb. Please upload a smaller size."
)

// AllowedImageExtensions are compared case-insensitively.
var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".pdf"}

// UploadImageRequest is the multipart form of POST /images/upload.
type UploadImageRequest struct {
	FileName        string `form:"fileName" validate:"required,max=255,excludesall=/\\"`
	FileDescription string `form:"fileDescription" validate:"max=1000"`

	File *multipart.FileHeader `form:"-"`
}

// BindFiles reads the "file" part. A missing part is left nil for Validate to report.
func (r *UploadImageRequest) BindFiles(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil
		}
		return errors.Wrap(err, "reading multipart file")
	}
	r.File = file
	return nil
}

// Validate reports every problem at once: tag rules, missing file,
// extension and size.
func (r *UploadImageRequest) Validate() error {
	problems := validation.Collect(validation.Struct(r))

	if r.File == nil {
		problems.Add("file", "is required")
		return problems.OrNil()
	}

	if !slices.Contains(AllowedImageExtensions, r.Extension()) {
		problems.Add("file", UnsupportedExtensionMessage)
	}

	if r.File.Size > MaxImageSize {
		problems.Add("file", FileTooLargeMessage)
	}

	return problems.OrNil()
}

// Extension is the lowercased extension of the uploaded file name.
func (r *UploadImageRequest) Extension() string {
	if r.File == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(r.File.Filename))
}

// ContentType is the part's declared type, falling back to a binary stream.
func (r *UploadImageRequest) ContentType() string {
	if r.File != nil {
		if ct := r.File.Header.Get(echo.HeaderContentType); ct != "" {
			return ct
		}
	}
	return echo.MIMEOctetStream
}

func (r *UploadImageRequest) ToEntity() *model.Image {
	img := &model.Image{
		FileName:      r.FileName,
		FileExtension: r.Extension(),
	}
	if r.File != nil {
		img.FileSizeInBytes = r.File.Size
	}
	if r.FileDescription != "" {
		description := r.FileDescription
		img.FileDescription = &description
	}
	return img
}

type ImageResponse struct {
	ID              uuid.UUID `json:"id"`
	FileName        string    `json:"fileName"`
	FileExtension   string    `json:"fileExtension"`
	FileDescription *string   `json:"fileDescription"`
	FileSizeInBytes int64     `json:"fileSizeInBytes"`
	FilePath        string    `json:"filePath"`
}

func FromImage(img *model.Image) ImageResponse {
	return ImageResponse{
		ID:              img.ID,
		FileName:        img.FileName,
		FileExtension:   img.FileExtension,
		FileDescription: img.FileDescription,
		FileSizeInBytes: img.FileSizeInBytes,
		FilePath:        img.FilePath,
	}
}
