package dto

import (
	"mime/multipart"
	"testing"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryToOptions(t *testing.T) {
	q := ListQuery{FilterOn: "Name", FilterQuery: "well", SortBy: "name", IsAscending: "false", PageNumber: 2, PageSize: 3}

	opts := q.ToOptions()
	assert.Equal(t, "Name", opts.FilterOn)
	assert.Equal(t, "well", opts.FilterQuery)
	assert.False(t, opts.Ascending)
	assert.Equal(t, 3, opts.Offset())
}

func TestListQueryAscending(t *testing.T) {
	assert.True(t, (&ListQuery{}).Ascending())
	assert.True(t, (&ListQuery{IsAscending: "true"}).Ascending())
	assert.False(t, (&ListQuery{IsAscending: "false"}).Ascending())
	assert.False(t, (&ListQuery{IsAscending: "0"}).Ascending())

	assert.Error(t, (&ListQuery{IsAscending: "sideways"}).Validate())
}

func TestCreateRegionRequestValidate(t *testing.T) {
	require.NoError(t, (&CreateRegionRequest{Code: "WLG", Name: "Wellington Region"}).Validate())

	fieldErrors := validation.FieldErrors((&CreateRegionRequest{Code: "WELL"}).Validate())
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "code", Error: "must be exactly 3 characters"},
		{Field: "name", Error: "is required"},
	}, fieldErrors)
}

func TestCreateWalkRequestValidate(t *testing.T) {
	fieldErrors := validation.FieldErrors((&CreateWalkRequest{}).Validate())

	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "lengthInKm", "regionId", "difficultyId"}, fields)
}

func TestUploadImageRequestAggregatesErrors(t *testing.T) {
	req := &UploadImageRequest{
		FileName: "payload",
		File:     &multipart.FileHeader{Filename: "payload.exe", Size: 11 * 1024 * 1024},
	}

	fieldErrors := validation.FieldErrors(req.Validate())
	assert.Equal(t, []errs.FieldError{
		{Field: "file", Error: UnsupportedExtensionMessage},
		{Field: "file", Error: FileTooLargeMessage},
	}, fieldErrors)
}

func TestUploadImageRequestExtensionIsCaseInsensitive(t *testing.T) {
	req := &UploadImageRequest{
		FileName: "tongariro",
		File:     &multipart.FileHeader{Filename: "Tongariro.JPG", Size: MaxImageSize},
	}

	require.NoError(t, req.Validate())
	assert.Equal(t, ".jpg", req.ToEntity().FileExtension)
}

func TestUploadImageRequestRejectsPathsAndMissingFile(t *testing.T) {
	fieldErrors := validation.FieldErrors((&UploadImageRequest{FileName: "../etc/passwd"}).Validate())

	assert.Equal(t, []errs.FieldError{
		{Field: "fileName", Error: `must not contain any of: /\`},
		{Field: "file", Error: "is required"},
	}, fieldErrors)
}

func TestRegisterRequestRejectsUnknownRole(t *testing.T) {
	err := (&RegisterRequest{Username: "walker@example.com", Password: "Secret1!", Roles: []string{"Admin"}}).Validate()
	require.Error(t, err)

	fieldErrors := validation.FieldErrors(err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "must be one of: Reader Writer", fieldErrors[0].Error)
}
