package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// table describes how failures on one table read to a client.
type table struct {
	// entity is the singular domain name, e.g. "Region".
	entity string
	// duplicate replaces the generated message for unique violations.
	duplicate string
	// fields maps column names to request field names.
	fields map[string]string
}

// tables lists the schema created by the migrations. Unknown tables fall
// back to names derived from the table and column.
var tables = map[string]table{
	"regions": {
		entity:    "Region",
		duplicate: "Region already exists.",
		fields: map[string]string{
			"code":             "code",
			"name":             "name",
			"region_image_url": "regionImageUrl",
		},
	},
	"walks": {
		entity: "Walk",
		fields: map[string]string{
			"name":           "name",
			"description":    "description",
			"length_in_km":   "lengthInKm",
			"walk_image_url": "walkImageUrl",
			"region_id":      "regionId",
			"difficulty_id":  "difficultyId",
		},
	},
	"difficulties": {entity: "Difficulty"},
	"images": {
		entity: "Image",
		fields: map[string]string{
			"file_name":        "fileName",
			"file_description": "fileDescription",
		},
	},
	"users": {
		entity:    "User",
		duplicate: "Username is already taken.",
		fields:    map[string]string{"username": "username"},
	},
	"roles":      {entity: "Role"},
	"user_roles": {entity: "User role", fields: map[string]string{"role_id": "roles"}},
}

// tableNotFoundPattern picks the table out of a "table:<name>: ..." annotation
// left by the repositories.
var tableNotFoundPattern = regexp.MustCompile(`table:([a-z_]+):`)

func lookupTable(name string) table {
	if t, ok := tables[name]; ok {
		return t
	}
	return table{entity: singularEntity(name)}
}

// field returns the request field name of column, camelCasing unknown ones.
func (t table) field(column string) string {
	if name, ok := t.fields[column]; ok {
		return name
	}
	parts := strings.Split(column, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = cases.Title(language.English).String(parts[i])
	}
	return strings.Join(parts, "")
}

// singularEntity turns "regions" into "Region". Empty input becomes "Record".
func singularEntity(tableName string) string {
	if tableName == "" {
		return "Record"
	}
	if strings.HasSuffix(tableName, "ies") {
		tableName = strings.TrimSuffix(tableName, "ies") + "y"
	} else {
		tableName = strings.TrimSuffix(tableName, "s")
	}
	return humanizeText(tableName)
}

// humanizeText converts snake_case into Title Case.
//
//	"image_url" -> "Image Url"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// constraintColumn recovers the column from a Postgres default constraint
// name, "<table>_<column>_<suffix>", e.g. walks_region_id_fkey -> region_id.
// It falls back to the "unique_<table>_<column>" convention.
func constraintColumn(tableName, constraintName string, suffixes ...string) string {
	if constraintName == "" {
		return ""
	}

	if tableName != "" && strings.HasPrefix(constraintName, tableName+"_") {
		rest := strings.TrimPrefix(constraintName, tableName+"_")
		for _, suffix := range suffixes {
			if column, ok := strings.CutSuffix(rest, "_"+suffix); ok && column != "" {
				return column
			}
		}
	}

	if rest, ok := strings.CutPrefix(constraintName, "unique_"); ok {
		if tableName != "" {
			if column, ok := strings.CutPrefix(rest, tableName+"_"); ok {
				return column
			}
		}
		parts := strings.Split(rest, "_")
		if len(parts) >= 2 {
			return parts[len(parts)-1]
		}
	}

	return ""
}

// referencedTable guesses the parent table of a foreign key column:
// region_id -> regions, difficulty_id -> difficulties.
func referencedTable(column string) string {
	base, ok := strings.CutSuffix(column, "_id")
	if !ok || base == "" {
		return ""
	}
	if strings.HasSuffix(base, "y") {
		return strings.TrimSuffix(base, "y") + "ies"
	}
	return base + "s"
}

// fromPgError maps a constraint violation onto the same responses the
// services produce for the checks they run before writing, so a request
// that loses a race is answered like one that did not.
func fromPgError(sqlErr *Error) error {
	t := lookupTable(sqlErr.TableName)

	switch sqlErr.Code {
	case UniqueViolation:
		message := t.duplicate
		if message == "" {
			message = fmt.Sprintf("%s already exists.", t.entity)
			if column := constraintColumn(sqlErr.TableName, sqlErr.ConstraintName, "key", "ukey"); column != "" {
				message = fmt.Sprintf("A %s with this %s already exists.", t.entity, humanizeText(column))
			}
		}
		return errs.NewDuplicateError(t.entity, message)

	case ForeignKeyViolation:
		column := sqlErr.ColumnName
		if column == "" {
			column = constraintColumn(sqlErr.TableName, sqlErr.ConstraintName, "fkey")
		}
		if column == "" {
			code := errs.NotFoundCode("Record")
			return errs.NewBadRequestError("The referenced record does not exist.", false, &code, nil, nil)
		}
		parent := lookupTable(referencedTable(column)).entity
		return errs.NewValidationErrors(validation.FailedMessage, []errs.FieldError{
			{Field: t.field(column), Error: parent + " not found."},
		})

	case NotNullViolation:
		if sqlErr.ColumnName == "" {
			return errs.NewValidationErrors(validation.FailedMessage, nil)
		}
		return errs.NewValidationErrors(validation.FailedMessage, []errs.FieldError{
			{Field: t.field(sqlErr.ColumnName), Error: "is required"},
		})

	case CheckViolation:
		column := sqlErr.ColumnName
		if column == "" {
			column = constraintColumn(sqlErr.TableName, sqlErr.ConstraintName, "check")
		}
		if column == "" {
			return errs.NewValidationErrors("One or more values do not meet required conditions.", nil)
		}
		return errs.NewValidationErrors(validation.FailedMessage, []errs.FieldError{
			{Field: t.field(column), Error: "is invalid"},
		})
	}

	return errs.NewInternalServerError()
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError: constraint violations become the 400s the services
//     use for the same rule, anything else a 500
//   - If ErrNoRows / gorm.ErrRecordNotFound: "<Entity> not found." 404 when
//     the repository named the table, a generic 404 otherwise
//   - If gorm translated the error (ErrDuplicatedKey, ErrForeignKeyViolated): mapped to 400
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return fromPgError(ConvertPgError(pgerr))
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows), errors.Is(err, gorm.ErrRecordNotFound):
		if m := tableNotFoundPattern.FindStringSubmatch(err.Error()); m != nil {
			entity := lookupTable(m[1]).entity
			code := errs.NotFoundCode(entity)
			return errs.NewNotFoundError(entity+" not found.", true, &code)
		}
		return errs.NewNotFoundError("Resource not found.", false, nil)

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewDuplicateError("Record", "A record with this identifier already exists.")

	case errors.Is(err, gorm.ErrForeignKeyViolated):
		code := errs.NotFoundCode("Record")
		return errs.NewBadRequestError("The referenced record does not exist.", false, &code, nil, nil)
	}

	return errs.NewInternalServerError()
}
