// Package repository handles all interactions with the database.
//
// Every method takes the request context and runs on a GORM session bound
// to it, so a cancelled request cancels its queries.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// IsNotFound reports whether err means the looked-up row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFound annotates a miss with its table so sqlerr can name the entity
// if the error escapes unhandled.
func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, gorm.ErrRecordNotFound)
}
