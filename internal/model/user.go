package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleReader = "Reader"
	RoleWriter = "Writer"
)

// Fixed ids of the seeded roles.
var (
	ReaderRoleID = uuid.MustParse("a71a55d6-99d7-4123-b4e0-1218ecb90e3e")
	WriterRoleID = uuid.MustParse("4874c8b4-c9a3-45df-9d91-79dd1c965574")
)

// Fixed ids of the seeded difficulties.
var (
	EasyDifficultyID   = uuid.MustParse("54466f17-02af-48e7-8ed6-5a4a8f6e0d1a")
	MediumDifficultyID = uuid.MustParse("ea294873-7a8c-4c0f-bfa7-a2eb492cbf8c")
	HardDifficultyID   = uuid.MustParse("f808ddcd-b5e5-4d80-b732-1ca523e48434")
)

type User struct {
	Base
	// Unique on LOWER(username); the expression index is created by migration.
	Username     string `gorm:"size:256;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	Roles        []Role `gorm:"many2many:user_roles"`
}

type Role struct {
	Base
	Name string `gorm:"size:50;not null;uniqueIndex:roles_name_key"`
}

// RoleNames lists the names of u's roles in stored order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// SeedRoles are the roles the migrations insert.
func SeedRoles() []Role {
	return []Role{
		{Base: Base{ID: ReaderRoleID}, Name: RoleReader},
		{Base: Base{ID: WriterRoleID}, Name: RoleWriter},
	}
}

// SeedDifficulties are the difficulties the migrations insert.
func SeedDifficulties() []Difficulty {
	return []Difficulty{
		{Base: Base{ID: EasyDifficultyID}, Name: "Easy"},
		{Base: Base{ID: MediumDifficultyID}, Name: "Medium"},
		{Base: Base{ID: HardDifficultyID}, Name: "Hard"},
	}
}
