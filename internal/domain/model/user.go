package model

import "time"

// Role é o papel de um usuário
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User representa um usuário autenticado por identidade externa
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	OpenID       string    `gorm:"uniqueIndex;size:64;not null" json:"openId"`
	Name         *string   `json:"name"`
	Email        *string   `gorm:"size:320" json:"email"`
	LoginMethod  *string   `gorm:"size:64" json:"loginMethod"`
	Role         Role      `gorm:"size:10;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `gorm:"not null" json:"lastSignedIn"`
}

// TableName define o nome da tabela
func (User) TableName() string {
	return "users"
}

// IsAdmin indica se o usuário tem papel admin
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UpsertUser descreve os campos conhecidos de um login. Campos nil não sobrescrevem valores salvos.
type UpsertUser struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *Role
	LastSignedIn *time.Time
}
