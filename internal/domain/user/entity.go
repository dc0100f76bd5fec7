package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role representa o papel do usuário no marketplace
type Role string

// Constantes para Role
const (
	RoleManager   Role = "manager"   // Gestor de estoque (vendedor)
	RoleMiddleman Role = "middleman" // Intermediário (comprador)
)

// Valid verifica se o papel é conhecido
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleMiddleman
}

// User representa um usuário do sistema
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role       `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsManager verifica se o usuário é um gestor de estoque
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsMiddleman verifica se o usuário é um intermediário
func (u *User) IsMiddleman() bool {
	return u.Role == RoleMiddleman
}
