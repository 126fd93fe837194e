package entity

import "time"

// User representa un usuario del dashboard. Su Name es el identificador de actor
// (performed_by) que acompaña a cada movimiento de inventario.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
