package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
