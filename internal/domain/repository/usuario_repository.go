package repository

import "github.com/gestium/gestium-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	GetByEmailAndEmpresa(email, empresaID string) (*entity.Usuario, error)
	Update(usuario *entity.Usuario) error
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Usuario, error)
}
