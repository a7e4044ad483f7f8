package api

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onthegomusic/internal/domain"
)

// UsuarioStore is the persistence the user handlers need.
type UsuarioStore interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Usuario, error)
	FindByCorreo(ctx context.Context, correo string) (*domain.Usuario, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Usuario, error)
	Create(ctx context.Context, u *domain.Usuario) error
	Update(ctx context.Context, id primitive.ObjectID, p domain.UsuarioPatch) (*domain.Usuario, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductoStore is the persistence the product handlers need.
type ProductoStore interface {
	List(ctx context.Context) ([]domain.Producto, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Producto, error)
	Create(ctx context.Context, p *domain.Producto) error
	Update(ctx context.Context, id primitive.ObjectID, p domain.ProductoPatch) (*domain.Producto, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BoletaStore is the persistence the receipt handlers need.
type BoletaStore interface {
	List(ctx context.Context) ([]domain.Boleta, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Boleta, error)
	Create(ctx context.Context, b *domain.Boleta) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
