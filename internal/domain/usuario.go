// Package domain holds the storefront records and the rules applied to them
// before anything reaches the document store.
package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rol is the authorization role carried by a Usuario.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolVendedor Rol = "vendedor"
	RolCliente  Rol = "cliente"
)

// Valid reports whether r is one of the known roles.
func (r Rol) Valid() bool {
	switch r {
	case RolAdmin, RolVendedor, RolCliente:
		return true
	}
	return false
}

// Usuario is a registered account. Password holds a bcrypt hash and is never
// serialized to JSON.
type Usuario struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rut       string             `bson:"rut" json:"rut"`
	Nombre    string             `bson:"nombre" json:"nombre"`
	Apellidos string             `bson:"apellidos" json:"apellidos"`
	Correo    string             `bson:"correo" json:"correo"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Rol       Rol                `bson:"rol" json:"rol"`
	Region    string             `bson:"region,omitempty" json:"region,omitempty"`
	Comuna    string             `bson:"comuna,omitempty" json:"comuna,omitempty"`
	Direccion string             `bson:"direccion,omitempty" json:"direccion,omitempty"`
}

// UsuarioInput is the body accepted when creating a user.
type UsuarioInput struct {
	Rut       string `json:"rut" validate:"required"`
	Nombre    string `json:"nombre" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Correo    string `json:"correo" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Rol       Rol    `json:"rol" validate:"omitempty,rol"`
	Region    string `json:"region"`
	Comuna    string `json:"comuna"`
	Direccion string `json:"direccion"`
}

// Usuario builds the record to persist. The password is copied as given; the
// caller is expected to replace it with a hash. An empty role becomes cliente.
func (in UsuarioInput) Usuario() Usuario {
	rol := in.Rol
	if rol == "" {
		rol = RolCliente
	}
	return Usuario{
		Rut:       NormalizeRut(in.Rut),
		Nombre:    in.Nombre,
		Apellidos: in.Apellidos,
		Correo:    NormalizeCorreo(in.Correo),
		Password:  in.Password,
		Rol:       rol,
		Region:    in.Region,
		Comuna:    in.Comuna,
		Direccion: in.Direccion,
	}
}

// UsuarioPatch is a partial update; nil fields are left untouched.
type UsuarioPatch struct {
	Rut       *string `json:"rut" validate:"omitnil,min=1"`
	Nombre    *string `json:"nombre" validate:"omitnil,min=1"`
	Apellidos *string `json:"apellidos" validate:"omitnil,min=1"`
	Correo    *string `json:"correo" validate:"omitnil,email"`
	Password  *string `json:"password" validate:"omitnil,min=1"`
	Rol       *Rol    `json:"rol" validate:"omitnil,rol"`
	Region    *string `json:"region"`
	Comuna    *string `json:"comuna"`
	Direccion *string `json:"direccion"`
}

// Empty reports whether the patch changes nothing.
func (p UsuarioPatch) Empty() bool {
	return p.Rut == nil && p.Nombre == nil && p.Apellidos == nil && p.Correo == nil &&
		p.Password == nil && p.Rol == nil && p.Region == nil && p.Comuna == nil && p.Direccion == nil
}

// NormalizeRut trims surrounding whitespace from a rut.
func NormalizeRut(rut string) string {
	return strings.TrimSpace(rut)
}

// NormalizeCorreo trims and lower-cases an email so uniqueness is case-insensitive.
func NormalizeCorreo(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}
