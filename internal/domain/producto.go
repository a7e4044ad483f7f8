package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStockCritico is the threshold applied when a product omits stockCritico.
const DefaultStockCritico = 5

// Producto is a catalog item.
type Producto struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Codigo       string             `bson:"codigo" json:"codigo"`
	Title        string             `bson:"title" json:"title"`
	Descripcion  string             `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Stock        int                `bson:"stock" json:"stock"`
	StockCritico int                `bson:"stockCritico" json:"stockCritico"`
	Categoria    string             `bson:"categoria" json:"categoria"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Miniatura1   string             `bson:"miniatura1,omitempty" json:"miniatura1,omitempty"`
	Miniatura2   string             `bson:"miniatura2,omitempty" json:"miniatura2,omitempty"`
}

// StockBajo reports whether the stock has reached the critical threshold.
func (p Producto) StockBajo() bool {
	return p.Stock <= p.StockCritico
}

// MarshalJSON adds the derived stockBajo flag.
func (p Producto) MarshalJSON() ([]byte, error) {
	type plain Producto
	return json.Marshal(struct {
		plain
		StockBajo bool `json:"stockBajo"`
	}{plain(p), p.StockBajo()})
}

// ProductoInput is the body accepted when creating a product.
type ProductoInput struct {
	Codigo       string  `json:"codigo" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Descripcion  string  `json:"descripcion"`
	Price        float64 `json:"price" validate:"gt=0"`
	Stock        *int    `json:"stock" validate:"required,gte=0"`
	StockCritico *int    `json:"stockCritico" validate:"omitnil,gte=0"`
	Categoria    string  `json:"categoria" validate:"required"`
	Image        string  `json:"image"`
	Miniatura1   string  `json:"miniatura1"`
	Miniatura2   string  `json:"miniatura2"`
}

// Producto builds the record to persist. Call only after ValidateProducto.
func (in ProductoInput) Producto() Producto {
	critico := DefaultStockCritico
	if in.StockCritico != nil {
		critico = *in.StockCritico
	}
	var stock int
	if in.Stock != nil {
		stock = *in.Stock
	}
	return Producto{
		Codigo:       in.Codigo,
		Title:        in.Title,
		Descripcion:  in.Descripcion,
		Price:        in.Price,
		Stock:        stock,
		StockCritico: critico,
		Categoria:    in.Categoria,
		Image:        in.Image,
		Miniatura1:   in.Miniatura1,
		Miniatura2:   in.Miniatura2,
	}
}

// ProductoPatch is a partial update; nil fields are left untouched.
type ProductoPatch struct {
	Codigo       *string  `json:"codigo" validate:"omitnil,min=1"`
	Title        *string  `json:"title" validate:"omitnil,min=1"`
	Descripcion  *string  `json:"descripcion"`
	Price        *float64 `json:"price" validate:"omitnil,gt=0"`
	Stock        *int     `json:"stock" validate:"omitnil,gte=0"`
	StockCritico *int     `json:"stockCritico" validate:"omitnil,gte=0"`
	Categoria    *string  `json:"categoria" validate:"omitnil,min=1"`
	Image        *string  `json:"image"`
	Miniatura1   *string  `json:"miniatura1"`
	Miniatura2   *string  `json:"miniatura2"`
}

// Empty reports whether the patch changes nothing.
func (p ProductoPatch) Empty() bool {
	return p.Codigo == nil && p.Title == nil && p.Descripcion == nil && p.Price == nil &&
		p.Stock == nil && p.StockCritico == nil && p.Categoria == nil && p.Image == nil &&
		p.Miniatura1 == nil && p.Miniatura2 == nil
}
