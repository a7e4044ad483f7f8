package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EstadoBoleta is the lifecycle state of a receipt.
type EstadoBoleta string

const (
	EstadoEmitida    EstadoBoleta = "Emitida"
	EstadoPagada     EstadoBoleta = "Pagada"
	EstadoDespachada EstadoBoleta = "Despachada"
)

// Valid reports whether e is one of the known states.
func (e EstadoBoleta) Valid() bool {
	switch e {
	case EstadoEmitida, EstadoPagada, EstadoDespachada:
		return true
	}
	return false
}

// BoletaItem is a line of a receipt. Titulo and Precio are snapshots taken at
// checkout and do not follow later product edits.
type BoletaItem struct {
	ProductoID primitive.ObjectID `bson:"productoId,omitempty" json:"productoId"`
	Titulo     string             `bson:"titulo" json:"titulo"`
	Precio     float64            `bson:"precio" json:"precio" validate:"gte=0"`
	Cantidad   int                `bson:"cantidad" json:"cantidad" validate:"gte=1"`
}

// Boleta is a sales receipt as stored: Usuario is a reference to the buyer.
type Boleta struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fecha   time.Time          `bson:"fecha" json:"fecha"`
	Total   float64            `bson:"total" json:"total"`
	Estado  EstadoBoleta       `bson:"estado" json:"estado"`
	Usuario primitive.ObjectID `bson:"usuario" json:"usuario"`
	Items   []BoletaItem       `bson:"items" json:"items"`
}

// BoletaDetalle is a receipt with its buyer expanded. Usuario is nil when the
// referenced account no longer exists.
type BoletaDetalle struct {
	ID      primitive.ObjectID `json:"id"`
	Fecha   time.Time          `json:"fecha"`
	Total   float64            `json:"total"`
	Estado  EstadoBoleta       `json:"estado"`
	Usuario *Usuario           `json:"usuario"`
	Items   []BoletaItem       `json:"items"`
}

// BoletaInput is the checkout body.
type BoletaInput struct {
	Fecha   *time.Time         `json:"fecha"`
	Total   float64            `json:"total" validate:"gt=0"`
	Estado  EstadoBoleta       `json:"estado" validate:"omitempty,estado"`
	Usuario primitive.ObjectID `json:"usuario" validate:"required"`
	Items   []BoletaItem       `json:"items" validate:"dive"`
}

// Boleta builds the record to persist, stamping now when no date was sent.
func (in BoletaInput) Boleta(now time.Time) Boleta {
	fecha := now
	if in.Fecha != nil && !in.Fecha.IsZero() {
		fecha = *in.Fecha
	}
	estado := in.Estado
	if estado == "" {
		estado = EstadoEmitida
	}
	items := in.Items
	if items == nil {
		items = []BoletaItem{}
	}
	return Boleta{
		Fecha:   fecha.UTC(),
		Total:   in.Total,
		Estado:  estado,
		Usuario: in.Usuario,
		Items:   items,
	}
}

// ItemsTotal sums precio x cantidad over the items.
func ItemsTotal(items []BoletaItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Precio).Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}
	return sum
}

// UsuarioIDs returns the distinct buyer references of boletas, in first-seen order.
func UsuarioIDs(boletas []Boleta) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(boletas))
	ids := make([]primitive.ObjectID, 0, len(boletas))
	for _, b := range boletas {
		if _, ok := seen[b.Usuario]; ok {
			continue
		}
		seen[b.Usuario] = struct{}{}
		ids = append(ids, b.Usuario)
	}
	return ids
}

// ExpandBoletas merges fetched buyers into their receipts.
func ExpandBoletas(boletas []Boleta, usuarios []Usuario) []BoletaDetalle {
	byID := make(map[primitive.ObjectID]*Usuario, len(usuarios))
	for i := range usuarios {
		byID[usuarios[i].ID] = &usuarios[i]
	}
	out := make([]BoletaDetalle, len(boletas))
	for i, b := range boletas {
		out[i] = BoletaDetalle{
			ID:      b.ID,
			Fecha:   b.Fecha,
			Total:   b.Total,
			Estado:  b.Estado,
			Usuario: byID[b.Usuario],
			Items:   b.Items,
		}
	}
	return out
}
