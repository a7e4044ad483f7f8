package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func kinds(t *testing.T, err error) map[string]Kind {
	t.Helper()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	out := make(map[string]Kind, len(verrs))
	for _, fe := range verrs {
		out[fe.Field] = fe.Kind
	}
	return out
}

func validUsuario() UsuarioInput {
	return UsuarioInput{
		Rut:       "11.111.111-1",
		Nombre:    "Ana",
		Apellidos: "Pérez Soto",
		Correo:    "ana@example.cl",
		Password:  "clave123",
	}
}

func TestValidateUsuario(t *testing.T) {
	assert.NoError(t, ValidateUsuario(validUsuario()))

	in := validUsuario()
	in.Rut = ""
	in.Correo = "no-es-correo"
	in.Rol = "superuser"
	got := kinds(t, ValidateUsuario(in))
	assert.Equal(t, KindRequired, got["rut"])
	assert.Equal(t, KindInvalid, got["correo"])
	assert.Equal(t, KindUnknownRole, got["rol"])
	assert.Len(t, got, 3)
}

func TestValidateUsuarioPatch(t *testing.T) {
	assert.NoError(t, ValidateUsuarioPatch(UsuarioPatch{}))

	rol := RolVendedor
	assert.NoError(t, ValidateUsuarioPatch(UsuarioPatch{Nombre: strPtr("Beto"), Rol: &rol}))

	bad := Rol("root")
	got := kinds(t, ValidateUsuarioPatch(UsuarioPatch{Nombre: strPtr(""), Rol: &bad, Correo: strPtr("x")}))
	assert.Equal(t, KindRequired, got["nombre"])
	assert.Equal(t, KindUnknownRole, got["rol"])
	assert.Equal(t, KindInvalid, got["correo"])
}

func TestValidateProducto(t *testing.T) {
	in := ProductoInput{
		Codigo:    "PROD-001",
		Title:     "Guitarra Eléctrica",
		Price:     250000,
		Stock:     intPtr(0),
		Categoria: "Cuerdas",
	}
	require.NoError(t, ValidateProducto(in))
	assert.Equal(t, DefaultStockCritico, in.Producto().StockCritico)

	got := kinds(t, ValidateProducto(ProductoInput{Price: -1, StockCritico: intPtr(-2)}))
	assert.Equal(t, KindRequired, got["codigo"])
	assert.Equal(t, KindRequired, got["title"])
	assert.Equal(t, KindRequired, got["categoria"])
	assert.Equal(t, KindRequired, got["stock"])
	assert.Equal(t, KindNotPositive, got["price"])
	assert.Equal(t, KindNegative, got["stockCritico"])
}

func TestValidateProductoPatch(t *testing.T) {
	assert.NoError(t, ValidateProductoPatch(ProductoPatch{Stock: intPtr(0), Descripcion: strPtr("")}))

	got := kinds(t, ValidateProductoPatch(ProductoPatch{Price: floatPtr(0), Stock: intPtr(-1)}))
	assert.Equal(t, KindNotPositive, got["price"])
	assert.Equal(t, KindNegative, got["stock"])
}

func TestValidateBoleta(t *testing.T) {
	owner := primitive.NewObjectID()
	in := BoletaInput{
		Total:   500100,
		Usuario: owner,
		Items: []BoletaItem{
			{Titulo: "Guitarra", Precio: 250000, Cantidad: 2},
			{Titulo: "Púa", Precio: 0.1, Cantidad: 1000},
		},
	}
	assert.NoError(t, ValidateBoleta(in))

	in.Total = 500000
	got := kinds(t, ValidateBoleta(in))
	assert.Equal(t, KindTotalMismatch, got["total"])

	got = kinds(t, ValidateBoleta(BoletaInput{
		Estado: "Perdida",
		Items:  []BoletaItem{{Precio: -1, Cantidad: 0}},
	}))
	assert.Equal(t, KindNotPositive, got["total"])
	assert.Equal(t, KindRequired, got["usuario"])
	assert.Equal(t, KindUnknownStatus, got["estado"])
	assert.Equal(t, KindNegative, got["items[0].precio"])
	assert.Equal(t, KindNotPositive, got["items[0].cantidad"])
}

func TestValidateBoleta_FloatTotals(t *testing.T) {
	// Client-side float sums carry binary noise below the cent.
	total := 0.1
	total += 0.1
	total += 0.1
	in := BoletaInput{
		Total:   total,
		Usuario: primitive.NewObjectID(),
		Items:   []BoletaItem{{Titulo: "Púa", Precio: 0.1, Cantidad: 3}},
	}
	assert.NotEqual(t, 0.3, in.Total)
	assert.NoError(t, ValidateBoleta(in))

	in.Total = 0.31
	got := kinds(t, ValidateBoleta(in))
	assert.Equal(t, KindTotalMismatch, got["total"])
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{{Field: "rut", Kind: KindRequired}, {Field: "price", Kind: KindNotPositive}}
	assert.Equal(t, "validation failed: rut: required, price: not_positive", err.Error())
}
