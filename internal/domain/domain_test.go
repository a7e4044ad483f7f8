package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUsuarioInput_Defaults(t *testing.T) {
	u := UsuarioInput{Rut: " 1-9 ", Correo: "  Ana@Example.CL "}.Usuario()
	assert.Equal(t, RolCliente, u.Rol)
	assert.Equal(t, "ana@example.cl", u.Correo)
	assert.Equal(t, "1-9", u.Rut)
}

func TestNormalizeRut(t *testing.T) {
	assert.Equal(t, "1-9", NormalizeRut(" 1-9 "))
	assert.Equal(t, "1-9", NormalizeRut("1-9"))
	assert.Equal(t, NormalizeRut(" 12.345.678-5\t"), UsuarioInput{Rut: "12.345.678-5"}.Usuario().Rut)
}

func TestBoletaInput_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := BoletaInput{Total: 10, Usuario: primitive.NewObjectID()}.Boleta(now)
	assert.Equal(t, now, b.Fecha)
	assert.Equal(t, EstadoEmitida, b.Estado)
	assert.NotNil(t, b.Items)

	fecha := now.Add(-time.Hour)
	b = BoletaInput{Fecha: &fecha, Estado: EstadoPagada}.Boleta(now)
	assert.Equal(t, fecha, b.Fecha)
	assert.Equal(t, EstadoPagada, b.Estado)
}

func TestProducto_StockBajo(t *testing.T) {
	assert.True(t, Producto{Stock: 5, StockCritico: 5}.StockBajo())
	assert.False(t, Producto{Stock: 6, StockCritico: 5}.StockBajo())
}

func TestExpandBoletas(t *testing.T) {
	ana := Usuario{ID: primitive.NewObjectID(), Nombre: "Ana"}
	beto := Usuario{ID: primitive.NewObjectID(), Nombre: "Beto"}
	gone := primitive.NewObjectID()

	boletas := []Boleta{
		{ID: primitive.NewObjectID(), Usuario: ana.ID, Total: 1},
		{ID: primitive.NewObjectID(), Usuario: beto.ID, Total: 2},
		{ID: primitive.NewObjectID(), Usuario: ana.ID, Total: 3},
		{ID: primitive.NewObjectID(), Usuario: gone, Total: 4},
	}

	assert.Equal(t, []primitive.ObjectID{ana.ID, beto.ID, gone}, UsuarioIDs(boletas))

	out := ExpandBoletas(boletas, []Usuario{beto, ana})
	assert.Len(t, out, 4)
	assert.Equal(t, "Ana", out[0].Usuario.Nombre)
	assert.Equal(t, "Beto", out[1].Usuario.Nombre)
	assert.Equal(t, "Ana", out[2].Usuario.Nombre)
	assert.Nil(t, out[3].Usuario)
	assert.Equal(t, float64(4), out[3].Total)
}

func TestRolAndEstadoValid(t *testing.T) {
	for _, r := range []Rol{RolAdmin, RolVendedor, RolCliente} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Rol("Admin").Valid())
	assert.True(t, EstadoDespachada.Valid())
	assert.False(t, EstadoBoleta("emitida").Valid())
}

func TestProducto_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Producto{Codigo: "PROD-001", Stock: 2, StockCritico: 5})
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"codigo":"PROD-001"`)
	assert.Contains(t, string(b), `"stockBajo":true`)

	var back Producto
	assert.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "PROD-001", back.Codigo)
}
