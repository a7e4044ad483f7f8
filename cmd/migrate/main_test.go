package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onthegomusic/internal/config"
	"onthegomusic/internal/domain"
)

func TestAdminUsuario(t *testing.T) {
	first := adminUsuario(&config.Config{AdminCorreo: "Jefe@OTGM.cl", AdminRut: "admin:jefe@otgm.cl"}, "$2a$hash")
	assert.Equal(t, "jefe@otgm.cl", first.Correo)
	assert.Equal(t, "admin:jefe@otgm.cl", first.Rut)
	assert.Equal(t, domain.RolAdmin, first.Rol)
	assert.Equal(t, "$2a$hash", first.Password)

	second := adminUsuario(&config.Config{AdminCorreo: "otro@otgm.cl", AdminRut: "admin:otro@otgm.cl"}, "$2a$hash")
	assert.NotEqual(t, first.Rut, second.Rut)

	explicit := adminUsuario(&config.Config{AdminCorreo: "otro@otgm.cl", AdminRut: " 11.111.111-1 "}, "$2a$hash")
	assert.Equal(t, "11.111.111-1", explicit.Rut)
}
