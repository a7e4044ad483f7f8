package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthegomusic/internal/domain"
)

// ListUsuariosHandler returns every user.
func ListUsuariosHandler(usuarios UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := usuarios.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetUsuarioHandler returns one user.
func GetUsuarioHandler(usuarios UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		u, err := usuarios.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// CreateUsuarioHandler creates a user with an explicit role (cliente when omitted).
func CreateUsuarioHandler(usuarios UsuarioStore, hasher PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.UsuarioInput
		if !bindJSON(c, &in) {
			return
		}
		createUsuario(c, usuarios, hasher, in)
	}
}

// UpdateUsuarioHandler merges the fields present in the body onto the user.
func UpdateUsuarioHandler(usuarios UsuarioStore, hasher PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var patch domain.UsuarioPatch
		if !bindJSON(c, &patch) {
			return
		}
		if err := domain.ValidateUsuarioPatch(patch); err != nil {
			fail(c, err)
			return
		}
		if patch.Password != nil {
			hash, err := hasher.Hash(*patch.Password)
			if err != nil {
				fail(c, err)
				return
			}
			patch.Password = &hash
		}
		u, err := usuarios.Update(c.Request.Context(), id, patch)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// DeleteUsuarioHandler removes a user. Their receipts are kept.
func DeleteUsuarioHandler(usuarios UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := usuarios.Delete(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
