package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"onthegomusic/internal/auth"
	"onthegomusic/internal/domain"
	"onthegomusic/internal/middleware"
	"onthegomusic/internal/store"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// LoginResponse carries the password-less user and a bearer token.
type LoginResponse struct {
	Usuario domain.Usuario `json:"usuario"`
	Token   string         `json:"token"`
}

// LoginHandler checks the credentials and issues a token.
func LoginHandler(usuarios UsuarioStore, hasher PasswordHasher, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		if req.Correo == "" || req.Password == "" {
			respondError(c, http.StatusBadRequest, "correo and password are required")
			return
		}

		u, err := usuarios.FindByCorreo(c.Request.Context(), req.Correo)
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "user does not exist")
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		if !hasher.Check(req.Password, u.Password) {
			respondError(c, http.StatusUnauthorized, "wrong password")
			return
		}

		token, err := tokens.Issue(*u)
		if err != nil {
			fail(c, err)
			return
		}
		u.Password = ""
		middleware.GetLogger(c).WithFields(logrus.Fields{"usuario": u.ID.Hex(), "rol": u.Rol}).Info("login")
		c.JSON(http.StatusOK, LoginResponse{Usuario: *u, Token: token})
	}
}

// RegisterHandler creates a customer account. Any role in the body is ignored.
func RegisterHandler(usuarios UsuarioStore, hasher PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.UsuarioInput
		if !bindJSON(c, &in) {
			return
		}
		in.Rol = domain.RolCliente
		createUsuario(c, usuarios, hasher, in)
	}
}

func createUsuario(c *gin.Context, usuarios UsuarioStore, hasher PasswordHasher, in domain.UsuarioInput) {
	if err := domain.ValidateUsuario(in); err != nil {
		fail(c, err)
		return
	}
	u := in.Usuario()
	hash, err := hasher.Hash(u.Password)
	if err != nil {
		fail(c, err)
		return
	}
	u.Password = hash
	if err := usuarios.Create(c.Request.Context(), &u); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
