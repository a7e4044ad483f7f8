package api

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"onthegomusic/internal/auth"
	"onthegomusic/internal/config"
	"onthegomusic/internal/middleware"
)

// Deps is everything the router needs.
type Deps struct {
	Config    *config.Config
	Usuarios  UsuarioStore
	Productos ProductoStore
	Boletas   BoletaStore
	Health    Pinger
	Hasher    PasswordHasher
	Tokens    *auth.TokenIssuer
	Policy    auth.Policy
	Log       logrus.FieldLogger
}

// NewRouter mounts every route under cfg.APIPrefix.
func NewRouter(d Deps) *gin.Engine {
	if d.Policy == nil {
		d.Policy = auth.DefaultPolicy()
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Log), cors.New(corsConfig(d.Config.CORSOrigins)))
	r.NoRoute(func(c *gin.Context) { respondError(c, http.StatusNotFound, "route not found") })

	api := r.Group(d.Config.APIPrefix)

	// route registers h behind the policy guard; token verification is only
	// attached when the action is not public.
	route := func(method, path string, action auth.Action, h gin.HandlerFunc) {
		var chain []gin.HandlerFunc
		if !d.Policy.IsPublic(action) {
			chain = append(chain, middleware.VerifyToken(d.Tokens))
		}
		chain = append(chain, middleware.Guard(d.Policy, action), h)
		api.Handle(method, path, chain...)
	}

	api.GET("/health", HealthHandler(d.Health))

	// Auth
	api.POST("/login", LoginHandler(d.Usuarios, d.Hasher, d.Tokens))
	api.POST("/register", RegisterHandler(d.Usuarios, d.Hasher))

	// Usuarios
	route(http.MethodGet, "/usuarios", auth.Action{Resource: auth.ResourceUsuarios, Operation: auth.OpList}, ListUsuariosHandler(d.Usuarios))
	route(http.MethodGet, "/usuarios/:id", auth.Action{Resource: auth.ResourceUsuarios, Operation: auth.OpGet}, GetUsuarioHandler(d.Usuarios))
	route(http.MethodPost, "/usuarios", auth.Action{Resource: auth.ResourceUsuarios, Operation: auth.OpCreate}, CreateUsuarioHandler(d.Usuarios, d.Hasher))
	route(http.MethodPut, "/usuarios/:id", auth.Action{Resource: auth.ResourceUsuarios, Operation: auth.OpUpdate}, UpdateUsuarioHandler(d.Usuarios, d.Hasher))
	route(http.MethodDelete, "/usuarios/:id", auth.Action{Resource: auth.ResourceUsuarios, Operation: auth.OpDelete}, DeleteUsuarioHandler(d.Usuarios))

	// Productos
	route(http.MethodGet, "/productos", auth.Action{Resource: auth.ResourceProductos, Operation: auth.OpList}, ListProductosHandler(d.Productos))
	route(http.MethodGet, "/productos/:id", auth.Action{Resource: auth.ResourceProductos, Operation: auth.OpGet}, GetProductoHandler(d.Productos))
	route(http.MethodPost, "/productos", auth.Action{Resource: auth.ResourceProductos, Operation: auth.OpCreate}, CreateProductoHandler(d.Productos))
	route(http.MethodPut, "/productos/:id", auth.Action{Resource: auth.ResourceProductos, Operation: auth.OpUpdate}, UpdateProductoHandler(d.Productos))
	route(http.MethodDelete, "/productos/:id", auth.Action{Resource: auth.ResourceProductos, Operation: auth.OpDelete}, DeleteProductoHandler(d.Productos))

	// Boletas
	route(http.MethodGet, "/boletas", auth.Action{Resource: auth.ResourceBoletas, Operation: auth.OpList}, ListBoletasHandler(d.Boletas, d.Usuarios))
	route(http.MethodGet, "/boletas/:id", auth.Action{Resource: auth.ResourceBoletas, Operation: auth.OpGet}, GetBoletaHandler(d.Boletas, d.Usuarios))
	route(http.MethodPost, "/boletas", auth.Action{Resource: auth.ResourceBoletas, Operation: auth.OpCreate}, CreateBoletaHandler(d.Boletas))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", middleware.HeaderXRequestID},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
