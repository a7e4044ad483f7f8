package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"onthegomusic/internal/domain"
	"onthegomusic/internal/middleware"
)

// ListBoletasHandler returns every receipt with its buyer expanded: receipts
// first, then one batch read for the referenced users, then a merge.
func ListBoletasHandler(boletas BoletaStore, usuarios UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		list, err := boletas.List(ctx)
		if err != nil {
			fail(c, err)
			return
		}
		buyers, err := usuarios.FindByIDs(ctx, domain.UsuarioIDs(list))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, domain.ExpandBoletas(list, buyers))
	}
}

// GetBoletaHandler returns one receipt with its buyer expanded.
func GetBoletaHandler(boletas BoletaStore, usuarios UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		b, err := boletas.Get(ctx, id)
		if err != nil {
			fail(c, err)
			return
		}
		one := []domain.Boleta{*b}
		buyers, err := usuarios.FindByIDs(ctx, domain.UsuarioIDs(one))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, domain.ExpandBoletas(one, buyers)[0])
	}
}

// CreateBoletaHandler records a checkout. Stock is not touched.
func CreateBoletaHandler(boletas BoletaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.BoletaInput
		if !bindJSON(c, &in) {
			return
		}
		if err := domain.ValidateBoleta(in); err != nil {
			fail(c, err)
			return
		}
		b := in.Boleta(time.Now())
		if err := boletas.Create(c.Request.Context(), &b); err != nil {
			fail(c, err)
			return
		}
		middleware.GetLogger(c).WithFields(logrus.Fields{
			"boleta":  b.ID.Hex(),
			"usuario": b.Usuario.Hex(),
			"total":   b.Total,
			"items":   len(b.Items),
		}).Info("boleta emitida")
		c.JSON(http.StatusCreated, b)
	}
}
