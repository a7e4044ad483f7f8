package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthegomusic/internal/domain"
)

// ListProductosHandler returns the whole catalog.
func ListProductosHandler(productos ProductoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := productos.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetProductoHandler returns one product.
func GetProductoHandler(productos ProductoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		p, err := productos.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// CreateProductoHandler adds a product to the catalog.
func CreateProductoHandler(productos ProductoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ProductoInput
		if !bindJSON(c, &in) {
			return
		}
		if err := domain.ValidateProducto(in); err != nil {
			fail(c, err)
			return
		}
		p := in.Producto()
		if err := productos.Create(c.Request.Context(), &p); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// UpdateProductoHandler merges the fields present in the body onto the product.
func UpdateProductoHandler(productos ProductoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var patch domain.ProductoPatch
		if !bindJSON(c, &patch) {
			return
		}
		if err := domain.ValidateProductoPatch(patch); err != nil {
			fail(c, err)
			return
		}
		p, err := productos.Update(c.Request.Context(), id, patch)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DeleteProductoHandler removes a product.
func DeleteProductoHandler(productos ProductoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := productos.Delete(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
