// Package api holds the gin handlers and the router of the storefront.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onthegomusic/internal/domain"
	"onthegomusic/internal/middleware"
	"onthegomusic/internal/store"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string                  `json:"message"`
	Errors  domain.ValidationErrors `json:"errors,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// fail maps an error from validation or the store onto the HTTP taxonomy.
func fail(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: verrs.Error(), Errors: verrs})
	case errors.Is(err, store.ErrDuplicate):
		respondError(c, http.StatusBadRequest, duplicateMessage(err))
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	default:
		middleware.GetLogger(c).WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("unhandled error")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func duplicateMessage(err error) string {
	var dup *store.DuplicateError
	if errors.As(err, &dup) && dup.Field != "" {
		return dup.Field + " already exists"
	}
	return "already exists: " + err.Error()
}

// bindJSON decodes the body into dst, replying 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the :id parameter. Identifiers that cannot exist resolve to 404.
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
