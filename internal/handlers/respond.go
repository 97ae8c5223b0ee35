package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/middleware"
	"cardmock-backend/internal/models"
)

// verbose controls whether error responses include diagnostic detail; it is
// switched off in production builds.
var verbose = true

func SetVerbose(v bool) {
	verbose = v
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Envelope{Success: true, Data: data})
}

// respondError converts any error into the uniform envelope. Nothing escapes
// unformatted: unknown errors become a masked 500.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	apiErr := &models.APIError{
		Code:    string(apperrors.KindOf(err)),
		Message: apperrors.PublicMessage(err),
	}
	if verbose {
		apiErr.Detail = err.Error()
	}
	if status >= http.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, models.Envelope{Success: false, Error: apiErr})
}

func respondValidation(c *gin.Context, message string) {
	respondError(c, apperrors.Validation(message))
}

// principalFrom fetches the authenticated caller, replying 401 itself when
// the auth middleware did not run.
func principalFrom(c *gin.Context) (middleware.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, apperrors.Auth("user identity not found"))
	}
	return p, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondValidation(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parseNullUUID turns an optional request-body id into a nullable column
// value.
func parseNullUUID(value, field string) (uuid.NullUUID, error) {
	if value == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.NullUUID{}, apperrors.Validation("invalid " + field)
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}
