package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cardmock-backend/internal/handlers"
)

func clientsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewClientsHandler(nil)
	router := gin.New()
	router.Use(asPrincipal("user_123", "org_456", "admin"))
	router.POST("/clients", h.CreateClient)
	return router
}

func TestCreateClient_RequiresName(t *testing.T) {
	router := clientsRouter()

	w := postJSON(t, router, "/clients", gin.H{"name": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Error.Message, "name is required")
}

func TestCreateClient_NameTooLong(t *testing.T) {
	router := clientsRouter()

	w := postJSON(t, router, "/clients", gin.H{"name": strings.Repeat("a", 201)})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Error.Message, "200 characters or fewer")
}
