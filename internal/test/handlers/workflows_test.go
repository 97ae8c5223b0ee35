package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardmock-backend/internal/handlers"
	"cardmock-backend/internal/middleware"
	"cardmock-backend/internal/models"
)

// asPrincipal stands in for the auth middleware so validation paths can be
// exercised without a token.
func asPrincipal(userID, orgID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.OrgIDKey, orgID)
		c.Set(middleware.RoleKey, role)
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func workflowsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewWorkflowsHandler(nil)
	router := gin.New()
	router.Use(asPrincipal("user_123", "org_456", "admin"))
	router.POST("/workflows", h.CreateWorkflow)
	return router
}

func TestCreateWorkflow_RequiresName(t *testing.T) {
	router := workflowsRouter()

	w := postJSON(t, router, "/workflows", gin.H{
		"name": "  ",
		"stages": []gin.H{
			{"order": 1, "name": "Draft", "color": "yellow", "approvals_required": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, env.Error.Message, "name is required")
}

func TestCreateWorkflow_RejectsStageGap(t *testing.T) {
	router := workflowsRouter()

	w := postJSON(t, router, "/workflows", gin.H{
		"name": "Two Stage",
		"stages": []gin.H{
			{"order": 1, "name": "Draft", "color": "yellow", "approvals_required": 1},
			{"order": 3, "name": "Final", "color": "green", "approvals_required": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Error.Message, "missing order 2")
}

func TestCreateWorkflow_RejectsBadColor(t *testing.T) {
	router := workflowsRouter()

	w := postJSON(t, router, "/workflows", gin.H{
		"name": "One Stage",
		"stages": []gin.H{
			{"order": 1, "name": "Draft", "color": "teal", "approvals_required": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWorkflow_NoPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handlers.NewWorkflowsHandler(nil)
	router := gin.New()
	router.POST("/workflows", h.CreateWorkflow)

	w := postJSON(t, router, "/workflows", gin.H{"name": "Anything"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "auth_error", env.Error.Code)
}
