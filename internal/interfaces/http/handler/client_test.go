package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientEngine(app *testApp) *gin.Engine {
	h := NewClientHandler(app.clients, app.queries)
	engine := newEngine()
	g := engine.Group("/clients")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Deactivate)
	g.GET("/:id/sales", h.ListSales)
	return engine
}

func createClient(t *testing.T, engine *gin.Engine, identity, first, last, email string) apprealestate.ClientResponse {
	t.Helper()
	w, env := doRequest(t, engine, http.MethodPost, "/clients", map[string]any{
		"identity_number": identity,
		"first_name":      first,
		"last_name":       last,
		"email":           email,
		"address":         "Calle 10 # 20-30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[apprealestate.ClientResponse](t, env)
}

func TestClientHandler_SearchAndList(t *testing.T) {
	app := newTestApp(t)
	engine := clientEngine(app)

	createClient(t, engine, "3001", "Carlos", "Pérez", "carlos@mail.co")
	createClient(t, engine, "3002", "Ana", "Carlosama", "ana@mail.co")
	inactive := createClient(t, engine, "3003", "Carlota", "Zuluaga", "carlota@mail.co")
	createClient(t, engine, "3004", "Elena", "Ríos", "elena@mail.co")

	w, _ := doRequest(t, engine, http.MethodDelete, "/clients/"+inactive.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("search matches first or last name ignoring case", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodGet, "/clients/search?q=CARLOS", nil)
		require.Equal(t, http.StatusOK, w.Code)
		clients := decodeData[[]apprealestate.ClientResponse](t, env)
		require.Len(t, clients, 2)
		assert.Equal(t, "Carlosama", clients[0].LastName)
		assert.Equal(t, "Pérez", clients[1].LastName)
	})

	t.Run("search requires q", func(t *testing.T) {
		w, _ := doRequest(t, engine, http.MethodGet, "/clients/search?q=%20", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list hides inactive clients", func(t *testing.T) {
		_, env := doRequest(t, engine, http.MethodGet, "/clients", nil)
		assert.Len(t, decodeData[[]apprealestate.ClientResponse](t, env), 3)
	})
}

func TestClientHandler_Update(t *testing.T) {
	app := newTestApp(t)
	engine := clientEngine(app)
	client := createClient(t, engine, "3101", "Carlos", "Pérez", "carlos@mail.co")

	w, env := doRequest(t, engine, http.MethodPut, "/clients/"+client.ID.String(), map[string]any{
		"first_name": "Carlos",
		"last_name":  "Pérez",
		"email":      "carlos.perez@mail.co",
		"phone":      "3001234567",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeData[apprealestate.ClientResponse](t, env)
	assert.Equal(t, "carlos.perez@mail.co", updated.Email)
	assert.Equal(t, client.IdentityNumber, updated.IdentityNumber)

	w, _ = doRequest(t, engine, http.MethodGet, "/clients/"+client.ID.String()+"/sales", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = doRequest(t, engine, http.MethodGet, "/clients/"+uuid.NewString()+"/sales", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}
