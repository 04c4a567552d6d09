package handler

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullEngine mounts every resource handler the way the router does
func fullEngine(app *testApp) *gin.Engine {
	engine := lotEngine(app)

	agents := NewAgentHandler(app.agents, app.queries)
	engine.POST("/agents", agents.Create)
	engine.GET("/agents/:id/sales", agents.ListSales)

	clients := NewClientHandler(app.clients, app.queries)
	engine.POST("/clients", clients.Create)
	engine.GET("/clients/:id/sales", clients.ListSales)

	sales := NewSaleHandler(app.coordinator, app.queries)
	engine.GET("/sales", sales.List)
	engine.POST("/sales", sales.Register)
	engine.GET("/sales/:id", sales.GetByID)
	engine.DELETE("/sales/:id", sales.Cancel)
	engine.PATCH("/sales/:id/notes", sales.UpdateNotes)

	reports := NewReportHandler(app.queries, nil)
	engine.GET("/reports/sales-by-agent", reports.SalesByAgent)
	engine.POST("/reports/sales-by-agent/export", reports.ExportSalesByAgent)
	return engine
}

type saleFixture struct {
	agent  apprealestate.AgentResponse
	client apprealestate.ClientResponse
	lot    apprealestate.LotResponse
}

func seedSaleFixture(t *testing.T, engine *gin.Engine) saleFixture {
	t.Helper()
	_, env := doRequest(t, engine, http.MethodPost, "/agents", createAgentBody("4001", "Laura", "Gómez", "laura@inmo.co"))
	agent := decodeData[apprealestate.AgentResponse](t, env)
	client := createClient(t, engine, "5001", "Carlos", "Pérez", "carlos@mail.co")
	lot := createLot(t, engine, "S-1", "Rionegro", "80000000", "")
	return saleFixture{agent: agent, client: client, lot: lot}
}

func (f saleFixture) registerBody(method string) map[string]any {
	return map[string]any{
		"client_id":      f.client.ID,
		"lot_id":         f.lot.ID,
		"agent_id":       f.agent.ID,
		"final_price":    "78000000",
		"payment_method": method,
		"notes":          "Pago de contado",
	}
}

func TestSaleHandler_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	engine := fullEngine(app)
	f := seedSaleFixture(t, engine)

	w, env := doRequest(t, engine, http.MethodPost, "/sales", f.registerBody("cash"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decodeData[apprealestate.SaleResponse](t, env)
	assert.Equal(t, "CASH", sale.PaymentMethod)

	_, env = doRequest(t, engine, http.MethodGet, "/lots/"+f.lot.ID.String(), nil)
	assert.Equal(t, "SOLD", decodeData[apprealestate.LotResponse](t, env).Status)

	t.Run("second sale of the lot is refused", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/sales", f.registerBody("CREDIT"))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, env.Error.Code)

		_, env = doRequest(t, engine, http.MethodGet, "/sales", nil)
		assert.Equal(t, 1, env.Meta.Total)
	})

	t.Run("listed by client and agent", func(t *testing.T) {
		_, env := doRequest(t, engine, http.MethodGet, "/clients/"+f.client.ID.String()+"/sales", nil)
		assert.Equal(t, 1, env.Meta.Total)
		_, env = doRequest(t, engine, http.MethodGet, "/agents/"+f.agent.ID.String()+"/sales", nil)
		assert.Equal(t, 1, env.Meta.Total)
		_, env = doRequest(t, engine, http.MethodGet, "/lots/"+f.lot.ID.String()+"/sale", nil)
		assert.True(t, decodeData[SaleExistsResponse](t, env).HasSale)
	})

	t.Run("summary by agent", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodGet, "/reports/sales-by-agent", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeData[[]apprealestate.AgentSalesSummaryResponse](t, env)
		require.Len(t, rows, 1)
		assert.Equal(t, "Laura Gómez", rows[0].AgentName)
		assert.Equal(t, int64(1), rows[0].SalesCount)
		assert.Equal(t, "78000000", rows[0].TotalAmount.String())
	})

	t.Run("export without storage", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/reports/sales-by-agent/export", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeUnavailable, env.Error.Code)
	})

	t.Run("update notes", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPatch, "/sales/"+sale.ID.String()+"/notes", map[string]any{"notes": "Escriturado"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Escriturado", decodeData[apprealestate.SaleResponse](t, env).Notes)
	})

	t.Run("cancel releases the lot", func(t *testing.T) {
		w, _ := doRequest(t, engine, http.MethodDelete, "/sales/"+sale.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		_, env := doRequest(t, engine, http.MethodGet, "/lots/"+f.lot.ID.String(), nil)
		assert.Equal(t, "AVAILABLE", decodeData[apprealestate.LotResponse](t, env).Status)

		w, _ = doRequest(t, engine, http.MethodGet, "/sales/"+sale.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w, _ = doRequest(t, engine, http.MethodDelete, "/sales/"+sale.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSaleHandler_RegisterValidation(t *testing.T) {
	app := newTestApp(t)
	engine := fullEngine(app)
	f := seedSaleFixture(t, engine)

	t.Run("unknown payment method", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/sales", f.registerBody("BARTER"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("missing ids", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/sales", map[string]any{"payment_method": "CASH", "final_price": "1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("unknown client", func(t *testing.T) {
		body := f.registerBody("CASH")
		body["client_id"] = "4f6b4f7e-2a53-4bb6-9d1b-0f1f1ee6e7a1"
		w, _ := doRequest(t, engine, http.MethodPost, "/sales", body)
		assert.Equal(t, http.StatusNotFound, w.Code)

		_, env := doRequest(t, engine, http.MethodGet, "/lots/"+f.lot.ID.String(), nil)
		assert.Equal(t, "AVAILABLE", decodeData[apprealestate.LotResponse](t, env).Status)
	})
}

func TestSaleHandler_ConcurrentRegistrationsSellOnce(t *testing.T) {
	app := newTestApp(t)
	engine := fullEngine(app)
	f := seedSaleFixture(t, engine)

	const attempts = 8
	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, _ := doRequest(t, engine, http.MethodPost, "/sales", f.registerBody("CASH"))
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Contains(t, []int{http.StatusConflict, http.StatusUnprocessableEntity}, code)
		}
	}
	assert.Equal(t, 1, created)
}
