package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshbites/planner/pkg/infrastructure/config"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(nil)
	cfg := config.Default()
	log := logging.NewNop()
	return NewRouter(NewServices(store, cfg, log), cfg, log), store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedDemand(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/ingest_demand", []map[string]interface{}{
		{"SKU": "SKU1", "Region": "North", "Week": 1, "Forecast_Demand": 100, "Actual_Demand": 90},
		{"SKU": "SKU1", "Region": "North", "Week": 2, "Forecast_Demand": 110, "Actual_Demand": 120},
		{"SKU": "SKU2", "Region": "South", "Week": 1, "Forecast_Demand": 50, "Actual_Demand": 55},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestIngestAndGetDemand(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/demand", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	assert.Len(t, rows, 3)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "SKU1", first["SKU"])
	assert.Equal(t, "North", first["Region"])
}

func TestIngestDemand_RejectsBatchWithRowErrors(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest_demand", []map[string]interface{}{
		{"SKU": "SKU1", "Region": "North", "Week": 1, "Forecast_Demand": 100, "Actual_Demand": 90},
		{"SKU": "", "Region": "North", "Week": 2, "Forecast_Demand": 100, "Actual_Demand": 90},
		{"SKU": "SKU1", "Region": "North", "Week": 1, "Forecast_Demand": 80, "Actual_Demand": 70},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "upload rejected", body["error"])
	assert.Len(t, body["rows"].([]interface{}), 2)

	// All-or-nothing: the valid first row was not applied either
	demand, err := store.GetDemand()
	require.NoError(t, err)
	assert.Empty(t, demand)
}

func TestUploadDemandCSV(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "demand.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Week,Region,SKU,Forecast_Demand,Actual_Demand\n1,north,sku1,100,90\n2,north,sku1,110,120\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload_demand", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decode(t, w)["rows"])
}

func TestSimulateDemand(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/simulate_demand", map[string]interface{}{
		"region": "north", "sku": "sku1", "spike_percent": 20,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.InDelta(t, 108.0, first["Simulated_Demand"], 1e-9)
}

func TestSimulateDemand_RejectsOutOfRangePercent(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/simulate_demand", map[string]interface{}{
		"region": "North", "sku": "SKU1", "spike_percent": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateDemand_UnknownPairIsEmptyOK(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/simulate_demand", map[string]interface{}{
		"region": "Nowhere", "sku": "SKU1", "spike_percent": 20,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["rows"])
}

func TestForecastAdjust(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/forecast_adjust", map[string]interface{}{
		"series": []float64{10, 20, 30, 40}, "periods": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	forecast := body["forecast"].([]interface{})
	require.Len(t, forecast, 3)
	assert.InDelta(t, 50.0, forecast[0], 1e-9)
	assert.InDelta(t, 70.0, forecast[2], 1e-9)
}

func TestProductionPlan_OneShotRows(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/production_plan", map[string]interface{}{
		"strategy": "demand-priority",
		"rows": []map[string]interface{}{
			{"Plant": "P1", "SKU": "A", "Capacity": 100, "Forecast": 80, "Profit_Margin": 1.0},
			{"Plant": "P1", "SKU": "B", "Capacity": 100, "Forecast": 60, "Profit_Margin": 1.0},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	rows := body["rows"].([]interface{})
	require.Len(t, rows, 2)
	var total float64
	for _, r := range rows {
		total += r.(map[string]interface{})["Allocated"].(float64)
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestProductionPlan_CSVUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("strategy", "profit-priority"))
	part, err := mw.CreateFormFile("file", "allocation.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Plant,SKU,Capacity,Forecast,Profit_Margin\nP1,A,100,60,1.0\nP1,B,100,60,2.0\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/production_plan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 2)
	// Higher-margin B fills first under profit-priority
	for _, raw := range rows {
		r := raw.(map[string]interface{})
		if r["SKU"] == "B" {
			assert.InDelta(t, 60.0, r["Allocated"], 1e-9)
		} else {
			assert.InDelta(t, 40.0, r["Allocated"], 1e-9)
		}
	}
}

func TestProductionPlan_NoDataIsEmptyOK(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/production_plan", map[string]interface{}{
		"strategy": "equal",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Empty(t, body["rows"])
	assert.NotEmpty(t, body["message"])
}

func TestSafetyStock(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/safety_stock", map[string]interface{}{
		"service_level": 0.95,
	})
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "95%", first["ServiceLevel"])
}

func TestSafetyStock_RejectsBadServiceLevel(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/safety_stock", map[string]interface{}{
		"service_level": 1.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRebalance(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/ingest_inventory", []map[string]interface{}{
		{"SKU": "SKU1", "Region": "North", "Stock": 0},
		{"SKU": "SKU1", "Region": "South", "Stock": 400},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/rebalance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	require.NotEmpty(t, rows)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "South", first["From"])
	assert.Equal(t, "North", first["To"])
}

func TestProcurementPlan(t *testing.T) {
	router, _ := newTestRouter(t)

	// Empty store: empty rows with an explanatory message, still 200
	w := doJSON(t, router, http.MethodGet, "/api/procurement_plan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["message"])

	seedDemand(t, router)
	w = doJSON(t, router, http.MethodGet, "/api/procurement_plan", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "SKU1", first["SKU"])
	assert.Equal(t, float64(210), first["Forecast_Demand"])
}

func TestWhatIf(t *testing.T) {
	router, _ := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/ingest_production", []map[string]interface{}{
		{"Plant": "P1", "SKU": "SKU1", "Week": 1, "Capacity": 210, "Produced": 0},
		{"Plant": "P1", "SKU": "SKU2", "Week": 1, "Capacity": 50, "Produced": 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	baseline := doJSON(t, router, http.MethodPost, "/api/whatif", map[string]interface{}{
		"demand_change_pct": 0, "capacity_change_pct": 0,
	})
	require.Equal(t, http.StatusOK, baseline.Code)
	assert.Equal(t, float64(0), decode(t, baseline)["stockouts"])

	stressed := doJSON(t, router, http.MethodPost, "/api/whatif", map[string]interface{}{
		"demand_change_pct": 20, "capacity_change_pct": 0,
	})
	require.Equal(t, http.StatusOK, stressed.Code)
	assert.Greater(t, decode(t, stressed)["stockouts"], float64(0))
}

func TestKPIs_EmptyStoreAllZero(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/kpis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(0), body["service_level"])
	assert.Equal(t, float64(0), body["stockouts"])
}

func TestSuppliersStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest_suppliers", []map[string]interface{}{
		{"Supplier_ID": "S1", "Name": "Acme", "Committed_Lead_Time": 5,
			"Avg_Lead_Time_Days": 7, "Deliveries": 10, "On_Time_Deliveries": 9},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 1)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Delayed", first["Status"])
	assert.Equal(t, float64(90), first["Reliability"])
}

func TestNotesFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/notes", map[string]interface{}{
		"text": "review week 2 spike",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, router, http.MethodPost, "/api/notes/"+id+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["approved"])

	w = doJSON(t, router, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode(t, w)["notes"].([]interface{})
	require.Len(t, listed, 1)

	w = doJSON(t, router, http.MethodPost, "/api/notes/unknown/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReset_ClearsDatasetsButKeepsNotes(t *testing.T) {
	router, store := newTestRouter(t)
	seedDemand(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/notes", map[string]interface{}{
		"text": "survives reset",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	demand, err := store.GetDemand()
	require.NoError(t, err)
	assert.Empty(t, demand)

	w = doJSON(t, router, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["notes"].([]interface{}), 1)
}
