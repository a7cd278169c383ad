package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promo-insights-be/internal/bootstrap"
	"promo-insights-be/internal/config"
	"promo-insights-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = "Promo_ID,Promo_Name,Region,Country,Channel,Category,Brand,Customer,Prom_Status,RAG_Actual,RAG_Planned,Start_Prom,End_Prom,Week,Total_Sales,Baseline_Sales,Uplift_Value,Profit,ROI\n" +
	"P1,Alpha Push,SEA,Vietnam,E-Commerce,Beverages,Aurora,MegaMart,COMPLETED,GREEN,GREEN,10-01-2024,20-01-2024,2,1000,800,200,50,1.5\n" +
	"P2,Beta Blast,SEA,Thailand,Modern Trade,Snacks,Velvet,QuickShop,ONGOING,RED,AMBER,05-07-2024,15-07-2024,27,3000,2500,500,null,2.0\n" +
	"P3,Gamma Run,Europe,Germany,E-Commerce,Dairy,Aurora,MegaMart,PLANNED,AMBER,RED,01-02-2025,01-03-2025,5,2000,1500,500,120,1.0\n"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "promotions.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0644))

	t.Setenv("DATASET_PATH", path)
	t.Setenv("LOG_FILE_PATH", filepath.Join(dir, "app.log"))
	t.Setenv("NATS_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	srv := server.New(cfg, container)
	return srv.GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func TestStartupWithMissingDataset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATASET_PATH", filepath.Join(dir, "does-not-exist.csv"))
	t.Setenv("LOG_FILE_PATH", filepath.Join(dir, "app.log"))
	t.Setenv("NATS_URL", "")
	t.Setenv("REDIS_URL", "")

	// A failed fetch must leave the app serving an empty snapshot, not crash.
	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	app := server.New(cfg, container).GetApp()

	status, env := doJSON(t, app, "GET", "/api/dashboard/v1/views/tabular", nil)
	require.Equal(t, 200, status)
	require.True(t, env.Success)

	var view struct {
		Total   int           `json:"total"`
		Records []interface{} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 0, view.Total)
	assert.Empty(t, view.Records)
}

func TestViewsEndpoint(t *testing.T) {
	app := newTestApp(t)

	for _, view := range []string{"tabular", "timeline", "status", "trend"} {
		status, env := doJSON(t, app, "GET", "/api/dashboard/v1/views/"+view, nil)
		assert.Equal(t, 200, status, view)
		assert.True(t, env.Success, view)
	}

	status, env := doJSON(t, app, "GET", "/api/dashboard/v1/views/heatmap", nil)
	assert.Equal(t, 400, status)
	assert.False(t, env.Success)
}

func TestFilterLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Merge one field.
	status, _ := doJSON(t, app, "PATCH", "/api/dashboard/v1/filters", map[string]interface{}{
		"region": []string{"SEA"},
	})
	require.Equal(t, 200, status)

	// Merge another; the first survives.
	status, env := doJSON(t, app, "PATCH", "/api/dashboard/v1/filters", map[string]interface{}{
		"year": 2024,
	})
	require.Equal(t, 200, status)

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &spec))
	assert.Equal(t, []interface{}{"SEA"}, spec["region"])
	assert.Equal(t, float64(2024), spec["year"])

	// The filtered tabular view shrinks accordingly.
	status, env = doJSON(t, app, "GET", "/api/dashboard/v1/views/tabular", nil)
	require.Equal(t, 200, status)
	var tabular struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tabular))
	assert.Equal(t, 2, tabular.Total)

	// Reset one field.
	status, env = doJSON(t, app, "DELETE", "/api/dashboard/v1/filters/region", nil)
	require.Equal(t, 200, status)
	spec = nil
	require.NoError(t, json.Unmarshal(env.Data, &spec))
	assert.NotContains(t, spec, "region")
	assert.Equal(t, float64(2024), spec["year"])

	// Unknown field is a 400.
	status, _ = doJSON(t, app, "DELETE", "/api/dashboard/v1/filters/bogus", nil)
	assert.Equal(t, 400, status)

	// Reset all.
	status, env = doJSON(t, app, "DELETE", "/api/dashboard/v1/filters", nil)
	require.Equal(t, 200, status)
	spec = nil
	require.NoError(t, json.Unmarshal(env.Data, &spec))
	assert.Empty(t, spec)
}

func TestQueryEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, env := doJSON(t, app, "POST", "/api/dashboard/v1/query", map[string]string{
		"text": "show me red promotions in SEA",
	})
	require.Equal(t, 200, status)

	var result struct {
		Matched    bool   `json:"matched"`
		ActiveView string `json:"activeView"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Matched)
	assert.Equal(t, "tabular", result.ActiveView)

	// The interpreted filters are now the active ones.
	status, env = doJSON(t, app, "GET", "/api/dashboard/v1/filters", nil)
	require.Equal(t, 200, status)
	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &spec))
	assert.Equal(t, []interface{}{"SEA"}, spec["region"])
	assert.Equal(t, []interface{}{"RED"}, spec["ragStatus"])

	// A non-navigational question changes nothing.
	status, env = doJSON(t, app, "POST", "/api/dashboard/v1/query", map[string]string{
		"text": "how are you doing",
	})
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Matched)

	// Missing text is a 400.
	status, _ = doJSON(t, app, "POST", "/api/dashboard/v1/query", map[string]string{})
	assert.Equal(t, 400, status)
}

func TestFilterOptionsAndSchema(t *testing.T) {
	app := newTestApp(t)

	status, env := doJSON(t, app, "GET", "/api/dashboard/v1/filter-options", nil)
	require.Equal(t, 200, status)
	var opts struct {
		Region []string `json:"region"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, []string{"Europe", "SEA"}, opts.Region)

	status, env = doJSON(t, app, "GET", "/api/dashboard/v1/schema", nil)
	require.Equal(t, 200, status)
	var fields []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.NotEmpty(t, fields)
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/dashboard/v1/export", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "promotions_filtered.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Promo_ID,"))
}

func TestChatSessionEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, env := doJSON(t, app, "POST", "/api/chat/v1/sessions", nil)
	require.Equal(t, 201, status)
	var created struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Id)

	status, env = doJSON(t, app, "GET", "/api/chat/v1/sessions/"+created.Id+"/history", nil)
	require.Equal(t, 200, status)
	var history []struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "model", history[0].Role)

	status, _ = doJSON(t, app, "DELETE", "/api/chat/v1/sessions/"+created.Id, nil)
	assert.Equal(t, 200, status)

	status, _ = doJSON(t, app, "GET", "/api/chat/v1/sessions/"+created.Id+"/history", nil)
	assert.Equal(t, 404, status)

	status, _ = doJSON(t, app, "GET", "/api/chat/v1/sessions/not-a-uuid/history", nil)
	assert.Equal(t, 400, status)
}
