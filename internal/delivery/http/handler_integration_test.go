package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/store"
	"github.com/skillmatch/backend/internal/infrastructure/xlsx"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Workbook: config.WorkbookConfig{
			BenchSheet:  "Bench Base",
			DemandSheet: "Demand Base",
			SubconSheet: "Engineering",
			MasterSheet: "MasterList",
			MaxUploadMB: 4,
		},
		Store:    config.StoreConfig{TTL: time.Hour},
		Matching: config.MatchingConfig{DefaultMinPercent: 0, DefaultMaxPercent: 100},
	}
}

// setupTestRouter creates a router without a matching service
func setupTestRouter() *gin.Engine {
	handler := NewHandler(nil, nil, HandlerOptions{})
	return SetupRouter(testConfig(), handler)
}

// setupServiceRouter wires the real store, loader and matching service
func setupServiceRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := testConfig()
	datasets := store.NewMemoryStore(cfg.Store.TTL)
	t.Cleanup(datasets.Close)

	service := usecase.NewMatchingService(datasets, xlsx.NewLoader(xlsx.DefaultSheetNames()), usecase.MatchingServiceConfig{})
	handler := NewHandler(service, xlsx.NewExporter(), HandlerOptions{
		DefaultRange:   domain.FullRange,
		MaxUploadBytes: cfg.Workbook.MaxUploadMB << 20,
	})
	return SetupRouter(cfg, handler)
}

type sheets map[string][][]string

func workbookBytes(t *testing.T, data sheets) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range data {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	field    string
	filename string
	content  []byte
}

func fixtureUploads(t *testing.T) []upload {
	benchDemand := workbookBytes(t, sheets{
		"Bench Base": {
			{"Practice", "Sub Practice", "Grade", "Skill Grouping", "LDAP ID", "EmployeeName", "Email", "Skill"},
			{"Cloud", "AWS", "G5", "Infra", "alice", "Alice", "alice@example.com", "Java, SQL"},
			{"QA", "Automation", "G6", "Testing", "bob", "Bob", "bob@example.com", "Selenium"},
			{"QA", "Manual", "G4", "Testing", "carl", "Carl", "carl@example.com", ""},
		},
		"Demand Base": {
			{"ID", "Client", "Project Name", "Mandatory Skills"},
			{"D1", "Acme", "Portal", "Java, SQL, Go"},
			{"D2", "Globex", "Regression", "Selenium"},
		},
	})
	subcon := workbookBytes(t, sheets{
		"Engineering": {
			{"Emp ID", "Consultant Name", "Project Manager", "Client", "Skill"},
			{"S1", "Dana", "Pat", "Acme", "J2EE; Python"},
		},
	})
	master := workbookBytes(t, sheets{
		"MasterList": {
			{"Skills", "Alias"},
			{"Java", "J2EE"},
		},
	})

	return []upload{
		{fieldBenchDemand, "bench_demand.xlsx", benchDemand},
		{fieldSubcon, "subcon.xlsx", subcon},
		{fieldMaster, "master.xlsx", master},
	}
}

func multipartRequest(t *testing.T, uploads []upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func createDataset(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := serve(router, multipartRequest(t, fixtureUploads(t)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, _ := decodeBody(t, w)["datasetId"].(string)
	require.NotEmpty(t, id)
	return id
}

func matchRequestTo(id, mode, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets/"+id+"/matches/"+mode, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheckEndpoint(t *testing.T) {
	w := serve(setupTestRouter(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "skillmatch-backend", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestEndpointsWithoutService(t *testing.T) {
	router := setupTestRouter()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/datasets", nil),
		httptest.NewRequest(http.MethodGet, "/api/v1/datasets/abc", nil),
		httptest.NewRequest(http.MethodGet, "/api/v1/datasets/abc/bench", nil),
		matchRequestTo("abc", "demand", "{}"),
	}

	for _, req := range requests {
		w := serve(router, req)
		assert.Equal(t, http.StatusNotImplemented, w.Code, req.URL.Path)
		assert.Equal(t, "matching service not configured", decodeBody(t, w)["error"])
	}
}

func TestAPIVersioning(t *testing.T) {
	w := serve(setupTestRouter(), httptest.NewRequest(http.MethodPost, "/api/v2/datasets", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateDataset(t *testing.T) {
	router := setupServiceRouter(t)

	w := serve(router, multipartRequest(t, fixtureUploads(t)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["datasetId"])
	assert.NotEmpty(t, body["createdAt"])
	assert.Equal(t, map[string]interface{}{
		"bench":  float64(3),
		"demand": float64(2),
		"subcon": float64(1),
		"master": float64(1),
	}, body["counts"])
}

func TestCreateDataset_Errors(t *testing.T) {
	router := setupServiceRouter(t)

	t.Run("not a multipart form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
	})

	t.Run("upload too large", func(t *testing.T) {
		uploads := fixtureUploads(t)
		uploads[0].content = bytes.Repeat([]byte("x"), 5<<20)
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "upload exceeds size limit", decodeBody(t, w)["error"])
	})

	t.Run("missing workbook", func(t *testing.T) {
		uploads := fixtureUploads(t)[:2]
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], fieldMaster)
	})

	t.Run("wrong file type", func(t *testing.T) {
		uploads := fixtureUploads(t)
		uploads[1].filename = "subcon.csv"
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unreadable workbook", func(t *testing.T) {
		uploads := fixtureUploads(t)
		uploads[0].content = []byte("plain text")
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing column", func(t *testing.T) {
		uploads := fixtureUploads(t)
		uploads[2].content = workbookBytes(t, sheets{"MasterList": {{"Skills"}, {"Java"}}})
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "'Alias' column not found in MasterSkill table")
	})

	t.Run("missing sheet", func(t *testing.T) {
		uploads := fixtureUploads(t)
		uploads[1].content = workbookBytes(t, sheets{"Contractors": {{"Emp ID"}}})
		w := serve(router, multipartRequest(t, uploads))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "Engineering")
	})
}

func TestDatasetLifecycle(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decodeBody(t, w)["datasetId"])

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/datasets/"+id, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/datasets/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBenchViewEndpoint(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+id+"/bench?practice=QA&name=b", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view domain.BenchView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Employees, 1)
	assert.Equal(t, "bob", view.Employees[0].LDAPID)
	assert.Equal(t, []string{"Cloud", "QA"}, view.Options.Practices)
	assert.Equal(t, []string{"Automation", "Manual"}, view.Options.SubPractices)
	assert.Equal(t, []string{"selenium"}, view.Skills)
}

func TestMatchEndpoint_Demand(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	w := serve(router, matchRequestTo(id, "demand", ""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "demand", body["mode"])
	assert.Equal(t, float64(2), body["count"])
	assert.NotContains(t, body, "message")

	results := body["results"].([]interface{})
	require.Len(t, results, 2)

	first := results[0].(map[string]interface{})
	assert.Equal(t, float64(100), first["matchPercent"])
	assert.Equal(t, "bob", first["bench"].(map[string]interface{})["ldapId"])
	assert.Equal(t, "D2", first["target"].(map[string]interface{})["id"])

	second := results[1].(map[string]interface{})
	assert.Equal(t, 66.67, second["matchPercent"])
	assert.Equal(t, []interface{}{"java", "sql"}, second["matchingSkills"])

	warnings := body["warnings"].([]interface{})
	require.Len(t, warnings, 1)
	assert.Equal(t, "No skills provided for Carl.", warnings[0].(map[string]interface{})["message"])
}

func TestMatchEndpoint_SubconWithFilterAndRange(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	w := serve(router, matchRequestTo(id, "subcon", `{"practice":["Cloud"],"minPercent":50,"maxPercent":50}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	results := body["results"].([]interface{})
	require.Len(t, results, 1)

	assert.Equal(t, []interface{}{}, body["warnings"], "warnings should be an empty array, not null")

	result := results[0].(map[string]interface{})
	assert.Equal(t, float64(50), result["matchPercent"])
	assert.Equal(t, []interface{}{"j2ee"}, result["matchingSkills"])
	assert.Equal(t, "Dana", result["target"].(map[string]interface{})["consultantName"])
}

func TestMatchEndpoint_EmptyRange(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	for _, path := range []string{"", "?format=xlsx"} {
		req := matchRequestTo(id, "demand", `{"minPercent":70,"maxPercent":90}`)
		req.URL.RawQuery = strings.TrimPrefix(path, "?")

		w := serve(router, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		body := decodeBody(t, w)
		assert.Equal(t, float64(0), body["count"])
		assert.Equal(t, noMatchesMessage, body["message"])
	}
}

func TestMatchEndpoint_Download(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	req := matchRequestTo(id, "demand", "{}")
	req.URL.RawQuery = "format=xlsx"
	w := serve(router, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "combined_bench_demand_match.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, xlsx.ExportColumns(domain.ModeDemand), rows[0])
	assert.Equal(t, "bob", rows[1][0])
}

func TestMatchEndpoint_Errors(t *testing.T) {
	router := setupServiceRouter(t)
	id := createDataset(t, router)

	tests := []struct {
		name       string
		id         string
		mode       string
		body       string
		wantStatus int
	}{
		{"unknown mode", id, "contract", "{}", http.StatusBadRequest},
		{"percent above 100", id, "demand", `{"maxPercent":150}`, http.StatusBadRequest},
		{"negative percent", id, "demand", `{"minPercent":-1}`, http.StatusBadRequest},
		{"inverted range", id, "demand", `{"minPercent":80,"maxPercent":20}`, http.StatusBadRequest},
		{"malformed body", id, "demand", `{"minPercent":`, http.StatusBadRequest},
		{"unknown dataset", "missing", "demand", "{}", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, matchRequestTo(tt.id, tt.mode, tt.body))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, decodeBody(t, w)["error"])
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	w := serve(router, req)

	assert.Equal(t, "http://localhost:8501", w.Header().Get("Access-Control-Allow-Origin"))
}
