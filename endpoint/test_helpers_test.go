package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/medical-staff/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupEndpointTest returns the full router over a fresh in-memory database.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("APPENV", "test")
	t.Setenv("JWTSECRET", "test-secret-123")

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := config.ConnectDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r, err := NewRouter(db, RouterConfig{
		AppName:  cfg.AppName,
		TokenTTL: time.Minute,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return r, db
}

// requestParams groups HTTP request parameters to reduce function arguments
type requestParams struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

func doRequest(t *testing.T, r http.Handler, params requestParams) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	switch b := params.body.(type) {
	case nil:
	case string:
		body = []byte(b)
	default:
		var err error
		body, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(params.method, params.path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range params.headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type testResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

// decodeData unmarshals the data field of the response envelope into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, dst))
}

func physicianBody(cpf string) map[string]interface{} {
	return map[string]interface{}{
		"crm":      "CRM/SP 123456",
		"cpf":      cpf,
		"name":     "Dr. Ana Souza",
		"email":    "ana@example.com",
		"password": "s3cret",
	}
}

func patientBody(cpf string) map[string]interface{} {
	return map[string]interface{}{
		"cpf":      cpf,
		"name":     "João Lima",
		"email":    "joao@example.com",
		"password": "s3cret",
	}
}

func recordBody(cpf string) map[string]interface{} {
	return map[string]interface{}{
		"name":             "João Lima",
		"cpf":              cpf,
		"birth":            "1990-04-12",
		"email":            "joao@example.com",
		"phone":            "5511912345678",
		"address":          "Rua das Flores, 10",
		"picture_location": "https://cdn.example.com/p/1.png",
	}
}
