package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/medical-staff/config"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// captureSecurityLog routes security events to a buffer for the duration of the test.
func captureSecurityLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	l := zerolog.New(buf)
	util.SetSecurityLoggerForTest(&l)
	t.Cleanup(func() { util.SetSecurityLoggerForTest(nil) })
	return buf
}

func withRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(db)
	t.Cleanup(func() {
		config.ResetRedisClientForTest()
		_ = db.Close()
	})
	return mock
}

func serve(r *gin.Engine, method, path string, setup func(*httptest.ResponseRecorder)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	if setup != nil {
		setup(w)
	}
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.168.1.1:1234"
	r.ServeHTTP(w, req)
	return w
}
