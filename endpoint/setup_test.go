package endpoint

import (
	"os"
	"testing"

	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TestMain keeps handler and security logs out of test output and fixes the JWT secret.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.SetJWTSecret("test-secret-123")

	nop := zerolog.Nop()
	util.SetLoggerForTest(nop)
	util.SetSecurityLoggerForTest(&nop)

	os.Exit(m.Run())
}
