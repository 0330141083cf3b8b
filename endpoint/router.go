package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/medical-staff/middleware"
	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RouterConfig carries the settings the HTTP layer needs from config.Config.
type RouterConfig struct {
	AppName   string
	TokenTTL  time.Duration
	RateLimit middleware.RateLimitConfig
	Logger    zerolog.Logger
}

// NewRouter builds the gin engine serving the account and patient record API.
func NewRouter(db *gorm.DB, cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.EndpointCallLogger())
	r.Use(middleware.DatabaseMiddleware(db))

	r.GET("/", welcome(cfg.AppName))
	r.GET("/health", Health)
	r.GET("/metrics", middleware.MetricsHandler())

	limiter := middleware.RateLimiter(cfg.RateLimit)
	api := r.Group("/api")
	registerAccountRoutes(api.Group("/physician"), newAccountHandlers[model.Physician, physicianRequest]("Physician", cfg.TokenTTL), limiter)
	registerAccountRoutes(api.Group("/patient"), newAccountHandlers[model.Patient, patientRequest]("Patient", cfg.TokenTTL), limiter)

	api.GET("/patient-records/:cpf", ListPatientRecords)
	api.GET("/patient-record/:id", GetPatientRecord)
	api.POST("/patient-records", limiter, CreatePatientRecord)
	api.PUT("/patient-records/:id", ReplacePatientRecord)
	api.DELETE("/patient-records/:id", DeletePatientRecord)

	api.GET("/token/validate", middleware.ValidateAccountToken(), ValidateToken)

	r.NoRoute(func(c *gin.Context) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Route not found", Err: errNotFound})
	})
	return r, nil
}
