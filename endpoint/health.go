package endpoint

import (
	"fmt"

	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
)

func welcome(appName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.CallSuccessOK(c, util.APISuccessParams{Msg: fmt.Sprintf("Welcome to %s!", appName)})
	}
}

// Health godoc
// @Summary      Health check
// @Description  Report whether the database answers a ping
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "Service healthy"
// @Failure      500 {object} util.APIResponse "Database unavailable"
// @Router       /health [get]
func Health(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database unavailable", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Service healthy"})
}
