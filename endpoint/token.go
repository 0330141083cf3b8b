package endpoint

import (
	"fmt"

	"github.com/ariebrainware/medical-staff/middleware"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
)

// ValidateToken godoc
// @Summary      Validate token
// @Description  Validate a bearer token issued at sign-in
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Valid token"
// @Failure      401 {object} util.APIResponse "Invalid or revoked token"
// @Router       /token/validate [get]
func ValidateToken(c *gin.Context) {
	claims, ok := middleware.GetAccountClaims(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid or missing token", Err: fmt.Errorf("no claims in context")})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Valid token",
		Data: map[string]interface{}{
			"account_id": claims.Subject,
			"kind":       claims.Kind,
			"cpf":        claims.CPF,
			"expires_at": claims.ExpiresAt,
		},
	})
}
