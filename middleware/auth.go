package middleware

import (
	"errors"
	"strings"

	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	claimsContextKey = "account_claims"
	tokenContextKey  = "account_token"
)

var (
	errMissingToken  = errors.New("bearer token not provided")
	errRevokedToken  = errors.New("token has been revoked")
	errInvalidClaims = errors.New("token subject is not an account id")
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// ValidateAccountToken requires a valid bearer token issued at sign-in whose
// session has not been invalidated.
func ValidateAccountToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			rejectToken(c, errMissingToken)
			return
		}

		claims, err := util.ParseAccountToken(token)
		if err != nil {
			rejectToken(c, err)
			return
		}
		accountID, err := uuid.Parse(claims.Subject)
		if err != nil {
			rejectToken(c, errInvalidClaims)
			return
		}

		active, err := util.HasAccountSession(c.Request.Context(), claims.Kind, accountID, token)
		if err != nil {
			util.Logger().Warn().Err(err).Msg("session lookup failed, trusting token signature")
			active = true
		}
		if !active {
			rejectToken(c, errRevokedToken)
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

func rejectToken(c *gin.Context, err error) {
	util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, err.Error())
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Invalid or missing token",
		Err: err,
	})
	c.Abort()
}

// GetAccountClaims returns the claims stored by ValidateAccountToken.
func GetAccountClaims(c *gin.Context) (*util.AccountClaims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.AccountClaims)
	return claims, ok
}
