package endpoint

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/medical-staff/middleware"
	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errNotFound     = errors.New("resource not found")
	errConflict     = errors.New("resource already exists")
	errStorage      = errors.New("storage failure")
	errMalformedCPF = errors.New("cpf must be 000.000.000-00 or 11 digits")
	errMalformedID  = errors.New("id must be a uuid")
	errForeignToken = errors.New("token does not belong to this account")
)

type clientInfo struct {
	IP    string
	Agent string
}

func clientOf(c *gin.Context) clientInfo {
	return clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

// cpfParamOrRespond rejects a malformed :cpf path parameter before any lookup.
func cpfParamOrRespond(c *gin.Context) (string, bool) {
	cpf := c.Param("cpf")
	if !model.IsCPF(cpf) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid CPF", Err: errMalformedCPF})
		return "", false
	}
	return cpf, true
}

func idParamOrRespond(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid record id", Err: errMalformedID})
		return uuid.Nil, false
	}
	return id, true
}

// outcome names the resource and the success message used when rendering an Operation.
type outcome struct {
	Resource string
	Success  string
}

// respondOperation writes the response for op and reports whether it succeeded.
// The cause of a failed operation is logged and never sent to the client.
func respondOperation[T any](c *gin.Context, op repository.Operation[T], o outcome, onSuccess func(*gin.Context, util.APISuccessParams)) bool {
	switch op.Status {
	case repository.StatusSuccess:
		onSuccess(c, util.APISuccessParams{Msg: o.Success, Data: op.Value})
		return true
	case repository.StatusNotFound:
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: o.Resource + " not found", Err: errNotFound})
	case repository.StatusAlreadyExists:
		util.CallForbidden(c, util.APIErrorParams{Msg: o.Resource + " already exists", Err: errConflict})
	default:
		util.Logger().Error().Err(op.Err).
			Str("route", c.FullPath()).
			Str("status", op.Status.String()).
			Msg("operation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to process " + o.Resource, Err: errStorage})
	}
	return false
}
