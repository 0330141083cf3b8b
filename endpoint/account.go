package endpoint

import (
	"time"

	"github.com/ariebrainware/medical-staff/middleware"
	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/ariebrainware/medical-staff/service"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
)

// accountRequest is the request body of one account kind.
type accountRequest[T model.Account[T]] interface {
	physicianRequest | patientRequest
	toAccount() T
}

type physicianRequest struct {
	CRM      string `json:"crm" binding:"required,crm" example:"CRM/SP 123456"`
	CPF      string `json:"cpf" binding:"required,cpf" example:"123.456.789-01"`
	Name     string `json:"name" binding:"required" example:"Dr. Ana Souza"`
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

func (r physicianRequest) toAccount() model.Physician {
	return model.Physician{CRM: r.CRM, CPF: r.CPF, Name: r.Name, Email: r.Email, Password: r.Password}
}

type patientRequest struct {
	CPF      string `json:"cpf" binding:"required,cpf" example:"987.654.321-00"`
	Name     string `json:"name" binding:"required" example:"João Lima"`
	Email    string `json:"email" binding:"required,email" example:"joao@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

func (r patientRequest) toAccount() model.Patient {
	return model.Patient{CPF: r.CPF, Name: r.Name, Email: r.Email, Password: r.Password}
}

type SignInRequest struct {
	CPF      string `json:"cpf" binding:"required,cpf" example:"123.456.789-01"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

type SignInResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Kind      string    `json:"kind" example:"physician"`
	ExpiresAt time.Time `json:"expires_at"`
}

// accountHandlers serves the route group shared by every account kind.
type accountHandlers[T model.Account[T], R accountRequest[T]] struct {
	resource string
	tokenTTL time.Duration
}

func newAccountHandlers[T model.Account[T], R accountRequest[T]](resource string, tokenTTL time.Duration) accountHandlers[T, R] {
	if tokenTTL <= 0 {
		tokenTTL = util.DefaultTokenTTL
	}
	return accountHandlers[T, R]{resource: resource, tokenTTL: tokenTTL}
}

func (h accountHandlers[T, R]) service(c *gin.Context) (*service.AccountService[T], bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	logger := *util.Logger()
	return service.NewAccountService[T](repository.NewAccountRepository[T](db, logger), logger), true
}

func (h accountHandlers[T, R]) outcome(success string) outcome {
	return outcome{Resource: h.resource, Success: success}
}

func (h accountHandlers[T, R]) eventParams(c *gin.Context, account T) util.AccountEventParams {
	ci := clientOf(c)
	return util.AccountEventParams{
		AccountID: account.Identifier().String(),
		Kind:      account.Kind().String(),
		CPF:       account.NationalID(),
		IP:        ci.IP,
		UserAgent: ci.Agent,
	}
}

// invalidateSessions drops every issued token of the account. Failures only log.
func (h accountHandlers[T, R]) invalidateSessions(c *gin.Context, account T) {
	if err := util.InvalidateAccountSessions(c.Request.Context(), account.Kind().String(), account.Identifier()); err != nil {
		util.Logger().Warn().Err(err).Str("account_id", account.Identifier().String()).Msg("failed to invalidate sessions")
	}
}

// List godoc
// @Summary      List accounts
// @Description  List every account of the kind
// @Tags         Account
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.Physician} "Accounts retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/accounts [get]
// @Router       /patient/accounts [get]
func (h accountHandlers[T, R]) List(c *gin.Context) {
	svc, ok := h.service(c)
	if !ok {
		return
	}
	accounts, err := svc.List(c.Request.Context())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve accounts", Err: errStorage})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Accounts retrieved", Data: accounts})
}

// Credential godoc
// @Summary      Get account credential
// @Description  Return the stored credential of the account with the given CPF. The bearer token must belong to that account.
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Param        cpf path string true "CPF, formatted or bare digits"
// @Success      200 {object} util.APIResponse{data=model.Credential} "Credential retrieved"
// @Failure      400 {object} util.APIResponse "Malformed CPF"
// @Failure      401 {object} util.APIResponse "Missing or invalid token"
// @Failure      403 {object} util.APIResponse "Token belongs to another account"
// @Failure      404 {object} util.APIResponse "Account not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/account-credential/{cpf} [get]
// @Router       /patient/account-credential/{cpf} [get]
func (h accountHandlers[T, R]) Credential(c *gin.Context) {
	cpf, ok := cpfParamOrRespond(c)
	if !ok {
		return
	}
	claims, ok := middleware.GetAccountClaims(c)
	if !ok || claims.Kind != model.KindOf[T]().String() || claims.CPF != model.NormalizeNationalID(cpf) {
		util.CallForbidden(c, util.APIErrorParams{Msg: "Not allowed to read this credential", Err: errForeignToken})
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	respondOperation(c, svc.Credential(c.Request.Context(), cpf), h.outcome("Credential retrieved"), util.CallSuccessOK)
}

// Create godoc
// @Summary      Create account
// @Description  Create an account. A CPF can hold one account per kind.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body physicianRequest true "Account data"
// @Success      201 {object} util.APIResponse{data=model.Physician} "Account created"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      403 {object} util.APIResponse "CPF already has an account"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/create-account [post]
// @Router       /patient/create-account [post]
func (h accountHandlers[T, R]) Create(c *gin.Context) {
	var req R
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	op := svc.Create(c.Request.Context(), req.toAccount())
	if respondOperation(c, op, h.outcome(h.resource+" created"), util.CallSuccessCreated) {
		util.LogSignupSuccess(h.eventParams(c, op.Value))
	}
}

// Replace godoc
// @Summary      Replace account
// @Description  Replace every field of the account with the given CPF. The account keeps its id.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        cpf path string true "CPF, formatted or bare digits"
// @Param        request body physicianRequest true "Replacement account"
// @Success      200 {object} util.APIResponse{data=model.Physician} "Account updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      403 {object} util.APIResponse "New CPF already has an account"
// @Failure      404 {object} util.APIResponse "Account not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/account/{cpf} [put]
// @Router       /patient/account/{cpf} [put]
func (h accountHandlers[T, R]) Replace(c *gin.Context) {
	cpf, ok := cpfParamOrRespond(c)
	if !ok {
		return
	}
	var req R
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	op := svc.Replace(c.Request.Context(), cpf, req.toAccount())
	if respondOperation(c, op, h.outcome(h.resource+" updated"), util.CallSuccessOK) {
		h.invalidateSessions(c, op.Value)
		util.LogAccountUpdated(h.eventParams(c, op.Value))
	}
}

// Delete godoc
// @Summary      Delete account
// @Description  Permanently delete the account with the given CPF
// @Tags         Account
// @Produce      json
// @Param        cpf path string true "CPF, formatted or bare digits"
// @Success      200 {object} util.APIResponse{data=model.Physician} "Account deleted"
// @Failure      400 {object} util.APIResponse "Malformed CPF"
// @Failure      404 {object} util.APIResponse "Account not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/account/{cpf} [delete]
// @Router       /patient/account/{cpf} [delete]
func (h accountHandlers[T, R]) Delete(c *gin.Context) {
	cpf, ok := cpfParamOrRespond(c)
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	op := svc.Delete(c.Request.Context(), cpf)
	if respondOperation(c, op, h.outcome(h.resource+" deleted"), util.CallSuccessOK) {
		h.invalidateSessions(c, op.Value)
		util.LogAccountDeleted(h.eventParams(c, op.Value))
	}
}

// SignIn godoc
// @Summary      Sign in
// @Description  Authenticate with CPF and password and receive a bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SignInRequest true "Credentials"
// @Success      200 {object} util.APIResponse{data=SignInResponse} "Sign in successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid CPF or password"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /physician/sign-in [post]
// @Router       /patient/sign-in [post]
func (h accountHandlers[T, R]) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}

	kind := model.KindOf[T]()
	ci := clientOf(c)
	op := svc.Authenticate(c.Request.Context(), req.CPF, req.Password)
	switch op.Status {
	case repository.StatusSuccess:
	case repository.StatusNotFound:
		util.LogSigninFailure(util.AccountEventParams{
			Kind:      kind.String(),
			CPF:       model.NormalizeNationalID(req.CPF),
			IP:        ci.IP,
			UserAgent: ci.Agent,
			Reason:    "invalid cpf or password",
		})
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid CPF or password", Err: errNotFound})
		return
	default:
		respondOperation(c, op, h.outcome(""), util.CallSuccessOK)
		return
	}

	account := op.Value
	expiresAt := time.Now().Add(h.tokenTTL)
	token, err := util.CreateAccountToken(account.Identifier(), kind.String(), account.NationalID(), h.tokenTTL)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to issue token", Err: err})
		return
	}
	if err := util.AddAccountSession(c.Request.Context(), kind.String(), account.Identifier(), token, h.tokenTTL); err != nil {
		util.Logger().Warn().Err(err).Str("account_id", account.Identifier().String()).Msg("failed to record session")
	}

	util.LogSigninSuccess(h.eventParams(c, account))
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Sign in successful",
		Data: SignInResponse{Token: token, Kind: kind.String(), ExpiresAt: expiresAt},
	})
}

func registerAccountRoutes[T model.Account[T], R accountRequest[T]](group *gin.RouterGroup, h accountHandlers[T, R], limiter gin.HandlerFunc) {
	group.GET("/accounts", h.List)
	group.GET("/account-credential/:cpf", middleware.ValidateAccountToken(), h.Credential)
	group.POST("/create-account", limiter, h.Create)
	group.PUT("/account/:cpf", h.Replace)
	group.DELETE("/account/:cpf", h.Delete)
	group.POST("/sign-in", limiter, h.SignIn)
}
