// Package httpapi wires the coordinator's public HTTP surface to the sagas package.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/metrics"
	"github.com/director74/saga-coordinator/internal/sagas"
)

// Handler holds the dependencies needed to serve the coordinator's routes.
type Handler struct {
	deps *sagas.Dependencies
}

func NewHandler(deps *sagas.Dependencies) *Handler {
	return &Handler{deps: deps}
}

// RegisterRoutes mounts every public endpoint of the coordinator onto router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/create_account", h.CreateAccount)
	router.POST("/email_verify", h.RequestEmailVerify)
	router.POST("/email_verify_apply", h.ApplyEmailVerify)
	router.POST("/reset_password", h.RequestPasswordReset)
	router.POST("/reset_password_apply", h.ApplyPasswordReset)
	router.POST("/create_store", h.CreateStore)
	router.POST("/create_order", h.CreateOrder)
	router.POST("/buy_now", h.BuyNow)
	router.POST("/orders/update_state", h.UpdateStateByBilling)
	router.POST("/orders/:slug/set_state", h.ManualSetState)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req dto.SagaCreateProfile
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	user, err := sagas.CreateAccount(c.Request.Context(), h.deps, in, req)
	if err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateStore(c *gin.Context) {
	var req dto.NewStore
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	store, err := sagas.CreateStore(c.Request.Context(), h.deps, in, req)
	if err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req dto.ConvertCart
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	invoice, err := sagas.CreateOrder(c.Request.Context(), h.deps, in, req)
	if err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) BuyNow(c *gin.Context) {
	var req dto.BuyNow
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	invoice, err := sagas.BuyNow(c.Request.Context(), h.deps, in, req)
	if err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) UpdateStateByBilling(c *gin.Context) {
	var req dto.BillingOrdersVec
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	if err := sagas.UpdateStateByBilling(c.Request.Context(), h.deps, in, req); err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) ManualSetState(c *gin.Context) {
	var req dto.UpdateStatePayload
	if !apperrors.BindJSON(c, &req) {
		return
	}

	slug := c.Param("slug")
	in := headers.FromRequest(c.Request)
	order, err := sagas.ManualSetState(c.Request.Context(), h.deps, in, slug, req)
	if err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req dto.ResetRequest
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	if err := sagas.RequestPasswordReset(c.Request.Context(), h.deps, in, req); err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) ApplyPasswordReset(c *gin.Context) {
	var req dto.PasswordResetApply
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	if err := sagas.ApplyPasswordReset(c.Request.Context(), h.deps, in, req); err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) RequestEmailVerify(c *gin.Context) {
	var req dto.ResetRequest
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	// The coordinator does not know the caller's user id from an opaque token;
	// Users resolves the id for the given email when minting the token.
	if err := sagas.RequestEmailVerify(c.Request.Context(), h.deps, in, 0, req.Email); err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) ApplyEmailVerify(c *gin.Context) {
	var req dto.EmailVerifyApply
	if !apperrors.BindJSON(c, &req) {
		return
	}

	in := headers.FromRequest(c.Request)
	if err := sagas.ApplyEmailVerify(c.Request.Context(), h.deps, in, req); err != nil {
		apperrors.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
