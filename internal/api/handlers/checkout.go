package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/auth"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/domain"
)

// Sessions holds the live checkout forms, one per session id. Sessions are
// in-memory only and dropped when checkout completes.
type Sessions struct {
	mu    sync.Mutex
	forms map[string]*checkout.Form
}

// NewSessions creates an empty session store
func NewSessions() *Sessions {
	return &Sessions{forms: make(map[string]*checkout.Form)}
}

// Put stores a form under a session id
func (s *Sessions) Put(id string, f *checkout.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[id] = f
}

// Get returns the form for a session id
func (s *Sessions) Get(id string) (*checkout.Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[id]
	return f, ok
}

// Delete drops a session
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
}

// StateResponse is the wizard state returned to the client on every call
type StateResponse struct {
	Step        int                     `json:"step"`
	StepName    string                  `json:"stepName"`
	Shipping    domain.ShippingInfo     `json:"shipping"`
	Payment     domain.PaymentInfo      `json:"payment"`
	Notes       string                  `json:"notes"`
	Errors      domain.ValidationErrors `json:"errors"`
	Summary     domain.CartSummary      `json:"summary"`
	SubmitError string                  `json:"submitError,omitempty"`
}

// StartCheckoutResponse is returned when a new checkout session is opened
type StartCheckoutResponse struct {
	SessionID string        `json:"sessionId"`
	State     StateResponse `json:"state"`
}

// UpdateFieldRequest is a single field update. Boolean fields take "true"
// or "false" as the value.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SubmitResponse is returned when both the order and its payment succeed
type SubmitResponse struct {
	RedirectTo string `json:"redirectTo"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

func buildState(f *checkout.Form, c cart.Cart) StateResponse {
	step := f.Step()
	return StateResponse{
		Step:        int(step),
		StepName:    step.String(),
		Shipping:    f.Shipping(),
		Payment:     f.Payment(),
		Notes:       f.Notes(),
		Errors:      f.Errors(),
		Summary:     c.Summary(),
		SubmitError: f.SubmitError(),
	}
}

// HandleStartCheckout handles POST /v1/checkout. An anonymous visitor is
// redirected to login, an empty cart back to the cart view.
func HandleStartCheckout(session auth.Session, c cart.Cart, sessions *Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := session.CurrentUser()
		if user == nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"redirectTo": "/login"})
			return
		}

		if c.IsEmpty() {
			ctx.JSON(http.StatusConflict, gin.H{"redirectTo": "/cart"})
			return
		}

		id := uuid.NewString()
		form := checkout.NewForm(user)
		sessions.Put(id, form)

		logger.Info("Checkout session started", zap.String("session_id", id))

		ctx.JSON(http.StatusCreated, StartCheckoutResponse{
			SessionID: id,
			State:     buildState(form, c),
		})
	}
}

// HandleGetCheckout handles GET /v1/checkout/:id
func HandleGetCheckout(c cart.Cart, sessions *Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := sessions.Get(ctx.Param("id"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
			return
		}

		ctx.JSON(http.StatusOK, buildState(form, c))
	}
}

// HandleUpdateField handles PATCH /v1/checkout/:id/fields
func HandleUpdateField(c cart.Cart, sessions *Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := sessions.Get(ctx.Param("id"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
			return
		}

		var req UpdateFieldRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := form.SetField(req.Field, req.Value); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, buildState(form, c))
	}
}

// HandleAdvance handles POST /v1/checkout/:id/advance. A validation failure
// keeps the current step and returns the field errors.
func HandleAdvance(c cart.Cart, sessions *Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := sessions.Get(ctx.Param("id"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
			return
		}

		if !form.Advance() {
			ctx.JSON(http.StatusUnprocessableEntity, buildState(form, c))
			return
		}

		ctx.JSON(http.StatusOK, buildState(form, c))
	}
}

// HandleBack handles POST /v1/checkout/:id/back. Backward navigation never
// validates.
func HandleBack(c cart.Cart, sessions *Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := sessions.Get(ctx.Param("id"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
			return
		}

		form.Back()
		ctx.JSON(http.StatusOK, buildState(form, c))
	}
}

// redirectRecorder captures the redirect the submitter performs so it can
// be returned in the response body.
type redirectRecorder struct {
	path  string
	state checkout.NavState
}

func (r *redirectRecorder) Redirect(path string, state checkout.NavState) {
	r.path = path
	r.state = state
}

// HandleSubmit handles POST /v1/checkout/:id/submit
func HandleSubmit(c cart.Cart, sessions *Sessions, submitter *checkout.Submitter, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.Param("id")
		form, ok := sessions.Get(id)
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
			return
		}

		rec := &redirectRecorder{}
		err := submitter.Submit(ctx.Request.Context(), form, rec)
		switch {
		case errors.Is(err, checkout.ErrSubmitInFlight):
			ctx.JSON(http.StatusConflict, gin.H{"error": "submission already in flight"})
		case errors.Is(err, checkout.ErrNotAtReview):
			ctx.JSON(http.StatusConflict, gin.H{"error": "checkout is not at the review step"})
		case err != nil:
			state := buildState(form, c)
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error": state.SubmitError,
				"state": state,
			})
		default:
			sessions.Delete(id)
			ctx.JSON(http.StatusOK, SubmitResponse{
				RedirectTo: rec.path,
				Success:    rec.state.Success,
				Message:    rec.state.Message,
			})
		}
	}
}
