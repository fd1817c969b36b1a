// Package handler exposes verification over HTTP for admins and end users.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/provider"
	"kycgate/internal/platform/middleware"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/platform/middleware/admin"
	"kycgate/pkg/requestcontext"
)

// Service defines the verification operations served over HTTP.
type Service interface {
	Initiate(ctx context.Context, userID id.UserID, info *models.PersonalInfo) (*models.InitiateResult, error)
	GetStatus(ctx context.Context, userID id.UserID) (*models.View, error)
	GetDetails(ctx context.Context, userID id.UserID) (*models.Details, error)
	Reset(ctx context.Context, userID id.UserID) error
	Annotate(ctx context.Context, userID id.UserID, notes *string, risk *models.RiskLevel) (*models.Record, error)
	ListApplicants(ctx context.Context, p provider.ListParams) (*provider.ApplicantPage, error)
	SearchApplicants(ctx context.Context, p provider.SearchParams) (*provider.ApplicantPage, error)
	Statistics(ctx context.Context, from, to time.Time) (json.RawMessage, error)
	WebhookLogs(ctx context.Context, p provider.WebhookLogParams) (json.RawMessage, error)
}

// Handler wires verification endpoints to the service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	adminCheck   admin.TokenCheck
	jwtValidator middleware.JWTValidator
}

// New constructs a handler. adminCheck guards /admin routes and jwtValidator
// guards end-user routes.
func New(service Service, logger *slog.Logger, adminCheck admin.TokenCheck, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		adminCheck:   adminCheck,
		jwtValidator: jwtValidator,
	}
}

// Register mounts admin and end-user routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/kyc", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminCheck, h.logger))
		r.Post("/users/{userID}/initiate", h.HandleAdminInitiate)
		r.Get("/users/{userID}", h.HandleAdminStatus)
		r.Get("/users/{userID}/details", h.HandleAdminDetails)
		r.Post("/users/{userID}/reset", h.HandleAdminReset)
		r.Patch("/users/{userID}/notes", h.HandleAdminAnnotate)
		r.Get("/applicants", h.HandleListApplicants)
		r.Get("/applicants/search", h.HandleSearchApplicants)
		r.Get("/stats", h.HandleStatistics)
		r.Get("/webhook-logs", h.HandleWebhookLogs)
	})

	r.Route("/kyc", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/initiate", h.HandleInitiate)
		r.Get("/status", h.HandleStatus)
	})
}

// HandleInitiate handles POST /kyc/initiate for the authenticated user.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	h.initiate(w, r, userID)
}

// HandleStatus handles GET /kyc/status for the authenticated user.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetStatus(ctx, userID)
	if err != nil {
		h.fail(w, r, "get verification status failed", err, "user_id", userID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserStatus(view))
}

// HandleAdminInitiate handles POST /admin/kyc/users/{userID}/initiate.
func (h *Handler) HandleAdminInitiate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	h.initiate(w, r, userID)
}

func (h *Handler) initiate(w http.ResponseWriter, r *http.Request, userID id.UserID) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[InitiateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Initiate(ctx, userID, req.PersonalInfo())
	if err != nil {
		h.fail(w, r, "verification initiation failed", err, "user_id", userID.String())
		return
	}

	h.logger.InfoContext(ctx, "verification initiated",
		"request_id", requestID,
		"user_id", userID.String(),
		"applicant_id", result.ApplicantID,
		"actor", requestcontext.Actor(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleAdminStatus handles GET /admin/kyc/users/{userID}.
func (h *Handler) HandleAdminStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "get verification status failed", err, "user_id", userID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAdminStatus(view))
}

// HandleAdminDetails handles GET /admin/kyc/users/{userID}/details.
func (h *Handler) HandleAdminDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	details, err := h.service.GetDetails(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "get verification details failed", err, "user_id", userID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DetailsResponse{
		AdminStatusResponse: toAdminStatus(details.View),
		Documents:           details.Documents,
		Checks:              details.Checks,
	})
}

// HandleAdminReset handles POST /admin/kyc/users/{userID}/reset.
func (h *Handler) HandleAdminReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	if err := h.service.Reset(ctx, userID); err != nil {
		h.fail(w, r, "verification reset failed", err, "user_id", userID.String())
		return
	}
	h.logger.InfoContext(ctx, "verification reset",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, ResetResponse{Success: true})
}

// HandleAdminAnnotate handles PATCH /admin/kyc/users/{userID}/notes.
func (h *Handler) HandleAdminAnnotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AnnotateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	rec, err := h.service.Annotate(ctx, userID, req.Notes, req.ParsedRisk())
	if err != nil {
		h.fail(w, r, "verification annotate failed", err, "user_id", userID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAdminStatus(recordView(rec)))
}

// HandleListApplicants handles GET /admin/kyc/applicants.
func (h *Handler) HandleListApplicants(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.service.ListApplicants(r.Context(), params)
	if err != nil {
		h.fail(w, r, "list applicants failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// HandleSearchApplicants handles GET /admin/kyc/applicants/search.
func (h *Handler) HandleSearchApplicants(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.SearchApplicants(r.Context(), parseSearchParams(r.URL.Query()))
	if err != nil {
		h.fail(w, r, "search applicants failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// HandleStatistics handles GET /admin/kyc/stats.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseStatsRange(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stats, err := h.service.Statistics(r.Context(), from, to)
	if err != nil {
		h.fail(w, r, "load statistics failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleWebhookLogs handles GET /admin/kyc/webhook-logs.
func (h *Handler) HandleWebhookLogs(w http.ResponseWriter, r *http.Request) {
	params, err := parseWebhookLogParams(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	logs, err := h.service.WebhookLogs(r.Context(), params)
	if err != nil {
		h.fail(w, r, "load webhook logs failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) pathUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "userID must be a UUID"))
		return id.UserID{}, false
	}
	return userID, true
}

// fail logs at a level matching the error's class and writes the response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error, attrs ...any) {
	ctx := r.Context()
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
