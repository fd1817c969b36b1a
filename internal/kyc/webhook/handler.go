package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	kycmetrics "kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/models"
	dErrors "kycgate/pkg/domain-errors"
	audit "kycgate/pkg/platform/audit"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/requestcontext"
)

const (
	// DefaultPath is where the provider delivers notifications.
	DefaultPath = "/webhooks/kyc"
	// DefaultSignatureHeader carries the hex HMAC of the raw body.
	DefaultSignatureHeader = "X-Payload-Digest"
	// MaxBodyBytes caps a single delivery.
	MaxBodyBytes = 1 << 20
)

// StatusUpdater is the verification service's single mutation path.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, u models.StatusUpdate) error
}

// SignatureVerifier checks a raw payload against its signature.
type SignatureVerifier interface {
	VerifyWebhookSignature(payload []byte, signature, webhookSecret string) bool
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Handler serves the provider webhook endpoint.
type Handler struct {
	updater        StatusUpdater
	verifier       SignatureVerifier
	secret         string
	header         string
	logger         *slog.Logger
	metrics        *kycmetrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(h *Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *kycmetrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(h *Handler) {
		h.auditPublisher = p
	}
}

// WithSignatureHeader overrides the header the signature is read from.
func WithSignatureHeader(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.header = name
		}
	}
}

func New(updater StatusUpdater, verifier SignatureVerifier, secret string, opts ...Option) *Handler {
	h := &Handler{
		updater:  updater,
		verifier: verifier,
		secret:   secret,
		header:   DefaultSignatureHeader,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the webhook route.
func (h *Handler) Register(r chi.Router) {
	r.Post(DefaultPath, h.ServeHTTP)
}

// ServeHTTP verifies, parses and dispatches one delivery. Once the signature
// is valid the response is 200 unless the record store fails.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.metrics.IncrementWebhook("", "too_large")
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
				Error:            string(dErrors.CodeBadRequest),
				ErrorDescription: "webhook body exceeds 1 MiB",
			})
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read webhook body"))
		return
	}

	signature := r.Header.Get(h.header)
	if signature == "" || !h.verifier.VerifyWebhookSignature(body, signature, h.secret) {
		h.metrics.IncrementWebhook("", "signature_invalid")
		h.logger.WarnContext(ctx, "webhook rejected: invalid signature",
			"request_id", requestcontext.RequestID(ctx),
			"signature_present", signature != "",
			"body_bytes", len(body),
		)
		if h.auditPublisher != nil {
			_ = h.auditPublisher.Emit(ctx, audit.Event{
				Action: string(audit.EventWebhookRejected),
				Reason: "signature_invalid",
			})
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeSignatureInvalid, "invalid webhook signature"))
		return
	}

	evt, err := Parse(body)
	if err != nil {
		h.metrics.IncrementWebhook("", "malformed")
		h.logger.WarnContext(ctx, "webhook ignored: malformed body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeAccepted(w)
		return
	}

	env := evt.Envelope()
	d := &dispatcher{ctx: ctx, updater: h.updater, logger: h.logger}
	if err := evt.Accept(d); err != nil {
		h.metrics.IncrementWebhook(env.Type, "error")
		h.logger.ErrorContext(ctx, "webhook processing failed",
			"request_id", requestcontext.RequestID(ctx),
			"type", env.Type,
			"applicant_id", env.ApplicantID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "webhook processing failed"))
		return
	}

	h.metrics.IncrementWebhook(env.Type, d.outcome)
	writeAccepted(w)
}

func writeAccepted(w http.ResponseWriter) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dispatcher maps each event kind onto a status update.
type dispatcher struct {
	ctx     context.Context
	updater StatusUpdater
	logger  *slog.Logger
	outcome string
}

func (d *dispatcher) VisitApplicantReviewed(e ApplicantReviewed) error {
	return d.review(e.Envelope(), true)
}

func (d *dispatcher) VisitApplicantPending(e ApplicantPending) error {
	return d.review(e.Envelope(), true)
}

func (d *dispatcher) VisitApplicantOnHold(e ApplicantOnHold) error {
	return d.review(e.Envelope(), true)
}

func (d *dispatcher) VisitApplicantCreated(e ApplicantCreated) error {
	env := e.Envelope()
	d.outcome = "logged"
	d.logger.InfoContext(d.ctx, "applicant created at provider",
		"applicant_id", env.ApplicantID,
		"external_user_id", env.ExternalUserID,
	)
	return nil
}

func (d *dispatcher) VisitApplicantActionPending(e ApplicantActionPending) error {
	env := e.Envelope()
	return d.apply(models.StatusUpdate{
		ApplicantID:    env.ApplicantID,
		Status:         models.StatusActionRequired,
		WebhookPayload: env.Raw,
		Source:         models.SourceWebhook,
	})
}

func (d *dispatcher) VisitApplicantActionReviewed(e ApplicantActionReviewed) error {
	return d.review(e.Envelope(), false)
}

func (d *dispatcher) VisitUnknown(e UnknownEvent) error {
	env := e.Envelope()
	d.outcome = "ignored"
	d.logger.InfoContext(d.ctx, "webhook ignored: unhandled event type",
		"type", env.Type,
		"applicant_id", env.ApplicantID,
	)
	return nil
}

// review applies reviewStatus and reviewResult; withScore also copies the
// result's score.
func (d *dispatcher) review(env Envelope, withScore bool) error {
	answer, rejectType := "", ""
	if env.ReviewResult != nil {
		answer, rejectType = env.ReviewResult.ReviewAnswer, env.ReviewResult.RejectType
	}
	status, err := models.ParseProviderStatus(env.ReviewStatus, answer, rejectType)
	if err != nil {
		d.outcome = "ignored"
		d.logger.WarnContext(d.ctx, "webhook ignored: unmapped review status",
			"type", env.Type,
			"applicant_id", env.ApplicantID,
			"review_status", env.ReviewStatus,
		)
		return nil
	}

	u := models.StatusUpdate{
		ApplicantID:    env.ApplicantID,
		Status:         status,
		ReviewResult:   env.ResultRaw,
		WebhookPayload: env.Raw,
		Source:         models.SourceWebhook,
	}
	if env.ReviewResult != nil {
		if withScore {
			u.Score = env.ReviewResult.Score
		}
		if status == models.StatusRejected || status == models.StatusActionRequired {
			u.RejectionReason = env.ReviewResult.Reason()
		}
	}
	return d.apply(u)
}

func (d *dispatcher) apply(u models.StatusUpdate) error {
	if u.ApplicantID == "" {
		d.outcome = "ignored"
		d.logger.WarnContext(d.ctx, "webhook ignored: missing applicant id", "status", string(u.Status))
		return nil
	}
	if err := d.updater.UpdateStatus(d.ctx, u); err != nil {
		return err
	}
	d.outcome = "applied"
	return nil
}
