package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"kycgate/internal/kyc/events"
	kycmetrics "kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/provider"
	"kycgate/pkg/attrs"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	audit "kycgate/pkg/platform/audit"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"
)

// Store persists verification records. Implementations return sentinel
// errors; ApplyStatusUpdate and ResetReview must be atomic per row.
type Store interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Record, error)
	FindByApplicantID(ctx context.Context, applicantID string) (*models.Record, error)
	InsertIfAbsent(ctx context.Context, rec *models.Record) (*models.Record, bool, error)
	SetApplicant(ctx context.Context, userID id.UserID, applicantID string, now time.Time) (*models.Record, error)
	SetAccessToken(ctx context.Context, userID id.UserID, token string, now time.Time) error
	ApplyStatusUpdate(ctx context.Context, u models.StatusUpdate, now time.Time) (*models.Record, bool, error)
	ResetReview(ctx context.Context, userID id.UserID, now time.Time) (*models.Record, error)
	Annotate(ctx context.Context, userID id.UserID, notes *string, risk *models.RiskLevel, now time.Time) (*models.Record, error)
}

// UserDirectory resolves platform users. Returns sentinel.ErrNotFound when
// the user does not exist.
type UserDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}

// Provider is the subset of the provider client the service drives.
type Provider interface {
	CreateApplicant(ctx context.Context, levelName string, in provider.CreateApplicantRequest) (*provider.Applicant, error)
	GetApplicantByExternalID(ctx context.Context, externalUserID string) (*provider.Applicant, error)
	GetReviewStatus(ctx context.Context, applicantID string) (*provider.ReviewStatus, error)
	IssueAccessToken(ctx context.Context, externalUserID, levelName string, ttl time.Duration) (*provider.AccessToken, error)
	ResetApplicant(ctx context.Context, applicantID string) error
	GetDocuments(ctx context.Context, applicantID string) (json.RawMessage, error)
	GetCheckResults(ctx context.Context, applicantID string) (json.RawMessage, error)
	ListApplicants(ctx context.Context, p provider.ListParams) (*provider.ApplicantPage, error)
	SearchApplicants(ctx context.Context, p provider.SearchParams) (*provider.ApplicantPage, error)
	GetStatistics(ctx context.Context, from, to time.Time) (json.RawMessage, error)
	GetWebhookLogs(ctx context.Context, p provider.WebhookLogParams) (json.RawMessage, error)
}

// UserLocker serializes work per user across goroutines or instances.
type UserLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt events.StatusChanged) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Transactor runs fn in a unit of work carried on ctx. Stores and audit
// sinks that understand the context join it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

const (
	DefaultLevelName      = "basic-kyc-level"
	DefaultAccessTokenTTL = 600 * time.Second
)

// Service owns the verification state machine. It is the only writer of
// verification records.
type Service struct {
	store          Store
	users          UserDirectory
	provider       Provider
	locker         UserLocker
	logger         *slog.Logger
	metrics        *kycmetrics.Metrics
	events         EventPublisher
	auditPublisher AuditPublisher
	tx             Transactor
	levelName      string
	tokenTTL       time.Duration
	clock          func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *kycmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithTransactor makes a status change and its audit row commit together.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func WithLevelName(level string) Option {
	return func(s *Service) {
		if level != "" {
			s.levelName = level
		}
	}
}

func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithClock pins the service clock. Without it the request time is used.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New constructs a Service. A nil locker falls back to an in-process one.
func New(store Store, users UserDirectory, p Provider, locker UserLocker, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("verification store is required")
	}
	if users == nil {
		return nil, errors.New("user directory is required")
	}
	if p == nil {
		return nil, errors.New("provider client is required")
	}
	if locker == nil {
		locker = NewKeyedMutex()
	}
	s := &Service{
		store:     store,
		users:     users,
		provider:  p,
		locker:    locker,
		tx:        directTx{},
		logger:    slog.Default(),
		levelName: DefaultLevelName,
		tokenTTL:  DefaultAccessTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initiate starts or resumes verification for a user and returns a fresh
// access token. At most one applicant is ever created per user.
func (s *Service) Initiate(ctx context.Context, userID id.UserID, info *models.PersonalInfo) (*models.InitiateResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	unlock, err := s.locker.Lock(ctx, userID.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeConflict, "verification is already being initiated for this user")
	}
	defer unlock()

	rec, err := s.findRecord(ctx, userID)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, err
	}

	path := "reused"
	if rec == nil || !rec.HasApplicant() {
		rec, err = s.attachApplicant(ctx, user, rec, info)
		if err != nil {
			return nil, err
		}
		path = "created"
	}

	externalID := rec.ProviderExternalUserID
	if externalID == "" {
		externalID = models.ExternalUserID(userID)
	}
	token, err := s.provider.IssueAccessToken(ctx, externalID, s.levelName, s.tokenTTL)
	if err != nil {
		return nil, s.providerFailure(ctx, err, "failed to issue access token")
	}
	if err := s.store.SetAccessToken(ctx, userID, token.Token, s.now(ctx)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store access token")
	}

	s.metrics.IncrementInitiation(path)
	s.logAudit(ctx, string(audit.EventAccessTokenIssued),
		"user_id", userID.String(),
		"applicant_id", rec.ProviderApplicantID,
		"path", path,
	)
	return &models.InitiateResult{AccessToken: token.Token, ApplicantID: rec.ProviderApplicantID}, nil
}

// attachApplicant creates (or recovers) the provider applicant and persists
// it, either as a new record or onto an existing record without one.
func (s *Service) attachApplicant(ctx context.Context, user *models.User, existing *models.Record, info *models.PersonalInfo) (*models.Record, error) {
	applicantID, err := s.createApplicant(ctx, user, info)
	if err != nil {
		return nil, err
	}
	now := s.now(ctx)

	if existing != nil {
		rec, err := s.store.SetApplicant(ctx, user.ID, applicantID, now)
		if err != nil {
			if errors.Is(err, sentinel.ErrAlreadySet) {
				return s.findRecord(ctx, user.ID)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach applicant")
		}
		s.logInitiated(ctx, rec)
		return rec, nil
	}

	fresh, err := models.NewRecord(id.NewRecordID(), user.ID, applicantID, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build verification record")
	}
	rec, created, err := s.store.InsertIfAbsent(ctx, fresh)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "applicant is already linked to another user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create verification record")
	}
	if !created {
		// Another instance won the insert. Its record is authoritative.
		if rec.HasApplicant() {
			return rec, nil
		}
		rec, err = s.store.SetApplicant(ctx, user.ID, applicantID, now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach applicant")
		}
	}
	s.logInitiated(ctx, rec)
	return rec, nil
}

func (s *Service) createApplicant(ctx context.Context, user *models.User, info *models.PersonalInfo) (string, error) {
	merged := models.MergeApplicantInfo(user, info)
	externalID := models.ExternalUserID(user.ID)
	req := provider.CreateApplicantRequest{
		ExternalUserID: externalID,
		Email:          merged.Email,
		Phone:          merged.Phone,
	}
	if merged.FirstName != "" || merged.LastName != "" || merged.Country != "" || merged.DateOfBirth != "" {
		req.FixedInfo = &provider.FixedInfo{
			FirstName: merged.FirstName,
			LastName:  merged.LastName,
			Country:   merged.Country,
			DOB:       merged.DateOfBirth,
		}
	}

	applicant, err := s.provider.CreateApplicant(ctx, s.levelName, req)
	if provider.IsConflict(err) {
		s.logger.InfoContext(ctx, "applicant already exists at provider, recovering by external id",
			"user_id", user.ID.String(),
			"external_user_id", externalID,
		)
		applicant, err = s.provider.GetApplicantByExternalID(ctx, externalID)
	}
	if err != nil {
		return "", s.providerFailure(ctx, err, "failed to create applicant")
	}
	if applicant.ID == "" {
		return "", dErrors.New(dErrors.CodeProviderError, "provider returned an applicant without id")
	}
	return applicant.ID, nil
}

// GetStatus returns the user's verification, reconciled against the provider
// when the record is linked. Provider failures degrade to the local view.
func (s *Service) GetStatus(ctx context.Context, userID id.UserID) (*models.View, error) {
	rec, err := s.findRecord(ctx, userID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return models.NotStartedView(userID), nil
		}
		return nil, err
	}
	view := &models.View{UserID: userID, Status: rec.Status, Record: rec}
	if !rec.HasApplicant() {
		return view, nil
	}

	remote, err := s.provider.GetReviewStatus(ctx, rec.ProviderApplicantID)
	if err != nil {
		s.logger.WarnContext(ctx, "status reconciliation skipped: provider unavailable",
			"user_id", userID.String(),
			"applicant_id", rec.ProviderApplicantID,
			"error", err,
		)
		view.ReconcileError = err.Error()
		return view, nil
	}
	view.ProviderStatus = remote.Raw

	answer, rejectType := remote.Answer()
	mapped, err := models.ParseProviderStatus(remote.ReviewStatus, answer, rejectType)
	if err != nil {
		s.logger.WarnContext(ctx, "status reconciliation skipped: unmapped provider status",
			"applicant_id", rec.ProviderApplicantID,
			"review_status", remote.ReviewStatus,
		)
		view.ReconcileError = err.Error()
		return view, nil
	}
	if mapped == rec.Status {
		return view, nil
	}

	update := models.StatusUpdate{
		ApplicantID:  rec.ProviderApplicantID,
		Status:       mapped,
		ReviewResult: remote.ResultRaw,
		Source:       models.SourceReconciliation,
	}
	if remote.ReviewResult != nil {
		update.Score = remote.ReviewResult.Score
		if mapped == models.StatusRejected || mapped == models.StatusActionRequired {
			update.RejectionReason = remote.ReviewResult.Reason()
		}
	}
	if err := s.UpdateStatus(ctx, update); err != nil {
		return nil, err
	}

	rec, err = s.findRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	view.Record = rec
	view.Status = rec.Status
	return view, nil
}

// UpdateStatus is the single path that mutates verification status, shared
// by webhooks and reconciliation. Unknown applicants and disallowed
// transitions are logged and dropped; only store faults return an error.
func (s *Service) UpdateStatus(ctx context.Context, u models.StatusUpdate) error {
	if u.Source == "" {
		u.Source = models.SourceWebhook
	}
	if u.ApplicantID == "" || !u.Status.IsValid() {
		s.logger.WarnContext(ctx, "status update ignored: incomplete update",
			"applicant_id", u.ApplicantID,
			"status", string(u.Status),
			"source", u.Source,
		)
		return nil
	}

	now := s.now(ctx)
	var (
		rec     *models.Record
		applied bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		rec, applied, err = s.store.ApplyStatusUpdate(ctx, u, now)
		if err != nil {
			return err
		}
		if !applied {
			s.logAudit(ctx, string(audit.EventTransitionRejected),
				"user_id", rec.UserID.String(),
				"applicant_id", u.ApplicantID,
				"from", string(rec.Status),
				"to", string(u.Status),
				"source", u.Source,
			)
			return nil
		}
		s.logAudit(ctx, string(audit.EventStatusUpdated),
			"user_id", rec.UserID.String(),
			"applicant_id", u.ApplicantID,
			"status", string(rec.Status),
			"source", u.Source,
		)
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "status update ignored: no record for applicant",
				"applicant_id", u.ApplicantID,
				"status", string(u.Status),
				"source", u.Source,
			)
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply status update")
	}
	if !applied {
		s.metrics.IncrementRejectedTransition()
		return nil
	}

	s.metrics.IncrementTransition(u.Source, string(rec.Status))
	s.publish(ctx, rec, u.Source, now)
	return nil
}

// Reset re-opens a decision at the provider, then clears local review
// fields. A provider failure leaves the record untouched.
func (s *Service) Reset(ctx context.Context, userID id.UserID) error {
	unlock, err := s.locker.Lock(ctx, userID.String())
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeConflict, "verification is busy for this user")
	}
	defer unlock()

	rec, err := s.findRecord(ctx, userID)
	if err != nil {
		return err
	}
	if !rec.HasApplicant() {
		return dErrors.New(dErrors.CodeNotFound, "verification has no provider applicant")
	}

	if err := s.provider.ResetApplicant(ctx, rec.ProviderApplicantID); err != nil {
		return s.providerFailure(ctx, err, "failed to reset applicant at provider")
	}

	now := s.now(ctx)
	rec, err = s.store.ResetReview(ctx, userID, now)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "verification record not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset verification")
	}

	s.logAudit(ctx, string(audit.EventVerificationReset),
		"user_id", userID.String(),
		"applicant_id", rec.ProviderApplicantID,
	)
	s.publish(ctx, rec, "reset", now)
	return nil
}

// Annotate records admin notes and/or a risk level.
func (s *Service) Annotate(ctx context.Context, userID id.UserID, notes *string, risk *models.RiskLevel) (*models.Record, error) {
	if notes == nil && risk == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "notes or risk_level is required")
	}
	if risk != nil && !risk.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "risk_level must be one of low, medium, high")
	}
	rec, err := s.store.Annotate(ctx, userID, notes, risk, s.now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to annotate verification")
	}
	s.logAudit(ctx, string(audit.EventVerificationAnnotated),
		"user_id", userID.String(),
		"applicant_id", rec.ProviderApplicantID,
		"risk_level", string(rec.RiskLevel),
	)
	return rec, nil
}

// GetDetails is the admin view: reconciled status plus the provider's
// document and check results, fetched concurrently.
func (s *Service) GetDetails(ctx context.Context, userID id.UserID) (*models.Details, error) {
	view, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	details := &models.Details{View: view}
	if view.Record == nil || !view.Record.HasApplicant() {
		return details, nil
	}
	applicantID := view.Record.ProviderApplicantID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, err := s.provider.GetDocuments(gctx, applicantID)
		if err != nil {
			return err
		}
		details.Documents = docs
		return nil
	})
	g.Go(func() error {
		checks, err := s.provider.GetCheckResults(gctx, applicantID)
		if err != nil {
			return err
		}
		details.Checks = checks
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.providerFailure(ctx, err, "failed to load verification details")
	}
	return details, nil
}

func (s *Service) ListApplicants(ctx context.Context, p provider.ListParams) (*provider.ApplicantPage, error) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "offset must not be negative")
	}
	if !p.CreatedFrom.IsZero() && !p.CreatedTo.IsZero() && p.CreatedTo.Before(p.CreatedFrom) {
		return nil, dErrors.New(dErrors.CodeValidation, "created_to must not be before created_from")
	}
	page, err := s.provider.ListApplicants(ctx, p)
	if err != nil {
		return nil, s.providerFailure(ctx, err, "failed to list applicants")
	}
	return page, nil
}

func (s *Service) SearchApplicants(ctx context.Context, p provider.SearchParams) (*provider.ApplicantPage, error) {
	if p.Email == "" && p.Phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email or phone is required")
	}
	page, err := s.provider.SearchApplicants(ctx, p)
	if err != nil {
		return nil, s.providerFailure(ctx, err, "failed to search applicants")
	}
	return page, nil
}

func (s *Service) Statistics(ctx context.Context, from, to time.Time) (json.RawMessage, error) {
	if from.IsZero() || to.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "from and to are required")
	}
	if to.Before(from) {
		return nil, dErrors.New(dErrors.CodeValidation, "to must not be before from")
	}
	stats, err := s.provider.GetStatistics(ctx, from, to)
	if err != nil {
		return nil, s.providerFailure(ctx, err, "failed to load statistics")
	}
	return stats, nil
}

func (s *Service) WebhookLogs(ctx context.Context, p provider.WebhookLogParams) (json.RawMessage, error) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	logs, err := s.provider.GetWebhookLogs(ctx, p)
	if err != nil {
		return nil, s.providerFailure(ctx, err, "failed to load webhook logs")
	}
	return logs, nil
}

func (s *Service) findRecord(ctx context.Context, userID id.UserID) (*models.Record, error) {
	rec, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification record")
	}
	return rec, nil
}

// providerFailure wraps a provider error so it stays reachable via errors.As.
func (s *Service) providerFailure(ctx context.Context, err error, msg string) error {
	s.logger.ErrorContext(ctx, msg,
		"error", err,
		"category", string(provider.GetCategory(err)),
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeProviderError, msg)
}

func (s *Service) publish(ctx context.Context, rec *models.Record, source string, at time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatusChanged(ctx, events.FromRecord(rec, source, at)); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.ErrorContext(ctx, "failed to publish status change",
			"user_id", rec.UserID.String(),
			"applicant_id", rec.ProviderApplicantID,
			"error", err,
		)
	}
}

func (s *Service) logInitiated(ctx context.Context, rec *models.Record) {
	s.logAudit(ctx, string(audit.EventVerificationInitiated),
		"user_id", rec.UserID.String(),
		"applicant_id", rec.ProviderApplicantID,
	)
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(append([]any{}, attributes...), "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	var userID id.UserID
	if parsed, err := id.ParseUserID(attrs.ExtractString(attributes, "user_id")); err == nil {
		userID = parsed
	}
	decision := attrs.ExtractString(attributes, "status")
	if decision == "" {
		decision = attrs.ExtractString(attributes, "to")
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:      userID,
		ApplicantID: attrs.ExtractString(attributes, "applicant_id"),
		Action:      event,
		Decision:    decision,
		Reason:      attrs.ExtractString(attributes, "source"),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}
