package handler

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/provider"
	dErrors "kycgate/pkg/domain-errors"
)

const (
	dateLayout    = "2006-01-02"
	maxNameLength = 100
	maxNotesBytes = 4000
	maxPageLimit  = 100
)

var (
	countryPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
)

// InitiateRequest optionally overrides the profile sent to the provider.
type InitiateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	DateOfBirth string `json:"dob"`
}

// Validate implements httputil.Validatable.
func (r *InitiateRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Country = strings.ToUpper(strings.TrimSpace(r.Country))
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)

	if len(r.FirstName) > maxNameLength || len(r.LastName) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "names must be at most 100 characters")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return dErrors.New(dErrors.CodeValidation, "email is invalid")
		}
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return dErrors.New(dErrors.CodeValidation, "phone is invalid")
	}
	if r.Country != "" && !countryPattern.MatchString(r.Country) {
		return dErrors.New(dErrors.CodeValidation, "country must be an ISO 3166-1 alpha-3 code")
	}
	if r.DateOfBirth != "" {
		if _, err := time.Parse(dateLayout, r.DateOfBirth); err != nil {
			return dErrors.New(dErrors.CodeValidation, "dob must be formatted YYYY-MM-DD")
		}
	}
	return nil
}

// PersonalInfo returns nil when nothing was overridden.
func (r *InitiateRequest) PersonalInfo() *models.PersonalInfo {
	info := models.PersonalInfo{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Country:     r.Country,
		DateOfBirth: r.DateOfBirth,
	}
	if info == (models.PersonalInfo{}) {
		return nil
	}
	return &info
}

// AnnotateRequest sets admin notes and/or risk level.
type AnnotateRequest struct {
	Notes     *string `json:"notes"`
	RiskLevel *string `json:"risk_level"`

	parsedRisk *models.RiskLevel
}

func (r *AnnotateRequest) Validate() error {
	if r.Notes == nil && r.RiskLevel == nil {
		return dErrors.New(dErrors.CodeValidation, "notes or risk_level is required")
	}
	if r.Notes != nil && len(*r.Notes) > maxNotesBytes {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 4000 bytes")
	}
	if r.RiskLevel != nil {
		risk, err := models.ParseRiskLevel(*r.RiskLevel)
		if err != nil {
			return err
		}
		r.parsedRisk = &risk
	}
	return nil
}

func (r *AnnotateRequest) ParsedRisk() *models.RiskLevel {
	return r.parsedRisk
}

func parseListParams(q url.Values) (provider.ListParams, error) {
	var p provider.ListParams
	var err error
	if p.Offset, err = queryInt(q, "offset"); err != nil {
		return p, err
	}
	if p.Limit, err = queryInt(q, "limit"); err != nil {
		return p, err
	}
	if p.Limit > maxPageLimit {
		return p, dErrors.New(dErrors.CodeValidation, "limit must be at most 100")
	}
	if p.CreatedFrom, err = queryDate(q, "created_from"); err != nil {
		return p, err
	}
	if p.CreatedTo, err = queryDate(q, "created_to"); err != nil {
		return p, err
	}
	return p, nil
}

func parseSearchParams(q url.Values) provider.SearchParams {
	return provider.SearchParams{
		Email: strings.TrimSpace(q.Get("email")),
		Phone: strings.TrimSpace(q.Get("phone")),
	}
}

func parseStatsRange(q url.Values) (time.Time, time.Time, error) {
	from, err := queryDate(q, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(q, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseWebhookLogParams(q url.Values) (provider.WebhookLogParams, error) {
	p := provider.WebhookLogParams{ApplicantID: strings.TrimSpace(q.Get("applicant_id"))}
	var err error
	if p.Offset, err = queryInt(q, "offset"); err != nil {
		return p, err
	}
	if p.Limit, err = queryInt(q, "limit"); err != nil {
		return p, err
	}
	return p, nil
}

func queryInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, key+" must be a non-negative integer")
	}
	return n, nil
}

func queryDate(q url.Values, key string) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, key+" must be formatted YYYY-MM-DD")
	}
	return t, nil
}
