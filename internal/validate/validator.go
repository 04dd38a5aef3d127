// Package validate answers whether an email address belongs to a
// registered society member, gating signup and login.
package validate

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/models"
)

// emailPattern is intentionally loose: one @, no whitespace, a dotted
// domain. Real deliverability is the auth provider's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Client-facing messages. The not-registered message deliberately does
// not confirm whether the address exists anywhere else.
const (
	msgEmailRequired = "Email is required"
	msgInvalidFormat = "Invalid email format"
	msgRateLimited   = "Too many attempts. Please try again in a minute."
	msgUpstream      = "Unable to verify email at this time. Please try again later."
	msgNotRegistered = "Unable to verify this email. Please contact your society office."
)

// Validator checks candidate emails against the member register.
type Validator struct {
	source  interfaces.FeedSource
	cache   *feedCache
	limiter *RateLimiter
}

// NewValidator creates a validator with its cache and rate limiter
// sized from configuration.
func NewValidator(source interfaces.FeedSource, cfg config.ValidatorConfig) *Validator {
	return &Validator{
		source:  source,
		cache:   newFeedCache(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
		limiter: NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateWindowSeconds)*time.Second),
	}
}

// Validate answers a membership check for one candidate email from
// one client. It returns the HTTP status to respond with and the
// response body.
func (v *Validator) Validate(ctx context.Context, email string, clientID string) (int, models.ValidateResponse) {
	email = strings.TrimSpace(email)
	if email == "" {
		return http.StatusBadRequest, models.ValidateResponse{Error: msgEmailRequired}
	}
	if !emailPattern.MatchString(email) {
		return http.StatusBadRequest, models.ValidateResponse{Error: msgInvalidFormat}
	}

	if !v.limiter.Allow(clientID) {
		logrus.WithField("client", clientID).Warn("validator rate limit exceeded")
		return http.StatusTooManyRequests, models.ValidateResponse{Error: msgRateLimited}
	}

	members, err := v.registry(ctx)
	if err != nil {
		logrus.WithError(err).Error("could not load member register for validation")
		return http.StatusServiceUnavailable, models.ValidateResponse{Error: msgUpstream}
	}

	normalized := strings.ToLower(email)
	for i := range members {
		if members[i].Email == normalized {
			member := members[i]
			return http.StatusOK, models.ValidateResponse{Valid: true, Member: &member}
		}
	}

	return http.StatusOK, models.ValidateResponse{Error: msgNotRegistered}
}

// registry returns the projected register, served from the cache when
// fresh.
func (v *Validator) registry(ctx context.Context) ([]models.SheetMember, error) {
	if members, ok := v.cache.get(); ok {
		return members, nil
	}

	rows, err := v.source.FetchRows(ctx)
	if err != nil {
		return nil, err
	}

	members := projectRows(rows)
	v.cache.set(members)
	logrus.WithField("members", len(members)).Debug("validator cache refreshed")
	return members, nil
}
