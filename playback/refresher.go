package playback

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// TokenFederator issues federated session tokens.
type TokenFederator interface {
	FederateToken(validitySeconds int64) (string, error)
}

// Refresher keeps a current federated session token, re-federating it
// before each validity window elapses. Tokens are swapped in place:
// consumers call Token per request and pick up the new value without
// any player teardown.
type Refresher struct {
	Logger   *log.Entry
	client   TokenFederator
	validity time.Duration
	margin   time.Duration

	mu        sync.RWMutex
	token     string
	refreshed time.Time
}

func NewRefresher(client TokenFederator, validity, margin time.Duration, l *log.Entry) *Refresher {
	return &Refresher{
		Logger:   l,
		client:   client,
		validity: validity,
		margin:   margin,
	}
}

// Token returns the most recently federated token, or the empty string
// before the first successful refresh.
func (r *Refresher) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// LastRefreshed returns when the current token was obtained.
func (r *Refresher) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshed
}

// Validity returns the validity window tokens are requested with.
func (r *Refresher) Validity() time.Duration {
	return r.validity
}

// Interval is how long the refresher waits between refreshes: the
// validity window minus the safety margin.
func (r *Refresher) Interval() time.Duration {
	iv := r.validity - r.margin
	if iv <= 0 {
		iv = r.validity / 2
	}
	return iv
}

// Run federates an initial token, then refreshes on a timer until the
// context is cancelled. The initial federation failing is fatal so a
// misconfigured gateway halts at startup; a refresh failing later
// keeps the previous token until the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.refresh(); err != nil {
		return err
	}

	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.refresh(); err != nil {
				r.Logger.WithError(err).Warn("Token refresh failed, keeping previous token")
			}
		}
	}
}

func (r *Refresher) refresh() error {
	token, err := r.client.FederateToken(int64(r.validity / time.Second))
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.token = token
	r.refreshed = time.Now()
	r.mu.Unlock()

	r.Logger.WithField("validity", r.validity).Debug("Federated session token refreshed")
	return nil
}
