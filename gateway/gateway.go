// Package gateway exposes the client-facing HTTP surface: token
// federation, media URI resolution, the combined playback bundle, and
// the embedded player page. The vendor credential stays on the other
// side of these handlers.
package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"camgate/playback"
	"camgate/web"
)

// Gateway holds the dependencies of the HTTP handlers.
type Gateway struct {
	Logger *log.Entry

	session   *playback.Session
	refresher *playback.Refresher
	validity  int64
	registry  *prometheus.Registry
	metrics   *gatewayMetrics
}

// New creates a Gateway. refresher may be nil when background token
// refresh is disabled; the playback handler then federates a fresh
// token per session.
func New(session *playback.Session, refresher *playback.Refresher, validitySeconds int64, l *log.Entry) *Gateway {
	registry := prometheus.NewRegistry()
	return &Gateway{
		Logger:    l,
		session:   session,
		refresher: refresher,
		validity:  validitySeconds,
		registry:  registry,
		metrics:   newGatewayMetrics(registry),
	}
}

// Registry exposes the metrics registry so additional collectors can
// be attached before the server starts.
func (g *Gateway) Registry() *prometheus.Registry {
	return g.registry
}

// Router mounts all routes.
func (g *Gateway) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(g.logRequests)

	r.Post("/api/v1/token", g.handleFederateToken)
	r.Get("/api/v1/cameras/{cameraID}/media", g.handleCameraMedia)
	r.Get("/api/v1/cameras/{cameraID}/playback", g.handlePlayback)
	r.Get("/api/v1/player/settings", g.handlePlayerSettings)

	r.Get("/healthz", g.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{}))

	if static, err := web.Static(); err == nil {
		r.Handle("/*", http.FileServer(http.FS(static)))
	} else {
		g.Logger.WithError(err).Warn("Player assets unavailable, static routes disabled")
	}

	return r
}

type tokenRequest struct {
	ValiditySeconds int64 `json:"validitySeconds"`
}

type tokenResponse struct {
	FederatedSessionToken string `json:"federatedSessionToken"`
}

func (g *Gateway) handleFederateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	validity := req.ValiditySeconds
	if validity <= 0 {
		validity = g.validity
	}

	token, err := g.session.FederateToken(validity)
	if err != nil {
		g.metrics.vendorErrors.WithLabelValues("token").Inc()
		writeError(w, http.StatusBadGateway, "token federation failed")
		return
	}

	g.metrics.tokensFederated.Inc()
	writeJSON(w, http.StatusOK, tokenResponse{FederatedSessionToken: token})
}

func (g *Gateway) handleCameraMedia(w http.ResponseWriter, r *http.Request) {
	cameraID := chi.URLParam(r, "cameraID")

	media, err := g.session.CameraMedia(cameraID)
	if err != nil {
		g.metrics.vendorErrors.WithLabelValues("media").Inc()
		writeError(w, http.StatusBadGateway, "media resolution failed")
		return
	}

	g.metrics.mediaLookups.Inc()
	writeJSON(w, http.StatusOK, media)
}

func (g *Gateway) handlePlayback(w http.ResponseWriter, r *http.Request) {
	cameraID := chi.URLParam(r, "cameraID")

	var (
		p   *playback.Playback
		err error
	)
	// Reuse the refresher's current token when one is available so a
	// page reload does not burn a fresh federation.
	if token := g.currentToken(); token != "" {
		p, err = g.session.StartWithToken(cameraID, token)
	} else {
		p, err = g.session.Start(cameraID)
	}
	if err != nil {
		g.metrics.vendorErrors.WithLabelValues("playback").Inc()
		writeError(w, http.StatusBadGateway, "playback startup failed")
		return
	}

	g.metrics.playbacksStarted.Inc()
	writeJSON(w, http.StatusOK, p)
}

func (g *Gateway) currentToken() string {
	if g.refresher == nil {
		return ""
	}
	return g.refresher.Token()
}

func (g *Gateway) handlePlayerSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, playback.DefaultSettings())
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
