package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/domain"
	apimw "github.com/hamed0406/webmon/internal/httpapi/middleware"
	"github.com/hamed0406/webmon/internal/probe"
	"github.com/hamed0406/webmon/internal/repo"
)

const (
	defaultLimit = 20
	maxLimit     = 500
)

// Server is the read-only status API over the in-process read model.
type Server struct {
	Logger  *zap.Logger
	Targets repo.TargetStore
	Results repo.ResultStore
	Events  repo.EventStore
	DNS     *probe.DNSDiagnoser
	Metrics http.Handler
}

func NewServer(l *zap.Logger, ts repo.TargetStore, rs repo.ResultStore, es repo.EventStore, dns *probe.DNSDiagnoser, metrics http.Handler) *Server {
	return &Server{Logger: l, Targets: ts, Results: rs, Events: es, DNS: dns, Metrics: metrics}
}

// Router mounts every route. rpm <= 0 disables rate limiting.
func (s *Server) Router(rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(apimw.RequestLog(s.Logger))
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(apimw.RateLimit(rpm, burst))
		r.Get("/targets", s.handleListTargets)
		r.Get("/targets/{name}/results", s.handleHistory)
		r.Get("/targets/{name}/dns", s.handleDNS)
		r.Get("/events", s.handleEvents)
	})

	return r
}

type targetView struct {
	Name       string              `json:"name"`
	URL        string              `json:"url"`
	Method     domain.Method       `json:"method"`
	IntervalMS int64               `json:"interval_ms"`
	TimeoutMS  int64               `json:"timeout_ms"`
	Latest     *domain.CheckResult `json:"latest,omitempty"`
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	eps, err := s.Targets.List(r.Context())
	if err != nil {
		s.fail(w, "list error", err)
		return
	}
	latest, err := s.Results.Latest(r.Context())
	if err != nil {
		s.fail(w, "list error", err)
		return
	}
	byName := make(map[string]domain.CheckResult, len(latest))
	for _, cr := range latest {
		byName[cr.Target] = cr
	}

	out := make([]targetView, 0, len(eps))
	for _, ep := range eps {
		v := targetView{
			Name:       ep.Name,
			URL:        ep.URL.String(),
			Method:     ep.Method,
			IntervalMS: ep.Interval.Milliseconds(),
			TimeoutMS:  ep.Timeout.Milliseconds(),
		}
		if cr, ok := byName[ep.Name]; ok {
			v.Latest = &cr
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, found, err := s.Targets.Get(r.Context(), name); err != nil {
		s.fail(w, "lookup error", err)
		return
	} else if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown target"})
		return
	}

	limit, ok := parseLimit(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad limit"})
		return
	}
	rs, err := s.Results.History(r.Context(), name, limit)
	if err != nil {
		s.fail(w, "history error", err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad limit"})
		return
	}
	evs, err := s.Events.Events(r.Context(), limit)
	if err != nil {
		s.fail(w, "events error", err)
		return
	}
	writeJSON(w, http.StatusOK, evs)
}

// handleDNS runs a resolver diagnosis for one target on request. It never
// feeds back into the watcher's state.
func (s *Server) handleDNS(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ep, found, err := s.Targets.Get(r.Context(), name)
	if err != nil {
		s.fail(w, "lookup error", err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown target"})
		return
	}
	if s.DNS == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "dns diagnosis disabled"})
		return
	}

	rep := s.DNS.Diagnose(r.Context(), ep.URL.String())
	s.Logger.Info("dns_check",
		zap.String("target", name),
		zap.String("host", rep.Host),
		zap.String("class", string(rep.Class)),
		zap.Strings("nameservers", rep.Nameservers),
		zap.String("cname", rep.CNAME),
		zap.String("resolver_error", rep.ResolverError),
	)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	s.Logger.Error("api_error", zap.String("msg", msg), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
