// Package server serves stacks over HTTP for the web dashboard.
package server

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Server is the HTTP API. Handlers are safe for concurrent use as long as
// the store and the quoter are.
type Server struct {
	store   store.Store
	quotes  quote.Quoter
	secret  []byte
	limiter *rate.Limiter
	log     logrus.FieldLogger
	now     func() time.Time
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithJWTSecret requires requests to carry an HS256 bearer token signed with
// secret. An empty secret disables authentication.
func WithJWTSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithRate limits the server to perSecond requests per second. 0 means no
// limit.
func WithRate(perSecond float64) Option {
	return func(s *Server) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		burst := max(1, int(math.Ceil(2*perSecond)))
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the request and error logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) { s.log = log }
}

// WithClock sets the clock used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a server reading documents from st and quotes from q.
func New(st store.Store, q quote.Quoter, opts ...Option) *Server {
	s := &Server{
		store:  st,
		quotes: q,
		log:    logrus.StandardLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors(), s.rateLimit())

	api := r.Group("/api")
	api.Use(s.authenticate())
	{
		api.GET("/stack/:email", s.getStack)
		api.POST("/stack", s.postStack)
		api.GET("/metrics/:email", s.getMetrics)
		api.GET("/distribution/:email", s.getDistribution)
		api.GET("/summary/:email", s.getSummary)
		api.GET("/export/:email", s.getExport)
	}
	s.engine = r
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves the API on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.WithField("addr", addr).Info("server listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
