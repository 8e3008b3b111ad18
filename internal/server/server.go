package server

import (
	"context"
	"net/http"
	"time"

	"courier/config"
	fedhttp "courier/internal/federation/delivery/http"
	"courier/internal/metrics"
	msghttp "courier/internal/message/delivery/http"
	"courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP surface: federation endpoints behind inbound
// signature verification, the message API behind bearer auth, and the
// well-known discovery document in the open.
type Server struct {
	cfg    *config.Config
	logger *logger.Logger
	http   *http.Server
}

type Deps struct {
	Federation  *fedhttp.Handlers
	Messages    *msghttp.Handlers
	KeyResolver fedhttp.KeyResolver
	AuthWrap    func(http.Handler) http.Handler
	Metrics     *metrics.Metrics
}

func New(cfg *config.Config, log *logger.Logger, deps Deps) *Server {
	mux := http.NewServeMux()

	verify := fedhttp.VerifyInbound(deps.KeyResolver, log, deps.Metrics)

	// Public federation surface
	mux.HandleFunc("GET /.well-known/courier/federation.json", deps.Federation.WellKnown)
	mux.HandleFunc("GET /api/federation/key", deps.Federation.Key)

	// Signed federation surface
	mux.Handle("POST /api/federation/incoming", verify(http.HandlerFunc(deps.Federation.Incoming)))
	mux.Handle("POST /api/federation/receipts", verify(http.HandlerFunc(deps.Federation.Receipts)))
	mux.Handle("POST /api/federation/directory", verify(http.HandlerFunc(deps.Federation.Directory)))

	// Bearer-authenticated message/sync API
	auth := deps.AuthWrap
	mux.Handle("POST /messages/send", auth(http.HandlerFunc(deps.Messages.Send)))
	mux.Handle("GET /messages/queue", auth(http.HandlerFunc(deps.Messages.Queue)))
	mux.Handle("POST /messages/queue/{id}/store", auth(http.HandlerFunc(deps.Messages.StoreQueueItem)))
	mux.Handle("POST /messages/queue/{id}/ack", auth(http.HandlerFunc(deps.Messages.AckQueueItem)))
	mux.Handle("POST /messages/vault", auth(http.HandlerFunc(deps.Messages.CreateVaultEntry)))
	mux.Handle("PATCH /messages/vault/{id}", auth(http.HandlerFunc(deps.Messages.UpdateVaultEntry)))
	mux.Handle("GET /messages/vault", auth(http.HandlerFunc(deps.Messages.Vault)))
	mux.Handle("GET /messages/vault/sync", auth(http.HandlerFunc(deps.Messages.Sync)))
	mux.Handle("GET /messages/events", auth(http.HandlerFunc(deps.Messages.Events)))
	mux.Handle("GET /messages/vault/summaries", auth(http.HandlerFunc(deps.Messages.Summaries)))
	mux.Handle("POST /messages/vault/delete-chat", auth(http.HandlerFunc(deps.Messages.DeleteChat)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return &Server{
		cfg:    cfg,
		logger: log,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled. TLS is required outside local/dev:
// production refuses to start without cert and key paths.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		cert, key := s.cfg.Server.TLSCertFile, s.cfg.Server.TLSKeyFile
		if cert != "" && key != "" {
			s.logger.Info("listening with TLS", "addr", s.http.Addr)
			errCh <- s.http.ListenAndServeTLS(cert, key)
			return
		}
		if s.cfg.IsProduction() {
			s.logger.Error("refusing to serve plaintext in production; configure TLS cert and key")
			errCh <- errors.New(errors.CodeInternal, "TLS cert and key are required in production")
			return
		}
		s.logger.Info("listening without TLS (non-production)", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
