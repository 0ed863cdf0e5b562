package bridgesim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bridgectl/bridgectl/internal/constants"
	"github.com/bridgectl/bridgectl/internal/discovery"
)

// Server runs the simulator behind a real listener and advertises it through
// the discovery file so clients can find it the same way they find the real
// bridge.
type Server struct {
	sim           *Simulator
	router        *Router
	httpServer    *http.Server
	port          int
	apiKey        string
	keyHeader     string
	discoveryPath string
	logger        *slog.Logger
}

// NewServer creates a simulator server on the given port. An empty
// discoveryPath defaults to the well-known location in the OS temp directory.
func NewServer(port int, apiKey, keyHeader, discoveryPath string, logger *slog.Logger) *Server {
	if port <= 0 {
		port = constants.DefaultSimulatorPort
	}
	if keyHeader == "" {
		keyHeader = constants.DefaultKeyHeader
	}
	if discoveryPath == "" {
		discoveryPath = discovery.DefaultPath()
	}

	sim := NewSimulator()
	router := NewRouter(sim, apiKey, keyHeader, logger)

	return &Server{
		sim:    sim,
		router: router,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  constants.ServerReadTimeout,
			WriteTimeout: constants.ServerWriteTimeout,
			IdleTimeout:  constants.ServerIdleTimeout,
		},
		port:          port,
		apiKey:        apiKey,
		keyHeader:     keyHeader,
		discoveryPath: discoveryPath,
		logger:        logger,
	}
}

// Simulator returns the underlying state machine for seeding.
func (s *Server) Simulator() *Simulator {
	return s.sim
}

// Start writes the discovery file and serves until the listener is closed.
// It blocks; run it in a goroutine and call Shutdown to stop.
func (s *Server) Start() error {
	record := discovery.Record{
		Port:          s.port,
		DefaultAPIKey: s.apiKey,
		KeyHeader:     s.keyHeader,
	}
	if err := discovery.Write(s.discoveryPath, &record); err != nil {
		return fmt.Errorf("failed to write discovery file: %w", err)
	}

	s.logger.Info("bridge simulator listening",
		"port", s.port,
		"discoveryFile", s.discoveryPath,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully and disconnects WebSocket subscribers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.router.Hub().CloseAll()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
