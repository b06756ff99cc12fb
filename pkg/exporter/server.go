package exporter

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	"golang.org/x/net/netutil"

	"github.com/nimaam/cpanel-exporter/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// Server serves the /metrics endpoint. It implements ifrit.Runner so main
// can manage it in a process group.
type Server struct {
	host                 string
	port                 int
	maxConcurrentScrapes int
	exporter             *Exporter
	logger               lager.Logger

	// set once the listener is bound; tests read it to find the port
	listenAddr chan string
}

// NewServer ...
func NewServer(serverConfig config.ServerConfig, exporter *Exporter, logger lager.Logger) *Server {
	return &Server{
		host:                 serverConfig.Host,
		port:                 serverConfig.Port,
		maxConcurrentScrapes: serverConfig.MaxConcurrentScrapes,
		exporter:             exporter,
		logger:               logger,
		listenAddr:           make(chan string, 1),
	}
}

// ListenAddr reports the bound address once Run has signalled ready.
func (s *Server) ListenAddr() string {
	addr := <-s.listenAddr
	s.listenAddr <- addr
	return addr
}

func (s *Server) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		s.logger.Error("listen-failed", err, lager.Data{"host": s.host, "port": s.port})
		return err
	}
	if s.maxConcurrentScrapes > 0 {
		listener = netutil.LimitListener(listener, s.maxConcurrentScrapes)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)

	server := &http.Server{Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	s.logger.Info("listening", lager.Data{"address": listener.Addr().String()})
	s.listenAddr <- listener.Addr().String()
	close(ready)

	select {
	case err := <-serveErr:
		return err
	case <-signals:
		s.logger.Info("shutting-down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := s.exporter.Scrape(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "Internal server error\n")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, body)
}
