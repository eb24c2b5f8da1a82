package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	treasuryservice "demoday/contexts/finance/treasury-service"
	votingservice "demoday/contexts/hackathon/voting-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "demoday/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	voting   votingservice.Module
	treasury treasuryservice.Module
}

func New(
	voting votingservice.Module,
	treasury treasuryservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		voting:   voting,
		treasury: treasury,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the route table for in-process tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/projects", s.handleRegisterProject)
	s.mux.HandleFunc("POST /v1/projects/batch", s.handleRegisterProjectBatch)
	s.mux.HandleFunc("GET /v1/projects", s.handleListProjects)
	s.mux.HandleFunc("GET /v1/projects/{project_id}", s.handleGetProject)

	s.mux.HandleFunc("POST /v1/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /v1/votes/mine", s.handleMyVotes)
	s.mux.HandleFunc("GET /v1/votes/total", s.handleTotalVotes)

	s.mux.HandleFunc("GET /v1/voting-data", s.handleVotingData)

	s.mux.HandleFunc("POST /v1/resolution", s.handleResolveVoting)
	s.mux.HandleFunc("GET /v1/resolution", s.handleResolutionStatus)

	s.mux.HandleFunc("GET /v1/treasury/transfers", s.handleListTransfers)
	s.mux.HandleFunc("GET /v1/treasury/transfers/{transfer_id}", s.handleGetTransfer)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
