package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	treasuryservice "demoday/contexts/finance/treasury-service"
	votingservice "demoday/contexts/hackathon/voting-service"
	"demoday/contexts/hackathon/voting-service/domain/entities"
)

func newTestServer() *Server {
	treasury := treasuryservice.NewInMemoryModule("prize-pool", 1_000_000, nil)
	voting := votingservice.NewInMemoryModule(
		entities.PrizePool{Source: "sponsor", Amount: 900, Configured: true},
		[]string{"admin-1"},
		treasury.Service,
		nil,
	)
	return New(voting, treasury, nil, ":0")
}

func TestRegisterProjectRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects", bytes.NewReader([]byte(`{"title":"Visualizer","description":"d","team_name":"t","category":"tools","payout_target":"acct-1"}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterProjectRejectsNonAdministrator(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects", bytes.NewReader([]byte(`{"title":"Visualizer","description":"d","team_name":"t","category":"tools","payout_target":"acct-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterProjectBatchRejectsNonAdministrator(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/batch", bytes.NewReader([]byte(`{"titles":["a"],"descriptions":["d"],"team_names":["t"],"categories":["c"],"live_urls":[""],"demo_urls":[""],"source_urls":[""],"payout_targets":["acct-1"]}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/votes", bytes.NewReader([]byte(`{"project_id":1}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMyVotesRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/votes/mine", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResolveVotingRejectsNonAdministrator(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/resolution", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingDataAllowsAnonymousViewer(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/voting-data", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
