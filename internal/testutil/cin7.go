// Package testutil provides fakes shared by the board's package tests.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// Response is a canned reply from the fake Cin7 API.
type Response struct {
	Body   string
	Status int
}

// JSON builds a 200 response with v encoded as the body.
func JSON(t *testing.T, v any) Response {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode fake response: %v", err)
	}
	return Response{Status: http.StatusOK, Body: string(data)}
}

// RecordedRequest is one call the fake server received.
type RecordedRequest struct {
	Query    url.Values
	Method   string
	Path     string
	Username string
	Password string
	Body     []byte
	HasAuth  bool
}

// Responder decides the reply for a request.
type Responder func(req RecordedRequest) Response

// Sequence replies with responses in order, repeating the last one.
func Sequence(responses ...Response) Responder {
	var mu sync.Mutex
	i := 0
	return func(RecordedRequest) Response {
		mu.Lock()
		defer mu.Unlock()
		if len(responses) == 0 {
			return Response{Status: http.StatusOK, Body: "[]"}
		}
		r := responses[i]
		if i < len(responses)-1 {
			i++
		}
		return r
	}
}

// Cin7Server is an httptest server that records every request.
type Cin7Server struct {
	*httptest.Server
	respond  Responder
	requests []RecordedRequest
	mu       sync.Mutex
}

// NewCin7Server starts a fake Cin7 API and closes it when the test ends.
func NewCin7Server(t *testing.T, respond Responder) *Cin7Server {
	t.Helper()

	s := &Cin7Server{respond: respond}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Cin7Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	user, pass, ok := r.BasicAuth()
	rec := RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		Query:    r.URL.Query(),
		Body:     body,
		Username: user,
		Password: pass,
		HasAuth:  ok,
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	s.mu.Unlock()

	resp := s.respond(rec)
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// Requests returns a copy of the requests received so far.
func (s *Cin7Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Sleeper records backoff waits instead of sleeping.
type Sleeper struct {
	delays []time.Duration
	mu     sync.Mutex
}

// Sleep records d and returns immediately unless ctx is already done.
func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

// Delays returns the recorded waits in order.
func (s *Sleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}
