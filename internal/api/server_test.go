package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mfenderov/tenderlens/internal/answer"
)

type fakeAsker struct {
	answer string
	err    error
}

func (f *fakeAsker) Ask(ctx context.Context, tenderID, question string) (string, error) {
	return f.answer, f.err
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleAsk(t *testing.T) {
	srv := New(&fakeAsker{answer: "The EMD is two percent of the bid value."})

	rec := doRequest(t, srv, http.MethodPost, "/ask",
		`{"tender_id":"TN-1","question":"What is the EMD?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Answer != "The EMD is two percent of the bid value." {
		t.Errorf("answer = %q, want the service answer", resp.Answer)
	}
}

func TestHandleAsk_BadRequests(t *testing.T) {
	srv := New(&fakeAsker{answer: "unused"})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"tender_id":`},
		{"missing tender_id", `{"question":"What is the EMD?"}`},
		{"missing question", `{"tender_id":"TN-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/ask", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestHandleAsk_FallbackOnServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "tender not found",
			err:  fmt.Errorf("%w: TN-404", answer.ErrTenderNotFound),
			want: "No tender found with ID: TN-404. Please check the tender ID and try again.",
		},
		{
			name: "no documents",
			err:  fmt.Errorf("%w: TN-404", answer.ErrNoDocuments),
			want: "No file texts found for this tender. The document may be empty or not properly processed.",
		},
		{
			name: "upstream failure",
			err:  fmt.Errorf("llm generation failed: timeout"),
			want: "I'm sorry, I encountered an error while processing your question. Please try again later or with a more specific question.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&fakeAsker{err: tt.err})
			rec := doRequest(t, srv, http.MethodPost, "/ask",
				`{"tender_id":"TN-404","question":"What is the EMD?"}`)

			// Failures still answer with 200 and a readable message.
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var resp struct {
				Answer string `json:"answer"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Answer != tt.want {
				t.Errorf("answer = %q, want %q", resp.Answer, tt.want)
			}
		})
	}
}

func TestHandleAsk_MethodNotAllowed(t *testing.T) {
	srv := New(&fakeAsker{})

	rec := doRequest(t, srv, http.MethodGet, "/ask", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow header = %q, want POST", allow)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := New(&fakeAsker{})

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}

func TestHandleRoot(t *testing.T) {
	srv := New(&fakeAsker{})

	rec := doRequest(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Message   string            `json:"message"`
		Endpoints map[string]string `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Message == "" {
		t.Error("message should not be empty")
	}
	if resp.Endpoints["ask"] == "" {
		t.Error("endpoints should list /ask")
	}
}

func TestHandleRoot_UnknownPath(t *testing.T) {
	srv := New(&fakeAsker{})

	rec := doRequest(t, srv, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestResponses_ContentType(t *testing.T) {
	srv := New(&fakeAsker{answer: "ok"})

	for _, path := range []string{"/", "/health"} {
		rec := doRequest(t, srv, http.MethodGet, path, "")
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("%s Content-Type = %q, want application/json", path, ct)
		}
	}
}
