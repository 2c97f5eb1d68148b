package coach

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchReport(t *testing.T) {
	const report = "Timeline:\n  02:48 — Red Sympponyy (Janna) killed Blue Jinzo (Hecarim)\n"

	var gotKey, gotMatchID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotMatchID = r.URL.Query().Get("matchId")
		_, _ = w.Write([]byte(report))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", nil, time.Hour)
	text, err := c.FetchReport(context.Background(), "EUW1_7564503755")
	if err != nil {
		t.Fatalf("FetchReport: %v", err)
	}
	if text != report {
		t.Fatalf("text = %q", text)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotMatchID != "EUW1_7564503755" {
		t.Errorf("matchId = %q", gotMatchID)
	}
}

func TestFetchReportDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no report", http.StatusNotFound)
		}},
		{"blank body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("   \n"))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(srv.URL, "", nil, time.Hour)
			text, err := c.FetchReport(context.Background(), "NA1_123")
			if err != nil {
				t.Fatalf("failures must degrade to empty, got error %v", err)
			}
			if text != "" {
				t.Fatalf("text = %q, want empty", text)
			}
		})
	}
}

func TestFetchReportUnreachableHost(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", nil, time.Hour)
	text, err := c.FetchReport(context.Background(), "NA1_123")
	if err != nil || text != "" {
		t.Fatalf("unreachable host: text=%q err=%v", text, err)
	}
}

func TestFetchReportEmptyMatchID(t *testing.T) {
	c := NewClient("http://example.invalid", "", nil, time.Hour)
	text, err := c.FetchReport(context.Background(), "")
	if err != nil || text != "" {
		t.Fatalf("empty match id: text=%q err=%v", text, err)
	}
}
