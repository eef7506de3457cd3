package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if got := r.Header.Get("User-Agent"); got != UserAgent() {
				t.Errorf("User-Agent = %q, want %q", got, UserAgent())
			}
			if got := r.Header.Get("X-Test"); got != "yes" {
				t.Errorf("X-Test = %q, want yes", got)
			}
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, server.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "yes"}})
	if err != nil {
		t.Fatalf("Fetch(/ok) returned error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Fetch(/ok) = %q, want hello", data)
	}

	if _, err := Fetch(ctx, server.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Fetch(/missing) should fail on 404")
	}

	if _, err := Fetch(ctx, server.URL+"/big", FetchOptions{MaxBytes: 16}); err == nil {
		t.Error("Fetch(/big) should fail when the body exceeds MaxBytes")
	}

	data, err = Fetch(ctx, server.URL+"/big", FetchOptions{MaxBytes: 64})
	if err != nil {
		t.Fatalf("Fetch(/big) at the limit returned error: %v", err)
	}
	if len(data) != 64 {
		t.Errorf("Fetch(/big) returned %d bytes, want 64", len(data))
	}
}

func TestFetchRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("image"))
	}))
	defer target.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		default:
			http.Redirect(w, r, target.URL+"/face.png", http.StatusFound)
		}
	}))
	defer origin.Close()

	errBlocked := errors.New("blocked host")
	rejectTarget := func(url string) error {
		if strings.HasPrefix(url, target.URL) {
			return errBlocked
		}
		return nil
	}
	allowAll := func(string) error { return nil }

	ctx := context.Background()

	tests := []struct {
		name     string
		url      string
		validate func(string) error
		want     string
		wantErr  error
	}{
		{name: "followed without a validator", url: origin.URL + "/face.png", want: "image"},
		{name: "followed when every hop is allowed", url: origin.URL + "/face.png", validate: allowAll, want: "image"},
		{name: "redirect to a rejected host", url: origin.URL + "/face.png", validate: rejectTarget, wantErr: errBlocked},
		{name: "initial url is validated", url: target.URL + "/face.png", validate: rejectTarget, wantErr: errBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Fetch(ctx, tt.url, FetchOptions{ValidateURL: tt.validate})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() returned error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Fetch() = %q, want %q", data, tt.want)
			}
		})
	}

	if _, err := Fetch(ctx, origin.URL+"/loop", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "redirects") {
		t.Errorf("Fetch(/loop) error = %v, want a redirect limit error", err)
	}
}
