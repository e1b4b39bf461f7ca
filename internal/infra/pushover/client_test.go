package pushover_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"lci-gateway/internal/infra/pushover"
)

func TestClient_Notify(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		got = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("tok", "usr", server.URL)

	if err := client.Notify(context.Background(), "Fresh Water", "Fresh Water is at 10%"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}

	if got.Get("token") != "tok" || got.Get("user") != "usr" {
		t.Errorf("credentials: got token=%q user=%q", got.Get("token"), got.Get("user"))
	}
	if got.Get("title") != "RV: Fresh Water" {
		t.Errorf("title: got %q", got.Get("title"))
	}
	if got.Get("message") != "Fresh Water is at 10%" {
		t.Errorf("message: got %q", got.Get("message"))
	}
}

func TestClient_NotifyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusBadRequest)
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("tok", "usr", server.URL)

	if err := client.Notify(context.Background(), "x", "y"); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestClient_NotifyWithoutCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("", "", server.URL)

	if err := client.Notify(context.Background(), "x", "y"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if called {
		t.Error("no request expected without credentials")
	}
}
