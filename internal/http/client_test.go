package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetPage_SendsConfiguredHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := NewClient(MelonHeaders())
	body, err := client.GetPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if body != "<html></html>" {
		t.Errorf("body = %q", body)
	}

	h := MelonHeaders()
	checks := map[string]string{
		"User-Agent":      h.UserAgent,
		"Accept":          h.Accept,
		"Accept-Language": h.AcceptLanguage,
		"Referer":         h.Referer,
	}
	for name, want := range checks {
		if v := got.Get(name); v != want {
			t.Errorf("header %s = %q, want %q", name, v, want)
		}
	}
}

func TestClient_GetPage_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(MelonHeaders())
	if _, err := client.GetPage(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_GetAsset(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	client := NewClient(MelonHeaders())
	data, err := client.GetAsset(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("got %v, want %v", data, payload)
	}
}
