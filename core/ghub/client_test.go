package ghub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(apiURL string) *Client {
	return &Client{
		APIBase: apiURL,
		RawBase: "https://raw.example",
		Owner:   "unique205",
		Repo:    "libas-site",
		Branch:  "main",
		Token:   "testtoken",
		HTTP:    http.DefaultClient,
	}
}

func TestPutFile_CreatesWhenAbsent(t *testing.T) {
	var put map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			if got := r.Header.Get("Authorization"); got != "token testtoken" {
				t.Errorf("Authorization = %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&put); err != nil {
				t.Errorf("decode put body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	url, err := c.PutFile(context.Background(), "items.json", []byte(`[]`), "Auto update items.json")
	if err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if url != "https://raw.example/unique205/libas-site/main/items.json" {
		t.Errorf("url = %q", url)
	}
	if _, hasSHA := put["sha"]; hasSHA {
		t.Error("create sent a sha, want none for a new file")
	}
	if put["branch"] != "main" {
		t.Errorf("branch = %q", put["branch"])
	}
	content, err := base64.StdEncoding.DecodeString(put["content"])
	if err != nil || string(content) != "[]" {
		t.Errorf("content = %q (%v)", put["content"], err)
	}
}

func TestPutFile_SendsSHAForConditionalUpdate(t *testing.T) {
	var put map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if ref := r.URL.Query().Get("ref"); ref != "main" {
				t.Errorf("ref = %q", ref)
			}
			json.NewEncoder(w).Encode(map[string]string{"sha": "abc123"})
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&put)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.PutFile(context.Background(), "items.json", []byte(`[1]`), "update"); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if put["sha"] != "abc123" {
		t.Errorf("sha = %q, want abc123 (conditional update token)", put["sha"])
	}
}

func TestPutFile_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.PutFile(context.Background(), "items.json", []byte(`[]`), "update"); err == nil {
		t.Fatal("want error on 422")
	}
}

func TestConfigured(t *testing.T) {
	c := testClient("http://unused")
	if !c.Configured() {
		t.Error("fully set client should be configured")
	}
	c.Token = ""
	if c.Configured() {
		t.Error("client without token should not be configured")
	}
}
