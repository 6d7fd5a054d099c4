package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testConfig(root string) Config {
	cfg := DefaultConfig(root)
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	return cfg
}

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s := New(cfg, nil)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen returned error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Serve() }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Stop(ctx); err != nil {
			t.Errorf("Stop returned error: %v", err)
		}
		if err := <-done; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})
	return s
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(body)
}

func TestServer_ServesFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>scores</h1>"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "out"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "out", "My_Song.xml"), []byte("<score-partwise/>"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	s := startServer(t, testConfig(root))

	resp, body := get(t, s.URL()+"/out/My_Song.xml")
	if resp.StatusCode != http.StatusOK || body != "<score-partwise/>" {
		t.Errorf("Unexpected response %d %q", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "xml") {
		t.Errorf("Expected an XML content type, got %q", ct)
	}

	resp, body = get(t, s.URL()+"/out/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "My_Song.xml") {
		t.Errorf("Expected a directory listing, got %d %q", resp.StatusCode, body)
	}

	_, body = get(t, s.URL()+"/")
	if !strings.Contains(body, "<h1>scores</h1>") {
		t.Errorf("Expected index.html at /, got %q", body)
	}

	resp, _ = get(t, s.URL()+"/missing.txt")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestServer_ReadOnly(t *testing.T) {
	s := startServer(t, testConfig(t.TempDir()))

	resp, err := http.Post(s.URL()+"/upload", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestServer_SecondBindFails(t *testing.T) {
	first := startServer(t, testConfig(t.TempDir()))

	cfg := testConfig(t.TempDir())
	cfg.Port = first.Addr().(*net.TCPAddr).Port

	second := New(cfg, nil)
	err := second.Listen()
	if err == nil {
		second.Stop(context.Background())
		t.Fatal("Expected second bind on the same port to fail")
	}
	if !IsAddrInUse(err) {
		t.Errorf("Expected address-in-use error, got %v", err)
	}
	if !strings.Contains(err.Error(), strconv.Itoa(cfg.Port)) {
		t.Errorf("Expected the port in the error, got %v", err)
	}
}

func TestServer_StopReleasesPort(t *testing.T) {
	cfg := testConfig(t.TempDir())
	s := New(cfg, nil)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen returned error: %v", err)
	}
	cfg.Port = s.Addr().(*net.TCPAddr).Port

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	again := New(cfg, nil)
	if err := again.Listen(); err != nil {
		t.Fatalf("Expected port to be free after Stop, got %v", err)
	}
	again.Stop(context.Background())
}

func TestServer_MetricsListener(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.MetricsAddr = "127.0.0.1:0"
	s := startServer(t, cfg)

	get(t, s.URL()+"/")

	resp, body := get(t, "http://"+s.metricsListener.Addr().String()+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from metrics, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "score_server_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}

func TestServe_WithoutListen(t *testing.T) {
	if err := New(testConfig(t.TempDir()), nil).Serve(); err == nil {
		t.Error("Expected error when serving before Listen")
	}
}
