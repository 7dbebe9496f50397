package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(server *httptest.Server) *NotionClient {
	return &NotionClient{
		baseURL:      server.URL,
		token:        "secret-token",
		client:       server.Client(),
		uploadClient: server.Client(),
	}
}

func TestCreatePage(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		fmt.Fprint(w, `{"object":"page"}`)
	}))
	defer server.Close()

	c := newTestClient(server)
	blocks := []Block{ParagraphBlock("hello"), ImageBlock("u1")}
	if err := c.CreatePage("db-123", "2024-01-01", blocks); err != nil {
		t.Fatalf("CreatePage() error = %v", err)
	}

	if gotPath != "/pages" {
		t.Errorf("path = %q, want /pages", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotVersion == "" {
		t.Error("missing Notion-Version header")
	}

	parent, _ := payload["parent"].(map[string]any)
	if parent["database_id"] != "db-123" {
		t.Errorf("parent = %v, want database_id db-123", parent)
	}

	props, _ := payload["properties"].(map[string]any)
	date := props["Date"].(map[string]any)["date"].(map[string]any)["start"]
	if date != "2024-01-01" {
		t.Errorf("date property = %v, want 2024-01-01", date)
	}
	title := props["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)["text"].(map[string]any)["content"]
	if title != "2024-01-01" {
		t.Errorf("title property = %v, want 2024-01-01", title)
	}

	children, _ := payload["children"].([]any)
	if len(children) != 2 {
		t.Errorf("children length = %d, want 2", len(children))
	}
}

func TestCreatePageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"body failed validation"}`)
	}))
	defer server.Close()

	c := newTestClient(server)
	err := c.CreatePage("db-123", "2024-01-01", nil)
	if err == nil {
		t.Fatal("CreatePage() should fail on HTTP 400")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "validation") {
		t.Errorf("Body = %q, want response body included", apiErr.Body)
	}
}

func TestUploadFile(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "abc.jpg")
	if err := os.WriteFile(photo, []byte("jpegdata"), 0644); err != nil {
		t.Fatalf("writing photo fixture: %v", err)
	}

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		switch r.URL.Path {
		case "/file_uploads":
			fmt.Fprint(w, `{"id":"upload-1"}`)
		case "/file_uploads/upload-1/send":
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				t.Errorf("Content-Type = %q, want multipart/form-data", r.Header.Get("Content-Type"))
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("reading multipart file part: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			if header.Filename != "abc.jpg" {
				t.Errorf("uploaded filename = %q, want abc.jpg", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if string(data) != "jpegdata" {
				t.Errorf("uploaded bytes = %q, want jpegdata", data)
			}
			fmt.Fprint(w, `{"id":"upload-1","status":"uploaded"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(server)
	id, err := c.UploadFile(photo)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if id != "upload-1" {
		t.Errorf("UploadFile() = %q, want upload-1", id)
	}

	want := []string{"/file_uploads", "/file_uploads/upload-1/send"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("request paths = %v, want %v", paths, want)
	}
}

func TestUploadFileSlotMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"object":"file_upload"}`)
	}))
	defer server.Close()

	photo := filepath.Join(t.TempDir(), "abc.jpg")
	if err := os.WriteFile(photo, []byte("jpegdata"), 0644); err != nil {
		t.Fatalf("writing photo fixture: %v", err)
	}

	c := newTestClient(server)
	if _, err := c.UploadFile(photo); err == nil || !strings.Contains(err.Error(), "missing id") {
		t.Errorf("UploadFile() error = %v, want missing id", err)
	}
}

func TestUploadFileMissingLocalFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"upload-1"}`)
	}))
	defer server.Close()

	c := newTestClient(server)
	if _, err := c.UploadFile(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Error("UploadFile() should fail when the local file does not exist")
	}
}
