package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	notionAPIURL  = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"

	uploadTimeout = 60 * time.Second
)

// APIError represents a non-2xx response from the Notion API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error: HTTP %d: %s", e.StatusCode, e.Body)
}

// NotionClient issues authenticated requests against the Notion API
type NotionClient struct {
	baseURL string
	token   string
	client  *http.Client
	// Only the file-send step carries an explicit timeout; the JSON
	// endpoints block until the server answers.
	uploadClient *http.Client
}

// NewNotionClient creates a client authenticated with the given token
func NewNotionClient(token string) *NotionClient {
	return &NotionClient{
		baseURL:      notionAPIURL,
		token:        token,
		client:       &http.Client{},
		uploadClient: &http.Client{Timeout: uploadTimeout},
	}
}

// Block is one Notion content block, either a paragraph or an image.
type Block map[string]any

// ParagraphBlock builds a paragraph block holding a single line of text.
func ParagraphBlock(text string) Block {
	return Block{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]any{"content": text}},
			},
		},
	}
}

// ImageBlock builds an image block referencing a completed file upload.
func ImageBlock(uploadID string) Block {
	return Block{
		"object": "block",
		"type":   "image",
		"image": map[string]any{
			"type":        "file_upload",
			"file_upload": map[string]any{"id": uploadID},
		},
	}
}

// UploadFile runs the upload handshake for a local file: create an upload
// slot, then stream the file bytes to it. It returns the upload ID to
// reference from an image block.
func (c *NotionClient) UploadFile(path string) (string, error) {
	uploadID, err := c.createUploadSlot()
	if err != nil {
		return "", err
	}

	if err := c.sendFile(uploadID, path); err != nil {
		return "", err
	}

	return uploadID, nil
}

// createUploadSlot reserves a server-side placeholder for the file bytes.
func (c *NotionClient) createUploadSlot() (string, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/file_uploads", strings.NewReader("{}"))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("creating upload slot: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var slot struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&slot); err != nil {
		return "", fmt.Errorf("decoding upload slot response: %w", err)
	}
	if slot.ID == "" {
		return "", fmt.Errorf("upload slot response missing id")
	}

	return slot.ID, nil
}

// sendFile streams the file bytes into a previously created upload slot.
func (c *NotionClient) sendFile(uploadID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/file_uploads/%s/send", c.baseURL, uploadID)
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending file bytes: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// CreatePage creates one database record titled and dated with the given
// date, with the given content blocks as children.
func (c *NotionClient) CreatePage(databaseID, date string, children []Block) error {
	payload := map[string]any{
		"parent": map[string]any{"database_id": databaseID},
		"properties": map[string]any{
			"Name": map[string]any{
				"title": []map[string]any{
					{"type": "text", "text": map[string]any{"content": date}},
				},
			},
			"Date": map[string]any{
				"date": map[string]any{"start": date},
			},
		},
		"children": children,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling page payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *NotionClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}
