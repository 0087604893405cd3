// Package backend talks to the buying guide generation service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/jask/guidegen/internal/config"
	"github.com/jask/guidegen/internal/guides"
)

// ErrNoFile is returned when an upload is attempted without a file.
var ErrNoFile = errors.New("Please select a CSV file!")

// Client is a thin HTTP client for the upload and export endpoints.
type Client struct {
	baseURL    string
	paths      config.ServerConfig
	httpClient *http.Client
}

// New builds a client from server settings. A nil httpClient gets one with
// the configured timeout.
func New(cfg config.ServerConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		paths:      cfg,
		httpClient: httpClient,
	}
}

// BaseURL is the server the client points at.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

type uploadResponse struct {
	BuyingGuides *[]guides.Guide `json:"buying_guides"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Upload posts one CSV file as multipart field "file" and returns the
// generated guides in server order.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) ([]guides.Guide, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return nil, ErrNoFile
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(filename))))
	h.Set("Content-Type", "text/csv")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, &UploadError{Err: fmt.Errorf("create part: %w", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &UploadError{Err: fmt.Errorf("read %s: %w", filepath.Base(filename), err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &UploadError{Err: fmt.Errorf("close multipart: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.paths.UploadPath), &body)
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return nil, &UploadError{Status: resp.StatusCode, Message: strings.TrimSpace(eb.Error)}
	}

	var out uploadResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &UploadError{Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if out.BuyingGuides == nil {
		return nil, &UploadError{Status: resp.StatusCode, Err: errors.New("malformed response: missing buying_guides")}
	}
	return *out.BuyingGuides, nil
}

// Export downloads one export blob.
func (c *Client) Export(ctx context.Context, kind ExportKind) ([]byte, error) {
	path := c.paths.ExportPath
	if kind == ExportTXT {
		path = c.paths.ExportTXTPath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, &ExportError{Kind: kind, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExportError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ExportError{Kind: kind, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExportError{Kind: kind, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
