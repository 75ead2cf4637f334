// Package analysis talks to the paper analysis backend and decodes its results.
package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultTimeout       = 5 * time.Minute
	DefaultReportTimeout = 2 * time.Minute
	DefaultUserAgent     = "paperlens"

	analyzePath = "/api/analyze"
	reportPath  = "/api/download-report"
	healthPath  = "/health"
)

// Config controls how the client reaches the backend.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	ReportTimeout time.Duration
	UserAgent     string
	HTTPClient    *http.Client
}

// Client issues single-attempt requests against the backend. It never retries.
type Client struct {
	baseURL       string
	timeout       time.Duration
	reportTimeout time.Duration
	userAgent     string
	http          *http.Client
}

// UploadFunc observes bytes written to the request body.
type UploadFunc func(sent, total int64)

// New builds a Client, filling unset fields with defaults.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		baseURL:       base,
		timeout:       cfg.Timeout,
		reportTimeout: cfg.ReportTimeout,
		userAgent:     cfg.UserAgent,
		http:          cfg.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.reportTimeout <= 0 {
		c.reportTimeout = DefaultReportTimeout
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// BaseURL returns the backend root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze uploads the file at path as multipart field "file" and decodes the result.
// onUpload may be nil.
func (c *Client) Analyze(ctx context.Context, path string, onUpload UploadFunc) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType := multipartBody(file, filepath.Base(path), info.Size(), onUpload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	requestID := c.decorate(req)

	started := time.Now()
	log.Printf("[analysis] POST %s file=%s size=%d request=%s", analyzePath, filepath.Base(path), info.Size(), requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}
	log.Printf("[analysis] %s request=%s status=%d in %s", analyzePath, requestID, resp.StatusCode, time.Since(started).Round(time.Millisecond))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Detail: parseDetail(payload)}
	}
	result, err := Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	return result, nil
}

// DownloadReport posts the result back and returns the generated PDF bytes.
func (c *Client) DownloadReport(ctx context.Context, result *Result) ([]byte, error) {
	if result == nil {
		return nil, errors.New("no analysis result to report on")
	}
	payload, err := result.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.reportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+reportPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := c.decorate(req)

	log.Printf("[report] POST %s request=%s", reportPath, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parseDetail(body)
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Detail: detail}
	}
	if len(body) == 0 {
		return nil, ErrEmptyReport
	}
	log.Printf("[report] request=%s received %d bytes", requestID, len(body))
	return body, nil
}

// Health reports whether the backend answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	c.decorate(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Detail: resp.Status}
	}
	return nil
}

func (c *Client) decorate(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set("X-Request-ID", id)
	req.Header.Set("User-Agent", c.userAgent)
	return id
}

// multipartBody streams the file through a pipe so large uploads are never buffered.
func multipartBody(file io.Reader, name string, size int64, onUpload UploadFunc) (io.Reader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
		header.Set("Content-Type", contentTypeFor(name))
		part, err := writer.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &countingReader{r: file, total: size, onRead: onUpload}); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType()
}

type countingReader struct {
	r      io.Reader
	sent   int64
	total  int64
	onRead UploadFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.onRead != nil {
			c.onRead(c.sent, c.total)
		}
	}
	return n, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
