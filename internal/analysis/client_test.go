package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeUploadsMultipartFile(t *testing.T) {
	var gotName, gotBody, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, analyzePath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotRequestID = r.Header.Get("X-Request-ID")

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotBody = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","filename":"paper.txt","topic_classification":{"primary_topic":"Machine Learning","confidence":0.91,"secondary_topics":[{"topic":"NLP","confidence":0.4}]}}`))
	}))
	defer server.Close()

	path := writeTemp(t, "paper.txt", "attention is all you need")
	client := New(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})

	var mu sync.Mutex
	var lastSent, lastTotal int64
	result, err := client.Analyze(context.Background(), path, func(sent, total int64) {
		mu.Lock()
		defer mu.Unlock()
		lastSent, lastTotal = sent, total
	})
	require.NoError(t, err)

	assert.Equal(t, "paper.txt", gotName)
	assert.Equal(t, "attention is all you need", gotBody)
	assert.NotEmpty(t, gotRequestID)
	require.NotNil(t, result.TopicClassification)
	assert.Equal(t, "Machine Learning", result.TopicClassification.PrimaryTopic)
	require.Len(t, result.TopicClassification.SecondaryTopics, 1)
	assert.Equal(t, "NLP", result.TopicClassification.SecondaryTopics[0].Label)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(len("attention is all you need")), lastSent)
	assert.Equal(t, lastSent, lastTotal)
}

func TestAnalyzeSurfacesBackendDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", http.StatusBadRequest, `{"detail":"Could not extract text from file"}`, "Could not extract text from file"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad type"}]}`, "field required; bad type"},
		{"no detail", http.StatusInternalServerError, `oops`, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
			result, err := client.Analyze(context.Background(), writeTemp(t, "p.pdf", "%PDF"), nil)
			require.Error(t, err)
			assert.Nil(t, result)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, DetailOf(err))
			if tt.want == "" {
				assert.Equal(t, GenericAnalysisMessage, AnalysisMessage(err))
			} else {
				assert.Equal(t, tt.want, AnalysisMessage(err))
			}
		})
	}
}

func TestAnalyzeTransportFailureUsesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(Config{BaseURL: url})
	_, err := client.Analyze(context.Background(), writeTemp(t, "p.txt", "text"), nil)
	require.Error(t, err)
	assert.Equal(t, "", DetailOf(err))
	assert.Equal(t, GenericAnalysisMessage, AnalysisMessage(err))
}

func TestDownloadReportSendsRawPayload(t *testing.T) {
	raw := `{"status":"success","filename":"x.pdf","extra_field":{"kept":true}}`
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, reportPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	result, err := Decode([]byte(raw))
	require.NoError(t, err)

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	data, err := client.DownloadReport(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.JSONEq(t, raw, received)
}

func TestDownloadReportFailures(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
		_, err := client.DownloadReport(context.Background(), &Result{Status: "success"})
		assert.ErrorIs(t, err, ErrEmptyReport)
	})

	t.Run("server error text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "report engine down", http.StatusInternalServerError)
		}))
		defer server.Close()
		client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
		_, err := client.DownloadReport(context.Background(), &Result{Status: "success"})
		require.Error(t, err)
		assert.Equal(t, "report engine down", DetailOf(err))
	})

	t.Run("nil result", func(t *testing.T) {
		client := New(Config{})
		_, err := client.DownloadReport(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != healthPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	assert.NoError(t, client.Health(context.Background()))

	down := New(Config{BaseURL: server.URL + "/missing", HTTPClient: server.Client()})
	assert.Error(t, down.Health(context.Background()))
}

func TestNewAppliesDefaults(t *testing.T) {
	client := New(Config{})
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.Equal(t, DefaultReportTimeout, client.reportTimeout)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
}
