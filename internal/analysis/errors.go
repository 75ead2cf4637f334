package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericAnalysisMessage is shown when the backend gives no usable detail.
const GenericAnalysisMessage = "Failed to analyze paper. Please try again."

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

// DetailOf returns the backend-provided detail carried by err, or "".
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// AnalysisMessage picks the user-facing text for a failed analysis.
func AnalysisMessage(err error) string {
	if detail := strings.TrimSpace(DetailOf(err)); detail != "" {
		return detail
	}
	return GenericAnalysisMessage
}

// parseDetail reads FastAPI's error envelope. detail is either a string or a
// list of validation entries carrying msg.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, entry := range entries {
			if m := strings.TrimSpace(entry.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
