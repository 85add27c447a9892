package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/rfcoelho/medidas/internal/domain"
)

const (
	// requestTimeout bounds every remote attempt. The original client had no
	// timeout at all, which left a dead server hanging the page load.
	requestTimeout = 5 * time.Second

	// retryBackoff and extraAttempts keep the retry budget small: transient
	// network errors and 5xx responses get two more tries, nothing else does.
	retryBackoff  = 500 * time.Millisecond
	extraAttempts = 2

	// maxResponseBytes caps how much of a response body is read when decoding.
	maxResponseBytes = 1 << 20
)

// Remote reads and writes the document against the HTTP API
// (GET/POST /api/medidas on one fixed server).
type Remote struct {
	baseURL string
	client  *http.Client
}

// compile-time check: Remote must satisfy Adapter.
var _ Adapter = (*Remote)(nil)

// NewRemote builds a Remote for the given server base URL,
// e.g. "http://localhost:8080".
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Load fetches the full document.
// Network failures and 5xx responses wrap domain.ErrPersist after the retry
// budget is exhausted; an unparseable body wraps domain.ErrFormat immediately.
func (r *Remote) Load(ctx context.Context) (domain.Document, error) {
	var doc domain.Document
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/medidas", nil)
		if err != nil {
			return err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}

		doc, err = domain.ParseDocument(body)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrFormat) {
			return domain.Document{}, err
		}
		return domain.Document{}, fmt.Errorf("%w: load remote document: %v", domain.ErrPersist, err)
	}
	return doc, nil
}

// saveRequest is the POST /api/medidas body: the two entity arrays.
type saveRequest struct {
	Measurements []domain.Measurement    `json:"measurements"`
	Sets         []domain.MeasurementSet `json:"sets"`
}

// saveResponse is the envelope the server answers writes with.
type saveResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Save posts the full document. The server stamps lastUpdate itself.
func (r *Remote) Save(ctx context.Context, doc domain.Document) error {
	payload, err := json.Marshal(saveRequest{
		Measurements: doc.Measurements,
		Sets:         doc.Sets,
	})
	if err != nil {
		return fmt.Errorf("%w: encode save request: %v", domain.ErrPersist, err)
	}

	err = retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			r.baseURL+"/api/medidas", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}

		var envelope saveResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("decode save response: %v", err)
		}
		if !envelope.Success {
			return fmt.Errorf("server rejected save: %s", envelope.Error)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: save remote document: %v", domain.ErrPersist, err)
	}
	return nil
}

func (r *Remote) backoff() retry.Backoff {
	return retry.WithMaxRetries(extraAttempts, retry.NewConstant(retryBackoff))
}
