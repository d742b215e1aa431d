// Package client holds the outbound HTTP clients for every collaborator
// service the companion talks to. Each client maps transport failures to
// the shared error taxonomy at this boundary so callers never see raw
// net/http errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer is the seam test fakes implement.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type rest struct {
	baseURL string
	http    HTTPDoer
}

func newREST(baseURL string, doer HTTPDoer) rest {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return rest{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

func (r rest) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return r.send(req, out)
}

func (r rest) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.send(req, out)
}

func (r rest) call(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return r.send(req, nil)
}

func (r rest) send(req *http.Request, out any) error {
	res, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func statusError(res *http.Response) error {
	msg := remoteMessage(res.Body)
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		if msg == "" {
			return ErrUnauthorized
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= 400 && res.StatusCode < 500:
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	default:
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("%w: %s", ErrNetwork, msg)
	}
}

// remoteMessage pulls the human-readable message collaborators put under
// "message" or "error".
func remoteMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
