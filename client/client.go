package client

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

	"github.com/brightcms/backoffice/client/auth/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Service is the JSON HTTP core shared by every resource client. It owns the
// base URL and the session-aware http.Client, decodes 2xx bodies into the
// caller's out value and maps every failure onto the error taxonomy defined
// in errors.go. Errors are annotated and rethrown, never swallowed.
type Service struct {
	baseURL    string
	httpClient *http.Client
	notifier   Notifier
	logger     zerolog.Logger
}

func New(baseURL string, options ...Option) *Service {
	ret := &Service{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		notifier:   NopNotifier(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// BaseURL returns the configured API host.
func (s *Service) BaseURL() string { return s.baseURL }

// Notifier returns the configured notifier so higher layers can report
// their own terminal events through the same collaborator.
func (s *Service) Notifier() Notifier { return s.notifier }

func (s *Service) Get(ctx context.Context, path string, out any) error {
	return s.do(ctx, http.MethodGet, path, nil, out)
}

func (s *Service) Post(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, path, body, out)
}

func (s *Service) Put(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPut, path, body, out)
}

func (s *Service) Patch(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPatch, path, body, out)
}

func (s *Service) Delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil)
}

// Download performs a GET returning the raw response body, for non-JSON
// payloads such as collection exports.
func (s *Service) Download(ctx context.Context, path string) ([]byte, error) {
	resp, err := s.send(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, s.fail(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// Upload posts a raw payload, for file imports. The decoded JSON response is
// stored in out when non-nil.
func (s *Service) Upload(ctx context.Context, path, contentType string, data []byte, out any) error {
	resp, err := s.send(ctx, http.MethodPost, path, contentType, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return s.decode(resp, out)
}

func (s *Service) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	resp, err := s.send(ctx, method, path, contentType, reader)
	if err != nil {
		return err
	}
	return s.decode(resp, out)
}

func (s *Service) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// A cancelled call is the caller's doing, not a failure to report.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, transport.ErrSessionExpired) {
			aerr := &AuthFailedError{Err: err}
			s.notifier.Error(aerr.Error())
			return nil, aerr
		}
		nerr := &NetworkError{URL: s.baseURL, Err: err}
		s.notifier.Error(nerr.Error())
		return nil, nerr
	}
	return resp, nil
}

func (s *Service) decode(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		return s.fail(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// fail maps a non-2xx response onto the error taxonomy and reports it to the
// notifier. The request-level refresh already ran inside the transport, so a
// 401 here is final.
func (s *Service) fail(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	code, message := decodeErrorBody(data)

	var err error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if transport.RefreshDisabled(resp.Request.Context()) {
			// Credential endpoints opt out of the refresh protocol; a 401
			// there means the credentials were wrong, not that the session
			// ended.
			if message == "" {
				message = "invalid credentials"
			}
			err = &ValidationError{StatusCode: resp.StatusCode, Code: code, Message: message}
		} else {
			err = &AuthFailedError{}
		}
	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		err = &NotFoundError{Message: message}
	case resp.StatusCode >= http.StatusInternalServerError:
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", resp.Request.URL.String()).
			Str("body", truncate(string(data), 512)).
			Msg("server error")
		err = &ServerError{StatusCode: resp.StatusCode, Message: "the server encountered an error, please try again later"}
	default:
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		err = &ValidationError{StatusCode: resp.StatusCode, Code: code, Message: message}
	}
	s.notifier.Error(err.Error())
	return err
}

// decodeErrorBody extracts the {error, message} envelope the API uses for
// failures; either field may be absent.
func decodeErrorBody(data []byte) (code, message string) {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", ""
	}
	if envelope.Message == "" {
		envelope.Message = envelope.Error
	}
	return envelope.Error, envelope.Message
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
