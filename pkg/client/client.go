// Package client talks to the chat response endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/chatwidget/pkg/widget"
)

// DefaultEndpoint is the path replies are requested from.
const DefaultEndpoint = "/get_response"

// Doer is the part of *http.Client the Client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts user messages to the response endpoint.
type Client struct {
	baseURL  string
	endpoint string
	http     Doer

	url string
}

var _ widget.Responder = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		if endpoint == "" {
			return errors.New("endpoint is empty")
		}
		c.endpoint = endpoint
		return nil
	}
}

func WithHTTPClient(d Doer) Option {
	return func(c *Client) error {
		if d == nil {
			return errors.New("http client is nil")
		}
		c.http = d
		return nil
	}
}

func New(baseURL string, options ...Option) (*Client, error) {
	c := &Client{
		baseURL:  baseURL,
		endpoint: DefaultEndpoint,
		http:     NewHTTPClient(0),
	}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "apply client option")
		}
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", baseURL)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, errors.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}
	c.url = base.JoinPath(c.endpoint).String()
	return c, nil
}

// URL is the full endpoint address requests are posted to.
func (c *Client) URL() string {
	return c.url
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Response *string `json:"response"`
}

// GetResponse posts message and returns the reply text. Every failure is a *RequestError.
func (c *Client) GetResponse(ctx context.Context, message string) (string, error) {
	requestID := uuid.NewString()
	logger := log.With().Str("component", "client").Str("request_id", requestID).Logger()

	body, err := json.Marshal(messageRequest{Message: message})
	if err != nil {
		return "", errors.Wrap(err, "marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Kind: FailureTransport, RequestID: requestID, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug().Str("url", c.url).Int("bytes", len(body)).Msg("client: posting message")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &RequestError{Kind: FailureTransport, RequestID: requestID, Err: errors.Wrap(err, "post message")}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Kind: FailureStatus, RequestID: requestID, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Kind: FailureTransport, RequestID: requestID, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read reply")}
	}
	// the whole body must be one JSON document, trailing bytes included
	var decoded messageResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", &RequestError{Kind: FailureDecode, RequestID: requestID, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode reply")}
	}
	if decoded.Response == nil {
		return "", &RequestError{Kind: FailureMissingField, RequestID: requestID, StatusCode: resp.StatusCode, Err: errors.New(`reply has no "response" field`)}
	}

	logger.Debug().Int("status", resp.StatusCode).Int("chars", len(*decoded.Response)).Msg("client: reply received")
	return *decoded.Response, nil
}
