// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// graph.go is the thin client for the Meta Graph API publish endpoints.
// All requests authenticate via the page access token query parameter.

package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandpress/internal/vault"
)

const defaultGraphBaseURL = "https://graph.facebook.com"

// graphClient performs the HTTP calls of the publish state machine.
type graphClient struct {
	baseURL string
	client  *http.Client
}

func newGraphClient(baseURL string) *graphClient {
	if baseURL == "" {
		baseURL = defaultGraphBaseURL
	}
	return &graphClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Container creation for video can be slow; match the platform's
		// processing latency rather than a snappy API budget.
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// endpoint builds a versioned URL with the access token attached.
func (g *graphClient) endpoint(creds *vault.Bundle, path string, extra url.Values) string {
	q := url.Values{"access_token": {creds.PageAccessToken}}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return fmt.Sprintf("%s/%s/%s?%s", g.baseURL, creds.GraphAPIVersion, path, q.Encode())
}

// createContainer creates a media container and returns its id.
func (g *graphClient) createContainer(ctx context.Context, creds *vault.Bundle, form url.Values) (string, error) {
	body, err := g.doPost(ctx, "create_container", g.endpoint(creds, creds.InstagramBusinessAccountID+"/media", nil), form)
	if err != nil {
		return "", err
	}
	return body.ID, nil
}

// publishContainer publishes a ready container and returns the media id.
func (g *graphClient) publishContainer(ctx context.Context, creds *vault.Bundle, containerID string) (string, error) {
	form := url.Values{"creation_id": {containerID}}
	body, err := g.doPost(ctx, "publish", g.endpoint(creds, creds.InstagramBusinessAccountID+"/media_publish", nil), form)
	if err != nil {
		return "", err
	}
	return body.ID, nil
}

// permalink fetches the public permalink of a published media id.
func (g *graphClient) permalink(ctx context.Context, creds *vault.Bundle, mediaID string) (string, error) {
	body, err := g.doGet(ctx, "permalink", g.endpoint(creds, mediaID, url.Values{"fields": {"permalink"}}))
	if err != nil {
		return "", err
	}
	return body.Permalink, nil
}

// containerStatus polls a container's processing status code
// (e.g. IN_PROGRESS, FINISHED, ERROR).
func (g *graphClient) containerStatus(ctx context.Context, creds *vault.Bundle, containerID string) (string, error) {
	body, err := g.doGet(ctx, "status_poll", g.endpoint(creds, containerID, url.Values{"fields": {"status_code"}}))
	if err != nil {
		return "", err
	}
	return body.StatusCode, nil
}

// refreshToken exchanges the current long-lived token for a fresh one and
// returns the new token plus its lifetime in seconds.
func (g *graphClient) refreshToken(ctx context.Context, creds *vault.Bundle) (string, int64, error) {
	q := url.Values{
		"grant_type":        {"fb_exchange_token"},
		"client_id":         {creds.MetaAppID},
		"client_secret":     {creds.MetaAppSecret},
		"fb_exchange_token": {creds.PageAccessToken},
	}
	endpoint := fmt.Sprintf("%s/%s/oauth/access_token?%s", g.baseURL, creds.GraphAPIVersion, q.Encode())

	body, err := g.doGet(ctx, "token_refresh", endpoint)
	if err != nil {
		return "", 0, err
	}
	if body.AccessToken == "" {
		return "", 0, &PublishError{Op: "token_refresh", Detail: "response carried no access_token"}
	}
	return body.AccessToken, body.ExpiresIn, nil
}

// secretParams are the query parameters that carry credential material.
var secretParams = []string{"access_token", "client_secret", "fb_exchange_token"}

// redactTransportError strips credential query parameters from transport
// failures. url.Error embeds the full request URL, access token included,
// and these errors end up in messages and log fields.
func redactTransportError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return fmt.Errorf("%s %s: %w", urlErr.Op, redactURL(urlErr.URL), urlErr.Err)
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(redacted)"
	}
	q := u.Query()
	for _, param := range secretParams {
		if q.Has(param) {
			q.Set(param, "redacted")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// graphResponse covers every field the publish flow reads from the API.
type graphResponse struct {
	ID          string `json:"id"`
	Permalink   string `json:"permalink"`
	StatusCode  string `json:"status_code"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (g *graphClient) doPost(ctx context.Context, op, endpoint string, form url.Values) (*graphResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &PublishError{Op: op, Err: redactTransportError(err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return g.do(op, req)
}

func (g *graphClient) doGet(ctx context.Context, op, endpoint string) (*graphResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &PublishError{Op: op, Err: redactTransportError(err)}
	}
	return g.do(op, req)
}

func (g *graphClient) do(op string, req *http.Request) (*graphResponse, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		// Timeouts and transport failures count as ordinary publish
		// failures, eligible for the caller's retry policy.
		return nil, &PublishError{Op: op, Err: redactTransportError(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &PublishError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &PublishError{Op: op, StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	var body graphResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &PublishError{Op: op, StatusCode: resp.StatusCode, Body: truncateBody(raw), Err: err}
	}
	return &body, nil
}
