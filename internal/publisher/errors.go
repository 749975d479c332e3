// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publisher

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxBodySnippet bounds how much of an error response body is carried in
// failure messages and logs.
const maxBodySnippet = 600

// CredentialsError means the brand's credential bundle is missing or
// incomplete. It is raised before any network call and is fatal for the
// attempt — retrying cannot help until an operator fixes the credentials.
type CredentialsError struct {
	BrandID uuid.UUID
	Reason  string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("credentials for brand %s: %s", e.BrandID, e.Reason)
}

// PublishError is any downstream failure of a publish attempt: a non-2xx
// Graph API response, a terminal container status, or an exhausted poll
// budget. It is eligible for the caller's bounded-retry policy.
type PublishError struct {
	Op         string // the step that failed, e.g. "create_container"
	StatusCode int    // HTTP status, 0 when the failure was not HTTP
	Body       string // response body, truncated to maxBodySnippet
	Detail     string // extra operator context, e.g. carousel child count
	Err        error
}

func (e *PublishError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "publish %s failed", e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " [%s]", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, " | %s", e.Body)
	}
	return b.String()
}

func (e *PublishError) Unwrap() error { return e.Err }

// truncateBody clips a response body to the snippet budget.
func truncateBody(body []byte) string {
	if len(body) > maxBodySnippet {
		return string(body[:maxBodySnippet])
	}
	return string(body)
}
