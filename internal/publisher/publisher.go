// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publisher drives the multi-step Instagram publish workflow
// against the Meta Graph API: container creation, processing polls for
// video, the final publish call, and the permalink fetch. It guarantees a
// complete credential bundle before any network call and reports typed,
// actionable failures. At-most-once delivery is owned by the caller, which
// must move a post out of its publishable status before scheduling a
// second attempt; the idempotency key is advisory against the platform.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandpress/internal/models"
	"brandpress/internal/vault"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollAttempts = 30
)

// Job is one publish attempt for a post. Media references are ordered;
// carousels publish them in slice order.
type Job struct {
	PostID         uuid.UUID
	BrandID        uuid.UUID
	Shape          models.PostShape
	MediaURLs      []string
	Caption        string
	AltText        string
	Hashtags       []string
	IdempotencyKey string

	// Reel-only knobs.
	ThumbOffsetMs int
	ShareToFeed   bool
}

// Result is a successful publish: the platform media id and its permalink.
type Result struct {
	MediaID   string `json:"media_id"`
	Permalink string `json:"permalink"`
}

// Options configures a Publisher.
type Options struct {
	// DryRun short-circuits every external call with a deterministic
	// synthetic success derived from the job's idempotency key.
	DryRun bool
	// BaseURL overrides the Graph API host, for tests.
	BaseURL string
	// PollInterval and PollAttempts bound the reel processing poll loop.
	PollInterval time.Duration
	PollAttempts int
}

// Publisher executes publish jobs using credentials resolved from the
// vault. Safe for concurrent use across brands.
type Publisher struct {
	vault *vault.Vault
	graph *graphClient
	opts  Options
}

// New returns a Publisher over the given vault.
func New(v *vault.Vault, opts Options) *Publisher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.PollAttempts <= 0 {
		opts.PollAttempts = defaultPollAttempts
	}
	return &Publisher{
		vault: v,
		graph: newGraphClient(opts.BaseURL),
		opts:  opts,
	}
}

// Publish runs the state machine for one job and returns the published
// media id and permalink, a *CredentialsError, or a *PublishError.
func (p *Publisher) Publish(ctx context.Context, job Job) (*Result, error) {
	if len(job.MediaURLs) == 0 {
		return nil, &PublishError{Op: "validate", Detail: "job has no media references"}
	}

	if p.opts.DryRun {
		slog.Info("dry-run publish",
			"post_id", job.PostID,
			"brand_id", job.BrandID,
			"shape", job.Shape,
		)
		return syntheticResult(job.IdempotencyKey), nil
	}

	creds, err := p.resolveCredentials(ctx, job.BrandID)
	if err != nil {
		return nil, err
	}

	switch job.Shape {
	case models.ShapeSingle:
		return p.publishSingle(ctx, creds, job)
	case models.ShapeCarousel:
		return p.publishCarousel(ctx, creds, job)
	case models.ShapeReel:
		return p.publishReel(ctx, creds, job)
	default:
		return nil, &PublishError{Op: "validate", Detail: fmt.Sprintf("unknown post shape %q", job.Shape)}
	}
}

// resolveCredentials loads and verifies the brand's bundle before any
// network I/O. Absence or incompleteness is a CredentialsError.
func (p *Publisher) resolveCredentials(ctx context.Context, brandID uuid.UUID) (*vault.Bundle, error) {
	creds, err := p.vault.Resolve(ctx, brandID)
	if err != nil {
		return nil, &CredentialsError{BrandID: brandID, Reason: err.Error()}
	}
	if creds == nil {
		return nil, &CredentialsError{BrandID: brandID, Reason: "no credentials configured; set brand credentials before publishing"}
	}
	if missing := creds.MissingFields(); len(missing) > 0 {
		return nil, &CredentialsError{
			BrandID: brandID,
			Reason:  "incomplete credentials, missing: " + strings.Join(missing, ", "),
		}
	}
	return creds, nil
}

// publishSingle: create container -> publish -> permalink.
func (p *Publisher) publishSingle(ctx context.Context, creds *vault.Bundle, job Job) (*Result, error) {
	form := url.Values{
		"image_url": {job.MediaURLs[0]},
		"caption":   {p.composeCaption(job)},
	}
	if job.AltText != "" {
		form.Set("alt_text", job.AltText)
	}

	containerID, err := p.graph.createContainer(ctx, creds, form)
	if err != nil {
		return nil, err
	}
	return p.publishAndLink(ctx, creds, job, containerID)
}

// publishCarousel: child containers in order -> parent container ->
// publish -> permalink. Created children are not rolled back on failure —
// the platform exposes no container delete — so the failure detail carries
// the child count for operator diagnosis.
func (p *Publisher) publishCarousel(ctx context.Context, creds *vault.Bundle, job Job) (*Result, error) {
	childIDs := make([]string, 0, len(job.MediaURLs))
	for i, mediaURL := range job.MediaURLs {
		slog.Info("carousel child create",
			"post_id", job.PostID,
			"position", i+1,
			"total", len(job.MediaURLs),
		)
		childID, err := p.graph.createContainer(ctx, creds, url.Values{
			"image_url":        {mediaURL},
			"is_carousel_item": {"true"},
		})
		if err != nil {
			return nil, wrapWithDetail(err, fmt.Sprintf("%d of %d children created", len(childIDs), len(job.MediaURLs)))
		}
		childIDs = append(childIDs, childID)
	}

	parentID, err := p.graph.createContainer(ctx, creds, url.Values{
		"media_type": {"CAROUSEL"},
		"children":   {strings.Join(childIDs, ",")},
		"caption":    {p.composeCaption(job)},
	})
	if err != nil {
		return nil, wrapWithDetail(err, fmt.Sprintf("%d of %d children created", len(childIDs), len(job.MediaURLs)))
	}
	return p.publishAndLink(ctx, creds, job, parentID)
}

// publishReel: create video container -> poll processing status until
// terminal or budget exhausted -> publish -> permalink.
func (p *Publisher) publishReel(ctx context.Context, creds *vault.Bundle, job Job) (*Result, error) {
	containerID, err := p.graph.createContainer(ctx, creds, url.Values{
		"media_type":    {"REELS"},
		"video_url":     {job.MediaURLs[0]},
		"caption":       {p.composeCaption(job)},
		"share_to_feed": {strconv.FormatBool(job.ShareToFeed)},
		"thumb_offset":  {strconv.Itoa(job.ThumbOffsetMs)},
	})
	if err != nil {
		return nil, err
	}

	if err := p.awaitProcessing(ctx, creds, job, containerID); err != nil {
		return nil, err
	}
	return p.publishAndLink(ctx, creds, job, containerID)
}

// awaitProcessing polls the container status at the configured interval
// for at most the configured attempt budget. A terminal ERROR status
// short-circuits immediately rather than waiting out the budget.
func (p *Publisher) awaitProcessing(ctx context.Context, creds *vault.Bundle, job Job, containerID string) error {
	var lastStatus string
	for attempt := 1; attempt <= p.opts.PollAttempts; attempt++ {
		status, err := p.graph.containerStatus(ctx, creds, containerID)
		if err != nil {
			return err
		}
		lastStatus = status

		switch status {
		case "FINISHED":
			return nil
		case "ERROR":
			return &PublishError{
				Op:     "status_poll",
				Detail: fmt.Sprintf("video processing failed after %d polls", attempt),
			}
		}

		slog.Debug("reel still processing",
			"post_id", job.PostID,
			"status", status,
			"attempt", attempt,
			"budget", p.opts.PollAttempts,
		)
		if attempt == p.opts.PollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return &PublishError{Op: "status_poll", Err: ctx.Err()}
		case <-time.After(p.opts.PollInterval):
		}
	}

	return &PublishError{
		Op:     "status_poll",
		Detail: fmt.Sprintf("status still %q after %d polls", lastStatus, p.opts.PollAttempts),
	}
}

// publishAndLink finishes any shape: publish the container, then fetch
// the permalink.
func (p *Publisher) publishAndLink(ctx context.Context, creds *vault.Bundle, job Job, containerID string) (*Result, error) {
	mediaID, err := p.graph.publishContainer(ctx, creds, containerID)
	if err != nil {
		return nil, err
	}
	permalink, err := p.graph.permalink(ctx, creds, mediaID)
	if err != nil {
		return nil, err
	}

	slog.Info("post published",
		"post_id", job.PostID,
		"brand_id", job.BrandID,
		"shape", job.Shape,
		"media_id", mediaID,
	)
	return &Result{MediaID: mediaID, Permalink: permalink}, nil
}

// composeCaption appends the hashtag block to the caption text.
func (p *Publisher) composeCaption(job Job) string {
	caption := strings.TrimSpace(job.Caption)
	if len(job.Hashtags) == 0 {
		return caption
	}
	tags := strings.Join(job.Hashtags, " ")
	if caption == "" {
		return tags
	}
	return caption + "\n\n" + tags
}

// syntheticResult is the deterministic dry-run success for a job: derived
// from the idempotency key so repeated dry runs are reproducible.
func syntheticResult(idempotencyKey string) *Result {
	return &Result{
		MediaID:   "dryrun_" + idempotencyKey,
		Permalink: "https://instagram.com/p/" + idempotencyKey,
	}
}

func wrapWithDetail(err error, detail string) error {
	if perr, ok := err.(*PublishError); ok {
		perr.Detail = detail
		return perr
	}
	return fmt.Errorf("%s: %w", detail, err)
}
