// Package share builds and distributes video share links.
//
// Links come from the sharing API when one is configured. Any failure there falls back to a
// plain web link so that sharing never fails because of the API.
package share

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/spf13/viper"
)

// Requester sends authenticated JSON requests. *api.Client implements it.
type Requester interface {
	Do(ctx context.Context, method, endpoint string, body, out any, fallback string) error
}

// Request is the body of POST /share-links.
type Request struct {
	VideoID      int64  `json:"video_id"`
	StartSeconds *int   `json:"start_seconds,omitempty"`
	Target       Target `json:"target"`
	Surface      string `json:"surface"`
}

// Link is a created share link.
type Link struct {
	ShareID      string     `json:"share_id"`
	ShareURL     string     `json:"share_url"`
	VideoID      int64      `json:"video_id"`
	StartSeconds *int       `json:"start_seconds,omitempty"`
	Target       Target     `json:"target"`
	Surface      string     `json:"surface"`
	SharerUserID *int64     `json:"sharer_user_id,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// Client talks to the sharing API.
type Client struct {
	base      string
	requester Requester
}

// NewClient returns a client for the API rooted at base.
func NewClient(base string, requester Requester) *Client {
	return &Client{
		base:      strings.TrimRight(strings.TrimSpace(base), "/"),
		requester: requester,
	}
}

// Create registers a share link.
func (c *Client) Create(ctx context.Context, req Request) (*Link, error) {
	if c.base == "" {
		return nil, fmt.Errorf("sharing api url is not configured")
	}

	var link Link
	if err := c.requester.Do(ctx, http.MethodPost, c.base+"/share-links", req, &link, "Failed to create share link"); err != nil {
		return nil, err
	}

	if link.ShareURL == "" {
		return nil, fmt.Errorf("sharing api returned no url")
	}

	return &link, nil
}

// StartSeconds returns the offset to embed in a link, or 0 for none.
func StartSeconds(include bool, seconds float64) int {
	if !include || math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}

	return int(math.Floor(seconds))
}

// Builder produces share URLs.
type Builder struct {
	client  *Client
	webBase string
	surface string
}

// NewBuilder returns a builder. client may be nil, in which case only web links are produced.
func NewBuilder(webBase string, client *Client) *Builder {
	return &Builder{
		client:  client,
		webBase: strings.TrimRight(strings.TrimSpace(webBase), "/"),
		surface: constant.ShareSurface,
	}
}

// FromConfig wires the sharing API when api.sharing_url is set.
func FromConfig(requester Requester) *Builder {
	var client *Client
	if base := viper.GetString(key.APISharingURL); strings.TrimSpace(base) != "" {
		client = NewClient(base, requester)
	}

	return NewBuilder(viper.GetString(key.WebBaseURL), client)
}

// WebURL is the fallback link: {web}/video/{id} with ?t= when start is positive.
func (b *Builder) WebURL(videoID int64, start int) string {
	link := fmt.Sprintf("%s/video/%d", b.webBase, videoID)
	if start > 0 {
		return fmt.Sprintf("%s?t=%d", link, start)
	}
	return link
}

// Build returns a share URL for target. It never fails.
func (b *Builder) Build(ctx context.Context, videoID int64, target Target, start int) string {
	if b.client != nil {
		req := Request{VideoID: videoID, Target: target, Surface: b.surface}
		if start > 0 {
			req.StartSeconds = &start
		}

		link, err := b.client.Create(ctx, req)
		if err == nil {
			return link.ShareURL
		}

		log.With(log.Fields{"video": videoID, "target": target}).Warnf("share api failed, using web link: %s", err)
	}

	return b.WebURL(videoID, start)
}
