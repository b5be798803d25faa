// Package api talks to the CreaTV video metadata, search and user services.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/creatv/creatv/auth"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/network"
	"github.com/spf13/viper"
)

// ErrNotLoggedIn is returned by calls that need a user id.
var ErrNotLoggedIn = errors.New("not logged in, run `creatv login` first")

// Error is a non-2xx response. Message is the response body, or a default when the body is empty.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Options configure a Client.
type Options struct {
	HTTPClient       *http.Client
	VideoMetadataURL string
	SearchURL        string
	UserURL          string
	Credentials      auth.Credentials
	// NoCache disables the on-disk video cache.
	NoCache bool
}

// Client is safe for concurrent use.
type Client struct {
	http        *http.Client
	videoBase   string
	searchBase  string
	userBase    string
	credentials auth.Credentials
	cache       bool
}

// New returns a client. Empty base URLs make the related calls fail.
func New(options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = network.Client
	}

	return &Client{
		http:        httpClient,
		videoBase:   strings.TrimRight(options.VideoMetadataURL, "/"),
		searchBase:  strings.TrimRight(options.SearchURL, "/"),
		userBase:    strings.TrimRight(options.UserURL, "/"),
		credentials: options.Credentials,
		cache:       !options.NoCache,
	}
}

// FromConfig builds a client from viper settings.
func FromConfig(credentials auth.Credentials) *Client {
	return New(Options{
		HTTPClient:       network.FromConfig(),
		VideoMetadataURL: viper.GetString(key.APIVideoMetadataURL),
		SearchURL:        viper.GetString(key.APISearchURL),
		UserURL:          viper.GetString(key.APIUserURL),
		Credentials:      credentials,
	})
}

// Credentials returns the credentials the client authenticates with.
func (c *Client) Credentials() auth.Credentials {
	return c.credentials
}

// numericUserID returns the user id when it is a positive integer.
func (c *Client) numericUserID() (string, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.credentials.UserID), 10, 64)
	if err != nil || id <= 0 {
		return "", false
	}

	return strconv.FormatInt(id, 10), true
}

// Do sends an authenticated JSON request. A bearer token is attached unless the request
// already carries an Authorization header. body and out may be nil.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentials.Token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.credentials.Token)
	}

	log.With(log.Fields{"method": method, "url": endpoint}).Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		message := strings.TrimSpace(string(text))
		if message == "" {
			message = fallback
		}

		log.With(log.Fields{"status": resp.StatusCode, "url": endpoint}).Warn(message)
		return &Error{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any, fallback string) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, fallback)
}

func requireBase(base, name string) error {
	if base == "" {
		return fmt.Errorf("%s api url is not configured", name)
	}
	return nil
}

// Video fetches a single video, served from the on-disk cache when fresh.
func (c *Client) Video(ctx context.Context, id string) (*Video, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	if c.cache {
		if cached, ok := videoCache.Get(id).Get(); ok {
			return cached, nil
		}
	}

	var video Video
	endpoint := fmt.Sprintf("%s/videos/%s", c.videoBase, url.PathEscape(id))
	if err := c.get(ctx, endpoint, &video, fmt.Sprintf("Failed to fetch video %s", id)); err != nil {
		return nil, err
	}

	if c.cache {
		if err := videoCache.Set(id, &video); err != nil {
			log.Warnf("cache video %s: %s", id, err)
		}
	}

	return &video, nil
}

// LatestVideos lists the newest public videos. Pages start at 1.
func (c *Client) LatestVideos(ctx context.Context, page, limit int) (*LatestPage, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("p", strconv.Itoa(page))
	query.Set("l", strconv.Itoa(limit))
	if id, ok := c.numericUserID(); ok {
		query.Set("user_id", id)
	}

	var out LatestPage
	endpoint := c.videoBase + "/videos/latest?" + query.Encode()
	if err := c.get(ctx, endpoint, &out, "Failed to list latest videos"); err != nil {
		return nil, err
	}

	return &out, nil
}

// SearchVideos runs a full-text search. Blank queries are rejected.
func (c *Client) SearchVideos(ctx context.Context, q string, limit, offset int) (*SearchPage, error) {
	if err := requireBase(c.searchBase, "search"); err != nil {
		return nil, err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.New("search query is empty")
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if id, ok := c.numericUserID(); ok {
		query.Set("user_id", id)
	}

	var out SearchPage
	endpoint := c.searchBase + "/search/videos?" + query.Encode()
	if err := c.get(ctx, endpoint, &out, "Failed to search videos"); err != nil {
		return nil, err
	}

	return &out, nil
}

// WatchProgress returns the signed-in viewer's progress on a video.
func (c *Client) WatchProgress(ctx context.Context, videoID string) (*WatchProgress, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	userID, ok := c.numericUserID()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	query := url.Values{}
	query.Set("user_id", userID)

	var out WatchProgress
	endpoint := fmt.Sprintf("%s/videos/%s/progress?%s", c.videoBase, url.PathEscape(videoID), query.Encode())
	if err := c.get(ctx, endpoint, &out, "Failed to fetch progress"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Channel fetches a channel.
func (c *Client) Channel(ctx context.Context, id string) (*Channel, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	var out Channel
	endpoint := fmt.Sprintf("%s/channels/%s", c.videoBase, url.PathEscape(id))
	if err := c.get(ctx, endpoint, &out, fmt.Sprintf("Failed to fetch channel %s", id)); err != nil {
		return nil, err
	}

	return &out, nil
}

// User fetches a profile by its auth uid.
func (c *Client) User(ctx context.Context, uid string) (*User, error) {
	if err := requireBase(c.userBase, "user"); err != nil {
		return nil, err
	}

	var out User
	endpoint := fmt.Sprintf("%s/users/%s", c.userBase, url.PathEscape(uid))
	if err := c.get(ctx, endpoint, &out, "Unable to load your profile. Please try again."); err != nil {
		return nil, err
	}

	return &out, nil
}
