package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	subscriptionScanLimit = 200
	watchLaterPageLimit   = 100
	watchLaterMaxPages    = 50
)

// ErrEmptyComment is returned when a comment has no text.
var ErrEmptyComment = errors.New("comment is empty")

// uid returns the auth provider id that user-service paths are keyed by.
func (c *Client) uid() (string, error) {
	uid := strings.TrimSpace(c.credentials.UID)
	if uid == "" {
		return "", ErrNotLoggedIn
	}
	return uid, nil
}

// userNumber returns the numeric user id sent in request bodies.
func (c *Client) userNumber() (int64, error) {
	id, ok := c.numericUserID()
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return strconv.ParseInt(id, 10, 64)
}

func (c *Client) userEndpoint(format string, args ...any) (string, error) {
	if err := requireBase(c.userBase, "user"); err != nil {
		return "", err
	}

	uid, err := c.uid()
	if err != nil {
		return "", err
	}

	return c.userBase + "/users/" + url.PathEscape(uid) + fmt.Sprintf(format, args...), nil
}

func pageQuery(page, limit int) string {
	query := url.Values{}
	query.Set("p", strconv.Itoa(max(page, 1)))
	query.Set("l", strconv.Itoa(limit))
	return query.Encode()
}

// SubscriptionChannels lists the channels the viewer follows.
func (c *Client) SubscriptionChannels(ctx context.Context, page, limit int) (*SubscriptionPage, error) {
	endpoint, err := c.userEndpoint("/subscriptions/channels?%s", pageQuery(page, limit))
	if err != nil {
		return nil, err
	}

	var out SubscriptionPage
	if err := c.get(ctx, endpoint, &out, "Failed to list subscription channels"); err != nil {
		return nil, err
	}

	return &out, nil
}

// IsSubscribed reports whether the viewer follows channelID. Only the first
// subscriptionScanLimit channels are checked.
func (c *Client) IsSubscribed(ctx context.Context, channelID int64) (bool, error) {
	page, err := c.SubscriptionChannels(ctx, 1, subscriptionScanLimit)
	if err != nil {
		return false, err
	}

	for _, ch := range page.Channels {
		if ch.ChannelID == channelID {
			return true, nil
		}
	}

	return false, nil
}

// SetSubscription follows or unfollows a channel.
func (c *Client) SetSubscription(ctx context.Context, channelID int64, subscribe bool) error {
	if channelID <= 0 {
		return fmt.Errorf("invalid channel id %d", channelID)
	}

	endpoint, err := c.userEndpoint("/subscriptions")
	if err != nil {
		return err
	}

	body := map[string]any{
		"channel_id": channelID,
		"subscribe":  subscribe,
	}

	return c.Do(ctx, http.MethodPost, endpoint, body, nil, "Failed to update subscription")
}

// SubscriptionVideos lists recent videos from followed channels, newest first.
func (c *Client) SubscriptionVideos(ctx context.Context, page, limit int) (*LatestPage, error) {
	endpoint, err := c.userEndpoint("/subscriptions/videos?%s", pageQuery(page, limit))
	if err != nil {
		return nil, err
	}

	var out LatestPage
	if err := c.get(ctx, endpoint, &out, "Failed to list subscription videos"); err != nil {
		return nil, err
	}

	return &out, nil
}

// SearchChannels runs a channel search. Blank queries are rejected.
func (c *Client) SearchChannels(ctx context.Context, q string, limit, offset int) (*ChannelSearchPage, error) {
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

	var out ChannelSearchPage
	endpoint := c.searchBase + "/search/channels?" + query.Encode()
	if err := c.get(ctx, endpoint, &out, "Failed to search channels"); err != nil {
		return nil, err
	}

	return &out, nil
}

// CommentOptions narrow a comment listing. Zero values are omitted.
type CommentOptions struct {
	// ParentID lists the replies of a comment instead of the top level.
	ParentID int64
	Limit    int
	Offset   int
}

// Comments lists the comments of a video. Signed-in viewers also get their own reactions.
func (c *Client) Comments(ctx context.Context, videoID string, options CommentOptions) ([]*Comment, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	query := url.Values{}
	if options.ParentID > 0 {
		query.Set("parent_comment_id", strconv.FormatInt(options.ParentID, 10))
	}
	if options.Limit > 0 {
		query.Set("limit", strconv.Itoa(options.Limit))
	}
	if options.Offset > 0 {
		query.Set("offset", strconv.Itoa(options.Offset))
	}
	if id, ok := c.numericUserID(); ok {
		query.Set("viewer_user_id", id)
	}

	endpoint := fmt.Sprintf("%s/videos/%s/comments", c.videoBase, url.PathEscape(videoID))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var out struct {
		Comments []*Comment `json:"comments"`
	}
	if err := c.get(ctx, endpoint, &out, "Failed to list comments"); err != nil {
		return nil, err
	}

	return out.Comments, nil
}

// PostComment publishes a comment, or a reply when parentID is positive, and returns its id.
func (c *Client) PostComment(ctx context.Context, videoID, content string, parentID int64) (int64, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return 0, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return 0, ErrEmptyComment
	}

	userID, err := c.userNumber()
	if err != nil {
		return 0, err
	}

	body := map[string]any{
		"user_id":           userID,
		"content":           content,
		"parent_comment_id": nil,
		"media":             []any{},
	}
	if parentID > 0 {
		body["parent_comment_id"] = parentID
	}

	var out struct {
		ID int64 `json:"id"`
	}
	endpoint := fmt.Sprintf("%s/videos/%s/comments", c.videoBase, url.PathEscape(videoID))
	if err := c.Do(ctx, http.MethodPost, endpoint, body, &out, "Failed to post comment"); err != nil {
		return 0, err
	}

	return out.ID, nil
}

// Reactions returns the like counters of a video.
func (c *Client) Reactions(ctx context.Context, videoID string) (*Reactions, error) {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/videos/%s/reactions", c.videoBase, url.PathEscape(videoID))
	if id, ok := c.numericUserID(); ok {
		endpoint += "?" + url.Values{"user_id": {id}}.Encode()
	}

	var out Reactions
	if err := c.get(ctx, endpoint, &out, "Failed to fetch reactions"); err != nil {
		return nil, err
	}

	return &out, nil
}

// React sets the viewer's reaction. ReactionNone removes it.
func (c *Client) React(ctx context.Context, videoID string, reaction Reaction) error {
	if err := requireBase(c.videoBase, "video metadata"); err != nil {
		return err
	}

	userID, err := c.userNumber()
	if err != nil {
		return err
	}

	body := map[string]any{
		"user_id":       userID,
		"reaction_type": nil,
	}
	if reaction != ReactionNone {
		body["reaction_type"] = reaction
	}

	endpoint := fmt.Sprintf("%s/videos/%s/reactions", c.videoBase, url.PathEscape(videoID))
	return c.Do(ctx, http.MethodPut, endpoint, body, nil, "Failed to set reaction")
}

// NextReaction is the reaction after pressing pressed: pressing the current one clears it.
func NextReaction(current, pressed Reaction) Reaction {
	if current == pressed {
		return ReactionNone
	}
	return pressed
}

// ParseReaction accepts like, dislike and none (or an empty string).
func ParseReaction(s string) (Reaction, error) {
	switch r := Reaction(strings.ToLower(strings.TrimSpace(s))); r {
	case ReactionLike, ReactionDislike, ReactionNone:
		return r, nil
	case "none":
		return ReactionNone, nil
	default:
		return ReactionNone, fmt.Errorf("unknown reaction %q, expected like, dislike or none", s)
	}
}

// WatchLater lists the viewer's saved videos.
func (c *Client) WatchLater(ctx context.Context, page, limit int) (*LatestPage, error) {
	endpoint, err := c.userEndpoint("/playlists/later?%s", pageQuery(page, limit))
	if err != nil {
		return nil, err
	}

	var out LatestPage
	if err := c.get(ctx, endpoint, &out, "Failed to list Watch Later"); err != nil {
		return nil, err
	}

	return &out, nil
}

// InWatchLater pages through the saved videos looking for videoID.
func (c *Client) InWatchLater(ctx context.Context, videoID int64) (bool, error) {
	for page := 1; page <= watchLaterMaxPages; page++ {
		list, err := c.WatchLater(ctx, page, watchLaterPageLimit)
		if err != nil {
			return false, err
		}

		for _, v := range list.Videos {
			if v.ID == videoID {
				return true, nil
			}
		}

		if !list.HasMore || len(list.Videos) == 0 {
			return false, nil
		}
	}

	return false, nil
}

// AddToWatchLater saves a video.
func (c *Client) AddToWatchLater(ctx context.Context, videoID int64) (*WatchLaterChange, error) {
	return c.changeWatchLater(ctx, http.MethodPut, videoID, "Failed to save video")
}

// RemoveFromWatchLater removes a saved video.
func (c *Client) RemoveFromWatchLater(ctx context.Context, videoID int64) (*WatchLaterChange, error) {
	return c.changeWatchLater(ctx, http.MethodDelete, videoID, "Failed to remove video")
}

func (c *Client) changeWatchLater(ctx context.Context, method string, videoID int64, fallback string) (*WatchLaterChange, error) {
	if videoID <= 0 {
		return nil, fmt.Errorf("invalid video id %d", videoID)
	}

	endpoint, err := c.userEndpoint("/playlists/later")
	if err != nil {
		return nil, err
	}

	var out WatchLaterChange
	if err := c.Do(ctx, method, endpoint, map[string]any{"video_id": videoID}, &out, fallback); err != nil {
		return nil, err
	}

	return &out, nil
}
