package api

import (
	"strconv"
	"time"

	"github.com/creatv/creatv/playback"
)

// Video is the full metadata record of a single video.
type Video struct {
	ID          int64  `json:"id" jsonschema:"description=Video id"`
	UserID      int64  `json:"user_id,omitempty"`
	ChannelID   int64  `json:"channel_id" jsonschema:"description=Owning channel id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	DurationSeconds float64 `json:"duration_seconds"`

	OriginalFileKey        string `json:"original_file_key,omitempty" jsonschema:"description=Progressive file key or URL"`
	HLSMasterPlaylistKey   string `json:"hls_master_playlist_key,omitempty"`
	PremiumDashManifestKey string `json:"premium_dash_manifest_key,omitempty"`
	PremiumDashStoragePath string `json:"premium_dash_storage_path,omitempty"`
	HLSStoragePath         string `json:"hls_storage_path,omitempty"`
	CaptionsVTTKey         string `json:"captions_vtt_key,omitempty"`
	StreamingProtocol      string `json:"streaming_protocol,omitempty"`
	ProcessingStatus       string `json:"processing_status,omitempty"`
	ThumbnailURL           string `json:"thumbnail_url,omitempty"`
	OriginalWidth          int    `json:"original_width,omitempty"`
	OriginalHeight         int    `json:"original_height,omitempty"`
	Visibility             string `json:"visibility,omitempty" jsonschema:"enum=private,enum=unlisted,enum=public"`
	IsAgeRestricted        bool   `json:"is_age_restricted"`
	IsCommentsEnabled      bool   `json:"is_comments_enabled"`
	ViewCount              int64  `json:"view_count"`
	LikeCount              int64  `json:"like_count"`
	CommentCount           int64  `json:"comment_count"`
	Tags                   string `json:"tags,omitempty"`
	Language               string `json:"language,omitempty"`
	CategoryName           string `json:"category_name,omitempty"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// IDString returns the id as used in URLs.
func (v *Video) IDString() string {
	return strconv.FormatInt(v.ID, 10)
}

// ManifestKeys extracts the raw playback keys.
func (v *Video) ManifestKeys() playback.ManifestKeys {
	return playback.ManifestKeys{
		PremiumDashManifest: v.PremiumDashManifestKey,
		HLSMasterPlaylist:   v.HLSMasterPlaylistKey,
		HLSStoragePath:      v.HLSStoragePath,
		OriginalFile:        v.OriginalFileKey,
	}
}

func (v *Video) String() string {
	return v.Title
}

// Progress is the watch progress embedded in listing items.
type Progress struct {
	LastPositionSeconds  float64 `json:"last_position_seconds,omitempty"`
	WatchDurationSeconds float64 `json:"watch_duration_seconds,omitempty"`
	Completed            bool    `json:"completed,omitempty"`
}

// VideoSummary is a listing entry from the latest feed or search.
type VideoSummary struct {
	ID                 int64      `json:"id"`
	ChannelID          int64      `json:"channel_id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	ThumbnailURL       string     `json:"thumbnail_url,omitempty"`
	DurationSeconds    float64    `json:"duration_seconds,omitempty"`
	ViewCount          int64      `json:"view_count,omitempty"`
	ChannelDisplayName string     `json:"channel_display_name,omitempty"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	WatchProgress      *Progress  `json:"watch_progress,omitempty"`
}

// IDString returns the id as used in URLs.
func (v *VideoSummary) IDString() string {
	return strconv.FormatInt(v.ID, 10)
}

// Published returns the publication time, falling back to creation.
func (v *VideoSummary) Published() time.Time {
	switch {
	case v.PublishedAt != nil:
		return *v.PublishedAt
	case v.CreatedAt != nil:
		return *v.CreatedAt
	default:
		return time.Time{}
	}
}

func (v *VideoSummary) String() string {
	return v.Title
}

// LatestPage is one page of the latest feed.
type LatestPage struct {
	Videos  []*VideoSummary `json:"videos"`
	Count   int             `json:"count"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	HasMore bool            `json:"has_more"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Results []*VideoSummary `json:"results"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// NextOffset returns the offset of the following page.
func (p *SearchPage) NextOffset() (int, bool) {
	next := p.Offset + p.Limit
	return next, next < p.Total
}

// WatchProgress is the server-side progress of one viewer on one video.
type WatchProgress struct {
	UserID               int64   `json:"user_id"`
	VideoID              int64   `json:"video_id"`
	WatchDurationSeconds float64 `json:"watch_duration_seconds"`
	LastPositionSeconds  float64 `json:"last_position_seconds"`
	Completed            bool    `json:"completed"`
}

// Channel is a creator channel.
type Channel struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	IsVerified      bool   `json:"is_verified"`
	SubscriberCount int64  `json:"subscriber_count"`
	TotalViews      int64  `json:"total_views"`
	VideoCount      int64  `json:"video_count"`
}

// User is the backend profile of the signed-in viewer.
type User struct {
	ID          int64  `json:"id"`
	FirebaseUID string `json:"firebase_uid,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	IsPremium   bool   `json:"is_premium"`
}

// SubscriptionChannel is a channel the viewer follows.
type SubscriptionChannel struct {
	ChannelID   int64  `json:"channel_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// SubscriptionPage is one page of followed channels.
type SubscriptionPage struct {
	Channels []*SubscriptionChannel `json:"channels"`
	Count    int                    `json:"count"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
	HasMore  bool                   `json:"has_more"`
}

// ChannelSearchPage is one page of channel search results.
type ChannelSearchPage struct {
	Results []*Channel `json:"results"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

// Comment is a top-level comment or a reply on a video.
type Comment struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	Content        string         `json:"content"`
	LikeCount      int64          `json:"like_count"`
	ReplyCount     int64          `json:"reply_count"`
	IsPinned       bool           `json:"is_pinned"`
	IsCreatorReply bool           `json:"is_creator_reply"`
	IsHidden       bool           `json:"is_hidden"`
	HiddenReason   string         `json:"hidden_reason,omitempty"`
	CountryCode    string         `json:"country_code,omitempty"`
	ReactionCounts map[string]int `json:"reaction_counts,omitempty"`
	ViewerReaction string         `json:"viewer_reaction,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Reaction is the viewer's opinion of a video. ReactionNone clears it.
type Reaction string

const (
	ReactionNone    Reaction = ""
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Reactions are the like counters of a video and the viewer's own reaction.
type Reactions struct {
	LikeCount    int64    `json:"like_count"`
	DislikeCount int64    `json:"dislike_count"`
	UserReaction Reaction `json:"user_reaction,omitempty"`
}

// WatchLaterChange is the server's answer to adding or removing a saved video.
type WatchLaterChange struct {
	PlaylistID int64  `json:"playlist_id"`
	VideoID    int64  `json:"video_id"`
	Added      bool   `json:"added"`
	Removed    bool   `json:"removed"`
	Message    string `json:"message,omitempty"`
}
