// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// CreaTV service endpoints - these keys locate the remote REST APIs the client talks to.
const (
	APIVideoMetadataURL = "api.video_metadata_url"
	APISearchURL        = "api.search_url"
	APIUserURL          = "api.user_url"
	APISharingURL       = "api.sharing_url"
	APITimeout          = "api.timeout_seconds"
)

// Media delivery - these keys configure how manifest and file keys are turned into absolute URLs.
const (
	CDNMediaBaseURL  = "cdn.media_base_url"
	CDNBucketBaseURL = "cdn.bucket_base_url"
	WebBaseURL       = "web.base_url"
)

// Media Playback - these keys configure the external renderer and candidate ordering.
const (
	Player                     = "player.default"
	PlayerPlatform             = "player.platform"
	PlayerCompletionPercentage = "player.completion_percentage"
	PlayerApplyChapters        = "player.apply_chapters"
	PlayerResume               = "player.resume"
)

// History Tracking - these keys configure the persistence of local watch progress.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Search Interaction - these keys define search behaviour and suggestions.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Sharing - these keys tune share link generation.
const (
	ShareDefaultTarget = "share.default_target"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
