package playback

import (
	"fmt"
	"strings"
)

// Platform decides which adaptive protocols a device prefers.
type Platform string

const (
	// PlatformAndroid prefers DASH and falls back to HLS.
	PlatformAndroid Platform = "android"
	// PlatformIOS plays HLS only.
	PlatformIOS Platform = "ios"
)

// Platforms lists the known platforms.
var Platforms = []Platform{PlatformAndroid, PlatformIOS}

// ParsePlatform accepts a platform name case-insensitively.
func ParsePlatform(name string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown platform %q, expected one of android, ios", name)
}

const hlsMasterName = "master.m3u8"

// ManifestKeys are the raw storage keys or URLs attached to a video.
type ManifestKeys struct {
	PremiumDashManifest string
	HLSMasterPlaylist   string
	HLSStoragePath      string
	OriginalFile        string
}

// HLSKey returns the master playlist key, synthesizing it from the storage path when missing.
func (k ManifestKeys) HLSKey() string {
	if strings.TrimSpace(k.HLSMasterPlaylist) != "" {
		return k.HLSMasterPlaylist
	}

	path := strings.TrimRight(strings.TrimSpace(k.HLSStoragePath), "/")
	if path == "" {
		return ""
	}

	return path + "/" + hlsMasterName
}

// URLResolver turns a raw key into a playable URL. ok is false when the key resolves to nothing.
type URLResolver interface {
	Resolve(key string) (url string, ok bool)
}

// URLResolverFunc adapts a function to URLResolver.
type URLResolverFunc func(key string) (string, bool)

func (f URLResolverFunc) Resolve(key string) (string, bool) {
	return f(key)
}

// Candidates is the ordered list for one video. It is never mutated after Resolve.
type Candidates struct {
	VideoID string
	Items   []Candidate
}

// Len returns the number of candidates.
func (c Candidates) Len() int {
	return len(c.Items)
}

// Empty reports whether there is nothing to play.
func (c Candidates) Empty() bool {
	return len(c.Items) == 0
}

// Key identifies the list: the video and every resolved URL in order.
func (c Candidates) Key() string {
	var b strings.Builder
	b.WriteString(c.VideoID)
	for _, item := range c.Items {
		b.WriteByte('\n')
		b.WriteString(string(item.Mode))
		b.WriteByte(' ')
		b.WriteString(item.URL)
	}

	return b.String()
}

// Resolver builds candidate lists.
type Resolver struct {
	urls URLResolver
}

// NewResolver returns a resolver resolving keys with urls.
func NewResolver(urls URLResolver) *Resolver {
	return &Resolver{urls: urls}
}

// Resolve returns the candidates for a video in attempt order.
// Android gets DASH then HLS, iOS gets HLS. A progressive file, when present, always comes last.
func (r *Resolver) Resolve(videoID string, keys ManifestKeys, platform Platform) Candidates {
	candidates := Candidates{VideoID: videoID}

	add := func(mode Mode, container, key string) {
		if strings.TrimSpace(key) == "" {
			return
		}

		url, ok := r.urls.Resolve(key)
		if !ok {
			return
		}

		candidates.Items = append(candidates.Items, Candidate{Mode: mode, URL: url, Type: container})
	}

	if platform == PlatformAndroid {
		add(ModeDash, "mpd", keys.PremiumDashManifest)
	}
	add(ModeHLS, "m3u8", keys.HLSKey())
	add(ModeFile, "mp4", keys.OriginalFile)

	return candidates
}
