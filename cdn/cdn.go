// Package cdn turns storage keys into absolute media URLs.
package cdn

import (
	"regexp"
	"strings"

	"github.com/creatv/creatv/key"
	"github.com/spf13/viper"
)

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// Resolver prefixes relative keys with configured bases.
type Resolver struct {
	mediaBase  string
	bucketBase string
}

// New returns a resolver for the given media CDN base and public bucket base.
func New(mediaBase, bucketBase string) *Resolver {
	return &Resolver{
		mediaBase:  strings.TrimSpace(mediaBase),
		bucketBase: strings.TrimSpace(bucketBase),
	}
}

// FromConfig reads both bases from viper.
func FromConfig() *Resolver {
	return New(viper.GetString(key.CDNMediaBaseURL), viper.GetString(key.CDNBucketBaseURL))
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}

// EnsurePublicBucketURL anchors value on the public bucket unless it is already absolute.
func (r *Resolver) EnsurePublicBucketURL(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}

	base := trimBase(r.bucketBase)
	if base != "" && strings.HasPrefix(strings.ToLower(trimmed), strings.ToLower(base)) {
		return trimmed, true
	}

	if absoluteURL.MatchString(trimmed) {
		return trimmed, true
	}

	path := strings.TrimLeft(trimmed, "/")
	if path == "" {
		return base, base != ""
	}

	return base + "/" + path, true
}

// ResolveMediaURL anchors path on the media CDN unless it is already absolute.
// Without a base the result is a root-relative path.
func (r *Resolver) ResolveMediaURL(path string) (string, bool) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", false
	}

	if absoluteURL.MatchString(trimmed) {
		return trimmed, true
	}

	normalized := strings.TrimLeft(trimmed, "/")
	if normalized == "" {
		return "", false
	}

	if r.mediaBase == "" {
		return "/" + normalized, true
	}

	return trimBase(r.mediaBase) + "/" + normalized, true
}

// BuildMediaURL applies EnsurePublicBucketURL and then ResolveMediaURL.
func (r *Resolver) BuildMediaURL(value string) (string, bool) {
	anchored, ok := r.EnsurePublicBucketURL(value)
	if !ok {
		return "", false
	}

	return r.ResolveMediaURL(anchored)
}

// Resolve makes Resolver usable as a playback URL resolver.
func (r *Resolver) Resolve(key string) (string, bool) {
	return r.BuildMediaURL(key)
}
