// Package history persists local watch progress so playback can resume where it stopped.
package history

import (
	"sort"
	"time"

	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var now = time.Now

// Get returns every entry keyed by video id.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Find returns the entry of one video.
func Find(videoID string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}

	if entry, ok := saved[videoID]; ok {
		return mo.Some(entry), nil
	}

	return mo.None[*Entry](), nil
}

// Recent returns entries, most recently watched first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})

	return entries, nil
}

// Save records progress. The watched percentage never goes down, the position is always the latest.
// Reaching player.completion_percentage marks the entry completed.
func Save(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := *entry
	if existing, ok := saved[record.VideoID]; ok {
		record.WatchedPercentage = max(record.WatchedPercentage, existing.WatchedPercentage)
		if record.Title == "" {
			record.Title = existing.Title
		}
	}

	threshold := viper.GetFloat64(key.PlayerCompletionPercentage)
	record.Completed = threshold > 0 && entry.WatchedPercentage >= threshold
	record.UpdatedAt = now()

	saved[record.VideoID] = &record
	return cacher.Set(saved)
}

// Remove forgets one video.
func Remove(videoID string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, videoID)
	return cacher.Set(saved)
}
