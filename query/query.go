// Package query remembers search queries and suggests them back while typing.
package query

import (
	"strings"
	"sync"
	"time"

	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank     int       `json:"rank"`
	Query    string    `json:"query"`
	LastUsed time.Time `json:"last_used"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	mu          sync.Mutex
	suggestions = make(map[string][]string)
)

func load() map[string]*record {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember records a search, bumping its rank by weight when seen before.
func Remember(q string, weight int) error {
	q = normalize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached := load()
	if r, ok := cached[q]; ok {
		r.Rank += weight
		r.LastUsed = time.Now()
	} else {
		cached[q] = &record{Rank: weight, Query: q, LastUsed: time.Now()}
	}

	suggestions = make(map[string][]string)
	return cacher.Set(cached)
}

// Suggest returns the best suggestion for a partial query.
func Suggest(q string) mo.Option[string] {
	many := SuggestMany(q)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns remembered queries fuzzily matching q, most used first.
// Empty when search.show_query_suggestions is off.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}

	q = normalize(q)

	mu.Lock()
	defer mu.Unlock()

	if prev, ok := suggestions[q]; ok {
		return prev
	}

	matches := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(matches, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return b.LastUsed.Compare(a.LastUsed)
	})

	result := lo.Map(matches, func(r *record, _ int) string { return r.Query })
	suggestions[q] = result
	return result
}

// Clear forgets every query.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	suggestions = make(map[string][]string)
	return cacher.Set(make(map[string]*record))
}

func normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
