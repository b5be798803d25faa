package playback

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	fourKHeight = 2160
	fourKWidth  = 3840
)

func usable(t Track) bool {
	return t.Height > 0 || t.Width > 0 || t.Bitrate > 0
}

// groupTracks keeps one track per distinct height (unknown height is its own group).
// Within a group the highest bitrate wins, the earliest track on ties.
// The result is sorted by ascending height.
func groupTracks(tracks []Track) []Track {
	var (
		order  []int
		groups = make(map[int]Track)
	)

	for _, t := range tracks {
		if !usable(t) {
			continue
		}

		current, ok := groups[t.Height]
		if !ok {
			order = append(order, t.Height)
			groups[t.Height] = t
			continue
		}

		if t.Bitrate > current.Bitrate {
			groups[t.Height] = t
		}
	}

	grouped := make([]Track, 0, len(order))
	for _, h := range order {
		grouped = append(grouped, groups[h])
	}

	slices.SortStableFunc(grouped, func(a, b Track) int {
		return a.Height - b.Height
	})

	return grouped
}

func isFourK(t Track) bool {
	return t.Height >= fourKHeight || t.Width >= fourKWidth
}

func kbps(bitrate int) int {
	return int(math.Round(float64(bitrate) / 1000))
}

func qualityID(t Track) string {
	if t.Height > 0 {
		return fmt.Sprintf("height-%d", t.Height)
	}

	return fmt.Sprintf("track-%d", t.Index)
}

func qualityLabel(t Track) string {
	switch {
	case t.Height > 0:
		label := fmt.Sprintf("%dp", t.Height)
		if isFourK(t) {
			label += " (4K)"
		}
		return label
	case t.Bitrate > 0:
		return fmt.Sprintf("%d kbps", kbps(t.Bitrate))
	default:
		return fmt.Sprintf("Track %d", t.Index+1)
	}
}

func qualityDetail(t Track) string {
	var parts []string

	if t.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%d kbps", kbps(t.Bitrate)))
	}

	if t.Width > 0 && t.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", t.Width, t.Height))
	}

	return strings.Join(parts, " | ")
}

func selectionFor(t Track) TrackSelection {
	if t.Height > 0 {
		return TrackSelection{Kind: SelectResolution, Value: t.Height}
	}

	return TrackSelection{Kind: SelectIndex, Value: t.Index}
}

func optionFor(t Track) QualityOption {
	return QualityOption{
		ID:              qualityID(t),
		Label:           qualityLabel(t),
		Detail:          qualityDetail(t),
		RequiresPremium: isFourK(t),
		Height:          t.Height,
	}
}
