package player

import (
	"github.com/creatv/creatv/playback"
)

// videoTrack pairs a reported track with mpv's track id.
type videoTrack struct {
	track playback.Track
	id    int
}

func number(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

// parseTrackList extracts video tracks from mpv's track-list property.
// Index is the position among video tracks, in mpv's order.
func parseTrackList(data any) []videoTrack {
	entries, ok := data.([]any)
	if !ok {
		return nil
	}

	var tracks []videoTrack
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if kind, _ := entry["type"].(string); kind != "video" {
			continue
		}

		if albumArt, _ := entry["albumart"].(bool); albumArt {
			continue
		}

		bitrate := number(entry["hls-bitrate"])
		if bitrate == 0 {
			bitrate = number(entry["demux-bitrate"])
		}

		tracks = append(tracks, videoTrack{
			id: number(entry["id"]),
			track: playback.Track{
				Index:   len(tracks),
				Height:  number(entry["demux-h"]),
				Width:   number(entry["demux-w"]),
				Bitrate: bitrate,
			},
		})
	}

	return tracks
}

// resolveSelection maps a selection to an mpv vid value.
func resolveSelection(tracks []videoTrack, selection playback.TrackSelection) (any, error) {
	switch selection.Kind {
	case playback.SelectAuto:
		return "auto", nil
	case playback.SelectIndex:
		if selection.Value < 0 || selection.Value >= len(tracks) {
			return nil, ErrTrackNotFound
		}
		return tracks[selection.Value].id, nil
	case playback.SelectResolution:
		best := -1
		for i, t := range tracks {
			if t.track.Height != selection.Value {
				continue
			}
			if best == -1 || t.track.Bitrate > tracks[best].track.Bitrate {
				best = i
			}
		}
		if best == -1 {
			return nil, ErrTrackNotFound
		}
		return tracks[best].id, nil
	default:
		return nil, ErrTrackNotFound
	}
}

func publicTracks(tracks []videoTrack) []playback.Track {
	out := make([]playback.Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.track
	}
	return out
}
