// Package playback turns a video's manifest keys into ordered playback candidates and keeps track of
// quality selection for the candidate currently being rendered.
//
// Nothing in this package performs I/O. The renderer reports tracks and errors, and the package
// answers with typed events describing what the renderer should do next.
package playback

import "fmt"

// Mode is the streaming protocol of a candidate.
type Mode string

const (
	ModeDash Mode = "dash"
	ModeHLS  Mode = "hls"
	ModeFile Mode = "file"
)

// Candidate is one concrete (protocol, URL) pair the renderer may attempt.
type Candidate struct {
	Mode Mode   `json:"mode"`
	URL  string `json:"url"`
	// Type is a container hint for the renderer: mpd, m3u8 or mp4.
	Type string `json:"type,omitempty"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s %s", c.Mode, c.URL)
}

// Track is a renderer-reported video variant. Zero means unknown for Height, Width and Bitrate.
type Track struct {
	Index   int `json:"index"`
	Height  int `json:"height,omitempty"`
	Width   int `json:"width,omitempty"`
	Bitrate int `json:"bitrate,omitempty"`
}

// SelectionKind tags a TrackSelection.
type SelectionKind int

const (
	SelectAuto SelectionKind = iota
	SelectResolution
	SelectIndex
)

// TrackSelection tells the renderer which track to pin, or to choose on its own.
type TrackSelection struct {
	Kind  SelectionKind
	Value int
}

// AutoSelection lets the renderer pick tracks itself.
func AutoSelection() TrackSelection {
	return TrackSelection{Kind: SelectAuto}
}

func (s TrackSelection) String() string {
	switch s.Kind {
	case SelectResolution:
		return fmt.Sprintf("resolution=%d", s.Value)
	case SelectIndex:
		return fmt.Sprintf("index=%d", s.Value)
	default:
		return "auto"
	}
}

// AutoQualityID is the sentinel id of the option that lets the renderer adapt.
const AutoQualityID = "auto"

// QualityOption is a user-facing choice derived from one resolution group.
type QualityOption struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Detail          string `json:"detail,omitempty"`
	RequiresPremium bool   `json:"requires_premium"`
	Height          int    `json:"height,omitempty"`
}

// AutoOption is always the first entry of every QualitySet.
var AutoOption = QualityOption{ID: AutoQualityID, Label: "Auto"}

// QualitySet is the option list together with the currently selected id.
type QualitySet struct {
	Options       []QualityOption `json:"options"`
	SelectedID    string          `json:"selected_id"`
	PremiumViewer bool            `json:"premium_viewer"`
}

// DefaultQualitySet holds only the auto option.
func DefaultQualitySet(premium bool) QualitySet {
	return QualitySet{
		Options:       []QualityOption{AutoOption},
		SelectedID:    AutoQualityID,
		PremiumViewer: premium,
	}
}

// Find looks an option up by id.
func (s QualitySet) Find(id string) (QualityOption, bool) {
	for _, opt := range s.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return QualityOption{}, false
}

// Selected returns the option matching SelectedID, falling back to AutoOption.
func (s QualitySet) Selected() QualityOption {
	if opt, ok := s.Find(s.SelectedID); ok {
		return opt
	}
	return AutoOption
}
