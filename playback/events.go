package playback

// Event is emitted by engines and the controller. Consumers switch on the concrete type.
type Event interface {
	event()
}

// Sink receives events. A sink registered with an engine is dropped when that engine is destroyed.
type Sink func(Event)

// QualitiesChanged carries the full option list and the selected id.
type QualitiesChanged struct {
	Set QualitySet
}

// SelectedQualityChanged reports a new user-facing selected id.
type SelectedQualityChanged struct {
	ID string
}

// TrackSelected must be forwarded verbatim to the renderer's track-pinning input.
type TrackSelected struct {
	Selection TrackSelection
}

// CandidateActivated asks the renderer to load a candidate.
type CandidateActivated struct {
	Index     int
	Candidate Candidate
}

// PlaybackFailed reports that every candidate failed. No automatic recovery follows.
type PlaybackFailed struct {
	Message string
}

func (QualitiesChanged) event()       {}
func (SelectedQualityChanged) event() {}
func (TrackSelected) event()          {}
func (CandidateActivated) event()     {}
func (PlaybackFailed) event()         {}
