package playback

// State is the engine lifecycle position.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateTracksKnown
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateTracksKnown:
		return "tracks-known"
	default:
		return "unloaded"
	}
}

// LoadOptions are passed to Engine.Load.
type LoadOptions struct {
	// Premium is the viewer's entitlement. It is advisory here, callers gate selection themselves.
	Premium bool
	// Sink receives every event until Destroy is called.
	Sink Sink
}

// Engine tracks quality options for a single candidate. Methods never fail; unexpected input
// degrades to auto selection.
type Engine interface {
	Mode() Mode
	State() State

	Load(options LoadOptions)
	Destroy()

	HandleTracks(tracks []Track)
	SetQuality(id string)
	SetAutoQuality()
	SetPremiumCapping(premium bool)
}

// NewEngine returns the engine variant for the given mode.
// Unknown modes get the file engine, which offers auto only.
func NewEngine(mode Mode) Engine {
	switch mode {
	case ModeDash, ModeHLS:
		return newAdaptiveEngine(mode)
	default:
		return newFileEngine()
	}
}
