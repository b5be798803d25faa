package playback

import (
	"errors"
)

// FailedMessage is shown once every candidate has failed.
const FailedMessage = "Playback failed. Please try again later."

var (
	ErrNoSource        = errors.New("no playback source available")
	ErrPlaybackFailed  = errors.New(FailedMessage)
	ErrPremiumRequired = errors.New("this quality requires CreaTV Premium")
)

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	// Sink receives controller events and the events of the active engine.
	Sink Sink
	// Premium is the initial viewer entitlement.
	Premium bool
	// NewEngine overrides engine construction. Defaults to NewEngine.
	NewEngine func(Mode) Engine
}

// Controller walks the candidate list, keeping exactly one engine alive at a time.
// It is not safe for concurrent use; the owning session serializes access.
type Controller struct {
	sink      Sink
	newEngine func(Mode) Engine
	premium   bool

	candidates Candidates
	index      int
	engine     Engine
	failed     bool
	qualities  QualitySet
}

// NewController returns a controller with no source.
func NewController(options ControllerOptions) *Controller {
	newEngine := options.NewEngine
	if newEngine == nil {
		newEngine = NewEngine
	}

	return &Controller{
		sink:      options.Sink,
		newEngine: newEngine,
		premium:   options.Premium,
		qualities: DefaultQualitySet(options.Premium),
	}
}

func (c *Controller) emit(event Event) {
	if c.sink != nil {
		c.sink(event)
	}
}

// SetSource replaces the candidate list. Returns false when the list is identical to the
// current one, in which case nothing changes.
func (c *Controller) SetSource(candidates Candidates) bool {
	if c.engine != nil && candidates.Key() == c.candidates.Key() {
		return false
	}

	c.candidates = candidates
	c.index = 0
	c.failed = false
	c.activate()

	return true
}

func (c *Controller) activate() {
	c.teardown()

	if c.index >= c.candidates.Len() {
		return
	}

	candidate := c.candidates.Items[c.index]
	engine := c.newEngine(candidate.Mode)
	c.engine = engine

	c.emit(CandidateActivated{Index: c.index, Candidate: candidate})
	engine.Load(LoadOptions{
		Premium: c.premium,
		Sink:    c.engineSink(engine),
	})
}

// engineSink drops events coming from anything but the current engine.
func (c *Controller) engineSink(engine Engine) Sink {
	return func(event Event) {
		if c.engine != engine {
			return
		}

		switch e := event.(type) {
		case QualitiesChanged:
			c.qualities = e.Set
		case SelectedQualityChanged:
			c.qualities.SelectedID = e.ID
		}

		c.emit(event)
	}
}

func (c *Controller) teardown() {
	if c.engine != nil {
		c.engine.Destroy()
		c.engine = nil
	}

	c.qualities = DefaultQualitySet(c.premium)
}

// HandleError advances to the next candidate. It returns false once the list is exhausted,
// after emitting PlaybackFailed a single time.
func (c *Controller) HandleError() bool {
	if c.failed || c.candidates.Empty() {
		return false
	}

	if c.index+1 < c.candidates.Len() {
		c.index++
		c.activate()
		return true
	}

	c.failed = true
	c.emit(PlaybackFailed{Message: FailedMessage})

	return false
}

// HandleTracks forwards a renderer track report to the active engine.
func (c *Controller) HandleTracks(tracks []Track) {
	if c.engine == nil {
		return
	}

	c.engine.HandleTracks(tracks)
}

// SelectQuality pins a quality. Premium-only options are refused for non-premium viewers.
func (c *Controller) SelectQuality(id string) error {
	if c.engine == nil {
		return ErrNoSource
	}

	if option, ok := c.qualities.Find(id); ok && option.RequiresPremium && !c.premium {
		return ErrPremiumRequired
	}

	c.engine.SetQuality(id)
	return nil
}

// SetAutoQuality lets the renderer adapt again.
func (c *Controller) SetAutoQuality() {
	if c.engine != nil {
		c.engine.SetAutoQuality()
	}
}

// SetPremium updates the viewer entitlement.
func (c *Controller) SetPremium(premium bool) {
	c.premium = premium
	c.qualities.PremiumViewer = premium

	if c.engine != nil {
		c.engine.SetPremiumCapping(premium)
	}
}

// Premium reports the current viewer entitlement.
func (c *Controller) Premium() bool {
	return c.premium
}

// Active returns the candidate being played.
func (c *Controller) Active() (Candidate, bool) {
	if c.engine == nil || c.index >= c.candidates.Len() {
		return Candidate{}, false
	}

	return c.candidates.Items[c.index], true
}

// Index returns the position of the active candidate.
func (c *Controller) Index() int {
	return c.index
}

// Candidates returns the current list.
func (c *Controller) Candidates() Candidates {
	return c.candidates
}

// Qualities returns the latest quality set of the active engine.
func (c *Controller) Qualities() QualitySet {
	return c.qualities
}

// Err is ErrNoSource for an empty list, ErrPlaybackFailed once exhausted, nil otherwise.
func (c *Controller) Err() error {
	switch {
	case c.failed:
		return ErrPlaybackFailed
	case c.candidates.Empty():
		return ErrNoSource
	default:
		return nil
	}
}

// Close destroys the active engine.
func (c *Controller) Close() {
	c.teardown()
}
