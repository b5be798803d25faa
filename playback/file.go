package playback

// fileEngine plays a single progressive file. There is nothing to choose from.
type fileEngine struct {
	state   State
	sink    Sink
	premium bool
}

func newFileEngine() *fileEngine {
	return &fileEngine{}
}

func (e *fileEngine) Mode() Mode {
	return ModeFile
}

func (e *fileEngine) State() State {
	return e.state
}

func (e *fileEngine) emit(event Event) {
	if e.sink != nil {
		e.sink(event)
	}
}

func (e *fileEngine) Load(options LoadOptions) {
	e.sink = options.Sink
	e.premium = options.Premium
	e.state = StateLoaded

	e.emit(QualitiesChanged{Set: DefaultQualitySet(e.premium)})
	e.emit(TrackSelected{Selection: AutoSelection()})
}

func (e *fileEngine) Destroy() {
	e.sink = nil
	e.state = StateUnloaded
}

func (e *fileEngine) HandleTracks([]Track) {
	if e.state == StateUnloaded {
		return
	}

	e.emit(QualitiesChanged{Set: DefaultQualitySet(e.premium)})
}

func (e *fileEngine) SetQuality(string) {
	e.SetAutoQuality()
}

func (e *fileEngine) SetAutoQuality() {
	if e.state == StateUnloaded {
		return
	}

	e.emit(SelectedQualityChanged{ID: AutoQualityID})
	e.emit(TrackSelected{Selection: AutoSelection()})
}

func (e *fileEngine) SetPremiumCapping(premium bool) {
	e.premium = premium
}
