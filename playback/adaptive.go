package playback

type adaptiveEngine struct {
	mode    Mode
	state   State
	sink    Sink
	premium bool

	selections map[string]TrackSelection
	selectedID string
	groups     []Track
}

func newAdaptiveEngine(mode Mode) *adaptiveEngine {
	e := &adaptiveEngine{mode: mode}
	e.reset()
	return e
}

func (e *adaptiveEngine) Mode() Mode {
	return e.mode
}

func (e *adaptiveEngine) State() State {
	return e.state
}

func (e *adaptiveEngine) reset() {
	e.selections = map[string]TrackSelection{AutoQualityID: AutoSelection()}
	e.selectedID = AutoQualityID
	e.groups = nil
}

func (e *adaptiveEngine) emit(event Event) {
	if e.sink != nil {
		e.sink(event)
	}
}

func (e *adaptiveEngine) Load(options LoadOptions) {
	e.Destroy()

	e.sink = options.Sink
	e.premium = options.Premium
	e.state = StateLoaded

	e.emit(QualitiesChanged{Set: DefaultQualitySet(e.premium)})
	e.emit(TrackSelected{Selection: AutoSelection()})
}

func (e *adaptiveEngine) Destroy() {
	e.sink = nil
	e.reset()
	e.state = StateUnloaded
}

func (e *adaptiveEngine) HandleTracks(tracks []Track) {
	if e.state == StateUnloaded {
		return
	}

	groups := groupTracks(tracks)
	if len(groups) == 0 {
		wasPinned := e.selectedID != AutoQualityID
		e.reset()
		e.state = StateLoaded

		if wasPinned {
			e.emit(TrackSelected{Selection: AutoSelection()})
		}
		e.emit(QualitiesChanged{Set: DefaultQualitySet(e.premium)})
		return
	}

	e.groups = groups
	e.selections = map[string]TrackSelection{AutoQualityID: AutoSelection()}
	for _, t := range groups {
		e.selections[qualityID(t)] = selectionFor(t)
	}
	e.state = StateTracksKnown

	if _, ok := e.selections[e.selectedID]; !ok {
		e.selectedID = AutoQualityID
		e.emit(TrackSelected{Selection: AutoSelection()})
	}

	e.emitQualities()
}

func (e *adaptiveEngine) emitQualities() {
	options := make([]QualityOption, 0, len(e.groups)+1)
	options = append(options, AutoOption)
	for _, t := range e.groups {
		options = append(options, optionFor(t))
	}

	e.emit(QualitiesChanged{Set: QualitySet{
		Options:       options,
		SelectedID:    e.selectedID,
		PremiumViewer: e.premium,
	}})
}

func (e *adaptiveEngine) SetQuality(id string) {
	if e.state == StateUnloaded {
		return
	}

	selection, ok := e.selections[id]
	if id == AutoQualityID || !ok {
		e.SetAutoQuality()
		return
	}

	e.selectedID = id
	e.emit(SelectedQualityChanged{ID: id})
	e.emit(TrackSelected{Selection: selection})
}

func (e *adaptiveEngine) SetAutoQuality() {
	if e.state == StateUnloaded {
		return
	}

	e.selectedID = AutoQualityID
	e.emit(SelectedQualityChanged{ID: AutoQualityID})
	e.emit(TrackSelected{Selection: AutoSelection()})
}

func (e *adaptiveEngine) SetPremiumCapping(premium bool) {
	e.premium = premium
	if len(e.groups) == 0 {
		return
	}

	e.emitQualities()
}
