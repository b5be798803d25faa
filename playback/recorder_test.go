package playback

type recorder struct {
	events []Event
}

func (r *recorder) sink(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) reset() {
	r.events = nil
}

func (r *recorder) selections() []TrackSelection {
	var out []TrackSelection
	for _, e := range r.events {
		if s, ok := e.(TrackSelected); ok {
			out = append(out, s.Selection)
		}
	}
	return out
}

func (r *recorder) lastQualities() (QualitySet, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if q, ok := r.events[i].(QualitiesChanged); ok {
			return q.Set, true
		}
	}
	return QualitySet{}, false
}

func (r *recorder) activations() []CandidateActivated {
	var out []CandidateActivated
	for _, e := range r.events {
		if a, ok := e.(CandidateActivated); ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *recorder) failures() []PlaybackFailed {
	var out []PlaybackFailed
	for _, e := range r.events {
		if f, ok := e.(PlaybackFailed); ok {
			out = append(out, f)
		}
	}
	return out
}

func optionIDs(set QualitySet) []string {
	ids := make([]string, len(set.Options))
	for i, o := range set.Options {
		ids[i] = o.ID
	}
	return ids
}
