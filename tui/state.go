package tui

type state int

const (
	loadingState state = iota
	playingState
	qualityState
	sleepState
	shareState
	premiumState
	errorState
)
