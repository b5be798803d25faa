package constant

const (
	// ShareSurface identifies this client to the sharing API.
	ShareSurface = "terminal_video_player"

	// PremiumUpsellMessage is shown when a non-premium viewer picks a premium-only quality.
	PremiumUpsellMessage = "To view this video in 4K, check out CreaTV Premium. Its only $11.99 a month!"
)
