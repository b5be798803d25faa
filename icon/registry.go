package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Premium
	Sleep
	Share
	Copy
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "+", squares: "■"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "x", squares: "□"},
	Progress: {emoji: "⏳", nerd: "\uf252", plain: "~", squares: "▣"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", squares: "▮"},
	Premium:  {emoji: "💎", nerd: "\uf219", plain: "*", squares: "◆"},
	Sleep:    {emoji: "🌙", nerd: "\uf186", plain: "z", squares: "◐"},
	Share:    {emoji: "🔗", nerd: "\uf0c1", plain: "@", squares: "◈"},
	Copy:     {emoji: "📋", nerd: "\uf0c5", plain: "=", squares: "▤"},
}
