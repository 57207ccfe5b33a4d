package soundpad

// PlayStatus is the playback state reported by GetPlayStatus.
type PlayStatus string

const (
	StatusStopped PlayStatus = "STOPPED"
	StatusPlaying PlayStatus = "PLAYING"
	StatusPaused  PlayStatus = "PAUSED"
	StatusSeeking PlayStatus = "SEEKING"
)

// parsePlayStatus maps a reply to its status. The second return reports
// whether the text matched a known literal; callers fall back to
// StatusStopped when it did not.
func parsePlayStatus(text string) (PlayStatus, bool) {
	switch PlayStatus(text) {
	case StatusStopped, StatusPlaying, StatusPaused, StatusSeeking:
		return PlayStatus(text), true
	default:
		return StatusStopped, false
	}
}
