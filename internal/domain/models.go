package domain

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// Capability names one of the MPRIS Can* properties. Commands check the
// matching capability before acting; a player without it is skipped rather
// than failed.
type Capability string

const (
	// CanPlay indicates the player has a current track and can start playback
	CanPlay Capability = "CanPlay"
	// CanPause indicates playback can be paused
	CanPause Capability = "CanPause"
	// CanGoNext indicates the player can skip to the next track
	CanGoNext Capability = "CanGoNext"
	// CanGoPrevious indicates the player can skip to the previous track
	CanGoPrevious Capability = "CanGoPrevious"
	// CanSeek indicates the playback position can be changed
	CanSeek Capability = "CanSeek"
	// CanControl indicates the player accepts control commands at all
	CanControl Capability = "CanControl"
)
