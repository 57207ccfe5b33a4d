// Package protocol implements the text protocol spoken over Soundpad's
// remote-control pipe: Verb(args...) command lines outbound, status lines
// or XML listings inbound.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command verbs understood by the remote-control interface. Mutations carry
// the Do prefix, volume is the lone Set, queries use Get/Is.
const (
	VerbPlaySound                  = "DoPlaySound"
	VerbPlaySoundFromCategory      = "DoPlaySoundFromCategory"
	VerbPlayPreviousSound          = "DoPlayPreviousSound"
	VerbPlayNextSound              = "DoPlayNextSound"
	VerbStopSound                  = "DoStopSound"
	VerbTogglePauseSound           = "DoTogglePauseSound"
	VerbJumpMs                     = "DoJumpMs"
	VerbSeekMs                     = "DoSeekMs"
	VerbStartRecording             = "DoStartRecording"
	VerbStopRecording              = "DoStopRecording"
	VerbStartRecordingOfSpeakers   = "DoStartRecordingOfSpeakers"
	VerbStartRecordingOfMicrophone = "DoStartRecordingOfMicrophone"
	VerbAddSound                   = "DoAddSound"
	VerbRemoveSelectedEntries      = "DoRemoveSelectedEntries"
	VerbUndo                       = "DoUndo"
	VerbRedo                       = "DoRedo"
	VerbSelectIndex                = "DoSelectIndex"
	VerbSelectCategory             = "DoSelectCategory"
	VerbSelectPreviousCategory     = "DoSelectPreviousCategory"
	VerbSelectNextCategory         = "DoSelectNextCategory"
	VerbSearch                     = "DoSearch"
	VerbResetSearch                = "DoResetSearch"
	VerbSelectPreviousHit          = "DoSelectPreviousHit"
	VerbSelectNextHit              = "DoSelectNextHit"
	VerbScrollBy                   = "DoScrollBy"
	VerbScrollTo                   = "DoScrollTo"
	VerbToggleMute                 = "DoToggleMute"
	VerbSetVolume                  = "SetVolume"
)

// Query verbs.
const (
	VerbGetSoundlist            = "GetSoundlist"
	VerbGetSoundFileCount       = "GetSoundFileCount"
	VerbGetPlaybackPosition     = "GetPlaybackPositionInMs"
	VerbGetPlaybackDuration     = "GetPlaybackDurationInMs"
	VerbGetRecordingPosition    = "GetRecordingPositionInMs"
	VerbGetRecordingPeak        = "GetRecordingPeak"
	VerbGetVolume               = "GetVolume"
	VerbIsMuted                 = "IsMuted"
	VerbGetPlayStatus           = "GetPlayStatus"
	VerbGetVersion              = "GetVersion"
	VerbGetRemoteControlVersion = "GetRemoteControlVersion"
	VerbIsTrialVersion          = "IsTrialVersion"
	VerbIsAlive                 = "IsAlive"
	VerbGetCategories           = "GetCategories"
	VerbGetCategory             = "GetCategory"
)

// FormatCommand renders a command line for transmission.
//
// Format:
//
//	Verb(arg1, arg2, ...)
//
// Examples:
//
//	DoStopSound()
//	DoPlaySound(7, true, false)
//	DoSearch("air horn")
//
// Integers are rendered decimal, booleans as the literal words true/false,
// strings wrapped in double quotes. Embedded quotes are not escaped; the
// remote interface defines no escape syntax.
func FormatCommand(verb string, args ...any) string {
	var b strings.Builder
	b.WriteString(verb)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatArg(arg))
	}
	b.WriteByte(')')
	return b.String()
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return `"` + v + `"`
	default:
		return fmt.Sprint(v)
	}
}
