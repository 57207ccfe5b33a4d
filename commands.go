package soundpad

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/standardbeagle/soundpad-go/internal/protocol"
)

// ErrCategoryRequired is returned by AddSound when InsertAtPosition is set
// without a CategoryIndex; the wire protocol has no form carrying a position
// alone.
var ErrCategoryRequired = errors.New("insert position requires a category index")

// sendExpectOK sends a command whose reply is a status line. R-200 means
// Soundpad accepted it; any other reply (unknown index, nothing selected,
// trial limitation) is logged and reported as false. Errors are transport
// failures only.
func (c *Client) sendExpectOK(ctx context.Context, command string) (bool, error) {
	resp, err := c.SendQuery(ctx, command)
	if err != nil {
		return false, err
	}
	if protocol.IsSuccess(resp) {
		return true, nil
	}
	c.log.Warn("command failed",
		zap.String("command", command),
		zap.String("response", resp))
	return false, nil
}

// PlaySound plays the sound at index on the devices configured in Soundpad.
func (c *Client) PlaySound(ctx context.Context, index int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlaySound, index))
}

// PlaySoundOn plays the sound at index, selecting the render targets
// explicitly: speakers, microphone, or both.
func (c *Client) PlaySoundOn(ctx context.Context, index int, speakers, microphone bool) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlaySound, index, speakers, microphone))
}

// PlaySoundFromCategory plays the sound at soundIndex within the category at
// categoryIndex. Category index -1 addresses the currently selected category.
func (c *Client) PlaySoundFromCategory(ctx context.Context, categoryIndex, soundIndex int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlaySoundFromCategory, categoryIndex, soundIndex))
}

// PlaySoundFromCategoryOn is PlaySoundFromCategory with explicit render
// targets.
func (c *Client) PlaySoundFromCategoryOn(ctx context.Context, categoryIndex, soundIndex int, speakers, microphone bool) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlaySoundFromCategory, categoryIndex, soundIndex, speakers, microphone))
}

// PlayPreviousSound plays the previous sound in the current list.
func (c *Client) PlayPreviousSound(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlayPreviousSound))
}

// PlayNextSound plays the next sound in the current list.
func (c *Client) PlayNextSound(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbPlayNextSound))
}

// StopSound stops playback.
func (c *Client) StopSound(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbStopSound))
}

// TogglePause pauses playback, or resumes it when already paused.
func (c *Client) TogglePause(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbTogglePauseSound))
}

// Jump moves the playback position by deltaMs milliseconds, negative values
// seeking backwards.
func (c *Client) Jump(ctx context.Context, deltaMs int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbJumpMs, deltaMs))
}

// Seek moves the playback position to positionMs milliseconds.
func (c *Client) Seek(ctx context.Context, positionMs int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSeekMs, positionMs))
}

// StartRecording starts recording on the sources configured in Soundpad.
func (c *Client) StartRecording(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbStartRecording))
}

// StopRecording stops a running recording.
func (c *Client) StopRecording(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbStopRecording))
}

// StartRecordingOfSpeakers records the speaker output.
func (c *Client) StartRecordingOfSpeakers(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbStartRecordingOfSpeakers))
}

// StartRecordingOfMicrophone records the microphone input.
func (c *Client) StartRecordingOfMicrophone(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbStartRecordingOfMicrophone))
}

// AddSoundOptions selects where AddSound files a new entry. The zero value
// appends to the currently selected category. InsertAtPosition is only
// meaningful inside a category and therefore requires CategoryIndex.
type AddSoundOptions struct {
	CategoryIndex    int
	InsertAtPosition int
}

// AddSound adds the audio file at path to the sound list.
func (c *Client) AddSound(ctx context.Context, path string, opts AddSoundOptions) (bool, error) {
	switch {
	case opts.CategoryIndex == 0 && opts.InsertAtPosition == 0:
		return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbAddSound, path))
	case opts.CategoryIndex == 0:
		return false, ErrCategoryRequired
	case opts.InsertAtPosition == 0:
		return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbAddSound, path, opts.CategoryIndex))
	default:
		return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbAddSound, path, opts.CategoryIndex, opts.InsertAtPosition))
	}
}

// RemoveSelectedEntries removes the entries selected in the Soundpad window,
// deleting the files from disk as well when removeFromDisk is set.
func (c *Client) RemoveSelectedEntries(ctx context.Context, removeFromDisk bool) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbRemoveSelectedEntries, removeFromDisk))
}

// Undo undoes the last list edit, like Ctrl+Z in the application.
func (c *Client) Undo(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbUndo))
}

// Redo redoes an undone list edit.
func (c *Client) Redo(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbRedo))
}

// SelectIndex moves the selection to the sound at index.
func (c *Client) SelectIndex(ctx context.Context, index int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectIndex, index))
}

// SelectCategory moves the selection to the category at index.
func (c *Client) SelectCategory(ctx context.Context, index int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectCategory, index))
}

// SelectPreviousCategory selects the category above the current one.
func (c *Client) SelectPreviousCategory(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectPreviousCategory))
}

// SelectNextCategory selects the category below the current one.
func (c *Client) SelectNextCategory(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectNextCategory))
}

// Search opens the search bar and runs query.
func (c *Client) Search(ctx context.Context, query string) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSearch, query))
}

// ResetSearch clears the search and closes the search bar.
func (c *Client) ResetSearch(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbResetSearch))
}

// SelectPreviousHit moves the selection to the previous search hit.
func (c *Client) SelectPreviousHit(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectPreviousHit))
}

// SelectNextHit moves the selection to the next search hit.
func (c *Client) SelectNextHit(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSelectNextHit))
}

// ScrollBy scrolls the sound list by rows, negative values scrolling up.
func (c *Client) ScrollBy(ctx context.Context, rows int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbScrollBy, rows))
}

// ScrollTo scrolls the sound list so row is at the top.
func (c *Client) ScrollTo(ctx context.Context, row int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbScrollTo, row))
}

// ToggleMute mutes Soundpad's output, or unmutes it when already muted.
func (c *Client) ToggleMute(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbToggleMute))
}

// SetVolume sets the playback volume, 0 to 100.
func (c *Client) SetVolume(ctx context.Context, volume int) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbSetVolume, volume))
}

// IsAlive reports whether the remote-control interface answers at all.
func (c *Client) IsAlive(ctx context.Context) (bool, error) {
	return c.sendExpectOK(ctx, protocol.FormatCommand(protocol.VerbIsAlive))
}
