package soundpad

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/standardbeagle/soundpad-go/internal/protocol"
)

// DefaultStatusPollInterval is the delay between play-status polls in
// WaitForStatus.
const DefaultStatusPollInterval = 100 * time.Millisecond

// queryInt sends a command whose reply is a bare decimal number. A failure
// status line is not special-cased: it fails the parse and surfaces as that
// error.
func (c *Client) queryInt(ctx context.Context, command string) (int, error) {
	resp, err := c.SendQuery(ctx, command)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(resp)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", command, err)
	}
	return n, nil
}

// queryMarkup sends a listing command. Markup replies pass through; a status
// line in their place becomes a *RequestError carrying the raw text.
func (c *Client) queryMarkup(ctx context.Context, command string) (string, error) {
	resp, err := c.SendQuery(ctx, command)
	if err != nil {
		return "", err
	}
	if protocol.IsFailure(resp) {
		return "", &RequestError{Response: resp}
	}
	return resp, nil
}

// SoundFileCount returns the number of entries in the sound list.
func (c *Client) SoundFileCount(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetSoundFileCount))
}

// PlaybackPositionMs returns the playback position in milliseconds.
func (c *Client) PlaybackPositionMs(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetPlaybackPosition))
}

// PlaybackDurationMs returns the duration of the current sound in
// milliseconds.
func (c *Client) PlaybackDurationMs(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetPlaybackDuration))
}

// RecordingPositionMs returns the elapsed recording time in milliseconds.
func (c *Client) RecordingPositionMs(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetRecordingPosition))
}

// RecordingPeak returns the current recording peak level.
func (c *Client) RecordingPeak(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetRecordingPeak))
}

// Volume returns the playback volume, 0 to 100.
func (c *Client) Volume(ctx context.Context) (int, error) {
	return c.queryInt(ctx, protocol.FormatCommand(protocol.VerbGetVolume))
}

// Muted reports whether Soundpad's output is muted.
func (c *Client) Muted(ctx context.Context) (bool, error) {
	n, err := c.queryInt(ctx, protocol.FormatCommand(protocol.VerbIsMuted))
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// TrialVersion reports whether the running Soundpad is the trial version.
func (c *Client) TrialVersion(ctx context.Context) (bool, error) {
	n, err := c.queryInt(ctx, protocol.FormatCommand(protocol.VerbIsTrialVersion))
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// Version returns Soundpad's application version.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.SendQuery(ctx, protocol.FormatCommand(protocol.VerbGetVersion))
}

// RemoteControlVersion returns the version of the remote-control interface.
func (c *Client) RemoteControlVersion(ctx context.Context) (string, error) {
	return c.SendQuery(ctx, protocol.FormatCommand(protocol.VerbGetRemoteControlVersion))
}

// PlayStatus returns the current playback state. A reply outside the four
// known literals is logged and reported as StatusStopped.
func (c *Client) PlayStatus(ctx context.Context) (PlayStatus, error) {
	resp, err := c.SendQuery(ctx, protocol.FormatCommand(protocol.VerbGetPlayStatus))
	if err != nil {
		return StatusStopped, err
	}
	status, ok := parsePlayStatus(resp)
	if !ok {
		c.log.Warn("unrecognized play status", zap.String("response", resp))
	}
	return status, nil
}

// WaitForStatus polls the play status on a fixed interval until it equals
// target. Interval 0 means DefaultStatusPollInterval. The wait has no
// built-in timeout; bound it through ctx.
func (c *Client) WaitForStatus(ctx context.Context, target PlayStatus, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultStatusPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := c.PlayStatus(ctx)
		if err != nil {
			return err
		}
		if status == target {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SoundList fetches all entries of the sound list.
func (c *Client) SoundList(ctx context.Context) ([]Sound, error) {
	resp, err := c.queryMarkup(ctx, protocol.FormatCommand(protocol.VerbGetSoundlist))
	if err != nil {
		return nil, err
	}
	return decodeSoundList(resp)
}

// SoundListRange fetches the entries from index from through to, both
// inclusive. A to of 0 means everything from from onwards.
func (c *Client) SoundListRange(ctx context.Context, from, to int) ([]Sound, error) {
	command := protocol.FormatCommand(protocol.VerbGetSoundlist, from)
	if to > 0 {
		command = protocol.FormatCommand(protocol.VerbGetSoundlist, from, to)
	}
	resp, err := c.queryMarkup(ctx, command)
	if err != nil {
		return nil, err
	}
	return decodeSoundList(resp)
}

// Categories fetches the category tree, optionally with the sounds of each
// category and the category icons.
func (c *Client) Categories(ctx context.Context, withSounds, withIcons bool) ([]Category, error) {
	resp, err := c.queryMarkup(ctx, protocol.FormatCommand(protocol.VerbGetCategories, withSounds, withIcons))
	if err != nil {
		return nil, err
	}
	return decodeCategories(resp)
}

// Category fetches the category at index, subcategories included.
func (c *Client) Category(ctx context.Context, index int, withSounds, withIcons bool) (Category, error) {
	resp, err := c.queryMarkup(ctx, protocol.FormatCommand(protocol.VerbGetCategory, index, withSounds, withIcons))
	if err != nil {
		return Category{}, err
	}
	return decodeCategory(resp)
}
