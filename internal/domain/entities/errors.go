package entities

import "errors"

// Domain errors
var (
	// Capability errors
	ErrCapabilityUnavailable = errors.New("speech recognition capability unavailable")

	// Action item errors
	ErrNoActionItems   = errors.New("no action items could be generated from the transcript")
	ErrEmptyTranscript = errors.New("transcript is empty")

	// Media errors
	ErrUnsupportedMedia = errors.New("please upload an audio or video file")
	ErrMediaTooLarge    = errors.New("file size must be less than 1GB")
)
