package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Session errors
var (
	ErrRecordingActive      = errors.New("please stop recording before clearing the session")
	ErrControllerClosed     = errors.New("session controller closed")
	ErrNoSession            = errors.New("no session has been started")
	ErrUploadWhileRecording = errors.New("stop recording before uploading a file")
	ErrUploadInProgress     = errors.New("a file is already being processed")
)

// Action item errors
var (
	ErrActionItemNotFound = errors.New("action item not found")
)

// ClearWhileRecordingMessage is what the user sees when clear is refused.
const ClearWhileRecordingMessage = "Please stop recording before clearing the session."
