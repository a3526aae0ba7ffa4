package session

// AskRequest is the body of POST /v1/qa
type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// UploadQuery holds the query parameters of POST /v1/uploads
type UploadQuery struct {
	Mode string `query:"mode" validate:"omitempty,oneof=stream batch"`
}

// MeetingRequest targets a backend meeting. An empty SessionID means the
// current session.
type MeetingRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
}

// PostSummaryRequest is the body of POST /v1/meeting/post-summary
type PostSummaryRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Platform  string `json:"platform" validate:"required,oneof=teams slack"`
}
