package constants

// Echo context keys set by the auth middleware
const (
	CtxUserID    = "user_id"
	CtxSessionID = "session_id"
)
