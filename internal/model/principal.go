package model

// Principal identifies the caller owning the links touched by a request.
// There is no login flow yet: a middleware attaches a static principal to
// every request. When real authentication lands, only the middleware has
// to change; handlers and store queries already scope by UserID.
type Principal struct {
	UserID string
}
