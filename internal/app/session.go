package app

import "net/http"

type sessionKey string

// Session keys populated by the authentication collaborator; this core only
// reads them.
const (
	SessionKeyUserId    = sessionKey("userID")
	SessionKeyUserEmail = sessionKey("userEmail")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) int64 {
	userId, ok := r.Context().Value(SessionKeyUserId).(int64)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}
