package models

// Session is what the external auth flow hands the engine after a login:
// a bearer credential and the account's synchronized key-derivation salt
// (empty if end-to-end encryption was never enabled). How the token is
// obtained is outside the engine's scope.
type Session struct {
	Token string `json:"token"`
	Salt  string `json:"salt"`
}
