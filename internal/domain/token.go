package domain

import "encoding/json"

// Credentials is the client-credentials grant material, loaded once at
// startup and never mutated.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Scope        string `json:"scope"`
}

// Token is the result of one token-endpoint call. Raw preserves the
// provider's full response body so /auth can relay it untouched.
// A token lives for exactly one inbound request.
type Token struct {
	AccessToken string
	Raw         json.RawMessage
}
