package models

import "time"

// OAuthToken is the vendor API credential pair cached between polls.
type OAuthToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token needs a refresh, with a small
// margin so a token never dies mid-request.
func (t OAuthToken) Expired(now time.Time) bool {
	return t.AccessToken == "" || !now.Before(t.ExpiresAt.Add(-30*time.Second))
}
