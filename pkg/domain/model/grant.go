package model

// OAuthGrant is the result of a successful authorization-code exchange. It
// is handed to the caller and never persisted server-side.
type OAuthGrant struct {
	AccessToken   string `json:"access_token" masq:"secret"`
	BotUserID     string `json:"bot_user_id"`
	ConsentUserID string `json:"consent_user_id"`
	Scope         string `json:"scope"`
	AppID         string `json:"app_id"`
}
