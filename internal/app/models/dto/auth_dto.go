package dto

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"1800"` // seconds
}
