package dto

import "lunabay/infras/jwt"

type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func (r *TokenResponse) FromToken(token *jwt.Token) {
	r.AccessToken = token.AccessToken
	r.TokenType = token.TokenType
	r.ExpiresIn = token.ExpiresIn
}
