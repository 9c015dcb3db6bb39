package model

// TokenManager issues and validates access tokens for authenticated users.
type TokenManager interface {
	GenerateAccessToken(username string) (string, error)
	ParseAccessToken(token string) (string, error)
}
