package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Claims é o conteúdo do token usado na API administrativa do job
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleViewer
}
