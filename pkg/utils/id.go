package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 10
)

// GenerateID gera o ID interno das contas sincronizadas
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
