package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// alfabeto sem caracteres ambíguos (0/O, 1/I/l)
const (
	idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	idLength   = 6
)

// GenerateID gera o id curto de contatos e entradas da lista
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
