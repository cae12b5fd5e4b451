// Package password implementa o hash e a verificação de senhas com bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash recebe a senha em texto puro e devolve seu hash bcrypt.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash compara um hash bcrypt com a senha informada.
// Retorna nil quando a senha corresponde ao hash.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
