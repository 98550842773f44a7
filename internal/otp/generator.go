// otp генерирует короткие числовые коды подтверждения.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidLength — запрошена некорректная длина кода.
var ErrInvalidLength = errors.New("otp length must be greater than zero")

// Generator выпускает десятичные коды фиксированной длины.
// Каждая цифра выбирается независимо и равномерно через crypto/rand;
// ведущие нули допустимы.
type Generator struct{}

// New создаёт новый генератор.
func New() *Generator {
	return &Generator{}
}

var ten = big.NewInt(10)

// GenerateCode возвращает строку ровно из length десятичных цифр.
func (g *Generator) GenerateCode(length int) (string, error) {
	const op = "otp.GenerateCode"

	if length <= 0 {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidLength)
	}

	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String(), nil
}
