package services

import (
	"fmt"
	"math/rand/v2"

	"github.com/bwmarrin/snowflake"

	"github.com/fsdevblog/tinyurl/internal/models"
)

// DefaultCodeLength длина кода по умолчанию.
const DefaultCodeLength = 6

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator источник кандидатов в короткие коды. Уникальность не требуется,
// ее проверяет URLService.
type Generator interface {
	Next() string
}

// GeneratorFunc позволяет использовать обычную функцию в качестве Generator.
type GeneratorFunc func() string

func (f GeneratorFunc) Next() string {
	return f()
}

// RandomGenerator генерирует случайные алфавитно-цифровые коды фиксированной длины.
type RandomGenerator struct {
	length int
}

// NewRandomGenerator создает генератор. Длина вне диапазона 1..models.MaxCodeLength
// заменяется на DefaultCodeLength.
func NewRandomGenerator(length int) *RandomGenerator {
	if length < 1 || length > models.MaxCodeLength {
		length = DefaultCodeLength
	}
	return &RandomGenerator{length: length}
}

func (g *RandomGenerator) Next() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))] //nolint:gosec
	}
	return string(b)
}

// SnowflakeGenerator выдает коды из snowflake ID в base58. Коды не повторяются в пределах
// одной ноды и занимают не больше 11 символов.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator создает генератор для ноды nodeID (0..1023).
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) Next() string {
	return g.node.Generate().Base58()
}
