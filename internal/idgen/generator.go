// Package idgen issues the sender batch and item identifiers of a payout run.
//
// Generators are explicit values owned by one run. They are not safe for
// concurrent use.
package idgen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
)

// Source is a 63-bit random source. *math/rand.Rand satisfies it.
type Source interface {
	Int63() int64
}

// Generator hands out identifiers that are distinct from every identifier it
// issued before.
type Generator struct {
	draw   func() (string, error)
	issued map[string]struct{}
}

// NewNumeric returns a generator of decimal strings drawn from src.
func NewNumeric(src Source) *Generator {
	return newGenerator(func() (string, error) {
		return strconv.FormatInt(src.Int63(), 10), nil
	})
}

// NewUUID returns a generator of version 4 UUIDs read from r.
// r is typically crypto/rand.Reader.
func NewUUID(r io.Reader) *Generator {
	return newGenerator(func() (string, error) {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", fmt.Errorf("draw uuid: %w", err)
		}
		return id.String(), nil
	})
}

func newGenerator(draw func() (string, error)) *Generator {
	return &Generator{
		draw:   draw,
		issued: make(map[string]struct{}),
	}
}

// Next returns a new identifier. A repeated draw is discarded and redrawn.
// It fails only when the underlying source does.
func (g *Generator) Next() (string, error) {
	for {
		id, err := g.draw()
		if err != nil {
			return "", err
		}
		if _, seen := g.issued[id]; seen {
			continue
		}
		g.issued[id] = struct{}{}
		return id, nil
	}
}

// Issued reports how many identifiers the generator has handed out.
func (g *Generator) Issued() int {
	return len(g.issued)
}
