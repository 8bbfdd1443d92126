// Package llm holds the text-generation collaborators used for enrichment facets.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/rs/zerolog/log"
)

const defaultMaxTokens = 512

// Request is a single-turn prompt
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return r.MaxTokens
}

// Completion is the trimmed model reply
type Completion struct {
	Text     string
	Model    string
	Provider string
}

// Completer generates text. A completer without credentials returns
// errors.ErrNotConfigured without touching the network.
type Completer interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, req Request) (*Completion, error)
}

var (
	_ Completer = (*OpenAI)(nil)
	_ Completer = (*Anthropic)(nil)
	_ Completer = (*Chain)(nil)
)

// Chain tries each completer in order and returns the first usable reply
type Chain struct {
	completers []Completer
}

func NewChain(completers ...Completer) *Chain {
	return &Chain{completers: completers}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.completers))
	for _, cp := range c.completers {
		names = append(names, cp.Name())
	}
	return strings.Join(names, ",")
}

// Configured reports whether any completer in the chain has credentials
func (c *Chain) Configured() bool {
	for _, cp := range c.completers {
		if cp.Configured() {
			return true
		}
	}
	return false
}

func (c *Chain) Complete(ctx context.Context, req Request) (*Completion, error) {
	if !c.Configured() {
		return nil, errors.ErrNotConfigured
	}

	var errs []error
	for _, cp := range c.completers {
		if !cp.Configured() {
			continue
		}
		out, err := cp.Complete(ctx, req)
		if err == nil {
			return out, nil
		}
		log.Warn().Err(err).Str("provider", cp.Name()).Msg("completion failed, trying next provider")
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %w", errors.ErrCollaboratorFailure, errors.Join(errs...))
}

func unusable(provider string) error {
	return fmt.Errorf("%w: %s returned no text", errors.ErrCollaboratorFailure, provider)
}
