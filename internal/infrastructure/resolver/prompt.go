package resolver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"market_scout/internal/domain/entity"
)

const DefaultMaxAttempts = 3

// Prompt asks a human to choose a chain. It implements both
// port.AmbiguityResolver and port.UnknownResolver.
type Prompt struct {
	mu          sync.Mutex
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
}

// NewPrompt reads answers from in and writes questions to out. Invalid answers
// are re-asked up to maxAttempts times.
func NewPrompt(in io.Reader, out io.Writer, maxAttempts int) *Prompt {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Prompt{
		in:          bufio.NewReader(in),
		out:         out,
		maxAttempts: maxAttempts,
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ResolveAmbiguity lists the candidates and accepts either a number or a chain name.
func (p *Prompt) ResolveAmbiguity(ctx context.Context, address string, candidates []string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\nAddress %s matches several blockchains:\n", address)
	for i, c := range candidates {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, c)
	}

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		answer, err := p.ask(ctx, fmt.Sprintf("Choose 1-%d or type the name: ", len(candidates)))
		if err != nil {
			return "", err
		}
		if chain, ok := pick(answer, candidates); ok {
			return chain, nil
		}
		fmt.Fprintf(p.out, "%q is not one of the options.\n", answer)
	}
	return "", &entity.ResolutionError{Address: address, Candidates: candidates, Err: entity.ErrAmbiguousAddress}
}

// ResolveUnknown asks for a chain name. Blank answers are re-asked.
func (p *Prompt) ResolveUnknown(ctx context.Context, address string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\nCould not determine the blockchain for address %s.\n", address)
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		answer, err := p.ask(ctx, "Enter the blockchain name: ")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
	return "", &entity.ResolutionError{Address: address, Err: entity.ErrUnknownAddress}
}

func (p *Prompt) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// pick maps a 1-based number or a case-insensitive name to a candidate.
func pick(answer string, candidates []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		return "", false
	}
	for _, c := range candidates {
		if strings.EqualFold(c, answer) {
			return c, true
		}
	}
	return "", false
}
