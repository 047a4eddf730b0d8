package resolver

import (
	"context"
	"fmt"

	"market_scout/internal/domain/entity"
)

// FirstCandidate resolves ambiguity by taking the first candidate in table order.
type FirstCandidate struct{}

func (FirstCandidate) ResolveAmbiguity(_ context.Context, address string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates for %s", entity.ErrInvalidArgument, address)
	}
	return candidates[0], nil
}

// Fixed answers every unknown address with the same chain name, e.g. "Unknown".
type Fixed struct {
	Chain string
}

func (f Fixed) ResolveUnknown(_ context.Context, address string) (string, error) {
	if f.Chain == "" {
		return "", &entity.ResolutionError{Address: address, Err: entity.ErrUnknownAddress}
	}
	return f.Chain, nil
}

// FailClosed refuses to guess. Both methods return an *entity.ResolutionError.
type FailClosed struct{}

func (FailClosed) ResolveAmbiguity(_ context.Context, address string, candidates []string) (string, error) {
	return "", &entity.ResolutionError{Address: address, Candidates: candidates, Err: entity.ErrAmbiguousAddress}
}

func (FailClosed) ResolveUnknown(_ context.Context, address string) (string, error) {
	return "", &entity.ResolutionError{Address: address, Err: entity.ErrUnknownAddress}
}
