package port

import (
	"context"

	"market_scout/internal/domain/entity"
)

// SignatureProvider supplies the chain signature table used for classification.
type SignatureProvider interface {
	SignatureTable() entity.SignatureTable
}

// AddressClassifier resolves a wallet address to a blockchain name.
type AddressClassifier interface {
	Classify(ctx context.Context, address string) (entity.Classification, error)
	// ClassifyWithOverride skips signature matching when chain is non-empty.
	ClassifyWithOverride(ctx context.Context, address, chain string) (entity.Classification, error)
}

// AmbiguityResolver picks one chain out of several matching candidates.
// The returned name must be one of candidates.
type AmbiguityResolver interface {
	ResolveAmbiguity(ctx context.Context, address string, candidates []string) (string, error)
}

// UnknownResolver supplies a chain for an address that matched no signature.
type UnknownResolver interface {
	ResolveUnknown(ctx context.Context, address string) (string, error)
}
