package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/metrics"
)

type addressClassifierImpl struct {
	table     entity.SignatureTable
	ambiguity port.AmbiguityResolver
	unknown   port.UnknownResolver
	logger    port.Logger
}

// NewAddressClassifier creates a classifier over table. Addresses matching
// several signatures go to ambiguity, addresses matching none go to unknown.
func NewAddressClassifier(
	table entity.SignatureTable,
	ambiguity port.AmbiguityResolver,
	unknown port.UnknownResolver,
	l port.Logger,
) port.AddressClassifier {
	return &addressClassifierImpl{
		table:     table,
		ambiguity: ambiguity,
		unknown:   unknown,
		logger:    l,
	}
}

func (c *addressClassifierImpl) Classify(ctx context.Context, address string) (entity.Classification, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return entity.Classification{}, fmt.Errorf("%w: address is empty", entity.ErrInvalidArgument)
	}

	candidates := c.table.Match(address)
	switch len(candidates) {
	case 0:
		return c.resolveUnknown(ctx, address)
	case 1:
		return c.done(entity.Classification{
			Address:    address,
			Chain:      candidates[0],
			Source:     entity.SourceSignature,
			Candidates: candidates,
		}), nil
	default:
		return c.resolveAmbiguous(ctx, address, candidates)
	}
}

func (c *addressClassifierImpl) ClassifyWithOverride(ctx context.Context, address, chain string) (entity.Classification, error) {
	chain = strings.TrimSpace(chain)
	if chain == "" {
		return c.Classify(ctx, address)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return entity.Classification{}, fmt.Errorf("%w: address is empty", entity.ErrInvalidArgument)
	}
	return c.done(entity.Classification{
		Address: address,
		Chain:   chain,
		Source:  entity.SourceOverride,
	}), nil
}

func (c *addressClassifierImpl) resolveUnknown(ctx context.Context, address string) (entity.Classification, error) {
	c.logger.Debug("Address matched no chain signature", "address", address)

	chain, err := c.unknown.ResolveUnknown(ctx, address)
	if err != nil {
		metrics.Classifications.WithLabelValues("failed").Inc()
		return entity.Classification{}, fmt.Errorf("resolve unknown address %s: %w", address, err)
	}
	return c.done(entity.Classification{
		Address: address,
		Chain:   chain,
		Source:  entity.SourceManual,
	}), nil
}

func (c *addressClassifierImpl) resolveAmbiguous(ctx context.Context, address string, candidates []string) (entity.Classification, error) {
	c.logger.Debug("Address matched several chain signatures", "address", address, "candidates", candidates)

	chain, err := c.ambiguity.ResolveAmbiguity(ctx, address, slices.Clone(candidates))
	if err != nil {
		metrics.Classifications.WithLabelValues("failed").Inc()
		return entity.Classification{}, fmt.Errorf("resolve ambiguous address %s: %w", address, err)
	}
	if !lo.Contains(candidates, chain) {
		metrics.Classifications.WithLabelValues("failed").Inc()
		return entity.Classification{}, fmt.Errorf("%w: %q is not one of %s",
			entity.ErrResolverContract, chain, strings.Join(candidates, ", "))
	}
	return c.done(entity.Classification{
		Address:    address,
		Chain:      chain,
		Source:     entity.SourceDisambiguation,
		Candidates: candidates,
	}), nil
}

func (c *addressClassifierImpl) done(cl entity.Classification) entity.Classification {
	metrics.Classifications.WithLabelValues(string(cl.Source)).Inc()
	c.logger.Info("Address classified", "address", cl.Address, "chain", cl.Chain, "source", cl.Source)
	return cl
}
