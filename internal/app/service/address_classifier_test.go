package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/logger"
)

const (
	btcAddress  = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNas"
	tronAddress = "T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb"
	evmAddress  = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
)

func testTable(t *testing.T) entity.SignatureTable {
	t.Helper()
	table, err := entity.NewSignatureTable([]entity.ChainSignature{
		{Name: "Bitcoin", Prefixes: []string{"1", "3", "bc1"}, Lengths: []int{26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 42, 62}},
		{Name: "Ethereum", Prefixes: []string{"0x"}, Lengths: []int{42}},
		{Name: "Binance Smart Chain", Prefixes: []string{"0x"}, Lengths: []int{42}},
		{Name: "TRON", Prefixes: []string{"T"}, Lengths: []int{34}},
	})
	require.NoError(t, err)
	return table
}

// firstCandidate mirrors the batch resolver used for deterministic runs.
type firstCandidate struct{}

func (firstCandidate) ResolveAmbiguity(_ context.Context, _ string, candidates []string) (string, error) {
	return candidates[0], nil
}

// reversingResolver reorders the slice it is handed before answering.
type reversingResolver struct{}

func (reversingResolver) ResolveAmbiguity(_ context.Context, _ string, candidates []string) (string, error) {
	slices.Reverse(candidates)
	return candidates[0], nil
}

func TestClassify_SingleMatch(t *testing.T) {
	ambiguity := new(MockAmbiguityResolver)
	unknown := new(MockUnknownResolver)
	classifier := NewAddressClassifier(testTable(t), ambiguity, unknown, logger.Nop())

	tests := []struct {
		address string
		chain   string
	}{
		{address: btcAddress, chain: "Bitcoin"},
		{address: tronAddress, chain: "TRON"},
	}
	for _, tt := range tests {
		t.Run(tt.chain, func(t *testing.T) {
			got, err := classifier.Classify(context.Background(), tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.chain, got.Chain)
			assert.Equal(t, entity.SourceSignature, got.Source)
		})
	}
	ambiguity.AssertNotCalled(t, "ResolveAmbiguity", mock.Anything, mock.Anything, mock.Anything)
	unknown.AssertNotCalled(t, "ResolveUnknown", mock.Anything, mock.Anything)
}

func TestClassify_AmbiguousGoesToResolver(t *testing.T) {
	ambiguity := new(MockAmbiguityResolver)
	ambiguity.On("ResolveAmbiguity", mock.Anything, evmAddress, []string{"Ethereum", "Binance Smart Chain"}).
		Return("Binance Smart Chain", nil).Once()
	classifier := NewAddressClassifier(testTable(t), ambiguity, new(MockUnknownResolver), logger.Nop())

	got, err := classifier.Classify(context.Background(), evmAddress)

	require.NoError(t, err)
	assert.Equal(t, "Binance Smart Chain", got.Chain)
	assert.Equal(t, entity.SourceDisambiguation, got.Source)
	assert.Equal(t, []string{"Ethereum", "Binance Smart Chain"}, got.Candidates)
	ambiguity.AssertExpectations(t)
}

func TestClassify_ResolverCannotReorderCandidates(t *testing.T) {
	classifier := NewAddressClassifier(testTable(t), reversingResolver{}, new(MockUnknownResolver), logger.Nop())

	got, err := classifier.Classify(context.Background(), evmAddress)

	require.NoError(t, err)
	assert.Equal(t, "Binance Smart Chain", got.Chain)
	assert.Equal(t, []string{"Ethereum", "Binance Smart Chain"}, got.Candidates)
}

func TestClassify_ResolverOutsideCandidates(t *testing.T) {
	ambiguity := new(MockAmbiguityResolver)
	ambiguity.On("ResolveAmbiguity", mock.Anything, evmAddress, mock.Anything).Return("Solana", nil).Once()
	classifier := NewAddressClassifier(testTable(t), ambiguity, new(MockUnknownResolver), logger.Nop())

	_, err := classifier.Classify(context.Background(), evmAddress)

	require.ErrorIs(t, err, entity.ErrResolverContract)
}

func TestClassify_AmbiguityResolverError(t *testing.T) {
	refused := &entity.ResolutionError{Address: evmAddress, Candidates: []string{"Ethereum", "Binance Smart Chain"}, Err: entity.ErrAmbiguousAddress}
	ambiguity := new(MockAmbiguityResolver)
	ambiguity.On("ResolveAmbiguity", mock.Anything, evmAddress, mock.Anything).Return("", refused).Once()
	classifier := NewAddressClassifier(testTable(t), ambiguity, new(MockUnknownResolver), logger.Nop())

	_, err := classifier.Classify(context.Background(), evmAddress)

	require.ErrorIs(t, err, entity.ErrAmbiguousAddress)
	var resErr *entity.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, []string{"Ethereum", "Binance Smart Chain"}, resErr.Candidates)
}

func TestClassify_UnknownPassesThrough(t *testing.T) {
	unknown := new(MockUnknownResolver)
	unknown.On("ResolveUnknown", mock.Anything, "abcdef123456").Return("MyChain", nil).Once()
	ambiguity := new(MockAmbiguityResolver)
	classifier := NewAddressClassifier(testTable(t), ambiguity, unknown, logger.Nop())

	got, err := classifier.Classify(context.Background(), "abcdef123456")

	require.NoError(t, err)
	assert.Equal(t, "MyChain", got.Chain)
	assert.Equal(t, entity.SourceManual, got.Source)
	unknown.AssertExpectations(t)
	ambiguity.AssertNotCalled(t, "ResolveAmbiguity", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassify_UnknownResolverError(t *testing.T) {
	unknown := new(MockUnknownResolver)
	unknown.On("ResolveUnknown", mock.Anything, "abcdef123456").
		Return("", &entity.ResolutionError{Address: "abcdef123456", Err: entity.ErrUnknownAddress}).Once()
	classifier := NewAddressClassifier(testTable(t), new(MockAmbiguityResolver), unknown, logger.Nop())

	_, err := classifier.Classify(context.Background(), "abcdef123456")

	require.ErrorIs(t, err, entity.ErrUnknownAddress)
}

func TestClassify_EmptyAddress(t *testing.T) {
	classifier := NewAddressClassifier(testTable(t), new(MockAmbiguityResolver), new(MockUnknownResolver), logger.Nop())

	_, err := classifier.Classify(context.Background(), "   ")

	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestClassify_DeterministicWithFirstCandidate(t *testing.T) {
	classifier := NewAddressClassifier(testTable(t), firstCandidate{}, new(MockUnknownResolver), logger.Nop())

	first, err := classifier.Classify(context.Background(), evmAddress)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := classifier.Classify(context.Background(), evmAddress)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "Ethereum", first.Chain)
}

func TestClassifyWithOverride(t *testing.T) {
	ambiguity := new(MockAmbiguityResolver)
	classifier := NewAddressClassifier(testTable(t), ambiguity, new(MockUnknownResolver), logger.Nop())

	got, err := classifier.ClassifyWithOverride(context.Background(), evmAddress, "Polygon")
	require.NoError(t, err)
	assert.Equal(t, "Polygon", got.Chain)
	assert.Equal(t, entity.SourceOverride, got.Source)
	ambiguity.AssertNotCalled(t, "ResolveAmbiguity", mock.Anything, mock.Anything, mock.Anything)

	got, err = classifier.ClassifyWithOverride(context.Background(), btcAddress, "")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", got.Chain)
	assert.Equal(t, entity.SourceSignature, got.Source)
}
