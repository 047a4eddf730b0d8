package entity

import (
	"fmt"
	"slices"
	"strings"
)

// ChainSignature describes the address format of a blockchain.
// Empty Prefixes accepts any prefix; empty Lengths accepts any length.
type ChainSignature struct {
	Name     string   `json:"name" yaml:"name"`
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
	Lengths  []int    `json:"lengths" yaml:"lengths"`
}

// Matches reports whether address satisfies both the prefix and length constraints.
func (s ChainSignature) Matches(address string) bool {
	prefixOK := len(s.Prefixes) == 0
	for _, p := range s.Prefixes {
		if strings.HasPrefix(address, p) {
			prefixOK = true
			break
		}
	}
	if !prefixOK {
		return false
	}
	return len(s.Lengths) == 0 || slices.Contains(s.Lengths, len(address))
}

// SignatureTable is an immutable, ordered set of chain signatures.
type SignatureTable struct {
	signatures []ChainSignature
}

// NewSignatureTable copies signatures into a table. Entries without a name,
// duplicated names and entries that would match every address are rejected.
func NewSignatureTable(signatures []ChainSignature) (SignatureTable, error) {
	seen := make(map[string]struct{}, len(signatures))
	out := make([]ChainSignature, 0, len(signatures))
	for i, sig := range signatures {
		if sig.Name == "" {
			return SignatureTable{}, fmt.Errorf("%w: chain signature #%d has no name", ErrInvalidArgument, i)
		}
		if _, dup := seen[sig.Name]; dup {
			return SignatureTable{}, fmt.Errorf("%w: duplicate chain signature %q", ErrInvalidArgument, sig.Name)
		}
		if len(sig.Prefixes) == 0 && len(sig.Lengths) == 0 {
			return SignatureTable{}, fmt.Errorf("%w: chain signature %q matches every address", ErrInvalidArgument, sig.Name)
		}
		seen[sig.Name] = struct{}{}
		out = append(out, ChainSignature{
			Name:     sig.Name,
			Prefixes: slices.Clone(sig.Prefixes),
			Lengths:  slices.Clone(sig.Lengths),
		})
	}
	return SignatureTable{signatures: out}, nil
}

// Match returns the names of all chains whose signature accepts address, in table order.
func (t SignatureTable) Match(address string) []string {
	var names []string
	for _, sig := range t.signatures {
		if sig.Matches(address) {
			names = append(names, sig.Name)
		}
	}
	return names
}

// Signatures returns a copy of the table entries.
func (t SignatureTable) Signatures() []ChainSignature {
	out := make([]ChainSignature, len(t.signatures))
	for i, sig := range t.signatures {
		out[i] = ChainSignature{Name: sig.Name, Prefixes: slices.Clone(sig.Prefixes), Lengths: slices.Clone(sig.Lengths)}
	}
	return out
}

// Len returns the number of signatures in the table.
func (t SignatureTable) Len() int {
	return len(t.signatures)
}
