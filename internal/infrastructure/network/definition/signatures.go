package networkdefinition

import (
	"fmt"
	"slices"
	"strings"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

// lengthRange returns the lengths from min to max inclusive.
func lengthRange(min, max int) []int {
	out := make([]int, 0, max-min+1)
	for n := min; n <= max; n++ {
		out = append(out, n)
	}
	return out
}

// Predefined chain signatures. Order matters: it is the candidate order
// offered when several chains accept the same address.
var ( //nolint:gochecknoglobals // Global for definitions
	bitcoin = entity.ChainSignature{
		Name:     "Bitcoin",
		Prefixes: []string{"1", "3", "bc1"},
		Lengths:  append(lengthRange(26, 35), 42, 62),
	}
	ethereum = entity.ChainSignature{
		Name:     "Ethereum",
		Prefixes: []string{"0x"},
		Lengths:  []int{42},
	}
	bsc = entity.ChainSignature{
		Name:     "Binance Smart Chain",
		Prefixes: []string{"0x"},
		Lengths:  []int{42},
	}
	polygon = entity.ChainSignature{
		Name:     "Polygon",
		Prefixes: []string{"0x"},
		Lengths:  []int{42},
	}
	tron = entity.ChainSignature{
		Name:     "TRON",
		Prefixes: []string{"T"},
		Lengths:  []int{34},
	}
	litecoin = entity.ChainSignature{
		Name:     "Litecoin",
		Prefixes: []string{"L", "M", "ltc1"},
		Lengths:  []int{34, 43, 63},
	}
	dogecoin = entity.ChainSignature{
		Name:     "Dogecoin",
		Prefixes: []string{"D"},
		Lengths:  []int{34},
	}
	ripple = entity.ChainSignature{
		Name:     "XRP",
		Prefixes: []string{"r"},
		Lengths:  lengthRange(25, 35),
	}
	// Solana addresses are bare base58 with no prefix. Only the common
	// 44-character form is accepted so that other chains stay unambiguous;
	// 43-character keys (roughly one in eight) fall through to the unknown
	// resolver. Add a "chains" override in config to widen it.
	solana = entity.ChainSignature{
		Name:    "Solana",
		Lengths: []int{44},
	}
	cardano = entity.ChainSignature{
		Name:     "Cardano",
		Prefixes: []string{"addr1"},
		Lengths:  []int{58, 103},
	}
	cosmos = entity.ChainSignature{
		Name:     "Cosmos",
		Prefixes: []string{"cosmos1"},
		Lengths:  []int{45},
	}
	polkadot = entity.ChainSignature{
		Name:     "Polkadot",
		Prefixes: []string{"1"},
		Lengths:  []int{47, 48},
	}
)

// builtinSignatures is the default table, in candidate order.
var builtinSignatures = []entity.ChainSignature{
	bitcoin,
	ethereum,
	bsc,
	polygon,
	tron,
	litecoin,
	dogecoin,
	ripple,
	solana,
	cardano,
	cosmos,
	polkadot,
}

// BuiltinSignatures returns a copy of the default signature list.
func BuiltinSignatures() []entity.ChainSignature {
	out := make([]entity.ChainSignature, len(builtinSignatures))
	for i, sig := range builtinSignatures {
		out[i] = entity.ChainSignature{
			Name:     sig.Name,
			Prefixes: slices.Clone(sig.Prefixes),
			Lengths:  slices.Clone(sig.Lengths),
		}
	}
	return out
}

// SignatureProvider builds the signature table from the built-in definitions
// and optional overrides from configuration.
type SignatureProvider struct {
	logger port.Logger
	table  entity.SignatureTable
}

// NewSignatureProvider merges overrides into the built-in list. An override
// whose name matches a built-in chain (case-insensitively) replaces it in
// place; any other override is appended. Each chain may be configured once.
func NewSignatureProvider(log port.Logger, overrides []entity.ChainSignature) (*SignatureProvider, error) {
	merged := BuiltinSignatures()
	position := make(map[string]int, len(merged))
	for i, sig := range merged {
		position[strings.ToLower(sig.Name)] = i
	}

	overridden := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		o.Name = strings.TrimSpace(o.Name)
		key := strings.ToLower(o.Name)
		if _, dup := overridden[key]; dup {
			return nil, fmt.Errorf("%w: chain %q is configured more than once", entity.ErrInvalidArgument, o.Name)
		}
		overridden[key] = struct{}{}
		if i, ok := position[key]; ok {
			log.Info(fmt.Sprintf("Chain signature '%s' overridden from configuration.", merged[i].Name))
			o.Name = merged[i].Name
			merged[i] = o
			continue
		}
		log.Info(fmt.Sprintf("Chain signature '%s' added from configuration.", o.Name))
		position[key] = len(merged)
		merged = append(merged, o)
	}

	table, err := entity.NewSignatureTable(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to build chain signature table: %w", err)
	}

	log.Info(fmt.Sprintf("SignatureProvider initialized. Known chains: %d", table.Len()))
	for _, sig := range table.Signatures() {
		log.Debug(fmt.Sprintf("  - Chain: %s (prefixes: %v, lengths: %v)", sig.Name, sig.Prefixes, sig.Lengths))
	}
	return &SignatureProvider{logger: log, table: table}, nil
}

// SignatureTable returns the table in use.
func (p *SignatureProvider) SignatureTable() entity.SignatureTable {
	return p.table
}

// GetSignatureByName returns the signature for name, ignoring case.
func (p *SignatureProvider) GetSignatureByName(name string) (entity.ChainSignature, bool) {
	for _, sig := range p.table.Signatures() {
		if strings.EqualFold(sig.Name, name) {
			return sig, true
		}
	}
	return entity.ChainSignature{}, false
}
