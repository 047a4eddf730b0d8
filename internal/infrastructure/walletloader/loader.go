package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"market_scout/internal/domain/entity"
)

// LoadWallets reads the wallets file at path. Each non-empty line that does
// not start with '#' holds an address optionally followed by a chain name:
//
//	0x742d35Cc6634C0532925a3b844Bc454e4438f44e Binance Smart Chain
//	1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNas
//
// Lines that cannot be used are reported through warn and skipped.
func LoadWallets(path string, warn func(msg string, args ...any)) ([]entity.Wallet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", path, err)
	}
	defer file.Close()

	wallets, err := ParseWallets(file, warn)
	if err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", path, err)
	}
	return wallets, nil
}

// ParseWallets parses the wallets file format from r.
func ParseWallets(r io.Reader, warn func(msg string, args ...any)) ([]entity.Wallet, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	var wallets []entity.Wallet
	seen := make(map[string]int)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		address := fields[0]
		chain := strings.Join(fields[1:], " ")

		if strings.HasPrefix(address, "0x") {
			if !common.IsHexAddress(address) {
				warn("Skipping malformed hex wallet address", "line_number", lineNum, "address", address)
				continue
			}
			// Store hex addresses in EIP-55 checksum form.
			address = common.HexToAddress(address).Hex()
		}

		if prev, dup := seen[address]; dup {
			warn("Skipping duplicate wallet address", "line_number", lineNum, "first_seen_line", prev, "address", address)
			continue
		}
		seen[address] = lineNum
		wallets = append(wallets, entity.Wallet{Address: address, Chain: chain})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return wallets, nil
}
