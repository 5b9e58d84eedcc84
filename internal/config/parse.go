package config

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var weiUnits = map[string]*big.Int{
	"wei":   big.NewInt(1),
	"gwei":  big.NewInt(1_000_000_000),
	"ether": big.NewInt(1_000_000_000_000_000_000),
	"eth":   big.NewInt(1_000_000_000_000_000_000),
}

// ParseAddress parses a 0x-prefixed hex address
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseWei parses an amount such as "1000", "0.1 ether" or "5gwei" into wei.
// Fractions that do not resolve to a whole number of wei are rejected.
func ParseWei(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	unit := weiUnits["wei"]
	for name, mult := range weiUnits {
		if strings.HasSuffix(s, name) {
			candidate := strings.TrimSpace(strings.TrimSuffix(s, name))
			if _, ok := new(big.Rat).SetString(candidate); ok {
				s, unit = candidate, mult
				break
			}
		}
	}

	amount, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	amount.Mul(amount, new(big.Rat).SetInt(unit))
	if !amount.IsInt() {
		return nil, fmt.Errorf("amount %q is not a whole number of wei", s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount %q is negative", s)
	}
	return new(big.Int).Set(amount.Num()), nil
}

// ParseTime accepts unix seconds or RFC3339
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected unix seconds or RFC3339)", s)
	}
	return t, nil
}
