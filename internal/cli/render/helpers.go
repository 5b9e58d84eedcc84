package render

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

var (
	etherUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	gweiUnit  = big.NewInt(1_000_000_000)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Keep only the innermost part of an error chain
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatWei renders an amount in the largest unit that keeps it readable,
// e.g. "0.1 ETH", "5 gwei", "42 wei"
func FormatWei(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	abs := new(big.Int).Abs(wei)
	switch {
	case abs.Cmp(gweiUnit) < 0:
		return fmt.Sprintf("%s wei", wei)
	case abs.Cmp(new(big.Int).Div(etherUnit, big.NewInt(1000))) < 0:
		return fmt.Sprintf("%s gwei", ratString(wei, gweiUnit))
	default:
		return fmt.Sprintf("%s ETH", ratString(wei, etherUnit))
	}
}

func ratString(wei, unit *big.Int) string {
	s := new(big.Rat).SetFrac(wei, unit).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatAddress shortens an address to 0x1234…abcd
func FormatAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// FormatRemaining describes the time left until deadline as seen from now
func FormatRemaining(deadline, now time.Time) string {
	if !now.Before(deadline) {
		return "ended " + deadline.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("ends in %s", deadline.Sub(now).Round(time.Second))
}

// StateLabel title-cases a lowercase state name
func StateLabel(state string) string {
	return titleCaser.String(state)
}
