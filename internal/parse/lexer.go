package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/dropforge/dropforge/internal/models"
)

// Tuple is a coarse recipient row produced by the lexer: raw string fields,
// not yet validated. TokenID is populated for ERC-1155 rows only. For ERC-721
// rows Amount carries the token id.
type Tuple struct {
	Address string
	TokenID string
	Amount  string
}

// addressTokenRegex matches a syntactically valid EVM address token.
var addressTokenRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Line grammars, applied to the remainder of a line after the fixed-width
// 42-character address prefix. A fungible value may directly abut the
// address, follow a comma or equals sign, or follow at most one space; the
// ERC-721 and ERC-1155 shapes require an explicit separator.
var (
	fungibleRestRegex = regexp.MustCompile(`^(?:[=,] *| ?)(\d*(?:\.\d*)?)$`)
	erc721RestRegex   = regexp.MustCompile(`^[=,\s] *(\d+)$`)
	erc1155RestRegex  = regexp.MustCompile(`^[,\s] *(\d+)[,\s] *(\d+)$`)
)

// leadingNonNumericRegex matches a stray prefix that leaked into a value
// field, e.g. a second separator.
var leadingNonNumericRegex = regexp.MustCompile(`^[^0-9.]+`)

// Text lexes a block of newline-separated free text into coarse tuples for
// the given standard. Malformed lines are dropped silently: the lexer is a
// best-effort filter and downstream validation is authoritative. Input order
// is preserved.
func Text(standard models.Standard, text string) []Tuple {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	tuples := make([]Tuple, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		tuple, ok := lexLine(standard, line)
		if !ok {
			slog.Debug("dropped malformed line", "standard", standard, "line", line)
			continue
		}
		tuples = append(tuples, tuple)
	}

	return tuples
}

func lexLine(standard models.Standard, line string) (Tuple, bool) {
	if len(line) < 42 || !addressTokenRegex.MatchString(line[:42]) {
		return Tuple{}, false
	}

	// The address is always the full 42 characters (0x plus 40 hex chars).
	address := line[:42]
	rest := line[42:]

	switch standard {
	case models.StandardERC721:
		m := erc721RestRegex.FindStringSubmatch(rest)
		if m == nil {
			return Tuple{}, false
		}
		return Tuple{Address: address, Amount: m[1]}, true

	case models.StandardERC1155:
		m := erc1155RestRegex.FindStringSubmatch(rest)
		if m == nil {
			return Tuple{}, false
		}
		return Tuple{Address: address, TokenID: m[1], Amount: m[2]}, true

	default:
		if !fungibleRestRegex.MatchString(rest) {
			return Tuple{}, false
		}
		value := normalizeValue(rest)
		if !strings.ContainsAny(value, "0123456789") {
			// A bare address or a trailing separator carries no amount.
			return Tuple{}, false
		}
		return Tuple{Address: address, Amount: value}, true
	}
}

// normalizeValue extracts the numeric value from the remainder of a fungible
// line: strip any leading run of characters that are not digits or a decimal
// point, then add a leading zero to a bare decimal like ".5".
func normalizeValue(rest string) string {
	value := leadingNonNumericRegex.ReplaceAllString(rest, "")
	if strings.HasPrefix(value, ".") {
		value = "0" + value
	}
	return value
}
