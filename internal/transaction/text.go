package transaction

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// Format returns the lowercase hex form of the canonical encoding of tx.
func Format(tx Transaction) string {
	return hex.EncodeToString(Encode(tx))
}

// Parse decodes the hex form produced by Format. A 0x prefix is accepted.
func Parse(s string) (Transaction, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidHex, err)
	}
	return Decode(b)
}
