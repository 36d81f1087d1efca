package checker

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
)

// Format names the payload encoding of a request.
type Format string

const (
	FormatBinary Format = "binary"
	FormatHex    Format = "hex"
	FormatJSON   Format = "json"
)

var ErrUnknownFormat = errors.New("unknown payload format")

// ParseFormat accepts the Format names case-insensitively. An empty string selects FormatHex.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatHex, nil
	case FormatBinary, FormatHex, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DecodeError reports a payload that is not a transaction.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s transaction: %v", e.Format, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses payload in the given format and records the outcome.
func Decode(metrics CodecMetrics, format Format, payload []byte) (tx transaction.Transaction, err error) {
	started := time.Now()
	defer func() {
		if metrics != nil {
			metrics.ObserveDecode(string(format), len(payload), err, started)
		}
	}()

	switch format {
	case FormatBinary:
		tx, err = transaction.Decode(payload)
	case FormatHex:
		raw, herr := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(payload)), "0x"))
		if herr != nil {
			err = herr
			break
		}
		tx, err = transaction.Decode(raw)
	case FormatJSON:
		tx, err = transaction.UnmarshalJSON(payload)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return tx, nil
}
