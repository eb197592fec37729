package ledger

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Memo is a bill description as raw UTF-8 bytes. The ledger stores it as a
// byte vector; view responses render it as a 0x-prefixed hex string while
// submission payloads carry a plain byte array. Both forms normalize to the
// same bytes.
type Memo []byte

// UnmarshalJSON accepts "0x..." hex strings, plain strings, and JSON byte
// arrays.
func (m *Memo) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var nums []uint16
		if err := json.Unmarshal(data, &nums); err != nil {
			return err
		}
		bytes := make([]byte, len(nums))
		for i, n := range nums {
			if n > 0xff {
				return fmt.Errorf("memo byte out of range: %d", n)
			}
			bytes[i] = byte(n)
		}
		*m = Memo(bytes)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := DecodeMemoString(s)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// MarshalJSON emits the byte-array form used in submission payloads.
func (m Memo) MarshalJSON() ([]byte, error) {
	nums := make([]int, len(m))
	for i, b := range m {
		nums[i] = int(b)
	}
	return json.Marshal(nums)
}

// String decodes the memo back to UTF-8 text for display.
func (m Memo) String() string {
	return string(m)
}

// DecodeMemoString normalizes a memo string: a 0x-prefixed hex encoding is
// decoded to its bytes, anything else is taken as literal UTF-8.
func DecodeMemoString(s string) (Memo, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw := s[2:]
		if len(raw)%2 != 0 {
			// tolerate odd-length hex from hand-built fixtures
			raw = "0" + raw
		}
		decoded, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode memo hex: %w", err)
		}
		return Memo(decoded), nil
	}
	return Memo(s), nil
}
