package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeRefNoCursor creates an opaque base64 cursor from the last reference
// number of a page. Clients pass it back verbatim; the numeric scheme stays
// an implementation detail.
func EncodeRefNoCursor(refNo int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(refNo, 10)))
}

// DecodeRefNoCursor parses a cursor back into a reference number.
func DecodeRefNoCursor(cursor string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination cursor (base64 decode): %w", err)
	}
	refNo, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination cursor (ref no parse): %w", err)
	}
	return refNo, nil
}
