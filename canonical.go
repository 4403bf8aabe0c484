package recordcheck

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/gowebpki/jcs"
)

// Encode renders records back to the wire shape in RFC 8785 (JCS) canonical
// form: keys sorted, no insignificant whitespace. Decoding the output yields
// records equal to the input.
func Encode[T Record](records []T) ([]byte, error) {
	wire := make([]Strings, len(records))
	for i, r := range records {
		wire[i].Name, wire[i].Value = r.Fields()
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("canonicalize records: %w", err)
	}
	return canonical, nil
}

// Digest returns the sha256 hex digest of Encode(records).
func Digest[T Record](records []T) (string, error) {
	canonical, err := Encode(records)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
