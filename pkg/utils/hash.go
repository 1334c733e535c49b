package utils

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

func Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// HashParts hashes each part in order, length-prefixed so that different
// splits of the same bytes hash differently.
func HashParts(parts ...[]byte) string {
	digest := xxhash.New()
	for _, part := range parts {
		fmt.Fprintf(digest, "%d:", len(part))
		digest.Write(part)
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
