package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// CalculateInvalidationDigest computes a stable fingerprint over a collection
// of requirement strings. The digest is insensitive to ordering and duplicate
// entries: two inputs produce the same digest exactly when they describe the
// same requirement set. It is used to detect requirement drift without storing
// the full requirement list (metadata v1), so accidental-collision resistance
// is what matters here, not tamper resistance.
func CalculateInvalidationDigest(requirements []string) string {
	distinct := make(map[string]struct{}, len(requirements))
	for _, r := range requirements {
		distinct[r] = struct{}{}
	}

	sorted := make([]string, 0, len(distinct))
	for r := range distinct {
		sorted = append(sorted, r)
	}
	sort.Strings(sorted)

	digest := xxhash.New()
	for _, r := range sorted {
		_, _ = digest.WriteString(r)
		_, _ = digest.Write([]byte{0}) // Separator
	}

	return fmt.Sprintf("%016x", digest.Sum64())
}
