package providers

import (
	"math"
	"strconv"
	"strings"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

// optionalCount converts an upstream number into a count, treating absent
// and out-of-range values as unreported.
func optionalCount(v *int64) *uint32 {
	if v == nil || *v < 0 || *v > math.MaxUint32 {
		return nil
	}
	return models.Uint32(uint32(*v))
}

func countOrZero(v *int64) uint32 {
	if c := optionalCount(v); c != nil {
		return *c
	}
	return 0
}

// parseCount parses counts such as "1,234" scraped or returned as strings.
func parseCount(s string) *uint32 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	return models.Uint32(uint32(n))
}
