// Package resolver derives seeder and leecher counts from partially reported
// provider data.
//
// A leecher count is either computed from a peer total or reported directly.
// When neither is available the count is UnknownLeechers. Computed counts are
// never clamped here: an upstream that undercounts peers produces a negative
// value, and callers that need non-negative numbers apply Clamp themselves.
package resolver

// UnknownLeechers marks a leecher count the source cannot provide.
const UnknownLeechers int64 = -1

// ResolveLeecherCount returns peers-seeders when peers is reported and
// UnknownLeechers otherwise.
func ResolveLeecherCount(seeders uint32, peers *uint32) int64 {
	if peers == nil {
		return UnknownLeechers
	}
	return int64(*peers) - int64(seeders)
}

// ReportedLeechers returns a directly reported leecher count, or
// UnknownLeechers when the provider omitted it.
func ReportedLeechers(leechers *uint32) int64 {
	if leechers == nil {
		return UnknownLeechers
	}
	return int64(*leechers)
}

// SeedersOrZero returns the reported seeder count, or 0 when omitted.
func SeedersOrZero(seeders *uint32) uint32 {
	if seeders == nil {
		return 0
	}
	return *seeders
}

// Clamp maps negative counts, including UnknownLeechers, to zero.
func Clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
