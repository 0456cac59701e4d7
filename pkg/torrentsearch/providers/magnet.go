package providers

import (
	"fmt"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

const magnetScheme = "magnet:"

// MagnetURI builds "magnet:?xt=urn:btih:<hash>&dn=<name>" from a hex info hash.
func MagnetURI(hash, name string) (string, error) {
	var h metainfo.Hash
	if err := h.FromHexString(strings.TrimSpace(hash)); err != nil {
		return "", fmt.Errorf("invalid info hash %q: %w", hash, err)
	}

	m := metainfo.Magnet{
		InfoHash:    h,
		DisplayName: name,
	}
	return m.String(), nil
}

// NormalizeHash returns the lower-case hex form of a v1 info hash, or "" when
// hash is not one.
func NormalizeHash(hash string) string {
	var h metainfo.Hash
	if err := h.FromHexString(strings.TrimSpace(hash)); err != nil {
		return ""
	}
	return h.HexString()
}

// InfoHashOf extracts the info hash from a magnet URI or bare hex hash.
// It returns "" when nothing usable is found.
func InfoHashOf(identifier string) string {
	if !strings.HasPrefix(identifier, magnetScheme) {
		return NormalizeHash(identifier)
	}

	m, err := metainfo.ParseMagnetUri(identifier)
	if err != nil || m.InfoHash == (metainfo.Hash{}) {
		return ""
	}
	return m.InfoHash.HexString()
}
