// Package models defines data structures for torrent search operations.
package models

// ProviderKind selects which upstream index a search is sent to.
type ProviderKind string

const (
	// ProviderYTS is the identifier-matching movie index.
	ProviderYTS ProviderKind = "yts"
	// ProviderLeetx is the free-text 1337x index.
	ProviderLeetx ProviderKind = "1337x"
	// ProviderApiBay is the free-text apibay (piratebay) index.
	ProviderApiBay ProviderKind = "apibay"
	// ProviderTorrentsCSV is the free-text torrents-csv index.
	ProviderTorrentsCSV ProviderKind = "torrentscsv"
)

// AllProviders lists every provider kind in a stable order.
var AllProviders = []ProviderKind{
	ProviderYTS,
	ProviderLeetx,
	ProviderApiBay,
	ProviderTorrentsCSV,
}

// Valid reports whether k names a known provider.
func (k ProviderKind) Valid() bool {
	for _, p := range AllProviders {
		if p == k {
			return true
		}
	}
	return false
}

func (k ProviderKind) String() string { return string(k) }

// TorrentRecord is the normalized output of every provider.
type TorrentRecord struct {
	Identifier   string       `json:"identifier"`
	DisplayName  string       `json:"display_name"`
	SeederCount  uint32       `json:"seeder_count"`
	LeecherCount int64        `json:"leecher_count"`
	InfoHash     string       `json:"info_hash,omitempty"`
	Category     string       `json:"category,omitempty"`
	Source       ProviderKind `json:"source"`
}

// Identifiable reports whether the record carries any identifying data.
// Records failing this check are never returned to callers.
func (r TorrentRecord) Identifiable() bool {
	return r.Identifier != "" || r.DisplayName != ""
}

// ProviderQuery is the immutable input of one adapter call.
type ProviderQuery struct {
	Term string
	// MatchID is the strict identifier for identifier-matching providers.
	// Empty means Term is used.
	MatchID string
}

// NewQuery builds a query whose match key is the term itself.
func NewQuery(term string) ProviderQuery {
	return ProviderQuery{Term: term}
}

// MatchKey returns the identifier listings must equal exactly.
func (q ProviderQuery) MatchKey() string {
	if q.MatchID != "" {
		return q.MatchID
	}
	return q.Term
}

// MovieListing is a movie entity returned by identifier-matching providers.
type MovieListing struct {
	ID       string
	Title    string
	Year     int
	Torrents []TorrentVariant
}

// TorrentVariant is one downloadable encoding of a MovieListing.
type TorrentVariant struct {
	Hash      string
	Quality   string
	Type      string
	Seeds     uint32
	Peers     *uint32
	SizeBytes int64
}

// FreeTextEntry is one torrent-granular row from a free-text provider.
// Nil pointers mean the provider did not report the field.
type FreeTextEntry struct {
	Name     string
	Seeders  *uint32
	Leechers *uint32
	Magnet   *string
}

// Uint32 returns a pointer to v.
func Uint32(v uint32) *uint32 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
