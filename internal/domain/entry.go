package domain

import "strings"

// Tag is one category label from the fixed vocabulary.
type Tag string

const (
	TagPvP       Tag = "PvP"
	TagMinigames Tag = "Minigames"
	TagSurvival  Tag = "Survival"
	TagCreative  Tag = "Creative"
	TagEconomy   Tag = "Economy"
	TagFactions  Tag = "Factions"
	TagPractice  Tag = "Practice"
	TagSkywars   Tag = "Skywars"
	TagBedwars   Tag = "Bedwars"
	TagSkyblock  Tag = "Skyblock"
	TagAnarchy   Tag = "Anarchy"
	TagOther     Tag = "Other"
)

// AllTags lists the full tag vocabulary in display order.
var AllTags = []Tag{
	TagPvP, TagMinigames, TagSurvival, TagCreative,
	TagEconomy, TagFactions, TagPractice, TagSkywars,
	TagBedwars, TagSkyblock, TagAnarchy, TagOther,
}

// KnownTag reports whether t belongs to the vocabulary.
func KnownTag(t Tag) bool {
	for _, known := range AllTags {
		if t == known {
			return true
		}
	}
	return false
}

// AddressScheme is the only endpoint scheme the directory accepts.
const AddressScheme = "wss://"

// DefaultSourceDisplay is shown for entries without a source label.
const DefaultSourceDisplay = "community"

// Entry is one directory record describing a reachable endpoint
// and its metadata.
//
// An Entry is uniquely identified by its ID within the store.
// Duplicates in Tags are not meaningful and order is not significant.
type Entry struct {
	// ID is the stable unique key.
	ID string `json:"id"`

	// Name is the display name, non-empty for valid entries.
	Name string `json:"name"`

	// Address is the endpoint URI. Only wss:// addresses are accepted
	// by mutating operations.
	Address string `json:"address"`

	// Tags are category labels drawn from the fixed vocabulary.
	Tags []Tag `json:"tags"`

	// ShortDescription is free display-only text.
	ShortDescription string `json:"shortDescription,omitempty"`

	// Region is a free-text location label.
	Region string `json:"region,omitempty"`

	// VoteCount is used only as a sort key; absent sorts as zero.
	VoteCount int `json:"voteCount,omitempty"`

	// IsUserSupplied distinguishes user-added or imported entries
	// from the bundled seed set. Presentation-only.
	IsUserSupplied bool `json:"isUserSupplied,omitempty"`

	// SourceLabel records provenance (which public listing the entry
	// came from, or "import"). Empty means community-contributed.
	SourceLabel string `json:"sourceLabel,omitempty"`
}

// ValidAddress reports whether addr satisfies the wss:// invariant.
func ValidAddress(addr string) bool {
	return strings.HasPrefix(addr, AddressScheme)
}

// Key returns the upsert key: ID when present, Address otherwise.
func (e *Entry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Address
}

// HasTag reports whether the entry carries t.
func (e *Entry) HasTag(t Tag) bool {
	for _, tag := range e.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// DisplaySource returns the source label with the display default applied.
func (e *Entry) DisplaySource() string {
	if e.SourceLabel == "" {
		return DefaultSourceDisplay
	}
	return e.SourceLabel
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Tags != nil {
		c.Tags = make([]Tag, len(e.Tags))
		copy(c.Tags, e.Tags)
	}
	return &c
}
