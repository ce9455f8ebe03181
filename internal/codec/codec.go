// Package codec validates and normalizes externally supplied server
// lists into canonical entries, and serializes the collection back out
// for download. Import input is untyped user data, so every field goes
// through explicit coercion rather than strict unmarshaling.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
)

// ExportFilename is the download name offered for exported lists.
const ExportFilename = "eaglercraft-servers.json"

// ErrInvalidFormat is returned when the import payload is not a JSON
// array at the top level. Nothing is decoded in that case.
var ErrInvalidFormat = errors.New("import data must be a JSON array of server objects")

// Decode normalizes a raw import payload into valid entries.
//
// Records are coerced field by field: a missing id is synthesized from
// now and the record's index, a missing name falls back to the address
// and then to "Unnamed", and every record is marked user-supplied.
// Records whose address fails the wss:// invariant are silently
// dropped; the caller reports only the survivor count.
func Decode(data []byte, now time.Time) ([]*domain.Entry, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	entries := make([]*domain.Entry, 0, len(records))
	for i, raw := range records {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			// Not an object; it cannot carry a valid address.
			continue
		}

		e := coerce(fields, now, i)
		if !domain.ValidAddress(e.Address) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func coerce(fields map[string]any, now time.Time, index int) *domain.Entry {
	address := stringField(fields, "address")

	id := stringField(fields, "id")
	if id == "" {
		id = fmt.Sprintf("import-%d-%d", now.UnixMilli(), index)
	}

	name := stringField(fields, "name")
	if name == "" {
		name = address
	}
	if name == "" {
		name = "Unnamed"
	}

	e := &domain.Entry{
		ID:               id,
		Name:             name,
		Address:          address,
		Tags:             tagsField(fields),
		ShortDescription: stringField(fields, "shortDescription"),
		Region:           stringField(fields, "region"),
		IsUserSupplied:   true,
		SourceLabel:      stringField(fields, "sourceLabel"),
	}
	if e.SourceLabel == "" {
		e.SourceLabel = "import"
	}
	if votes, ok := fields["voteCount"].(float64); ok {
		e.VoteCount = int(votes)
	}
	return e
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// tagsField keeps only non-empty string elements; anything that is
// not an array at all becomes an empty tag set.
func tagsField(fields map[string]any) []domain.Tag {
	raw, ok := fields["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]domain.Tag, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			tags = append(tags, domain.Tag(s))
		}
	}
	return tags
}

// Encode serializes the full collection as pretty-printed JSON for
// download.
func Encode(entries []*domain.Entry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode server list: %w", err)
	}
	return data, nil
}
