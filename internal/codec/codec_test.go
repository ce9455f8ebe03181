package codec

import (
	"errors"
	"testing"
	"time"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
)

var testNow = time.UnixMilli(1700000000000)

func TestDecodeRejectsNonArray(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "single object", data: `{"name":"x","address":"wss://x"}`},
		{name: "scalar", data: `42`},
		{name: "garbage", data: `not json at all`},
		{name: "empty input", data: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), testNow)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidFormat", tt.data, err)
			}
		})
	}
}

func TestDecodeDropsInvalidAddresses(t *testing.T) {
	data := `[
		{"name":"Good","address":"wss://good.example"},
		{"name":"Bad","address":"ftp://nope"},
		{"name":"Evil","address":"http://evil"},
		{"name":"Missing"}
	]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Decode() = %d survivors, want 1", len(entries))
	}
	if entries[0].Name != "Good" {
		t.Errorf("Decode() kept %q, want Good", entries[0].Name)
	}
}

func TestDecodeAllRejectedYieldsEmptyNotError(t *testing.T) {
	entries, err := Decode([]byte(`[{"name":"Bad","address":"ftp://nope"}]`), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if len(entries) != 0 {
		t.Errorf("Decode() = %d entries, want 0", len(entries))
	}
}

func TestDecodeFieldDefaults(t *testing.T) {
	data := `[{"address":"wss://bare.example"}]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Decode() = %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.ID == "" {
		t.Error("missing id was not synthesized")
	}
	if e.Name != "wss://bare.example" {
		t.Errorf("name fallback = %q, want the address", e.Name)
	}
	if !e.IsUserSupplied {
		t.Error("imported entry not marked user-supplied")
	}
	if e.SourceLabel != "import" {
		t.Errorf("sourceLabel = %q, want import", e.SourceLabel)
	}
	if e.VoteCount != 0 {
		t.Errorf("voteCount = %d, want unset (0)", e.VoteCount)
	}
}

func TestDecodeSynthesizedIDsAreUniquePerBatch(t *testing.T) {
	data := `[
		{"address":"wss://a.example"},
		{"address":"wss://b.example"},
		{"address":"wss://c.example"}
	]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate synthesized id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestDecodeCoercions(t *testing.T) {
	data := `[{
		"id":"srv",
		"name":"Server",
		"address":"wss://srv.example",
		"tags":["PvP","","Skywars",7,null],
		"voteCount":41.0,
		"shortDescription":"desc",
		"region":"EU",
		"sourceLabel":"mylist",
		"unknownField":"ignored"
	}]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	e := entries[0]

	if len(e.Tags) != 2 || e.Tags[0] != domain.TagPvP || e.Tags[1] != domain.TagSkywars {
		t.Errorf("tags = %v, want falsy elements dropped", e.Tags)
	}
	if e.VoteCount != 41 {
		t.Errorf("voteCount = %d, want 41", e.VoteCount)
	}
	if e.Region != "EU" || e.ShortDescription != "desc" || e.SourceLabel != "mylist" {
		t.Errorf("optional fields not carried over: %+v", e)
	}
}

func TestDecodeNonNumericVoteCountLeftUnset(t *testing.T) {
	data := `[{"address":"wss://a.example","voteCount":"lots"}]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if entries[0].VoteCount != 0 {
		t.Errorf("voteCount = %d, want unset for non-numeric input", entries[0].VoteCount)
	}
}

func TestDecodeNonObjectRecordsDropped(t *testing.T) {
	data := `["just a string", 17, {"name":"OK","address":"wss://ok.example"}]`

	entries, err := Decode([]byte(data), testNow)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "OK" {
		t.Errorf("Decode() = %v, want only the object record", entries)
	}
}

func TestExportRoundTripPreservesAddresses(t *testing.T) {
	original := []*domain.Entry{
		{ID: "a", Name: "A", Address: "wss://a.example", Tags: []domain.Tag{domain.TagPvP}, VoteCount: 5},
		{ID: "b", Name: "B", Address: "wss://b.example", SourceLabel: "seed-list"},
	}

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(encoded, testNow)
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("round trip = %d entries, want %d", len(decoded), len(original))
	}

	want := make(map[string]bool)
	for _, e := range original {
		want[e.Address] = true
	}
	for _, e := range decoded {
		if !want[e.Address] {
			t.Errorf("unexpected address after round trip: %q", e.Address)
		}
	}
}
