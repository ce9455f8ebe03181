package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

// file mirrors the YAML layout of the bundled server list.
type file struct {
	Servers []entry `yaml:"servers"`
}

type entry struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Address          string   `yaml:"address"`
	Tags             []string `yaml:"tags"`
	ShortDescription string   `yaml:"shortDescription"`
	Region           string   `yaml:"region"`
	VoteCount        int      `yaml:"voteCount"`
	SourceLabel      string   `yaml:"sourceLabel"`
}

// Load parses the embedded seed list. The data ships with the binary,
// so an error here means a broken build, not a runtime condition.
func Load() ([]*domain.Entry, error) {
	var f file
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse embedded seed list: %w", err)
	}

	entries := make([]*domain.Entry, 0, len(f.Servers))
	for _, s := range f.Servers {
		if s.ID == "" || s.Name == "" || !domain.ValidAddress(s.Address) {
			return nil, fmt.Errorf("invalid seed entry %q (id=%q address=%q)", s.Name, s.ID, s.Address)
		}

		tags := make([]domain.Tag, 0, len(s.Tags))
		for _, t := range s.Tags {
			tag := domain.Tag(t)
			if !domain.KnownTag(tag) {
				return nil, fmt.Errorf("seed entry %q carries unknown tag %q", s.ID, t)
			}
			tags = append(tags, tag)
		}

		entries = append(entries, &domain.Entry{
			ID:               s.ID,
			Name:             s.Name,
			Address:          s.Address,
			Tags:             tags,
			ShortDescription: s.ShortDescription,
			Region:           s.Region,
			VoteCount:        s.VoteCount,
			SourceLabel:      s.SourceLabel,
		})
	}
	return entries, nil
}
