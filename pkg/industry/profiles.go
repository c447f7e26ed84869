// Package industry holds the industry profiles (scoring keywords, seed feeds, sites) and discovers feeds for an industry.
package industry

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yml
var profilesData []byte

// Profile describes a single industry
type Profile struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Feeds    []string `yaml:"feeds"`
	Sites    []string `yaml:"sites"`
}

// LoadProfiles returns the named profile set from the embedded profiles, in declaration order.
// Feed and site lists are de-duplicated.
func LoadProfiles(set string) ([]Profile, error) {
	return parseProfiles(profilesData, set)
}

// ProfileSets lists the names of the embedded profile sets
func ProfileSets() ([]string, error) {
	var sets map[string][]Profile
	if err := yaml.Unmarshal(profilesData, &sets); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	res := make([]string, 0, len(sets))
	for k := range sets {
		res = append(res, k)
	}
	sort.Strings(res)
	return res, nil
}

func parseProfiles(data []byte, set string) ([]Profile, error) {
	var sets map[string][]Profile
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	profiles, ok := sets[set]
	if !ok {
		return nil, fmt.Errorf("unknown profile set %q", set)
	}

	res := make([]Profile, 0, len(profiles))
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return nil, fmt.Errorf("profile without name in set %q", set)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q in set %q", p.Name, set)
		}
		seen[p.Name] = true
		p.Feeds = uniq(p.Feeds)
		p.Sites = uniq(p.Sites)
		res = append(res, p)
	}
	return res, nil
}

// uniq removes blank and repeated entries, keeping the first occurrence
func uniq(list []string) []string {
	res := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}
