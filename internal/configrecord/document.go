// Package configrecord loads a graph.ConfigurationRecord from TOML or
// JSON, for the featurectl demo CLI and for tests. It exists entirely
// outside the core: spec.md treats ConfigurationRecord as an
// already-deserialized external input, so this package is the thing
// that does the deserializing, not a hidden part of graph.Build.
//
// Grounded on beads' internal/formula/parser.go: TOML is the preferred
// format with a JSON fallback, selected by file extension, exactly as
// Parser.ParseFile does with .formula.toml vs. the legacy .formula.json.
package configrecord

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/graph"
	"github.com/forgebld/tcfeatures/internal/template"
)

// document is the on-disk shape; all template strings are compiled into
// *template.Template by build(), so nothing downstream of LoadFile ever
// sees raw pattern strings.
type document struct {
	Features             []featureDoc      `toml:"feature" json:"features"`
	ActionConfigs        []actionConfigDoc `toml:"action_config" json:"action_configs"`
	ArtifactNamePatterns []patternDoc      `toml:"artifact_name_pattern" json:"artifact_name_patterns"`
}

type featureDoc struct {
	Name           string     `toml:"name" json:"name"`
	DefaultEnabled bool       `toml:"default_enabled" json:"default_enabled"`
	FlagSets       []flagSetDoc `toml:"flag_set" json:"flag_sets"`
	EnvSets        []envSetDoc  `toml:"env_set" json:"env_sets"`
	Implies        []string     `toml:"implies" json:"implies"`
	Requires       [][]string   `toml:"requires" json:"requires"`
	Provides       []string     `toml:"provides" json:"provides"`
}

type actionConfigDoc struct {
	ConfigName     string       `toml:"config_name" json:"config_name"`
	ActionName     string       `toml:"action_name" json:"action_name"`
	DefaultEnabled bool         `toml:"default_enabled" json:"default_enabled"`
	Tools          []toolDoc    `toml:"tool" json:"tools"`
	FlagSets       []flagSetDoc `toml:"flag_set" json:"flag_sets"`
	Implies        []string     `toml:"implies" json:"implies"`
	Requires       [][]string   `toml:"requires" json:"requires"`
	Provides       []string     `toml:"provides" json:"provides"`
}

type toolDoc struct {
	Path                  string          `toml:"path" json:"path"`
	ExecutionRequirements []string        `toml:"execution_requirements" json:"execution_requirements"`
	WithFeatures          []withFeatureDoc `toml:"with_feature" json:"with_features"`
}

type withFeatureDoc struct {
	Features    []string `toml:"features" json:"features"`
	NotFeatures []string `toml:"not_features" json:"not_features"`
}

type flagSetDoc struct {
	Actions              []string         `toml:"actions" json:"actions"`
	ExpandIfAllAvailable []string         `toml:"expand_if_all_available" json:"expand_if_all_available"`
	WithFeatures         []withFeatureDoc `toml:"with_feature" json:"with_features"`
	FlagGroups           []flagGroupDoc   `toml:"flag_group" json:"flag_groups"`
}

// flagGroupDoc carries either Flags (leaf templates) or Children
// (nested groups), never both, mirroring the flag-group-contains-flags-
// or-groups-not-both invariant of spec.md §3.
type flagGroupDoc struct {
	IterateOver           string         `toml:"iterate_over" json:"iterate_over"`
	ExpandIfAllAvailable  []string       `toml:"expand_if_all_available" json:"expand_if_all_available"`
	ExpandIfNoneAvailable []string       `toml:"expand_if_none_available" json:"expand_if_none_available"`
	ExpandIfTrue          string         `toml:"expand_if_true" json:"expand_if_true"`
	ExpandIfFalse         string         `toml:"expand_if_false" json:"expand_if_false"`
	ExpandIfEqualName     string         `toml:"expand_if_equal_name" json:"expand_if_equal_name"`
	ExpandIfEqualValue    string         `toml:"expand_if_equal_value" json:"expand_if_equal_value"`
	Flags                 []string       `toml:"flags" json:"flags"`
	Children              []flagGroupDoc `toml:"flag_group" json:"children"`
}

type envSetDoc struct {
	Actions      []string         `toml:"actions" json:"actions"`
	WithFeatures []withFeatureDoc `toml:"with_feature" json:"with_features"`
	Entries      []envEntryDoc    `toml:"entry" json:"entries"`
}

type envEntryDoc struct {
	Key   string `toml:"key" json:"key"`
	Value string `toml:"value" json:"value"`
}

type patternDoc struct {
	Category string `toml:"category" json:"category"`
	Pattern  string `toml:"pattern" json:"pattern"`
}

// LoadFile reads path and parses it as TOML (".toml" suffix) or JSON
// (anything else), producing a graph.ConfigurationRecord ready for
// graph.Build.
func LoadFile(path string) (*graph.ConfigurationRecord, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied CLI path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".toml") {
		return ParseTOML(data)
	}
	return ParseJSON(data)
}

// ParseTOML parses data as a TOML configuration record document.
func ParseTOML(data []byte) (*graph.ConfigurationRecord, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return build(doc)
}

// ParseJSON parses data as a JSON configuration record document.
func ParseJSON(data []byte) (*graph.ConfigurationRecord, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return build(doc)
}

func build(doc document) (*graph.ConfigurationRecord, error) {
	rec := &graph.ConfigurationRecord{}

	for _, f := range doc.Features {
		flagSets, err := buildFlagSets(f.FlagSets)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		envSets, err := buildEnvSets(f.EnvSets)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		rec.Features = append(rec.Features, graph.FeatureRecord{
			Name:           f.Name,
			DefaultEnabled: f.DefaultEnabled,
			FlagSets:       flagSets,
			EnvSets:        envSets,
			Implies:        f.Implies,
			Requires:       buildClauses(f.Requires),
			Provides:       f.Provides,
		})
	}

	for _, ac := range doc.ActionConfigs {
		flagSets, err := buildFlagSets(ac.FlagSets)
		if err != nil {
			return nil, fmt.Errorf("action config %q: %w", ac.ConfigName, err)
		}
		tools, err := buildTools(ac.Tools)
		if err != nil {
			return nil, fmt.Errorf("action config %q: %w", ac.ConfigName, err)
		}
		rec.ActionConfigs = append(rec.ActionConfigs, graph.ActionConfigRecord{
			ConfigName:     ac.ConfigName,
			ActionName:     ac.ActionName,
			DefaultEnabled: ac.DefaultEnabled,
			Tools:          tools,
			FlagSets:       flagSets,
			Implies:        ac.Implies,
			Requires:       buildClauses(ac.Requires),
			Provides:       ac.Provides,
		})
	}

	for _, p := range doc.ArtifactNamePatterns {
		tpl, err := template.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("artifact pattern %q: %w", p.Category, err)
		}
		rec.ArtifactNamePatterns = append(rec.ArtifactNamePatterns, graph.ArtifactNamePattern{
			Category: p.Category,
			Pattern:  tpl,
		})
	}

	return rec, nil
}

func buildClauses(raw [][]string) []graph.RequirementClause {
	if raw == nil {
		return nil
	}
	out := make([]graph.RequirementClause, len(raw))
	for i, c := range raw {
		out[i] = graph.RequirementClause(c)
	}
	return out
}

func buildWithFeatures(raw []withFeatureDoc) expand.WithFeatureSets {
	if raw == nil {
		return nil
	}
	out := make(expand.WithFeatureSets, len(raw))
	for i, w := range raw {
		out[i] = expand.WithFeatureSet{Features: w.Features, NotFeatures: w.NotFeatures}
	}
	return out
}

func buildTools(raw []toolDoc) ([]graph.Tool, error) {
	out := make([]graph.Tool, len(raw))
	for i, t := range raw {
		out[i] = graph.Tool{
			Path:                  t.Path,
			ExecutionRequirements: t.ExecutionRequirements,
			WithFeatures:          buildWithFeatures(t.WithFeatures),
		}
	}
	return out, nil
}

func buildFlagSets(raw []flagSetDoc) ([]*expand.FlagSet, error) {
	out := make([]*expand.FlagSet, len(raw))
	for i, fs := range raw {
		groups, err := buildFlagGroups(fs.FlagGroups)
		if err != nil {
			return nil, err
		}
		out[i] = &expand.FlagSet{
			Actions:              fs.Actions,
			ExpandIfAllAvailable: fs.ExpandIfAllAvailable,
			WithFeatures:         buildWithFeatures(fs.WithFeatures),
			FlagGroups:           groups,
		}
	}
	return out, nil
}

func buildFlagGroups(raw []flagGroupDoc) ([]*expand.FlagGroup, error) {
	out := make([]*expand.FlagGroup, len(raw))
	for i, doc := range raw {
		g, err := buildFlagGroup(doc)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func buildFlagGroup(doc flagGroupDoc) (*expand.FlagGroup, error) {
	if len(doc.Flags) > 0 && len(doc.Children) > 0 {
		return nil, fmt.Errorf("flag group must not mix flags and nested flag groups")
	}

	var children []expand.Expandable
	if len(doc.Flags) > 0 {
		for _, pattern := range doc.Flags {
			tpl, err := template.Compile(pattern)
			if err != nil {
				return nil, err
			}
			children = append(children, &expand.Flag{Template: tpl})
		}
	} else {
		for _, childDoc := range doc.Children {
			child, err := buildFlagGroup(childDoc)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}

	var equal *expand.EqualGuard
	if doc.ExpandIfEqualName != "" {
		equal = &expand.EqualGuard{Name: doc.ExpandIfEqualName, Value: doc.ExpandIfEqualValue}
	}

	return &expand.FlagGroup{
		Children:              children,
		IterateOver:           doc.IterateOver,
		ExpandIfAllAvailable:  doc.ExpandIfAllAvailable,
		ExpandIfNoneAvailable: doc.ExpandIfNoneAvailable,
		ExpandIfTrue:          doc.ExpandIfTrue,
		ExpandIfFalse:         doc.ExpandIfFalse,
		ExpandIfEqual:         equal,
	}, nil
}

func buildEnvSets(raw []envSetDoc) ([]*expand.EnvSet, error) {
	out := make([]*expand.EnvSet, len(raw))
	for i, es := range raw {
		entries := make([]expand.EnvEntry, len(es.Entries))
		for j, e := range es.Entries {
			tpl, err := template.Compile(e.Value)
			if err != nil {
				return nil, err
			}
			entries[j] = expand.EnvEntry{Key: e.Key, Value: tpl}
		}
		out[i] = &expand.EnvSet{
			Actions:      es.Actions,
			Entries:      entries,
			WithFeatures: buildWithFeatures(es.WithFeatures),
		}
	}
	return out, nil
}
