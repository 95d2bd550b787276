package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/ddc/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer decodes one metadata file into a Record.
type Serializer interface {
	// Parse reads r and returns its record together with the top-level keys
	// in the order they were written. A nil record with a nil error means
	// the file holds no content at all.
	Parse(r io.Reader) (core.Record, []string, error)
}

// Decoding errors. They describe the shape of the problem only; callers
// keep the wrapped detail out of anything published.
var (
	ErrNotMapping        = errors.New("metadata document is not a mapping")
	ErrMultipleDocuments = errors.New("metadata file holds more than one document")
	ErrTooManyAliases    = errors.New("metadata file expands too many aliases")
)

// maxNodes bounds the number of nodes visited once aliases are expanded.
const maxNodes = 1 << 20

// YAMLSerializer reads metadata written in YAML.
//
// Documents are read as a node tree and converted to plain Go values: tags
// never resolve to application types. A key written twice keeps its last
// value, at any depth.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (core.Record, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, nil, fmt.Errorf("invalid yaml: %w", err)
		}
		return nil, nil, ErrMultipleDocuments
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil, nil
		}
		root = root.Content[0]
	}

	budget := maxNodes
	if !withinBudget(root, &budget) {
		return nil, nil, ErrTooManyAliases
	}

	for root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	switch {
	case root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return nil, nil, nil
	case root.Kind != yaml.MappingNode:
		return nil, nil, fmt.Errorf("%w: got %s", ErrNotMapping, kindName(root.Kind))
	}

	m, keys, err := mapping(root)
	if err != nil {
		return nil, nil, err
	}
	return core.Record(m), keys, nil
}

// withinBudget counts nodes with aliases expanded and stops once the budget
// is spent, which also ends self-referencing anchors.
func withinBudget(n *yaml.Node, budget *int) bool {
	*budget--
	if *budget < 0 {
		return false
	}
	if n.Kind == yaml.AliasNode {
		return n.Alias != nil && withinBudget(n.Alias, budget)
	}
	for _, c := range n.Content {
		if !withinBudget(c, budget) {
			return false
		}
	}
	return true
}

func value(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return value(n.Alias)
	case yaml.MappingNode:
		m, _, err := mapping(n)
		return m, err
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		return v, nil
	}
}

// mapping converts a mapping node. Keys are stringified; a repeated key
// overwrites the earlier value but keeps its first position. Merged keys
// ("<<") never override keys written in the mapping itself.
func mapping(n *yaml.Node) (map[string]any, []string, error) {
	out := make(map[string]any, len(n.Content)/2)
	var keys []string
	explicit := make(map[string]bool, len(n.Content)/2)

	set := func(k string, v any) {
		if _, ok := out[k]; !ok {
			keys = append(keys, k)
		}
		out[k] = v
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]

		if kn.ShortTag() == "!!merge" {
			merged, err := mergeSources(vn)
			if err != nil {
				return nil, nil, err
			}
			// Earlier sources win over later ones.
			taken := make(map[string]bool)
			for _, src := range merged {
				for _, k := range sortedKeys(src) {
					if !explicit[k] && !taken[k] {
						taken[k] = true
						set(k, src[k])
					}
				}
			}
			continue
		}

		k, err := value(kn)
		if err != nil {
			return nil, nil, err
		}
		v, err := value(vn)
		if err != nil {
			return nil, nil, err
		}
		key := fmt.Sprint(k)
		explicit[key] = true
		set(key, v)
	}
	return out, keys, nil
}

func mergeSources(n *yaml.Node) ([]map[string]any, error) {
	v, err := value(n)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid yaml: merge value is %T, not a mapping", item)
		}
		out = append(out, m)
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "document"
	}
}
