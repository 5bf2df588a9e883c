// Package vocab provides the controlled subject vocabulary used for record
// keywords. Concepts form a polyhierarchy; records store concept URIs and
// display pages resolve them back to labels.
package vocab

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Concept is a single vocabulary term. Broader lists the URIs of parent
// concepts; top-level domains have none.
type Concept struct {
	URI     string   `yaml:"uri"`
	Label   string   `yaml:"label"`
	Broader []string `yaml:"broader,omitempty"`
}

// Node is a concept plus its narrower children, used for tree displays.
type Node struct {
	Concept
	Narrower []*Node
}

type document struct {
	Scheme   string    `yaml:"scheme"`
	Concepts []Concept `yaml:"concepts"`
}

// Thesaurus indexes a concept scheme for lookup by URI and by label.
type Thesaurus struct {
	scheme   string
	byURI    map[string]Concept
	byLabel  map[string]string
	narrower map[string][]string
	order    []string
}

// Parse builds a Thesaurus from a YAML concept scheme.
func Parse(data []byte) (*Thesaurus, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vocab: parse scheme: %w", err)
	}
	if len(doc.Concepts) == 0 {
		return nil, errors.New("vocab: scheme has no concepts")
	}

	th := &Thesaurus{
		scheme:   doc.Scheme,
		byURI:    make(map[string]Concept, len(doc.Concepts)),
		byLabel:  make(map[string]string, len(doc.Concepts)),
		narrower: make(map[string][]string),
	}
	for _, concept := range doc.Concepts {
		if concept.URI == "" || concept.Label == "" {
			return nil, fmt.Errorf("vocab: concept missing uri or label: %+v", concept)
		}
		if _, exists := th.byURI[concept.URI]; exists {
			return nil, fmt.Errorf("vocab: duplicate concept %s", concept.URI)
		}
		th.byURI[concept.URI] = concept
		th.byLabel[strings.ToLower(concept.Label)] = concept.URI
		th.order = append(th.order, concept.URI)
		for _, parent := range concept.Broader {
			th.narrower[parent] = append(th.narrower[parent], concept.URI)
		}
	}
	return th, nil
}

// Load reads a concept scheme from a filesystem.
func Load(files fs.FS, name string) (*Thesaurus, error) {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("vocab: read scheme: %w", err)
	}
	return Parse(data)
}

// Scheme returns the human-readable name of the concept scheme.
func (t *Thesaurus) Scheme() string {
	return t.scheme
}

// Label resolves a concept URI to its preferred label, or "" when unknown.
func (t *Thesaurus) Label(uri string) string {
	return t.byURI[uri].Label
}

// URI resolves a label (case-insensitive) to its concept URI, or "" when the
// term is not part of the scheme.
func (t *Thesaurus) URI(label string) string {
	return t.byLabel[strings.ToLower(strings.TrimSpace(label))]
}

// Contains reports whether the URI names a concept in the scheme.
func (t *Thesaurus) Contains(uri string) bool {
	_, ok := t.byURI[uri]
	return ok
}

// LongLabel renders a concept with its first broader term for disambiguation,
// e.g. "Geology < Earth sciences". Top-level concepts render as their label.
func (t *Thesaurus) LongLabel(uri string) string {
	concept, ok := t.byURI[uri]
	if !ok {
		return ""
	}
	if len(concept.Broader) == 0 {
		return concept.Label
	}
	parent := t.Label(concept.Broader[0])
	if parent == "" {
		return concept.Label
	}
	return concept.Label + " < " + parent
}

// Ancestry returns the chain of concepts from a top-level domain down to the
// given concept, following first broader links.
func (t *Thesaurus) Ancestry(uri string) []Concept {
	var chain []Concept
	seen := make(map[string]bool)
	for uri != "" && !seen[uri] {
		concept, ok := t.byURI[uri]
		if !ok {
			break
		}
		seen[uri] = true
		chain = append([]Concept{concept}, chain...)
		if len(concept.Broader) == 0 {
			break
		}
		uri = concept.Broader[0]
	}
	return chain
}

// Terms returns all labels sorted alphabetically, for datalist suggestions.
func (t *Thesaurus) Terms() []string {
	terms := make([]string, 0, len(t.byURI))
	for _, concept := range t.byURI {
		terms = append(terms, concept.Label)
	}
	sort.Strings(terms)
	return terms
}

// Tree returns the full scheme as a forest of top-level domains with their
// narrower concepts nested beneath, in label order.
func (t *Thesaurus) Tree() []*Node {
	var roots []*Node
	for _, uri := range t.order {
		concept := t.byURI[uri]
		if len(concept.Broader) == 0 {
			roots = append(roots, t.Branch(uri))
		}
	}
	sortNodes(roots)
	return roots
}

// Branch returns the subtree rooted at the given concept, or nil when the
// concept is unknown.
func (t *Thesaurus) Branch(uri string) *Node {
	return t.branch(uri, make(map[string]bool))
}

func (t *Thesaurus) branch(uri string, seen map[string]bool) *Node {
	concept, ok := t.byURI[uri]
	if !ok || seen[uri] {
		return nil
	}
	seen[uri] = true
	node := &Node{Concept: concept}
	for _, child := range t.narrower[uri] {
		if sub := t.branch(child, seen); sub != nil {
			node.Narrower = append(node.Narrower, sub)
		}
	}
	sortNodes(node.Narrower)
	return node
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Label < nodes[j].Label
	})
}
