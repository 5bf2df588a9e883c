package vocab

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func embeddedThesaurus(t *testing.T) *Thesaurus {
	t.Helper()
	th, err := Embedded()
	if err != nil {
		t.Fatalf("embedded scheme: %v", err)
	}
	return th
}

func TestLabelLookups(t *testing.T) {
	th := embeddedThesaurus(t)

	const geology = "http://vocabularies.unesco.org/thesaurus/concept158"
	if got := th.Label(geology); got != "Geology" {
		t.Fatalf("Label = %q, want Geology", got)
	}
	if got := th.URI("geology"); got != geology {
		t.Fatalf("URI lookup should be case-insensitive, got %q", got)
	}
	if got := th.URI("no such term"); got != "" {
		t.Fatalf("unknown term resolved to %q", got)
	}
	if th.Label("http://example.com/unknown") != "" {
		t.Fatalf("unknown uri should yield empty label")
	}
}

func TestLongLabel(t *testing.T) {
	th := embeddedThesaurus(t)

	cases := map[string]string{
		"http://vocabularies.unesco.org/thesaurus/concept158": "Geology < Earth sciences",
		"http://vocabularies.unesco.org/thesaurus/domain1":    "Science",
		"http://vocabularies.unesco.org/thesaurus/concept3052": "Marine biology < Oceanography",
	}
	for uri, want := range cases {
		if got := th.LongLabel(uri); got != want {
			t.Errorf("LongLabel(%s) = %q, want %q", uri, got, want)
		}
	}
}

func TestAncestry(t *testing.T) {
	th := embeddedThesaurus(t)

	chain := th.Ancestry("http://vocabularies.unesco.org/thesaurus/concept6081")
	labels := make([]string, 0, len(chain))
	for _, concept := range chain {
		labels = append(labels, concept.Label)
	}
	want := []string{"Information and communication", "Information sciences", "Documentation", "Cataloguing"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("ancestry mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeAndBranch(t *testing.T) {
	th := embeddedThesaurus(t)

	tree := th.Tree()
	if len(tree) != 3 {
		t.Fatalf("tree root count = %d, want 3", len(tree))
	}
	// Roots sort by label.
	if tree[0].Label != "Culture" || tree[2].Label != "Science" {
		t.Fatalf("unexpected root order: %s .. %s", tree[0].Label, tree[2].Label)
	}

	branch := th.Branch("http://vocabularies.unesco.org/thesaurus/mt1.05")
	if branch == nil {
		t.Fatalf("branch missing")
	}
	labels := make([]string, 0, len(branch.Narrower))
	for _, node := range branch.Narrower {
		labels = append(labels, node.Label)
	}
	want := []string{"Geology", "Geophysics", "Oceanography"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("branch children mismatch (-want +got):\n%s", diff)
	}

	if th.Branch("http://example.com/none") != nil {
		t.Fatalf("unknown branch should be nil")
	}
}

func TestParseRejectsBadSchemes(t *testing.T) {
	if _, err := Parse([]byte("scheme: Empty\nconcepts: []\n")); err == nil {
		t.Fatalf("expected error for empty scheme")
	}
	bad := []byte("concepts:\n  - uri: http://a\n    label: A\n  - uri: http://a\n    label: B\n")
	if _, err := Parse(bad); err == nil {
		t.Fatalf("expected error for duplicate concept")
	}
}
