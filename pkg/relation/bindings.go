package relation

import (
	"github.com/goliatone/go-catalog/pkg/record"
)

// Predicates used in the relations graph. Subjects always own the forward
// statement; inverse bindings query the same predicate from the object side.
const (
	PredicateMaintainer      = "maintainer"
	PredicateFunder          = "funder"
	PredicateUser            = "user"
	PredicateParentScheme    = "parent scheme"
	PredicateInputScheme     = "input scheme"
	PredicateOutputScheme    = "output scheme"
	PredicateSupportedScheme = "supported scheme"
	PredicateEndorsedScheme  = "endorsed scheme"
)

// Binding ties a form-field name to a predicate and a direction. Forward
// bindings list objects of statements where the edited record is the subject;
// inverse bindings list subjects of statements pointing at the edited record.
type Binding struct {
	Field     string
	Predicate string
	Target    record.Series
	Inverse   bool
}

// schemeBindings drive both the scheme edit form and the scheme display view.
var schemeBindings = []Binding{
	{Field: "parent_schemes", Predicate: PredicateParentScheme, Target: record.SeriesScheme},
	{Field: "child_schemes", Predicate: PredicateParentScheme, Target: record.SeriesScheme, Inverse: true},
	{Field: "input_to_mappings", Predicate: PredicateInputScheme, Target: record.SeriesMapping, Inverse: true},
	{Field: "output_from_mappings", Predicate: PredicateOutputScheme, Target: record.SeriesMapping, Inverse: true},
	{Field: "maintainers", Predicate: PredicateMaintainer, Target: record.SeriesOrganization},
	{Field: "funders", Predicate: PredicateFunder, Target: record.SeriesOrganization},
	{Field: "users", Predicate: PredicateUser, Target: record.SeriesOrganization},
	{Field: "tools", Predicate: PredicateSupportedScheme, Target: record.SeriesTool, Inverse: true},
	{Field: "endorsements", Predicate: PredicateEndorsedScheme, Target: record.SeriesEndorsement, Inverse: true},
}

var organizationBindings = []Binding{
	{Field: "maintained_schemes", Predicate: PredicateMaintainer, Target: record.SeriesScheme, Inverse: true},
	{Field: "funded_schemes", Predicate: PredicateFunder, Target: record.SeriesScheme, Inverse: true},
	{Field: "used_schemes", Predicate: PredicateUser, Target: record.SeriesScheme, Inverse: true},
}

var toolBindings = []Binding{
	{Field: "supported_schemes", Predicate: PredicateSupportedScheme, Target: record.SeriesScheme},
	{Field: "maintainers", Predicate: PredicateMaintainer, Target: record.SeriesOrganization},
	{Field: "funders", Predicate: PredicateFunder, Target: record.SeriesOrganization},
}

var mappingBindings = []Binding{
	{Field: "input_schemes", Predicate: PredicateInputScheme, Target: record.SeriesScheme},
	{Field: "output_schemes", Predicate: PredicateOutputScheme, Target: record.SeriesScheme},
	{Field: "maintainers", Predicate: PredicateMaintainer, Target: record.SeriesOrganization},
	{Field: "funders", Predicate: PredicateFunder, Target: record.SeriesOrganization},
}

var endorsementBindings = []Binding{
	{Field: "endorsed_schemes", Predicate: PredicateEndorsedScheme, Target: record.SeriesScheme},
	{Field: "originators", Predicate: PredicateMaintainer, Target: record.SeriesOrganization},
}

// schemeSchemeFields name the scheme bindings grouped under the single
// "related schemes" heading on the scheme display page.
var schemeSchemeFields = map[string]struct{}{
	"parent_schemes":       {},
	"child_schemes":        {},
	"input_to_mappings":    {},
	"output_from_mappings": {},
}

// Bindings returns the relation bindings for a series. Datatypes carry no
// relations.
func Bindings(series record.Series) []Binding {
	var src []Binding
	switch series {
	case record.SeriesScheme:
		src = schemeBindings
	case record.SeriesOrganization:
		src = organizationBindings
	case record.SeriesTool:
		src = toolBindings
	case record.SeriesMapping:
		src = mappingBindings
	case record.SeriesEndorsement:
		src = endorsementBindings
	default:
		return nil
	}
	out := make([]Binding, len(src))
	copy(out, src)
	return out
}

// BindingFor looks up a binding by series and field name.
func BindingFor(series record.Series, field string) (Binding, bool) {
	for _, b := range Bindings(series) {
		if b.Field == field {
			return b, true
		}
	}
	return Binding{}, false
}

// IsSchemeGrouping reports whether the scheme display view groups the given
// field under the shared "related schemes" heading.
func IsSchemeGrouping(field string) bool {
	_, ok := schemeSchemeFields[field]
	return ok
}
