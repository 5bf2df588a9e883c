package views

import (
	"strconv"

	"github.com/goliatone/go-catalog/pkg/record"
)

// DisplayPath returns the display page path for a record, e.g. "/msc/m12".
func DisplayPath(id record.ID) string {
	return "/msc/" + string(id.Series) + strconv.Itoa(id.DocID)
}

// EditPath returns the edit page path for a record. Doc id zero addresses the
// blank form for the series.
func EditPath(id record.ID) string {
	return "/edit/" + string(id.Series) + strconv.Itoa(id.DocID)
}

// templateGlobals are the path helpers every template can call. They take the
// catalog identifier string so templates can link straight from stored ids.
func templateGlobals() map[string]any {
	return map[string]any{
		"urlFor":      pathFor(DisplayPath),
		"displayPath": pathFor(DisplayPath),
		"editPath":    pathFor(EditPath),
	}
}

func pathFor(build func(record.ID) string) func(string) string {
	return func(raw string) string {
		id, err := record.ParseID(raw)
		if err != nil {
			return ""
		}
		return build(id)
	}
}
