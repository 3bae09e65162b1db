// Package render turns a controller snapshot into the plain-text view:
// heading, summary dump, address list and the lookup form with its detail
// dump. The interactive UI styles the same sections.
package render

import (
	"strings"

	"propview/internal/jsonutil"
	"propview/internal/propertyapi"
	"propview/internal/viewctl"
)

// Headings and placeholders of the rendered surface.
const (
	Heading        = "Property Data"
	SummaryHeading = "Properties Summary"
	ListHeading    = "All Properties"
	DetailHeading  = "Property Details"

	SummaryLoading  = "Loading properties summary..."
	ListLoading     = "Loading properties..."
	DetailNotFound  = "No property details found."
	KeyPlaceholder  = "Enter ZPID"
	DetailButton    = "[ Get Property Details ]"
	listItemPrefix  = "- "
	keyFieldLabel   = "ZPID: "
	unrenderableDoc = "<unrenderable document>"
)

// Summary renders the summary section body.
func Summary(doc propertyapi.Document) string {
	if doc == nil {
		return SummaryLoading
	}
	return Document(doc)
}

// Detail renders the detail section body.
func Detail(doc propertyapi.Document) string {
	if doc == nil {
		return DetailNotFound
	}
	return Document(doc)
}

// Document pretty-prints an opaque document in the API's key order. Equal
// documents always render to identical text.
func Document(doc propertyapi.Document) string {
	s, err := jsonutil.Pretty(doc)
	if err != nil {
		return unrenderableDoc
	}
	return s
}

// ListItems returns one line per property in API order, or nil when the
// list is empty.
func ListItems(props []propertyapi.Property) []string {
	if len(props) == 0 {
		return nil
	}
	lines := make([]string, len(props))
	for i, p := range props {
		lines[i] = listItemPrefix + p.DisplayAddress()
	}
	return lines
}

// List renders the list section body.
func List(props []propertyapi.Property) string {
	items := ListItems(props)
	if items == nil {
		return ListLoading
	}
	return strings.Join(items, "\n")
}

// KeyField renders the lookup input line.
func KeyField(key string) string {
	if key == "" {
		return keyFieldLabel + KeyPlaceholder
	}
	return keyFieldLabel + key
}

// Render renders the whole view for s.
func Render(s viewctl.Snapshot) string {
	var b strings.Builder
	b.WriteString(Heading + "\n\n")

	b.WriteString(SummaryHeading + "\n")
	b.WriteString(Summary(s.Summary) + "\n\n")

	b.WriteString(ListHeading + "\n")
	b.WriteString(List(s.Properties) + "\n\n")

	b.WriteString(DetailHeading + "\n")
	b.WriteString(KeyField(s.LookupKey) + "\n")
	b.WriteString(DetailButton + "\n")
	b.WriteString(Detail(s.Detail) + "\n")
	return b.String()
}
