// Package apimock serves a fixture-backed Property API for local
// development and tests.
package apimock

import (
	"fmt"

	"propview/internal/propertyapi"
)

// Fixtures is the data the mock API serves.
type Fixtures struct {
	Summary    propertyapi.Document
	Properties []propertyapi.Property
	// Details maps a zpid lookup key to its detail document.
	Details map[string]propertyapi.Document
}

// DefaultFixtures returns a small Fort Worth sample set whose summary
// is consistent with the list. Documents are written in the key order a
// real API response would use.
func DefaultFixtures() Fixtures {
	props := []propertyapi.Property{
		{ZPID: "29141010", StreetAddress: "4312 Birchman Ave"},
		{ZPID: "29141725", StreetAddress: "2116 Western Ave"},
		{ZPID: "29203568", StreetAddress: "6601 Ridgecrest Dr"},
	}
	prices := []int{415000, 389900, 254500}
	beds := []int{3, 3, 4}

	details := make(map[string]propertyapi.Document, len(props))
	total := 0
	for i, p := range props {
		total += prices[i]
		details[p.Key()] = propertyapi.Document(fmt.Sprintf(
			`{"zpid":%s,"street_address":%q,"city":"Fort Worth","state":"TX","price":%d,"bedrooms":%d,"status":"FOR_SALE"}`,
			p.ZPID, p.StreetAddress, prices[i], beds[i]))
	}

	return Fixtures{
		Summary: propertyapi.Document(fmt.Sprintf(
			`{"total":%d,"average_price":%d,"city":"Fort Worth"}`,
			len(props), total/len(props))),
		Properties: props,
		Details:    details,
	}
}
