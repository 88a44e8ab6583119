package domain

import "fmt"

// ResourceType identifies one of the four first-class CRM object categories.
// The value is the plural collection name used in URL paths ("contacts").
type ResourceType string

// The closed set of resource types served by the API.
const (
	Contacts  ResourceType = "contacts"
	Companies ResourceType = "companies"
	Deals     ResourceType = "deals"
	Tickets   ResourceType = "tickets"
)

// ResourceTypes lists every resource type in a fixed order. Used for seeding
// and reset.
var ResourceTypes = []ResourceType{Contacts, Companies, Deals, Tickets}

// ParseResourceType resolves a path segment to a ResourceType. Both the
// plural collection name ("companies") and the singular display name
// ("company") are accepted; callers always work with the plural form.
func ParseResourceType(s string) (ResourceType, error) {
	switch s {
	case "contacts", "contact":
		return Contacts, nil
	case "companies", "company":
		return Companies, nil
	case "deals", "deal":
		return Deals, nil
	case "tickets", "ticket":
		return Tickets, nil
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

// String returns the plural collection name.
func (rt ResourceType) String() string { return string(rt) }

// Singular returns the display name used in propertyChange subscription
// types. The set of resource types is closed, so an unknown value can only
// come from a programming error; fail loudly rather than guess.
func (rt ResourceType) Singular() string {
	switch rt {
	case Contacts:
		return "contact"
	case Companies:
		return "company"
	case Deals:
		return "deal"
	case Tickets:
		return "ticket"
	}
	panic(fmt.Sprintf("resource type %q: singular name not implemented", rt))
}
