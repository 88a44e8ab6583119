package domain

// AssociationSpec is a single association type descriptor as supplied in the
// v4 create-association request body.
type AssociationSpec struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int64  `json:"associationTypeId"`
}

// AssociationType classifies a link in the compact listing view.
type AssociationType struct {
	Category string `json:"category"`
	TypeID   int64  `json:"typeId"`
}

// AssociationRecord is one directed link to a target object, carrying every
// type descriptor it was created with, in request order.
type AssociationRecord struct {
	ToObjectID int64             `json:"toObjectId"`
	Types      []AssociationType `json:"associationTypes"`
}

// AssociationSummary is the reduced view used in an object read's
// associations expansion. Only the first descriptor's category is surfaced.
type AssociationSummary struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// AssociationExpansion wraps the summaries attached under a pluralized type
// key on an expanded object read.
type AssociationExpansion struct {
	Results []AssociationSummary `json:"results"`
}
