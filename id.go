package invoicer

import "github.com/xraph/invoicer/id"

// ID is the identifier type for invoice records.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
