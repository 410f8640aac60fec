package bridge

import (
	"time"

	"github.com/gogotex/bridges/internal/bridge/pager"
)

// Bridge is a single record of the Bridges collection. ID is a time-sortable
// token and doubles as the sort key inside the collection's partition.
type Bridge struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Description *string    `json:"description" bson:"description,omitempty"`
	CreatedOn   time.Time  `json:"createdOn" bson:"createdOn"`
	SavedOn     time.Time  `json:"savedOn" bson:"savedOn"`
	CreatedBy   *CreatedBy `json:"createdBy" bson:"createdBy,omitempty"`
	Version     string     `json:"version,omitempty" bson:"version,omitempty"`
}

// CreatedBy is the audit snapshot of the identity that created a record.
type CreatedBy struct {
	ID          string `json:"id" bson:"id"`
	Type        string `json:"type" bson:"type"`
	DisplayName string `json:"displayName" bson:"displayName"`
}

// Key returns the record's sort key.
func (b *Bridge) Key() string { return b.ID }

type CreateInput struct {
	Title       string
	Description *string
}

// UpdateInput holds the fields to merge over an existing record; nil fields
// are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
}

// ListParams are the listBridges arguments.
type ListParams = pager.Request

// List is one page of bridges plus the cursors around it.
type List = pager.Page[*Bridge]
