package model

import "go.mongodb.org/mongo-driver/bson"

// Event reports a newly created document. ParentID is the product id for
// reviews and empty otherwise. Document may be nil when the source had no
// data attached.
type Event struct {
	Kind       string   `json:"kind"`
	DocumentID string   `json:"documentId"`
	ParentID   string   `json:"parentId,omitempty"`
	Document   bson.Raw `json:"-"`
}
