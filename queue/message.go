package queue

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/TestingSDK2/marketplace-notifier/model"
)

// message is the body of one queued "document created" event. Document is
// extended JSON, so ObjectIDs and dates survive the trip.
type message struct {
	Kind       string          `json:"kind"`
	DocumentID string          `json:"documentId"`
	ParentID   string          `json:"parentId"`
	Document   json.RawMessage `json:"document"`
}

// DecodeEvent turns a queue message body into an Event.
func DecodeEvent(body []byte) (model.Event, error) {
	var msg message
	if err := json.Unmarshal(body, &msg); err != nil {
		return model.Event{}, errors.Wrap(err, "unable to parse message body")
	}
	if msg.Kind == "" {
		return model.Event{}, errors.New("message has no kind")
	}

	event := model.Event{
		Kind:       msg.Kind,
		DocumentID: msg.DocumentID,
		ParentID:   msg.ParentID,
	}
	if len(msg.Document) == 0 || string(msg.Document) == "null" {
		return event, nil
	}

	raw, err := DocumentFromJSON(msg.Document)
	if err != nil {
		return model.Event{}, err
	}
	event.Document = raw
	return event, nil
}

// DocumentFromJSON converts a relaxed extended JSON object to BSON.
func DocumentFromJSON(data []byte) (bson.Raw, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to parse document")
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode document")
	}
	return raw, nil
}
