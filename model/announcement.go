package model

type Announcement struct {
	ID      string `bson:"_id,omitempty" json:"id"`
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Message string `bson:"message,omitempty" json:"message,omitempty"`
	Link    string `bson:"link,omitempty" json:"link,omitempty"`
}
