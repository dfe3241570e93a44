package models

// ProductID is the backend id of a product record in string form.
// Persistence strategies convert it to their native id type.
type ProductID string

// String returns the id as stored by the caller.
func (id ProductID) String() string {
	return string(id)
}

// Product identifies a product record.
type Product struct {
	ID   ProductID `json:"id"`
	Name string    `json:"name"`
}

// ImageEntry is an image found in a product folder. Identity is ID; Name is
// used for ordering and logs only.
type ImageEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// SequencedImage pairs a positional label with an image file id.
type SequencedImage struct {
	Sequence string `json:"sequence" bson:"sequence"`
	FileID   string `json:"fileId" bson:"fileId"`
}
