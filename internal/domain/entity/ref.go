package entity

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Ref points at another entity. The API returns references either as a raw id string
// or as an expanded object such as {"_id":"u1","name":"..."}; both decode to the same Ref.
type Ref struct {
	ID   string
	Name string // Only set when the reference arrived expanded.
}

// NewRef builds a Ref from a raw id.
func NewRef(id string) Ref {
	return Ref{ID: id}
}

// UnmarshalJSON accepts null, a string id or an object carrying `_id` (or `id`).
func (r *Ref) UnmarshalJSON(data []byte) error {
	value := gjson.ParseBytes(data)

	switch {
	case value.Type == gjson.Null:
		*r = Ref{}
	case value.Type == gjson.String:
		*r = Ref{ID: value.String()}
	case value.IsObject():
		id := value.Get("_id")
		if !id.Exists() {
			id = value.Get("id")
		}
		*r = Ref{ID: id.String(), Name: value.Get("name").String()}
	default:
		return errors.Errorf("unsupported reference shape: %s", value.Raw)
	}

	return nil
}

// MarshalJSON always writes the raw id.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Is reports whether the reference points at id.
func (r Ref) Is(id string) bool {
	return id != "" && r.ID == id
}
