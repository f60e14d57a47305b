package model

import (
	"bytes"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// decodeOrDefault unmarshals a JSON column into T, returning the zero-length
// default when the column is empty, null or malformed.
func decodeOrDefault[T any](raw datatypes.JSON, def T) T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def
	}
	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return def
	}
	return out
}

func encodeJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

// StringList encodes names as a JSON array column, never "null".
func StringList(names []string) datatypes.JSON {
	if names == nil {
		names = []string{}
	}
	return encodeJSON(names)
}
