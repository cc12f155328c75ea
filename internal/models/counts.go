package models

import (
	"bytes"
	"encoding/json"
)

// KeyCount is a single name/count pair in a ranked aggregation.
type KeyCount struct {
	Key   string
	Count int64
}

// OrderedCounts is a ranked list of key/count pairs that marshals as a JSON
// object preserving its order. Chart clients rely on object key order for
// ranked bar and pie series, which a Go map would scramble.
type OrderedCounts []KeyCount

// MarshalJSON emits {"key": count, ...} in slice order.
func (oc OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kc := range oc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kc.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(kc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
