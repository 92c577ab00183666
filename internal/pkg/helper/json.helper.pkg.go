package helper

import (
	"encoding/json"
)

// JSONToByte marshals payload for a text column or a message body.
func JSONToByte(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
