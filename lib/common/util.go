package common

import (
	"encoding/json"
	"os"
)

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

// GetENVValues returns the value of the first non-empty variable in keys.
func GetENVValues(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if v := GetENVValue(key, ""); len(v) > 0 {
			return v
		}
	}

	return defaultValue
}

func EncodeJSONValue(o interface{}) ([]byte, error) {
	return json.Marshal(o)
}

func DecodeJSONValue(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}
