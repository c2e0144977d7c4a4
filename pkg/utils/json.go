package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var prettyJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var v any
		if err := prettyJSON.Unmarshal(raw, &v); err != nil {
			return string(raw)
		}
		in = v
	}

	buffer, err := prettyJSON.MarshalIndent(in, "", "  ")
	if err != nil {
		fmt.Println(err)
		return ""
	}

	return string(buffer)
}
