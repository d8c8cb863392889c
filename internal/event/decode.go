package event

import "encoding/json"

// DecodePayload converts an event payload into T. Payloads published in-process
// already hold T; anything else (dead-letter replays, maps) goes through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(data, &result)
	return result, err
}
