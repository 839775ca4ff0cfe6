package recommendation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerValue is the answer given to one question: a single value or a list.
// The original shape is kept so it round-trips through JSON unchanged.
type AnswerValue struct {
	Values   []string
	Multiple bool
}

func Single(value string) AnswerValue {
	return AnswerValue{Values: []string{value}}
}

func Multi(values ...string) AnswerValue {
	return AnswerValue{Values: values, Multiple: true}
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.Multiple {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	if len(a.Values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.Values[0])
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = AnswerValue{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Single(s)
		return nil
	case len(data) > 0 && data[0] == '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("answer list must contain strings: %w", err)
		}
		*a = Multi(values...)
		return nil
	default:
		return fmt.Errorf("answer must be a string or a list of strings, got %s", string(data))
	}
}

// Answers maps a question id to the answer given.
type Answers map[string]AnswerValue

// Clone returns a deep copy so callers can mutate freely.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		values := make([]string, len(v.Values))
		copy(values, v.Values)
		out[k] = AnswerValue{Values: values, Multiple: v.Multiple}
	}
	return out
}
