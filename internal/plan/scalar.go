package plan

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Scalar is a response value kept exactly as the service sent it.
// Numbers and booleans keep their literal token ("350.0" stays "350.0").
type Scalar struct {
	text    string
	literal bool
}

// Text returns a string scalar.
func Text(s string) Scalar { return Scalar{text: s} }

// Literal returns a number or boolean scalar from its JSON token.
func Literal(token string) Scalar { return Scalar{text: token, literal: true} }

func (s Scalar) String() string { return s.text }

// IsZero reports whether the value was absent or null.
func (s Scalar) IsZero() bool { return s.text == "" && !s.literal }

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = Scalar{}
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Text(str)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a scalar, got %s", data[:1])
	default:
		*s = Literal(string(data))
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	if s.literal {
		return []byte(s.text), nil
	}
	return json.Marshal(s.text)
}

func (s Scalar) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: s.text}
	if !s.literal {
		n.Tag = "!!str"
	}
	return n, nil
}
