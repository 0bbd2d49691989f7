package executor

import (
	"bytes"
	"encoding/json"
)

// GraphQLError is an error located within the response tree.
type GraphQLError struct {
	Message string `json:"message"`
	Path    Path   `json:"path,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ExecutionResult is the outcome of executing one GraphQL operation.
// Data is nil when validation or variable coercion failed.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// resultMap is a response object that keeps fields in the order they were
// selected in the query document, as the GraphQL spec requires, including
// through JSON marshaling.
type resultMap struct {
	keys   []string
	values map[string]any
}

func newResultMap(capacity int) *resultMap {
	return &resultMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (m *resultMap) set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *resultMap) get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *resultMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
