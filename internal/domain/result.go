package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ResultType tags a Result as success or failure on the wire.
type ResultType string

const (
	ResultOK  ResultType = "ok"
	ResultErr ResultType = "err"
)

// Result is the tagged outcome of a command at the boundary:
// {"type":"ok","value":...} or {"type":"err","value":<code>}.
type Result struct {
	Type  ResultType `json:"type"`
	Value any        `json:"value"`
}

// OK wraps a success value.
func OK(value any) Result {
	return Result{Type: ResultOK, Value: value}
}

// Err wraps a domain error as its numeric code.
func Err(err *Error) Result {
	return Result{Type: ResultErr, Value: err.Code()}
}

// IsOK reports whether the result is a success.
func (r Result) IsOK() bool { return r.Type == ResultOK }

// ErrCode returns the error code of a failed result, or 0.
func (r Result) ErrCode() int {
	if r.Type != ResultErr {
		return 0
	}
	switch v := r.Value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}

// ResultOf converts an operation outcome into a Result. Errors that are not
// domain errors cannot be expressed on the wire and are returned as-is.
func ResultOf(value any, err error) (Result, error) {
	if err == nil {
		return OK(value), nil
	}
	var de *Error
	if errors.As(err, &de) {
		return Err(de), nil
	}
	return Result{}, err
}

// UnmarshalJSON validates the tag.
func (r *Result) UnmarshalJSON(data []byte) error {
	type raw Result
	var tmp raw
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Type != ResultOK && tmp.Type != ResultErr {
		return fmt.Errorf("unknown result type %q", tmp.Type)
	}
	*r = Result(tmp)
	return nil
}
