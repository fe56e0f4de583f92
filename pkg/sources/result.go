package sources

import (
	"encoding/json"
	"fmt"
)

// Reason classifies why a source could not be fetched.
type Reason string

const (
	ReasonNetwork     Reason = "network_failure"
	ReasonStatus      Reason = "non_success_status"
	ReasonMalformed   Reason = "malformed_payload"
	ReasonCredentials Reason = "rejected_credentials"
	ReasonEmpty       Reason = "empty_payload"
)

// Unavailable describes a failed fetch. It is carried in a Result, never returned as an error.
type Unavailable struct {
	SourceID   string
	Reason     Reason
	StatusCode int
	Err        error
}

func (u *Unavailable) Error() string {
	if u == nil {
		return ""
	}
	if u.Err == nil {
		return fmt.Sprintf("%s unavailable: %s", u.SourceID, u.Reason)
	}
	return fmt.Sprintf("%s unavailable: %s: %v", u.SourceID, u.Reason, u.Err)
}

func (u *Unavailable) Unwrap() error {
	if u == nil {
		return nil
	}
	return u.Err
}

// Record is one decoded JSON object as returned by a source.
// Numbers are kept as json.Number.
type Record map[string]any

// String returns the string stored at key, or fallback when the key is absent,
// null or not a string. A present empty string is returned as is.
func (r Record) String(key, fallback string) string {
	raw, ok := r[key]
	if !ok || raw == nil {
		return fallback
	}
	val, ok := raw.(string)
	if !ok {
		return fallback
	}
	return val
}

// Number returns the JSON number stored at key.
func (r Record) Number(key string) (json.Number, bool) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return "", false
	}
	num, ok := raw.(json.Number)
	return num, ok
}

// Result is the typed outcome of a single fetch.
type Result struct {
	SourceID    string
	Records     []Record
	Unavailable *Unavailable
}

// Available reports whether the fetch produced data.
func (r Result) Available() bool { return r.Unavailable == nil }

// Ok builds an available result.
func Ok(sourceID string, records []Record) Result {
	return Result{SourceID: sourceID, Records: records}
}

// Fail builds an unavailable result.
func Fail(sourceID string, reason Reason, status int, err error) Result {
	return Result{
		SourceID: sourceID,
		Unavailable: &Unavailable{
			SourceID:   sourceID,
			Reason:     reason,
			StatusCode: status,
			Err:        err,
		},
	}
}
