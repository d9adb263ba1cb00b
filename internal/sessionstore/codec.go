package sessionstore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// The store-level document is a JSON list of tagged records:
//
//	[{"M":{"type":{"S":"multichoiceQuestion"},"question_id":{"N":"42"},
//	       "result":{"NULL":true},"time_used":{"NULL":true},"time_limit":{"N":"30"}}}]
//
// Every scalar carries a primitive-kind tag (S string, N number, NULL).
// Numbers travel as strings under "N". The explicit NULL marker is load
// bearing: result=0 (graded wrong) must stay distinguishable from
// result=null (not yet graded).

// taggedValue is one tagged scalar. Exactly one field is set.
type taggedValue struct {
	S    *string `json:"S,omitempty"`
	N    *string `json:"N,omitempty"`
	Null bool    `json:"NULL,omitempty"`
}

// taggedRecord is one attempt as stored: a map of field name to tagged scalar.
type taggedRecord struct {
	M map[string]taggedValue `json:"M"`
}

// EncodeDocument serializes a session document into its tagged wire form.
func EncodeDocument(attempts []model.QuestionAttempt) ([]byte, error) {
	records := make([]taggedRecord, 0, len(attempts))
	for _, a := range attempts {
		records = append(records, taggedRecord{M: map[string]taggedValue{
			"type":        stringValue(string(a.Type)),
			"question_id": numberValue(strconv.FormatInt(a.QuestionID, 10)),
			"result":      nullableIntValue(a.Result),
			"time_used":   nullableIntValue(a.TimeUsed),
			"time_limit":  nullableIntValue(a.TimeLimit),
		}})
	}
	return json.Marshal(records)
}

// DecodeDocument parses the tagged wire form back into attempts, preserving
// record order.
func DecodeDocument(raw []byte) ([]model.QuestionAttempt, error) {
	var records []taggedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode session document: %w", err)
	}

	attempts := make([]model.QuestionAttempt, 0, len(records))
	for i, rec := range records {
		a, err := decodeRecord(rec.M)
		if err != nil {
			return nil, fmt.Errorf("decode session document record %d: %w", i, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func decodeRecord(m map[string]taggedValue) (model.QuestionAttempt, error) {
	var a model.QuestionAttempt

	typ, ok := m["type"]
	if !ok || typ.S == nil {
		return a, fmt.Errorf("missing type field")
	}
	a.Type = model.QuestionType(*typ.S)

	qid, ok := m["question_id"]
	if !ok || qid.N == nil {
		return a, fmt.Errorf("missing question_id field")
	}
	id, err := strconv.ParseInt(*qid.N, 10, 64)
	if err != nil {
		return a, fmt.Errorf("question_id: %w", err)
	}
	a.QuestionID = id

	if a.Result, err = decodeNullableInt(m, "result"); err != nil {
		return a, err
	}
	if a.TimeUsed, err = decodeNullableInt(m, "time_used"); err != nil {
		return a, err
	}
	if a.TimeLimit, err = decodeNullableInt(m, "time_limit"); err != nil {
		return a, err
	}
	return a, nil
}

// decodeNullableInt maps an explicit NULL marker (or an absent field) to nil.
func decodeNullableInt(m map[string]taggedValue, name string) (*int, error) {
	v, ok := m[name]
	if !ok || v.Null || v.N == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*v.N)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &n, nil
}

func stringValue(s string) taggedValue {
	return taggedValue{S: &s}
}

func numberValue(n string) taggedValue {
	return taggedValue{N: &n}
}

func nullableIntValue(p *int) taggedValue {
	if p == nil {
		return taggedValue{Null: true}
	}
	n := strconv.Itoa(*p)
	return taggedValue{N: &n}
}
