package sessionstore

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/skillsprint/skillsprint-backend/internal/model"
)

func intPtr(n int) *int { return &n }

func TestEncodeDocumentTaggedShape(t *testing.T) {
	attempts := []model.QuestionAttempt{
		{Type: model.TypeMultichoice, QuestionID: 42, Result: nil, TimeUsed: nil, TimeLimit: intPtr(30)},
	}

	raw, err := EncodeDocument(attempts)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	var records []map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("unmarshal wire form: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	m := records[0]["M"]
	if m == nil {
		t.Fatal("record missing M wrapper")
	}

	checks := []struct {
		field string
		want  string
	}{
		{"type", `{"S":"multichoiceQuestion"}`},
		{"question_id", `{"N":"42"}`},
		{"result", `{"NULL":true}`},
		{"time_used", `{"NULL":true}`},
		{"time_limit", `{"N":"30"}`},
	}
	for _, c := range checks {
		got, ok := m[c.field]
		if !ok {
			t.Errorf("field %s missing from wire form", c.field)
			continue
		}
		if string(got) != c.want {
			t.Errorf("field %s = %s, want %s", c.field, got, c.want)
		}
	}
}

func TestCodecRoundTripPreservesOrderAndNulls(t *testing.T) {
	attempts := []model.QuestionAttempt{
		{Type: model.TypeMultichoice, QuestionID: 7, Result: intPtr(1), TimeUsed: intPtr(12), TimeLimit: intPtr(30)},
		{Type: model.TypeStudyNote, QuestionID: 3, Result: nil, TimeUsed: nil, TimeLimit: nil},
		{Type: model.TypeNumerical, QuestionID: 9, Result: intPtr(0), TimeUsed: intPtr(45), TimeLimit: intPtr(60)},
	}

	raw, err := EncodeDocument(attempts)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	decoded, err := DecodeDocument(raw)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}

	if len(decoded) != len(attempts) {
		t.Fatalf("expected %d attempts, got %d", len(attempts), len(decoded))
	}
	for i, want := range attempts {
		got := decoded[i]
		if got.Type != want.Type || got.QuestionID != want.QuestionID {
			t.Errorf("attempt %d: got (%s, %d), want (%s, %d)", i, got.Type, got.QuestionID, want.Type, want.QuestionID)
		}
		if !intPtrEqual(got.Result, want.Result) {
			t.Errorf("attempt %d: result mismatch", i)
		}
		if !intPtrEqual(got.TimeUsed, want.TimeUsed) {
			t.Errorf("attempt %d: time_used mismatch", i)
		}
		if !intPtrEqual(got.TimeLimit, want.TimeLimit) {
			t.Errorf("attempt %d: time_limit mismatch", i)
		}
	}
}

func TestCodecDistinguishesZeroFromNull(t *testing.T) {
	attempts := []model.QuestionAttempt{
		{Type: model.TypeMultichoice, QuestionID: 1, Result: intPtr(0)},
		{Type: model.TypeMultichoice, QuestionID: 2, Result: nil},
	}

	raw, err := EncodeDocument(attempts)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	decoded, err := DecodeDocument(raw)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}

	if decoded[0].Result == nil || *decoded[0].Result != 0 {
		t.Error("graded-but-zero result decoded as ungraded")
	}
	if decoded[1].Result != nil {
		t.Error("ungraded result decoded as graded")
	}
}

func TestEncodeDocumentEmpty(t *testing.T) {
	raw, err := EncodeDocument(nil)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("empty document = %s, want []", raw)
	}

	decoded, err := DecodeDocument(raw)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty document, got %d attempts", len(decoded))
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantSub string
	}{
		{"not json", "{", "decode session document"},
		{"missing type", `[{"M":{"question_id":{"N":"1"}}}]`, "missing type"},
		{"missing question_id", `[{"M":{"type":{"S":"studyNote"}}}]`, "missing question_id"},
		{"bad question_id", `[{"M":{"type":{"S":"studyNote"},"question_id":{"N":"abc"}}}]`, "question_id"},
		{"bad result", `[{"M":{"type":{"S":"studyNote"},"question_id":{"N":"1"},"result":{"N":"x"}}}]`, "result"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tc.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
