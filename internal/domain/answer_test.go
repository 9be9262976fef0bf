package domain

import (
	"encoding/json"
	"testing"
)

func TestAnswersDecodeScalarAndList(t *testing.T) {
	var answers map[string]AnswerValue
	if err := json.Unmarshal([]byte(`{"q2":[1,2],"q5":2,"q7":"3","q8":null}`), &answers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !answers["q2"].IsList() || len(answers["q2"].Indices()) != 2 {
		t.Fatalf("expected list for q2, got %+v", answers["q2"])
	}
	if answers["q5"].IsList() || answers["q5"].Indices()[0] != 2 {
		t.Fatalf("expected scalar 2 for q5, got %+v", answers["q5"])
	}
	if answers["q7"].Indices()[0] != 3 {
		t.Fatalf("expected quoted index to decode, got %+v", answers["q7"])
	}
	if len(answers["q8"].Indices()) != 0 {
		t.Fatalf("expected null to decode as empty, got %+v", answers["q8"])
	}

	out, err := json.Marshal(map[string]AnswerValue{"q5": answers["q5"]})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != `{"q5":2}` {
		t.Fatalf("expected scalar shape preserved, got %s", out)
	}
}

func TestAnswerRejectsFractions(t *testing.T) {
	var v AnswerValue
	if err := json.Unmarshal([]byte(`1.5`), &v); err == nil {
		t.Fatalf("expected error for fractional index")
	}
}

func TestOptionSetDecodeForms(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `"1,2"`, want: "1,2"},
		{raw: `"2, 1, 2"`, want: "1,2"},
		{raw: `2`, want: "2"},
		{raw: `[3,0]`, want: "0,3"},
		{raw: `""`, want: ""},
	}
	for _, tc := range tests {
		var s OptionSet
		if err := json.Unmarshal([]byte(tc.raw), &s); err != nil {
			t.Fatalf("decode %s: %v", tc.raw, err)
		}
		if s.String() != tc.want {
			t.Fatalf("decode %s = %q, want %q", tc.raw, s.String(), tc.want)
		}
	}

	var bad OptionSet
	if err := json.Unmarshal([]byte(`"1,x"`), &bad); err == nil {
		t.Fatalf("expected error for non-integer option")
	}
}

func TestQuestionDecodesStoredRecord(t *testing.T) {
	raw := `{ "quiz_id": "final", "order": 2, "correct_options": "1,2", "marks": 2, "multiple_choice": true, "options": ["Fad", "LLM + Tools", "Fundamental aspect of Agentic AI", "FOMO"], "question": "What is an Agent?"}`
	var q Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Ref() != "q2" || !q.CorrectOptions.Equal(NewOptionSet(1, 2)) || len(q.Options) != 4 {
		t.Fatalf("unexpected question %+v", q)
	}
}
