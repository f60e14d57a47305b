package llm

import (
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1]\n```", `[1]`},
		{"surrounding space", "  \n```json{\"a\":1}```  ", `{"a":1}`},
		{"prose after fence", "```json\n{\"a\":1}\n```\nHope this helps!", `{"a":1}`},
		{"unterminated fence", "```json\n[1]", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseObject(t *testing.T) {
	var out struct {
		Strengths []string `json:"strengths"`
		Summary   string   `json:"summary"`
	}
	if err := ParseObject("```json\n{\"strengths\":[\"SQL\"],\"summary\":\"ok\"}\n```", &out); err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	if len(out.Strengths) != 1 || out.Summary != "ok" {
		t.Errorf("decoded = %+v", out)
	}

	out.Summary = ""
	if err := ParseObject("```json\n{\"summary\":\"trailing\"}\n```\nHope this helps!", &out); err != nil {
		t.Fatalf("ParseObject with trailing prose: %v", err)
	}
	if out.Summary != "trailing" {
		t.Errorf("summary = %q, want trailing", out.Summary)
	}

	err := ParseObject("not json", &out)
	if KindOf(err) != KindMalformedResponse {
		t.Errorf("KindOf(err) = %v, want malformed", KindOf(err))
	}
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{
			name: "array",
			in: "```json\n[" +
				`{"question":"Q1","options":{"A":"a","B":"b","C":"c","D":"d"},"correct_option":"A"},` +
				`{"question":"Q2","options":{"A":"a","B":"b","C":"c","D":"d"},"correct_option":"B"}` +
				"]\n```",
			want: 2,
		},
		{
			name: "single object",
			in:   `{"question":"Q1","options":{"A":"a","B":"b"},"correct_option":"A"}`,
			want: 1,
		},
		{
			name: "drops incomplete items",
			in: `[{"question":"Q1","options":{"A":"a"},"correct_option":"A"},` +
				`{"question":"Q2","options":{"A":"a"}},` +
				`{"options":{"A":"a"},"correct_option":"A"}]`,
			want: 1,
		},
		{
			name: "repairs bare option letter",
			in: `[{"question":"Q1","options":{"A":"a","B":"b"},"correct_option": B},` +
				`{"question":"Q2","options":{"A":"a","B":"b"},"correct_option":"A"}]`,
			want: 2,
		},
		{
			name: "prose after closing fence",
			in: "```json\n[" +
				`{"question":"Q1","options":{"A":"a","B":"b","C":"c","D":"d"},"correct_option":"A"}` +
				"]\n```\nLet me know if you need more.",
			want: 1,
		},
		{name: "garbage", in: "I cannot help with that", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestions(tt.in)
			if tt.wantErr {
				if KindOf(err) != KindMalformedResponse {
					t.Fatalf("err = %v, want malformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuestions: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d (%+v)", len(got), tt.want, got)
			}
		})
	}
}

func TestParseQuestionsRepairedValue(t *testing.T) {
	got, err := ParseQuestions(`[{"question":"Q1","options":{"A":"a","B":"b"},"correct_option": B},` +
		`{"question":"Q2","options":{"A":"a","B":"b"},"correct_option":"A"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CorrectOption != "B" || got[0].Options["A"] != "a" {
		t.Errorf("question = %+v", got[0])
	}
}

func TestErrorClassification(t *testing.T) {
	base := errors.New("boom")
	err := newError(KindRateLimited, "gemini", base)
	wrapped := errors.Join(errors.New("ctx"), err)

	if !IsRateLimited(wrapped) {
		t.Error("IsRateLimited(wrapped) = false")
	}
	if !errors.Is(err, base) {
		t.Error("Unwrap does not expose the cause")
	}
	if IsRateLimited(base) || KindOf(base) != 0 {
		t.Error("plain error classified as llm error")
	}
}
