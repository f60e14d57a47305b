package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Question is one multiple-choice item as returned by the model.
type Question struct {
	Text          string
	Options       map[string]string
	CorrectOption string
}

// bareValue matches an unquoted token directly before a closing brace, e.g. `"correct_option": B}`.
var bareValue = regexp.MustCompile(`(\w+)\}(,|\s*\})`)

// StripFences keeps only the body of a leading ``` or ```json fence; anything
// after the closing fence is dropped.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// ParseObject decodes a fenced or bare JSON object into out.
func ParseObject(text string, out any) error {
	s := StripFences(text)
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return Malformed(err)
	}
	return nil
}

func repair(s string) string {
	return bareValue.ReplaceAllString(s, `"${1}"}${2}`)
}

// ParseQuestions accepts a JSON array of question objects, or a single object.
// Items missing question, options or correct_option are dropped.
func ParseQuestions(text string) ([]Question, error) {
	s := StripFences(text)
	if s == "" {
		return nil, Malformed(errors.New("empty response"))
	}
	if !gjson.Valid(s) {
		s = repair(s)
		if !gjson.Valid(s) {
			return nil, Malformed(fmt.Errorf("response is not valid JSON after repair"))
		}
	}

	root := gjson.Parse(s)
	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, Malformed(errors.New("expected a JSON array of questions"))
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		text := item.Get("question")
		opts := item.Get("options")
		correct := item.Get("correct_option")
		if !text.Exists() || !opts.Exists() || !correct.Exists() || !opts.IsObject() {
			continue
		}
		q := Question{
			Text:          text.String(),
			Options:       make(map[string]string),
			CorrectOption: strings.TrimSpace(correct.String()),
		}
		opts.ForEach(func(k, v gjson.Result) bool {
			q.Options[k.String()] = v.String()
			return true
		})
		questions = append(questions, q)
	}
	return questions, nil
}
