// Package recommendation maps questionnaire answers to recommended catalog options.
package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Question struct {
	Id        string
	Label     string
	SortOrder int
	Multiple  bool
}

// PossibleAnswer is a stored answer of a question. Recommended holds the
// raw stored list, see ParseRecommended.
type PossibleAnswer struct {
	QuestionId  string
	Value       string
	Recommended string
}

type Warning struct {
	QuestionId string `json:"questionId"`
	Value      string `json:"value,omitempty"`
	Reason     string `json:"reason"`
}

type AnsweredPair struct {
	QuestionId string   `json:"questionId"`
	Question   string   `json:"question"`
	Answers    []string `json:"answers"`
}

type Result struct {
	RecommendedOptionIds []string
	AnsweredPairs        []AnsweredPair
	Warnings             []Warning
}

type answerKey struct {
	questionId string
	value      string
}

type storedList struct {
	optionIds []string
	parseErr  error
}

type Engine struct {
	questions map[string]Question
	lists     map[answerKey]storedList
}

func NewEngine(questions []Question, answers []PossibleAnswer) *Engine {
	e := &Engine{
		questions: make(map[string]Question, len(questions)),
		lists:     make(map[answerKey]storedList, len(answers)),
	}
	for _, q := range questions {
		e.questions[q.Id] = q
	}
	for _, a := range answers {
		ids, err := ParseRecommended(a.Recommended)
		e.lists[answerKey{questionId: a.QuestionId, value: a.Value}] = storedList{optionIds: ids, parseErr: err}
	}
	return e
}

// Recommend unions the stored recommendation lists of every answer value.
// The result is sorted, so it does not depend on map iteration order.
// Unparseable lists count as empty and are reported as warnings.
func (e *Engine) Recommend(answers Answers) Result {
	set := make(map[string]struct{})
	result := Result{
		RecommendedOptionIds: []string{},
		AnsweredPairs:        []AnsweredPair{},
		Warnings:             []Warning{},
	}

	for questionId, answer := range answers {
		q, known := e.questions[questionId]
		if !known {
			result.Warnings = append(result.Warnings, Warning{QuestionId: questionId, Reason: "unknown question"})
		} else if !q.Multiple && len(answer.Values) > 1 {
			result.Warnings = append(result.Warnings, Warning{QuestionId: questionId, Reason: "several values given to a single-choice question"})
		}

		pair := AnsweredPair{QuestionId: questionId, Question: q.Label, Answers: make([]string, 0, len(answer.Values))}
		for _, value := range answer.Values {
			pair.Answers = append(pair.Answers, value)
			if !known {
				continue
			}
			list, ok := e.lists[answerKey{questionId: questionId, value: value}]
			if !ok {
				result.Warnings = append(result.Warnings, Warning{QuestionId: questionId, Value: value, Reason: "unknown answer"})
				continue
			}
			if list.parseErr != nil {
				result.Warnings = append(result.Warnings, Warning{QuestionId: questionId, Value: value, Reason: list.parseErr.Error()})
				continue
			}
			for _, id := range list.optionIds {
				set[id] = struct{}{}
			}
		}
		result.AnsweredPairs = append(result.AnsweredPairs, pair)
	}

	for id := range set {
		result.RecommendedOptionIds = append(result.RecommendedOptionIds, id)
	}
	sort.Strings(result.RecommendedOptionIds)

	sort.Slice(result.AnsweredPairs, func(i, j int) bool {
		return e.pairLess(result.AnsweredPairs[i].QuestionId, result.AnsweredPairs[j].QuestionId)
	})
	sort.SliceStable(result.Warnings, func(i, j int) bool {
		a, b := result.Warnings[i], result.Warnings[j]
		if a.QuestionId != b.QuestionId {
			return e.pairLess(a.QuestionId, b.QuestionId)
		}
		return a.Value < b.Value
	})

	return result
}

// pairLess orders known questions by display order, unknown ones last.
func (e *Engine) pairLess(a, b string) bool {
	qa, okA := e.questions[a]
	qb, okB := e.questions[b]
	switch {
	case okA && okB && qa.SortOrder != qb.SortOrder:
		return qa.SortOrder < qb.SortOrder
	case okA != okB:
		return okA
	}
	return a < b
}

var ErrMalformedList = errors.New("malformed recommendation list")

// ParseRecommended reads a stored recommendation list. Accepted forms are a
// JSON array, a JSON string holding a JSON array, and a Postgres array
// literal such as {a,b}. Empty input yields no ids.
func ParseRecommended(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(trimmed), &ids); err == nil {
		return cleanIds(ids), nil
	}

	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(inner)), &ids); err == nil {
			return cleanIds(ids), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrMalformedList, inner)
	}

	if !json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		body := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		if body == "" {
			return nil, nil
		}
		for _, part := range strings.Split(body, ",") {
			ids = append(ids, strings.Trim(strings.TrimSpace(part), `"`))
		}
		return cleanIds(ids), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrMalformedList, trimmed)
}

func cleanIds(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
