package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	questions := []Question{
		{Id: "Q1", Label: "Type de structure", SortOrder: 1},
		{Id: "Q2", Label: "Budget", SortOrder: 2},
		{Id: "Q3", Label: "Objectifs", SortOrder: 3, Multiple: true},
	}
	answers := []PossibleAnswer{
		{QuestionId: "Q1", Value: "PME", Recommended: `["seo-basic","hosting"]`},
		{QuestionId: "Q2", Value: "Budget serré", Recommended: `"[\"hosting\",\"no-automation\"]"`},
		{QuestionId: "Q3", Value: "Vendre", Recommended: `{ecommerce,payment}`},
		{QuestionId: "Q3", Value: "Informer", Recommended: `["blog"]`},
		{QuestionId: "Q3", Value: "Cassé", Recommended: `["blog"`},
		{QuestionId: "Q3", Value: "Vide", Recommended: ``},
	}
	return NewEngine(questions, answers)
}

func TestRecommendUnionsWithoutDuplicates(t *testing.T) {
	res := testEngine().Recommend(Answers{
		"Q1": Single("PME"),
		"Q2": Single("Budget serré"),
	})

	assert.Equal(t, []string{"hosting", "no-automation", "seo-basic"}, res.RecommendedOptionIds)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.AnsweredPairs, 2)
	assert.Equal(t, AnsweredPair{QuestionId: "Q1", Question: "Type de structure", Answers: []string{"PME"}}, res.AnsweredPairs[0])
	assert.Equal(t, "Q2", res.AnsweredPairs[1].QuestionId)
}

func TestRecommendIsOrderIndependent(t *testing.T) {
	engine := testEngine()
	first := engine.Recommend(Answers{
		"Q3": Multi("Informer", "Vendre"),
		"Q1": Single("PME"),
	})
	second := engine.Recommend(Answers{
		"Q1": Single("PME"),
		"Q3": Multi("Vendre", "Informer"),
	})

	assert.Equal(t, first.RecommendedOptionIds, second.RecommendedOptionIds)
	assert.Equal(t, []string{"blog", "ecommerce", "hosting", "payment", "seo-basic"}, first.RecommendedOptionIds)
}

func TestRecommendReportsMalformedListsAsWarnings(t *testing.T) {
	res := testEngine().Recommend(Answers{
		"Q3": Multi("Cassé", "Informer", "Vide"),
	})

	assert.Equal(t, []string{"blog"}, res.RecommendedOptionIds)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Q3", res.Warnings[0].QuestionId)
	assert.Equal(t, "Cassé", res.Warnings[0].Value)
}

func TestRecommendUnknownQuestionAndAnswer(t *testing.T) {
	res := testEngine().Recommend(Answers{
		"Q9": Single("x"),
		"Q1": Single("Grand compte"),
	})

	assert.Empty(t, res.RecommendedOptionIds)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "unknown answer", res.Warnings[0].Reason)
	assert.Equal(t, "unknown question", res.Warnings[1].Reason)
	// unknown questions sort after known ones in the recap
	assert.Equal(t, "Q1", res.AnsweredPairs[0].QuestionId)
	assert.Equal(t, "Q9", res.AnsweredPairs[1].QuestionId)
}

func TestRecommendEmptyAnswers(t *testing.T) {
	res := testEngine().Recommend(nil)
	assert.Empty(t, res.RecommendedOptionIds)
	assert.NotNil(t, res.RecommendedOptionIds)
	assert.Empty(t, res.AnsweredPairs)
}

func TestParseRecommended(t *testing.T) {
	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{raw: `["a","b"]`, want: []string{"a", "b"}},
		{raw: `"[\"a\"]"`, want: []string{"a"}},
		{raw: `{a, "b"}`, want: []string{"a", "b"}},
		{raw: `{}`, want: nil},
		{raw: `  `, want: nil},
		{raw: `null`, want: nil},
		{raw: `[" a ", ""]`, want: []string{"a"}},
		{raw: `["a"`, wantErr: true},
		{raw: `"not a list"`, wantErr: true},
		{raw: `{"a": 1}`, wantErr: true},
		{raw: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRecommended(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerValueJSON(t *testing.T) {
	var answers Answers
	require.NoError(t, json.Unmarshal([]byte(`{"Q1":"PME","Q3":["Vendre"],"Q4":null}`), &answers))

	assert.Equal(t, Single("PME"), answers["Q1"])
	assert.Equal(t, Multi("Vendre"), answers["Q3"])
	assert.Empty(t, answers["Q4"].Values)

	out, err := json.Marshal(Answers{"Q1": Single("PME"), "Q3": Multi("Vendre")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q1":"PME","Q3":["Vendre"]}`, string(out))

	var bad Answers
	assert.Error(t, json.Unmarshal([]byte(`{"Q1":12}`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"Q1":[1,2]}`), &bad))
}
