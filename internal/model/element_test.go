package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningElementJSONIsFlat(t *testing.T) {
	el := LearningElement{
		ID:    "el-1",
		Type:  ElementVideo,
		Title: "欢迎视频",
		Payload: &VideoPayload{
			URL: "https://cdn.example.com/v/1.mp4",
		},
	}

	data, err := json.Marshal(el)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))

	assert.Equal(t, "el-1", flat["id"])
	assert.Equal(t, "video", flat["type"])
	assert.Equal(t, "欢迎视频", flat["title"])
	assert.Equal(t, "https://cdn.example.com/v/1.mp4", flat["url"])
	// 载荷字段不应嵌套在子对象里
	assert.NotContains(t, flat, "payload")
}

func TestLearningElementRoundTrip(t *testing.T) {
	el := LearningElement{
		ID:    "el-quiz",
		Type:  ElementOXQuiz,
		Title: "判断题",
		Payload: &OXQuizPayload{
			Questions: []OXQuestion{
				{ID: "q1", Statement: "加班无上限", CorrectAnswer: false, Explanation: "劳动法有规定"},
				{ID: "q2", Statement: "试用期有工资", CorrectAnswer: true},
			},
		},
	}

	data, err := json.Marshal(el)
	require.NoError(t, err)

	var decoded LearningElement
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, el.ID, decoded.ID)
	assert.Equal(t, el.Type, decoded.Type)
	assert.Equal(t, el.Title, decoded.Title)

	payload, ok := decoded.Payload.(*OXQuizPayload)
	require.True(t, ok)
	require.Len(t, payload.Questions, 2)
	assert.False(t, payload.Questions[0].CorrectAnswer)
	assert.Equal(t, "劳动法有规定", payload.Questions[0].Explanation)
}

func TestLearningElementUnknownTypeRejected(t *testing.T) {
	raw := []byte(`{"id":"x","type":"hologram","title":"未来内容"}`)

	var el LearningElement
	err := json.Unmarshal(raw, &el)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestQASessionPromptBounds(t *testing.T) {
	base := func(n int) *QASessionPayload {
		p := &QASessionPayload{}
		for i := 0; i < n; i++ {
			p.Prompts = append(p.Prompts, QAPrompt{ID: string(rune('a' + i)), Question: "q"})
		}
		return p
	}

	assert.Error(t, base(0).Validate("weeks[0].learningElements[0]"), "空问题列表应被拒绝")
	assert.NoError(t, base(1).Validate("weeks[0].learningElements[0]"))
	assert.NoError(t, base(10).Validate("weeks[0].learningElements[0]"))
	assert.Error(t, base(11).Validate("weeks[0].learningElements[0]"), "超过上限应被拒绝")
}

func TestTextContentKindRules(t *testing.T) {
	article := &TextContentPayload{Kind: TextKindArticle}
	assert.Error(t, article.Validate("e"), "article 必须有正文")
	article.Content = "正文"
	assert.NoError(t, article.Validate("e"))

	link := &TextContentPayload{Kind: TextKindResourceLink, Content: "只有正文"}
	assert.Error(t, link.Validate("e"), "resource_link 必须有 url")
	link.URL = "https://example.com/doc"
	assert.NoError(t, link.Validate("e"))

	policy := &TextContentPayload{Kind: TextKindPolicyInfo}
	assert.Error(t, policy.Validate("e"))
	policy.URL = "https://example.com/policy"
	assert.NoError(t, policy.Validate("e"))
}

func TestElementTypeMismatchRejected(t *testing.T) {
	el := LearningElement{
		ID:      "el-1",
		Type:    ElementVideo,
		Title:   "标题",
		Payload: &ChecklistPayload{Items: []ChecklistItem{{ID: "i1", Text: "t"}}},
	}
	err := el.Validate("weeks[0].learningElements[0]")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
