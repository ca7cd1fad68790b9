package model

import (
	"encoding/json"
	"fmt"
)

type ElementType string

const (
	ElementVideo            ElementType = "video"
	ElementVideoChoiceGroup ElementType = "video_choice_group"
	ElementChecklist        ElementType = "checklist"
	ElementActionItem       ElementType = "action_item"
	ElementScenarioLink     ElementType = "interactive_scenario_link"
	ElementTextContent      ElementType = "text_content"
	ElementPsychTest        ElementType = "psychological_test"
	ElementQASession        ElementType = "qa_session"
	ElementMissionReminder  ElementType = "mission_reminder"
	ElementOXQuiz           ElementType = "ox_quiz"
)

// ElementTypes 按定义顺序列出全部内容变体（工厂与校验共用）
var ElementTypes = []ElementType{
	ElementVideo,
	ElementVideoChoiceGroup,
	ElementChecklist,
	ElementActionItem,
	ElementScenarioLink,
	ElementTextContent,
	ElementPsychTest,
	ElementQASession,
	ElementMissionReminder,
	ElementOXQuiz,
}

// ElementPayload 是内容变体的封闭集合；每个 type 标签对应唯一的载荷结构
type ElementPayload interface {
	ElementType() ElementType
	Validate(path string) error
}

// LearningElement 周内的单个内容项。线上 JSON 为扁平结构：
// {"id":..,"type":..,"title":..,<变体字段>}，由自定义编解码按 type 分发
type LearningElement struct {
	ID      string
	Type    ElementType
	Title   string
	Payload ElementPayload
}

const (
	SelectionChooseOne  = "choose_one"
	SelectionChooseMany = "choose_many"
)

const (
	ActionKindTodoList         = "todo_list"
	ActionKindJournalPrompt    = "journal_prompt"
	ActionKindDialogueActivity = "dialogue_activity"
)

const (
	TextKindArticle         = "article"
	TextKindResourceLink    = "resource_link"
	TextKindPolicyInfo      = "policy_info"
	TextKindSupportDocument = "support_document"
)

const (
	QAPromptsMin = 1
	QAPromptsMax = 10
)

type VideoPayload struct {
	URL string `json:"url"`
}

type ChoiceVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type VideoChoiceGroupPayload struct {
	Videos        []ChoiceVideo `json:"videos"`
	SelectionRule string        `json:"selectionRule"`
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsChecked bool   `json:"isChecked"`
	ItemType  string `json:"itemType,omitempty"`
}

type ChecklistPayload struct {
	Items         []ChecklistItem `json:"items"`
	ChecklistKind string          `json:"checklistKind,omitempty"`
}

type TodoItem struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	IsDone bool   `json:"isDone"`
}

type ActionItemPayload struct {
	Description string     `json:"description"`
	Kind        string     `json:"kind"`
	TodoItems   []TodoItem `json:"todoItems,omitempty"`
}

type ScenarioLinkPayload struct {
	ScenarioID string `json:"scenarioId"`
}

type TextContentPayload struct {
	Kind    string `json:"kind"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}

type TestFactor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ScoreComment struct {
	MinScore int    `json:"minScore"`
	MaxScore int    `json:"maxScore"`
	Comment  string `json:"comment"`
}

type PsychTestPayload struct {
	Factors               []TestFactor   `json:"factors"`
	OverallResultComments []ScoreComment `json:"overallResultComments,omitempty"`
}

type QAPrompt struct {
	ID                string `json:"id"`
	Question          string `json:"question"`
	AnswerPlaceholder string `json:"answerPlaceholder,omitempty"`
}

type QASessionPayload struct {
	Prompts []QAPrompt `json:"prompts"`
}

type MissionReminderPayload struct {
	MissionTitle       string `json:"missionTitle"`
	MissionDescription string `json:"missionDescription,omitempty"`
}

type OXQuestion struct {
	ID            string `json:"id"`
	Statement     string `json:"statement"`
	CorrectAnswer bool   `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

type OXQuizPayload struct {
	Questions []OXQuestion `json:"questions"`
}

func (VideoPayload) ElementType() ElementType            { return ElementVideo }
func (VideoChoiceGroupPayload) ElementType() ElementType { return ElementVideoChoiceGroup }
func (ChecklistPayload) ElementType() ElementType        { return ElementChecklist }
func (ActionItemPayload) ElementType() ElementType       { return ElementActionItem }
func (ScenarioLinkPayload) ElementType() ElementType     { return ElementScenarioLink }
func (TextContentPayload) ElementType() ElementType      { return ElementTextContent }
func (PsychTestPayload) ElementType() ElementType        { return ElementPsychTest }
func (QASessionPayload) ElementType() ElementType        { return ElementQASession }
func (MissionReminderPayload) ElementType() ElementType  { return ElementMissionReminder }
func (OXQuizPayload) ElementType() ElementType           { return ElementOXQuiz }

// newPayload 按标签返回零值载荷；未知标签返回 nil
func newPayload(t ElementType) ElementPayload {
	switch t {
	case ElementVideo:
		return &VideoPayload{}
	case ElementVideoChoiceGroup:
		return &VideoChoiceGroupPayload{}
	case ElementChecklist:
		return &ChecklistPayload{}
	case ElementActionItem:
		return &ActionItemPayload{}
	case ElementScenarioLink:
		return &ScenarioLinkPayload{}
	case ElementTextContent:
		return &TextContentPayload{}
	case ElementPsychTest:
		return &PsychTestPayload{}
	case ElementQASession:
		return &QASessionPayload{}
	case ElementMissionReminder:
		return &MissionReminderPayload{}
	case ElementOXQuiz:
		return &OXQuizPayload{}
	}
	return nil
}

// IsKnownElementType reports whether tag names one of the recognized variants.
func IsKnownElementType(tag ElementType) bool {
	return newPayload(tag) != nil
}

type elementEnvelope struct {
	ID    string      `json:"id"`
	Type  ElementType `json:"type"`
	Title string      `json:"title"`
}

// MarshalJSON 将载荷字段与 id/type/title 拍平到同一层
func (e LearningElement) MarshalJSON() ([]byte, error) {
	flat := map[string]interface{}{}

	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &flat); err != nil {
			return nil, err
		}
	}

	flat["id"] = e.ID
	flat["type"] = e.Type
	flat["title"] = e.Title
	return json.Marshal(flat)
}

func (e *LearningElement) UnmarshalJSON(data []byte) error {
	var env elementEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	payload := newPayload(env.Type)
	if payload == nil {
		return NewValidationError("type", fmt.Sprintf("unknown learning element type %q", env.Type))
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return err
	}

	e.ID = env.ID
	e.Type = env.Type
	e.Title = env.Title
	e.Payload = payload
	return nil
}

// Validate 校验元素结构；path 为上层传入的字段路径前缀
func (e *LearningElement) Validate(path string) error {
	if e.ID == "" {
		return NewValidationError(path+".id", "id is required")
	}
	if e.Title == "" {
		return NewValidationError(path+".title", "title is required")
	}
	if e.Payload == nil {
		return NewValidationError(path+".type", "element payload is missing")
	}
	if e.Payload.ElementType() != e.Type {
		return NewValidationError(path+".type",
			fmt.Sprintf("payload shape %q does not match declared type %q", e.Payload.ElementType(), e.Type))
	}
	return e.Payload.Validate(path)
}

func (p *VideoPayload) Validate(path string) error {
	if p.URL == "" {
		return NewValidationError(path+".url", "video requires a playable url")
	}
	return nil
}

func (p *VideoChoiceGroupPayload) Validate(path string) error {
	if p.SelectionRule != SelectionChooseOne && p.SelectionRule != SelectionChooseMany {
		return NewValidationError(path+".selectionRule", "selectionRule must be choose_one or choose_many")
	}
	seen := map[string]bool{}
	for i, v := range p.Videos {
		field := fmt.Sprintf("%s.videos[%d]", path, i)
		if v.ID == "" {
			return NewValidationError(field+".id", "id is required")
		}
		if seen[v.ID] {
			return NewValidationError(field+".id", "duplicate video id "+v.ID)
		}
		seen[v.ID] = true
		if v.URL == "" {
			return NewValidationError(field+".url", "video requires a playable url")
		}
	}
	return nil
}

func (p *ChecklistPayload) Validate(path string) error {
	seen := map[string]bool{}
	for i, item := range p.Items {
		field := fmt.Sprintf("%s.items[%d]", path, i)
		if item.ID == "" {
			return NewValidationError(field+".id", "id is required")
		}
		if seen[item.ID] {
			return NewValidationError(field+".id", "duplicate checklist item id "+item.ID)
		}
		seen[item.ID] = true
		if item.Text == "" {
			return NewValidationError(field+".text", "text is required")
		}
	}
	return nil
}

func (p *ActionItemPayload) Validate(path string) error {
	if p.Kind == "" {
		return NewValidationError(path+".kind", "kind is required")
	}
	for i, item := range p.TodoItems {
		if item.ID == "" {
			return NewValidationError(fmt.Sprintf("%s.todoItems[%d].id", path, i), "id is required")
		}
	}
	return nil
}

func (p *ScenarioLinkPayload) Validate(path string) error {
	if p.ScenarioID == "" {
		return NewValidationError(path+".scenarioId", "scenarioId is required")
	}
	return nil
}

func (p *TextContentPayload) Validate(path string) error {
	switch p.Kind {
	case TextKindArticle:
		if p.Content == "" {
			return NewValidationError(path+".content", "article requires non-empty content")
		}
	case TextKindResourceLink:
		if p.URL == "" {
			return NewValidationError(path+".url", "resource_link requires a non-empty url")
		}
	case TextKindPolicyInfo, TextKindSupportDocument:
		if p.Content == "" && p.URL == "" {
			return NewValidationError(path+".content", "content or url is required")
		}
	default:
		return NewValidationError(path+".kind", fmt.Sprintf("unknown text content kind %q", p.Kind))
	}
	return nil
}

func (p *PsychTestPayload) Validate(path string) error {
	for i, f := range p.Factors {
		if f.ID == "" {
			return NewValidationError(fmt.Sprintf("%s.factors[%d].id", path, i), "id is required")
		}
	}
	for i, c := range p.OverallResultComments {
		if c.MinScore > c.MaxScore {
			return NewValidationError(fmt.Sprintf("%s.overallResultComments[%d]", path, i),
				"minScore must not exceed maxScore")
		}
	}
	return nil
}

func (p *QASessionPayload) Validate(path string) error {
	if len(p.Prompts) < QAPromptsMin || len(p.Prompts) > QAPromptsMax {
		return NewValidationError(path+".prompts",
			fmt.Sprintf("prompts length must be between %d and %d", QAPromptsMin, QAPromptsMax))
	}
	for i, prompt := range p.Prompts {
		if prompt.ID == "" {
			return NewValidationError(fmt.Sprintf("%s.prompts[%d].id", path, i), "id is required")
		}
	}
	return nil
}

func (p *MissionReminderPayload) Validate(path string) error {
	if p.MissionTitle == "" {
		return NewValidationError(path+".missionTitle", "missionTitle is required")
	}
	return nil
}

func (p *OXQuizPayload) Validate(path string) error {
	for i, q := range p.Questions {
		field := fmt.Sprintf("%s.questions[%d]", path, i)
		if q.ID == "" {
			return NewValidationError(field+".id", "id is required")
		}
		if q.Statement == "" {
			return NewValidationError(field+".statement", "statement is required")
		}
	}
	return nil
}
