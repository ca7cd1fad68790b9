package service

import (
	"program_hub_backend/internal/model"
	"program_hub_backend/internal/util"

	"go.uber.org/zap"

	"program_hub_backend/pkg/logger"
)

// ElementFactory 为作者新增内容生成结构合法的占位元素，之后再逐步编辑
type ElementFactory struct{}

func NewElementFactory() *ElementFactory {
	return &ElementFactory{}
}

var placeholderTitles = map[model.ElementType]string{
	model.ElementVideo:            "New Video (Edit Later)",
	model.ElementVideoChoiceGroup: "New Video Choice Group (Edit Later)",
	model.ElementChecklist:        "New Checklist (Edit Later)",
	model.ElementActionItem:       "New Action Item (Edit Later)",
	model.ElementScenarioLink:     "New Scenario Link (Edit Later)",
	model.ElementTextContent:      "New Text Content (Edit Later)",
	model.ElementPsychTest:        "New Psychological Test (Edit Later)",
	model.ElementQASession:        "New QA Session (Edit Later)",
	model.ElementMissionReminder:  "New Mission Reminder (Edit Later)",
	model.ElementOXQuiz:           "New OX Quiz (Edit Later)",
}

// Placeholder 生成指定变体的最小合法实例。
// 未知标签不报错，降级为通用 text_content 占位——占位内容必经作者编辑后
// 才会展示给学习者，降级不构成数据丢失
func (f *ElementFactory) Placeholder(tag model.ElementType) model.LearningElement {
	payload := f.payloadFor(tag)
	if payload == nil {
		logger.Log.Warn("unknown element type, falling back to text_content", zap.String("tag", string(tag)))
		tag = model.ElementTextContent
		payload = f.payloadFor(tag)
	}

	return model.LearningElement{
		ID:      util.NewEntityID(),
		Type:    tag,
		Title:   placeholderTitles[tag],
		Payload: payload,
	}
}

func (f *ElementFactory) payloadFor(tag model.ElementType) model.ElementPayload {
	switch tag {
	case model.ElementVideo:
		return &model.VideoPayload{URL: "about:blank"}
	case model.ElementVideoChoiceGroup:
		return &model.VideoChoiceGroupPayload{
			Videos:        []model.ChoiceVideo{},
			SelectionRule: model.SelectionChooseOne,
		}
	case model.ElementChecklist:
		return &model.ChecklistPayload{Items: []model.ChecklistItem{}}
	case model.ElementActionItem:
		return &model.ActionItemPayload{
			Description: "",
			Kind:        model.ActionKindTodoList,
			TodoItems:   []model.TodoItem{},
		}
	case model.ElementScenarioLink:
		return &model.ScenarioLinkPayload{ScenarioID: "scenario-placeholder"}
	case model.ElementTextContent:
		return &model.TextContentPayload{
			Kind:    model.TextKindArticle,
			Content: "Placeholder content. Edit before publishing.",
		}
	case model.ElementPsychTest:
		return &model.PsychTestPayload{Factors: []model.TestFactor{}}
	case model.ElementQASession:
		// prompts 下界为 1，占位时先放一条空问题
		return &model.QASessionPayload{
			Prompts: []model.QAPrompt{{ID: util.NewEntityID(), Question: "Edit this question"}},
		}
	case model.ElementMissionReminder:
		return &model.MissionReminderPayload{MissionTitle: "Edit mission title"}
	case model.ElementOXQuiz:
		return &model.OXQuizPayload{Questions: []model.OXQuestion{}}
	}
	return nil
}
