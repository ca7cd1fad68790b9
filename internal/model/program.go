package model

import (
	"fmt"
	"sort"
	"time"
)

// Program 多周课程单元；weeks 始终按 weekNumber 升序保存
type Program struct {
	ID                       string            `json:"id"`
	Slug                     string            `json:"slug"`
	Title                    string            `json:"title"`
	Description              string            `json:"description,omitempty"`
	LongDescription          string            `json:"longDescription,omitempty"`
	ImageURL                 string            `json:"imageUrl,omitempty"`
	TargetAudience           string            `json:"targetAudience,omitempty"`
	Tags                     []string          `json:"tags,omitempty"`
	Weeks                    []Week            `json:"weeks"`
	CompanySpecificDocuments []CompanyDocument `json:"companySpecificDocuments,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

type Week struct {
	ID                           string            `json:"id"`
	WeekNumber                   int               `json:"weekNumber"`
	Title                        string            `json:"title"`
	Summary                      string            `json:"summary,omitempty"`
	SequentialCompletionRequired bool              `json:"sequentialCompletionRequired"`
	LearningElements             []LearningElement `json:"learningElements"`
}

type CompanyDocument struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (p *Program) Validate() error {
	if p.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if p.Title == "" {
		return NewValidationError("title", "title is required")
	}
	if p.Slug == "" {
		return NewValidationError("slug", "slug is required")
	}
	for _, r := range p.Slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return NewValidationError("slug", "slug must contain only lowercase letters, digits and dashes")
		}
	}

	seen := map[int]bool{}
	for i := range p.Weeks {
		w := &p.Weeks[i]
		path := fmt.Sprintf("weeks[%d]", i)
		if err := w.Validate(path); err != nil {
			return err
		}
		if seen[w.WeekNumber] {
			return NewValidationError(path+".weekNumber",
				fmt.Sprintf("duplicate weekNumber %d", w.WeekNumber))
		}
		seen[w.WeekNumber] = true
		if i > 0 && p.Weeks[i-1].WeekNumber > w.WeekNumber {
			return NewValidationError(path+".weekNumber", "weeks must be ordered by weekNumber ascending")
		}
	}

	seenDocs := map[string]bool{}
	for i, d := range p.CompanySpecificDocuments {
		path := fmt.Sprintf("companySpecificDocuments[%d]", i)
		if d.ID == "" {
			return NewValidationError(path+".id", "id is required")
		}
		if seenDocs[d.ID] {
			return NewValidationError(path+".id", "duplicate document id "+d.ID)
		}
		seenDocs[d.ID] = true
		if d.URL == "" {
			return NewValidationError(path+".url", "url is required")
		}
	}
	return nil
}

func (w *Week) Validate(path string) error {
	if w.ID == "" {
		return NewValidationError(path+".id", "id is required")
	}
	if w.WeekNumber <= 0 {
		return NewValidationError(path+".weekNumber", "weekNumber must be a positive integer")
	}
	if w.Title == "" {
		return NewValidationError(path+".title", "title is required")
	}

	seen := map[string]bool{}
	for i := range w.LearningElements {
		el := &w.LearningElements[i]
		elPath := fmt.Sprintf("%s.learningElements[%d]", path, i)
		if err := el.Validate(elPath); err != nil {
			return err
		}
		if seen[el.ID] {
			return NewValidationError(elPath+".id", "duplicate element id "+el.ID)
		}
		seen[el.ID] = true
	}
	return nil
}

// InsertWeek 追加一周并按 weekNumber 重新排序；weekNumber 重复时拒绝
func (p *Program) InsertWeek(w Week) error {
	for _, existing := range p.Weeks {
		if existing.WeekNumber == w.WeekNumber {
			return NewValidationError("weekNumber",
				fmt.Sprintf("weekNumber %d already exists in program %s", w.WeekNumber, p.ID))
		}
	}
	p.Weeks = append(p.Weeks, w)
	sort.SliceStable(p.Weeks, func(i, j int) bool {
		return p.Weeks[i].WeekNumber < p.Weeks[j].WeekNumber
	})
	return nil
}

// RemoveWeek 按 id 过滤删除；除自身元素列表外无级联副作用
func (p *Program) RemoveWeek(weekID string) bool {
	for i := range p.Weeks {
		if p.Weeks[i].ID == weekID {
			p.Weeks = append(p.Weeks[:i], p.Weeks[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Program) FindWeek(weekID string) *Week {
	for i := range p.Weeks {
		if p.Weeks[i].ID == weekID {
			return &p.Weeks[i]
		}
	}
	return nil
}

// TotalElementCount 进度计算的分母：全部周的元素总数
func (p *Program) TotalElementCount() int {
	n := 0
	for i := range p.Weeks {
		n += len(p.Weeks[i].LearningElements)
	}
	return n
}

// ContainsElement 检查元素是否属于本课程
func (p *Program) ContainsElement(elementID string) bool {
	for i := range p.Weeks {
		if p.Weeks[i].FindElement(elementID) != nil {
			return true
		}
	}
	return false
}

// AddElement 追加元素；同周内元素 id 重复时拒绝
func (w *Week) AddElement(el LearningElement) error {
	for _, existing := range w.LearningElements {
		if existing.ID == el.ID {
			return NewValidationError("learningElements",
				"element id "+el.ID+" already exists in week "+w.ID)
		}
	}
	w.LearningElements = append(w.LearningElements, el)
	return nil
}

func (w *Week) RemoveElement(elementID string) bool {
	for i := range w.LearningElements {
		if w.LearningElements[i].ID == elementID {
			w.LearningElements = append(w.LearningElements[:i], w.LearningElements[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Week) FindElement(elementID string) *LearningElement {
	for i := range w.LearningElements {
		if w.LearningElements[i].ID == elementID {
			return &w.LearningElements[i]
		}
	}
	return nil
}
