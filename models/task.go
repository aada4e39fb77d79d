package models

import (
	"github.com/shopspring/decimal"
)

// Task is a sponsored offer authored by an admin. Regular users only ever
// read tasks; deleting one cascades over its transactions at the application
// layer (see the task service).
type Task struct {
	Model
	Name         string          `json:"name" gorm:"not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
	TotalAmount  decimal.Decimal `json:"total_amount,omitempty" gorm:"type:numeric(12,2)"`
	IconURL      string          `json:"icon_url"`
	BannerURL    string          `json:"banner_url"`
	Description  string          `json:"description" gorm:"type:text"`
	Steps        []TaskStep      `json:"steps" gorm:"foreignKey:TaskID"`
	FAQs         []TaskFAQ       `json:"faqs" gorm:"foreignKey:TaskID"`
	IsInstant    bool            `json:"is_instant" gorm:"default:false"`
	IsHighPaying bool            `json:"is_high_paying" gorm:"default:false"`
	ExternalLink string          `json:"external_link"`
	VideoLink    string          `json:"video_link"`
}

// TaskStep is one ordered completion instruction of a task.
type TaskStep struct {
	Model
	TaskID      uint   `json:"task_id" gorm:"index;not null"`
	Position    int    `json:"position"`
	Instruction string `json:"instruction" gorm:"type:text"`
}

type TaskFAQ struct {
	Model
	TaskID   uint   `json:"task_id" gorm:"index;not null"`
	Question string `json:"question" gorm:"type:text"`
	Answer   string `json:"answer" gorm:"type:text"`
}

type TaskFAQInput struct {
	Question string `json:"question" validate:"required" conform:"trim"`
	Answer   string `json:"answer" validate:"required" conform:"trim"`
}

// CreateTaskRequest is the validated admin input for authoring a task.
// Amounts arrive as strings and are parsed to decimals in the service so a
// malformed number never reaches storage.
type CreateTaskRequest struct {
	Name         string         `json:"name" validate:"required,min=2" conform:"trim"`
	Amount       string         `json:"amount" validate:"required"`
	TotalAmount  string         `json:"total_amount"`
	Description  string         `json:"description" conform:"trim"`
	Steps        []string       `json:"steps" validate:"required,min=1,dive,required"`
	FAQs         []TaskFAQInput `json:"faqs" validate:"dive"`
	IsInstant    bool           `json:"is_instant"`
	IsHighPaying bool           `json:"is_high_paying"`
	ExternalLink string         `json:"external_link" validate:"omitempty,url"`
	VideoLink    string         `json:"video_link" validate:"omitempty,url"`
}

// TaskResponse is the user-facing projection of a task. TotalAmount is the
// admin-only cost basis and is deliberately absent.
type TaskResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IconURL      string          `json:"icon_url"`
	BannerURL    string          `json:"banner_url"`
	Description  string          `json:"description"`
	Steps        []TaskStep      `json:"steps"`
	FAQs         []TaskFAQ       `json:"faqs"`
	IsInstant    bool            `json:"is_instant"`
	IsHighPaying bool            `json:"is_high_paying"`
	ExternalLink string          `json:"external_link,omitempty"`
	VideoLink    string          `json:"video_link,omitempty"`
}

func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Name:         t.Name,
		Amount:       t.Amount,
		IconURL:      t.IconURL,
		BannerURL:    t.BannerURL,
		Description:  t.Description,
		Steps:        t.Steps,
		FAQs:         t.FAQs,
		IsInstant:    t.IsInstant,
		IsHighPaying: t.IsHighPaying,
		ExternalLink: t.ExternalLink,
		VideoLink:    t.VideoLink,
	}
}
