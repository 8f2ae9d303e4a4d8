package model

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE DISABLED"`
}

type CascadeDeleteRequest struct {
	ContentType  string `json:"contentType" validate:"required"`
	ContentID    string `json:"contentId" validate:"required,max=200"`
	LanguageID   string `json:"languageId,omitempty" validate:"omitempty,max=64"`
	Level        string `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	ContentValue string `json:"contentValue,omitempty" validate:"omitempty,max=500"`
}

type OrphanCleanupRequest struct {
	LanguageID string `json:"languageId,omitempty" validate:"omitempty,max=64"`
	Level      string `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type ResolveFeedbackRequest struct {
	Note string `json:"note,omitempty" validate:"omitempty,max=1000"`
}
