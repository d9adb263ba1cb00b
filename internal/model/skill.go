package model

// Skill is a read-only view of the skills table, consulted to resolve the
// owning subject for permission checks and result rows.
type Skill struct {
	SkillID   int64  `json:"skill_id"`
	SubjectID int64  `json:"subject_id"`
	SkillName string `json:"skill_name"`
}

// Content is one content item of a skill. A quiz session holds at most one
// question per content item, in (SortOrder, ContentID) order.
type Content struct {
	ContentID       int64        `json:"content_id"`
	SkillID         int64        `json:"skill_id"`
	Type            QuestionType `json:"type"`
	SortOrder       int          `json:"sort_order"`
	Status          string       `json:"status"`
	PublishedStatus string       `json:"published_status"`
}
