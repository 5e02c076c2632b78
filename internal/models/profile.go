package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Profile is a user's public-facing record. One per user, created at
// registration, mutated only by its owner.
type Profile struct {
	BaseModel
	UserID    string         `gorm:"uniqueIndex;not null"`
	Email     string         `gorm:"not null"`
	FullName  string
	AvatarURL string
	Bio       string
	Skills    datatypes.JSON `gorm:"type:jsonb"` // ["go", "design", ...]
}

// GetSkills returns the skill tags as a slice, preserving stored order.
func (p *Profile) GetSkills() []string {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

// SetSkills stores the skill tags.
func (p *Profile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}
