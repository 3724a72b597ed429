package joinrequest

import (
	"time"

	"church-hub-go/internal/domain/church"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

type JoinRequest struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	ChurchID    string     `gorm:"type:uuid;not null;index"`
	CampusID    *string    `gorm:"type:uuid"`
	UserID      string     `gorm:"type:uuid;not null;index"`
	DisplayName string     `gorm:"type:text"`
	Email       string     `gorm:"type:text"`
	Note        string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(16);not null;default:'pending';index"`
	ReviewedBy  *string    `gorm:"type:uuid"`
	ReviewedAt  *time.Time `gorm:""`
	ReviewNote  *string    `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`

	Church church.Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

// Denial is written once per successful denial and kept independent of the
// request row; the 90-day cooldown counts these.
type Denial struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChurchID  string    `gorm:"type:uuid;not null;index"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	DeniedBy  string    `gorm:"type:uuid;not null"`
	Reason    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Church church.Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Denial) TableName() string { return "join_request_denials" }

type Question struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChurchID  string    `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	Required  bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Church church.Church `gorm:"foreignKey:ChurchID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string { return "questionnaire_questions" }

type Answer struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	RequestID  string `gorm:"type:uuid;not null;index"`
	QuestionID string `gorm:"type:uuid;not null"`
	Text       string `gorm:"type:text;not null"`

	Request JoinRequest `gorm:"foreignKey:RequestID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Answer) TableName() string { return "questionnaire_answers" }

// AnsweredQuestion is an answer joined with its question text for listing.
type AnsweredQuestion struct {
	RequestID    string
	QuestionID   string
	QuestionText string
	Required     bool
	Answer       string
}

type RequestWithAnswers struct {
	Request JoinRequest
	Answers []AnsweredQuestion
}
