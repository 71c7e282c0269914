package models

type TicketModel struct {
	ID             uint   `gorm:"primaryKey"`
	Subject        string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text;not null"`
	Priority       string `gorm:"size:20;not null;index"`
	Status         string `gorm:"size:30;not null;index"`
	CreatorID      uint   `gorm:"not null;index"`
	AssigneeID     *uint  `gorm:"index"`
	ElapsedSeconds *int64
	ReturnCount    int   `gorm:"not null;default:0"`
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
	ConcludedAt    *int64
	FinalizedAt    *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type InteractionModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	AuthorRole string `gorm:"size:20;not null"`
	Kind       string `gorm:"size:20;not null"`
	Message    string `gorm:"type:text;not null"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (InteractionModel) TableName() string {
	return "ticket_interactions"
}
