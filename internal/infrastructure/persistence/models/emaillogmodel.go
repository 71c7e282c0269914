package models

import "gorm.io/datatypes"

// EmailLogModel is the delivery audit table. Rows are written after every
// terminal delivery outcome and read back per ticket for the delivery log on
// the agent ticket view.
type EmailLogModel struct {
	ID         uint   `gorm:"primaryKey"`
	Recipient  string `gorm:"size:255;not null"`
	Subject    string `gorm:"size:255;not null"`
	BodyPrefix string `gorm:"size:200"`
	TicketID   *uint  `gorm:"index"`
	Kind       string `gorm:"size:30;not null;index"`
	Success    bool   `gorm:"not null"`
	Simulated  bool   `gorm:"not null;default:false"`
	Attempts   int    `gorm:"not null;default:0"`
	ErrorText  string `gorm:"type:text"`
	Details    datatypes.JSON
	CreatedAt  int64 `gorm:"autoCreateTime:milli;not null;index"`
}

func (EmailLogModel) TableName() string {
	return "email_logs"
}
