package model

import "time"

// Answer 针对某个问题的回答（question_id 创建后不可变）
type Answer struct {
    ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
    QuestionID uint      `json:"question_id" gorm:"index:idx_answer_question;not null"`
    UserID     string    `json:"user_id" gorm:"type:varchar(36);index:idx_answer_user;not null"`
    Content    string    `json:"content" gorm:"type:text;not null"`
    CreateDate time.Time `json:"create_date" gorm:"not null"`
    Author     User      `json:"author" gorm:"foreignKey:UserID"`
}

func (Answer) TableName() string { return "answers" }
