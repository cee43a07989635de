package model

import "time"

// Question 问题主体，归属于唯一作者，拥有若干回答
type Question struct {
    ID         uint       `json:"id" gorm:"primaryKey;autoIncrement"`
    Subject    string     `json:"subject" gorm:"size:255;not null"`
    Content    string     `json:"content" gorm:"type:text;not null"`
    UserID     string     `json:"user_id" gorm:"type:varchar(36);index:idx_question_user;not null"`
    // create_date 创建后不可变；modify_date 每次编辑刷新
    CreateDate time.Time  `json:"create_date" gorm:"index:idx_question_create;not null"`
    ModifyDate *time.Time `json:"modify_date,omitempty"`
    Author     User       `json:"author" gorm:"foreignKey:UserID"`
    Answers    []Answer   `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string { return "questions" }
