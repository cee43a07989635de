package model

import "time"

// User 注册用户，作为问题与回答的作者被引用
type User struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Username  string    `json:"username" gorm:"size:64;uniqueIndex:ux_user_username;not null"`
    Email     string    `json:"email" gorm:"size:255;uniqueIndex:ux_user_email;not null"`
    Password  string    `json:"-" gorm:"size:128;not null"` // bcrypt hash
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
