package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/internal/model"
)

// AnswerRepository 回答存储；生命周期由兄弟模块负责，这里只承担
// 搜索/详情所需的读写契约。
type AnswerRepository interface {
    Create(ctx context.Context, answer *model.Answer) error
    ListByQuestionID(ctx context.Context, questionID uint) ([]*model.Answer, error)
    CountByQuestionID(ctx context.Context, questionID uint) (int64, error)
}

type answerRepository struct{ db *gorm.DB }

func NewAnswerRepository(db *gorm.DB) AnswerRepository { return &answerRepository{db: db} }

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
    return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) ListByQuestionID(ctx context.Context, questionID uint) ([]*model.Answer, error) {
    var res []*model.Answer
    err := r.db.WithContext(ctx).
        Where("question_id = ?", questionID).
        Order("create_date ASC, id ASC").
        Find(&res).Error
    return res, err
}

func (r *answerRepository) CountByQuestionID(ctx context.Context, questionID uint) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.Answer{}).
        Where("question_id = ?", questionID).
        Count(&cnt).Error
    return cnt, err
}
