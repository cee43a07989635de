package repository

import (
    "context"
    "strings"
    "time"

    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/internal/model"
)

type QuestionRepository interface {
    Create(ctx context.Context, question *model.Question) error
    GetByID(ctx context.Context, id uint) (*model.Question, error)
    GetDetail(ctx context.Context, id uint) (*model.Question, error)
    Update(ctx context.Context, id uint, subject, content string, modifyDate time.Time) error
    Delete(ctx context.Context, id uint) error
    List(ctx context.Context, query ListQuery) ([]*model.Question, int64, error)
}

type questionRepository struct {
    db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository { return &questionRepository{db: db} }

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        return tx.Create(question).Error
    })
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*model.Question, error) {
    var question model.Question
    err := r.db.WithContext(ctx).Preload("Author").First(&question, "questions.id = ?", id).Error
    if err != nil {
        return nil, err
    }
    return &question, nil
}

// GetDetail 详情视图：连同作者、回答及回答作者一并加载
func (r *questionRepository) GetDetail(ctx context.Context, id uint) (*model.Question, error) {
    var question model.Question
    err := r.db.WithContext(ctx).
        Preload("Author").
        Preload("Answers", func(db *gorm.DB) *gorm.DB {
            return db.Order("answers.create_date ASC, answers.id ASC")
        }).
        Preload("Answers.Author").
        First(&question, "questions.id = ?", id).Error
    if err != nil {
        return nil, err
    }
    return &question, nil
}

// Update 单条 UPDATE，subject/content/modify_date 一起落地；create_date 与作者不动
func (r *questionRepository) Update(ctx context.Context, id uint, subject, content string, modifyDate time.Time) error {
    return r.db.WithContext(ctx).
        Model(&model.Question{}).
        Where("id = ?", id).
        Updates(map[string]any{
            "subject":     subject,
            "content":     content,
            "modify_date": modifyDate,
        }).Error
}

// Delete 级联删除：同一事务内先删回答再删问题，不留孤儿回答
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
            return err
        }
        return tx.Delete(&model.Question{}, id).Error
    })
}

// List 按 create_date DESC, id DESC 排序分页；带关键字时做扇出连接 + DISTINCT 去重。
// 匹配谓词横跨一对多关系（问题→回答），同一问题可能因多条回答命中多行，
// 必须去重后每个问题只出现一次；总数同样按去重后的问题数统计。
func (r *questionRepository) List(ctx context.Context, query ListQuery) ([]*model.Question, int64, error) {
    query = query.Normalize()

    base := func() *gorm.DB {
        tx := r.db.WithContext(ctx).Model(&model.Question{})
        if query.Keyword == "" {
            return tx
        }
        kw := "%" + strings.ToLower(query.Keyword) + "%"
        // LOWER + LIKE 在 sqlite/postgres 上行为一致（原生 ILIKE 仅 postgres）
        return tx.
            Joins("JOIN users ON users.id = questions.user_id").
            Joins("LEFT JOIN answers ON answers.question_id = questions.id").
            Joins("LEFT JOIN users AS answer_authors ON answer_authors.id = answers.user_id").
            Where(r.db.
                Where("LOWER(questions.subject) LIKE ?", kw).
                Or("LOWER(questions.content) LIKE ?", kw).
                Or("LOWER(users.username) LIKE ?", kw).
                Or("LOWER(answers.content) LIKE ?", kw).
                Or("LOWER(answer_authors.username) LIKE ?", kw))
    }

    var total int64
    if err := base().Distinct("questions.id").Count(&total).Error; err != nil {
        return nil, 0, err
    }

    var questions []*model.Question
    err := base().
        Distinct("questions.*").
        Order("questions.create_date DESC, questions.id DESC").
        Offset(query.Offset()).
        Limit(PageSize).
        Preload("Author").
        Find(&questions).Error
    if err != nil {
        return nil, 0, err
    }
    return questions, total, nil
}
