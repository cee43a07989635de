package service

import (
    "context"
    "errors"
    "time"

    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/internal/model"
    "github.com/cram-school-study/pybo/internal/repository"
    "github.com/cram-school-study/pybo/pkg/logger"
)

var (
    ErrQuestionNotFound = errors.New("question not found")
    ErrPermissionDenied = errors.New("no permission for this question")
)

// QuestionService 问题生命周期 + 列表/搜索。
// current_user 显式作为参数传入，不走任何全局状态。
type QuestionService interface {
    List(ctx context.Context, page int, keyword string) ([]*model.Question, int64, error)
    Detail(ctx context.Context, id uint) (*model.Question, error)
    Create(ctx context.Context, currentUserID, subject, content string) (*model.Question, error)
    Prefill(ctx context.Context, id uint, currentUserID string) (*model.Question, error)
    Modify(ctx context.Context, id uint, currentUserID, subject, content string) (*model.Question, error)
    Delete(ctx context.Context, id uint, currentUserID string) error
}

type questionService struct {
    questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
    return &questionService{questionRepo: questionRepo}
}

func (s *questionService) List(ctx context.Context, page int, keyword string) ([]*model.Question, int64, error) {
    if page < 1 {
        page = 1
    }
    return s.questionRepo.List(ctx, repository.ListQuery{Page: page, Keyword: keyword})
}

func (s *questionService) Detail(ctx context.Context, id uint) (*model.Question, error) {
    question, err := s.questionRepo.GetDetail(ctx, id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrQuestionNotFound
        }
        return nil, err
    }
    return question, nil
}

func (s *questionService) Create(ctx context.Context, currentUserID, subject, content string) (*model.Question, error) {
    question := &model.Question{
        Subject:    subject,
        Content:    content,
        UserID:     currentUserID,
        CreateDate: time.Now(),
    }
    if err := s.questionRepo.Create(ctx, question); err != nil {
        return nil, err
    }
    return question, nil
}

// Prefill 修改表单回填：校验归属后返回当前字段值，不产生任何写入
func (s *questionService) Prefill(ctx context.Context, id uint, currentUserID string) (*model.Question, error) {
    return s.authorize(ctx, id, currentUserID)
}

// Modify 先查存在性、再查归属，任一失败都不触碰存储；
// subject/content/modify_date 单条 UPDATE 原子落地，create_date 与作者不变。
// 并发修改按 last-writer-wins 处理，归属校验是唯一护栏。
func (s *questionService) Modify(ctx context.Context, id uint, currentUserID, subject, content string) (*model.Question, error) {
    question, err := s.authorize(ctx, id, currentUserID)
    if err != nil {
        return nil, err
    }
    now := time.Now()
    if err := s.questionRepo.Update(ctx, id, subject, content, now); err != nil {
        return nil, err
    }
    question.Subject = subject
    question.Content = content
    question.ModifyDate = &now
    return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint, currentUserID string) error {
    if _, err := s.authorize(ctx, id, currentUserID); err != nil {
        return err
    }
    return s.questionRepo.Delete(ctx, id)
}

func (s *questionService) authorize(ctx context.Context, id uint, currentUserID string) (*model.Question, error) {
    question, err := s.questionRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrQuestionNotFound
        }
        return nil, err
    }
    if question.UserID != currentUserID {
        logger.Warn("question mutation denied",
            zap.Uint("question_id", id),
            zap.String("owner", question.UserID),
            zap.String("caller", currentUserID))
        return nil, ErrPermissionDenied
    }
    return question, nil
}
