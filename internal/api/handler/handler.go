package handler

import "github.com/cram-school-study/pybo/internal/service"

// Handler 聚合各业务服务供路由挂载
type Handler struct {
    questionSvc service.QuestionService
    authSvc     service.AuthService
}

func New(questionSvc service.QuestionService, authSvc service.AuthService) *Handler {
    return &Handler{questionSvc: questionSvc, authSvc: authSvc}
}
