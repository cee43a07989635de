package handler

import (
    "errors"
    "fmt"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/cram-school-study/pybo/internal/api/middleware"
    "github.com/cram-school-study/pybo/internal/repository"
    "github.com/cram-school-study/pybo/internal/service"
    "github.com/cram-school-study/pybo/pkg/response"
)

type questionRequest struct {
    Subject string `json:"subject" binding:"required,notblank,max=255"`
    Content string `json:"content" binding:"required,notblank"`
}

// ListQuestions 问题列表
// @Summary 问题列表（分页 + 关键字搜索）
// @Tags 问题
// @Produce json
// @Param page query int false "页码" default(1)
// @Param kw query string false "关键字"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/questions [get]
func (h *Handler) ListQuestions(c *gin.Context) {
    page := 1
    if v := c.Query("page"); v != "" {
        p, err := strconv.Atoi(v)
        if err != nil || p < 1 {
            response.BadRequest(c, "page must be a positive integer")
            return
        }
        page = p
    }
    kw := c.Query("kw")

    list, total, err := h.questionSvc.List(c.Request.Context(), page, kw)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{
        "page":      page,
        "page_size": repository.PageSize,
        "total":     total,
        "kw":        kw,
        "list":      list,
    })
}

// GetQuestion 问题详情
// @Summary 问题详情（含作者与回答）
// @Tags 问题
// @Produce json
// @Param id path int true "问题ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/questions/{id} [get]
func (h *Handler) GetQuestion(c *gin.Context) {
    id, ok := questionID(c)
    if !ok {
        return
    }
    question, err := h.questionSvc.Detail(c.Request.Context(), id)
    if err != nil {
        h.renderQuestionError(c, id, err)
        return
    }
    response.Success(c, question)
}

// CreateQuestion 发布问题
// @Summary 发布问题
// @Tags 问题
// @Accept json
// @Produce json
// @Param request body questionRequest true "问题内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/questions [post]
func (h *Handler) CreateQuestion(c *gin.Context) {
    var req questionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    userID, ok := middleware.CurrentUserID(c)
    if !ok {
        response.Unauthorized(c, "login required")
        return
    }
    question, err := h.questionSvc.Create(c.Request.Context(), userID, req.Subject, req.Content)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Created(c, question)
}

// EditQuestion 修改表单回填（无新数据时返回当前字段值，不产生修改）
// @Summary 修改回填
// @Tags 问题
// @Produce json
// @Param id path int true "问题ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/questions/{id}/edit [get]
func (h *Handler) EditQuestion(c *gin.Context) {
    id, ok := questionID(c)
    if !ok {
        return
    }
    userID, _ := middleware.CurrentUserID(c)
    question, err := h.questionSvc.Prefill(c.Request.Context(), id, userID)
    if err != nil {
        h.renderQuestionError(c, id, err)
        return
    }
    response.Success(c, gin.H{"subject": question.Subject, "content": question.Content})
}

// ModifyQuestion 修改问题
// @Summary 修改问题（仅作者）
// @Tags 问题
// @Accept json
// @Produce json
// @Param id path int true "问题ID"
// @Param request body questionRequest true "新内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/questions/{id} [put]
func (h *Handler) ModifyQuestion(c *gin.Context) {
    id, ok := questionID(c)
    if !ok {
        return
    }
    var req questionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    userID, _ := middleware.CurrentUserID(c)
    question, err := h.questionSvc.Modify(c.Request.Context(), id, userID, req.Subject, req.Content)
    if err != nil {
        h.renderQuestionError(c, id, err)
        return
    }
    response.Success(c, question)
}

// DeleteQuestion 删除问题
// @Summary 删除问题（仅作者，连带删除回答）
// @Tags 问题
// @Produce json
// @Param id path int true "问题ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/questions/{id} [delete]
func (h *Handler) DeleteQuestion(c *gin.Context) {
    id, ok := questionID(c)
    if !ok {
        return
    }
    userID, _ := middleware.CurrentUserID(c)
    if err := h.questionSvc.Delete(c.Request.Context(), id, userID); err != nil {
        h.renderQuestionError(c, id, err)
        return
    }
    response.Success(c, nil)
}

func questionID(c *gin.Context) (uint, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid question id")
        return 0, false
    }
    return uint(id), true
}

// renderQuestionError 统一映射服务层错误；
// 权限不足时附带详情地址，对应原页面“提示 + 跳回详情”的交互。
func (h *Handler) renderQuestionError(c *gin.Context, id uint, err error) {
    switch {
    case errors.Is(err, service.ErrQuestionNotFound):
        response.NotFound(c, "question not found")
    case errors.Is(err, service.ErrPermissionDenied):
        response.Forbidden(c, "no permission for this question",
            gin.H{"detail": fmt.Sprintf("/api/v1/questions/%d", id)})
    default:
        response.InternalError(c, err)
    }
}
