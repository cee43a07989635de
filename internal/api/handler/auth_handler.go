package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/cram-school-study/pybo/internal/api/middleware"
    "github.com/cram-school-study/pybo/internal/service"
    "github.com/cram-school-study/pybo/pkg/response"
)

type registerRequest struct {
    Username string `json:"username" binding:"required,min=3,max=64"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
    Username string `json:"username" binding:"required"`
    Password string `json:"password" binding:"required"`
}

// Register 用户注册
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrUsernameTaken) {
            response.BadRequest(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, user)
}

// Login 登录换取令牌
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, user, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrInvalidCredentials) {
            response.Unauthorized(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"token": token, "user": user})
}

// Logout 登出（当前令牌进入黑名单）
// @Summary 登出
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
    claims, ok := middleware.CurrentClaims(c)
    if !ok {
        response.Unauthorized(c, "login required")
        return
    }
    if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}
