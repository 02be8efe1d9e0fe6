package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

// CookieConfig describes the session cookie set on login
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// Signup godoc
// @Summary      회원가입
// @Description  아이디, 비밀번호, 닉네임으로 계정을 만듭니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "회원가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.UserResponse} "가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 존재하는 아이디"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      로그인
// @Description  로그인에 성공하면 httponly 쿠키로 세션 토큰을 설정합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.LoginResponse} "로그인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "아이디 또는 비밀번호 불일치"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, int(result.ExpiresIn), "/", "", h.cookie.Secure, true)
	response.SendSuccess(c, http.StatusOK, result)
}

// Logout godoc
// @Summary      로그아웃
// @Description  세션 쿠키를 삭제합니다
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse "로그아웃 성공"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.SendSuccess(c, http.StatusOK, nil)
}

// Me godoc
// @Summary      내 정보 조회
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
