package handler

import (
	"errors"
	"net/http"

	"kinbech/internal/domain/model"
	auth "kinbech/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	resetUC    *auth.ResetPasswordUsecase
}

// DI コンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	resetUC *auth.ResetPasswordUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		resetUC:    resetUC,
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.register)
	e.POST("/token", h.token)
	e.POST("/password-reset/request", h.requestReset)
	e.POST("/password-reset/confirm", h.confirmReset)
}

// /register のリクエストボディ。
type registerRequest struct {
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Password string   `json:"password"`
	Role     []string `json:"role"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
}

// usernameが衝突したときは代案を付けて返す
type registerConflictResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	roles := make([]model.Role, 0, len(req.Role))
	for _, r := range req.Role {
		roles = append(roles, model.Role(r))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Roles:    roles,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameAlreadyExists):
			return c.JSON(http.StatusBadRequest, registerConflictResponse{
				Error:      "username already registered",
				Suggestion: out.Suggestion,
			})
		case errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, MessageResponse{Msg: "user registered successfully"})
}

// /token はOAuth2のpasswordフローと同じform入力。
func (h *AuthHandler) token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "incorrect username or password"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, out)
}

type resetRequestBody struct {
	Username string `json:"username"`
	Number   string `json:"number"`
}

// アカウントの有無にかかわらず200を返す（探られないように）
func (h *AuthHandler) requestReset(c echo.Context) error {
	var req resetRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Username == "" && req.Number == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username or number is required"})
	}

	if err := h.resetUC.Request(c.Request().Context(), auth.RequestResetInput{
		Username: req.Username,
		Phone:    req.Number,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: "reset link sent"})
}

type resetConfirmBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) confirmReset(c echo.Context) error {
	var req resetConfirmBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.resetUC.Confirm(c.Request().Context(), auth.ConfirmResetInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired reset token"})
		case errors.Is(err, auth.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: "password reset successful"})
}
