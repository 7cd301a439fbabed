package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"portalescolar_backend/internals/configs"
	dto "portalescolar_backend/internals/features/users/auth/dto"
	model "portalescolar_backend/internals/features/users/auth/model"
	helper "portalescolar_backend/internals/helpers"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

/* ============================================
   Controller
============================================ */

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	if v == nil {
		v = validator.New()
	}
	return &AuthController{DB: db, Validator: v}
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload inválido")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

/* ============================================
   LOGIN
   POST /api/auth/login
============================================ */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var p dto.LoginDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	var user model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", p.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar usuário")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Usuário desativado")
	}
	if !user.CheckPassword(p.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}

	access, err := signToken(user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}
	refresh, err := signToken(user, configs.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Expires:  time.Now().Add(accessTokenTTL),
	})

	return helper.JsonOK(c, "Login realizado", dto.TokenResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
		User:         dto.FromModel(user),
	})
}

/* ============================================
   REFRESH
   POST /api/auth/refresh
============================================ */

func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var p dto.RefreshDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	tok, err := jwt.Parse(p.RefreshToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inválido")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", sub).
		First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuário não encontrado")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Usuário desativado")
	}

	access, err := signToken(user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}

	return helper.JsonOK(c, "Token renovado", fiber.Map{
		"access_token": access,
		"expires_in":   int64(accessTokenTTL.Seconds()),
	})
}

/* ============================================
   REGISTER (admin only — guard na rota)
   POST /api/a/auth/register
============================================ */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var p dto.RegisterUserDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	var cnt int64
	if err := ctl.DB.Model(&model.UserModel{}).
		Where("user_email = ?", p.Email).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar e-mail")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "E-mail já cadastrado")
	}

	ent := p.ToModel()
	if err := ent.SetPassword(p.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar usuário")
	}

	return helper.JsonCreated(c, "Usuário criado", dto.FromModel(ent))
}

/* ============================================
   LOGOUT
   POST /api/auth/logout
============================================ */

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return helper.JsonOK(c, "Sessão encerrada", nil)
}

func signToken(user model.UserModel, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.UserID.String(),
		"name": user.UserName,
		"role": user.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
