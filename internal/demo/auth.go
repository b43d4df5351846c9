package demo

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rotierp/internal/model"
	"rotierp/pkg/response"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// signAccessToken issues a short-lived HS256 token carrying the role
func (s *Server) signAccessToken(a *Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   a.ID.String(),
		"email": a.Email,
		"role":  string(a.Role),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Server) issueRefreshToken(a *Account) (string, error) {
	rt := RefreshToken{
		ID:        uuid.New(),
		AccountID: a.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.db.Create(&rt).Error; err != nil {
		return "", err
	}
	return rt.Token, nil
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	var account Account
	if err := s.db.First(&account, "email = ?", strings.ToLower(req.Email)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid email or password"))
		return
	}
	if account.Status != model.StatusActive {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Account is not active"))
		return
	}

	accessToken, err := s.signAccessToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate token"))
		return
	}
	refreshToken, err := s.issueRefreshToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate refresh token"))
		return
	}

	now := time.Now()
	account.LastLogin = &now
	s.db.Model(&account).Update("last_login", now)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         account.Record(),
	}))
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "refreshToken is required"))
		return
	}

	var rt RefreshToken
	if err := s.db.First(&rt, "token = ?", req.RefreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid refresh token"))
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		s.db.Delete(&rt)
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Refresh token expired"))
		return
	}

	var account Account
	if err := s.db.First(&account, "id = ?", rt.AccountID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Account no longer exists"))
		return
	}

	accessToken, err := s.signAccessToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate token"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"accessToken": accessToken}))
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	email := strings.ToLower(req.Email)
	var existing Account
	if err := s.db.First(&existing, "email = ?", email).Error; err == nil {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to hash password"))
		return
	}

	account := Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         model.RoleCounterOperator, // new signups start at the bottom of the hierarchy
		Status:       model.StatusActive,
	}
	if err := s.db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to create account"))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"user": account.Record()}))
}

func (s *Server) handleLogout(c *gin.Context) {
	// Best effort: revoke the refresh token when the client sends one
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		s.db.Where("token = ?", req.RefreshToken).Delete(&RefreshToken{})
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"loggedOut": true}))
}

func (s *Server) handleProfile(c *gin.Context) {
	accountID := c.GetString("accountID")
	var account Account
	if err := s.db.First(&account, "id = ?", accountID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Account no longer exists"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"user": account.Record()}))
}

// requireMinRole validates the bearer token and enforces a minimum rank in
// the role hierarchy
func (s *Server) requireMinRole(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}
		roleStr, _ := claims["role"].(string)
		role := model.Role(roleStr)
		if role.Rank() < min.Rank() || !role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		sub, _ := claims["sub"].(string)
		c.Set("accountID", sub)
		c.Set("accountRole", roleStr)
		c.Next()
	}
}
