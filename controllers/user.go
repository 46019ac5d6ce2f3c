package controllers

import (
	"Connect4/logger"
	"Connect4/middleware"
	"Connect4/services/store"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Create a new account
// @Description Registers a user with empty stats
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 201 {object} models.Player
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /signup [post]
func SignUp(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")

		//Minimum input sanitizing
		if username == "" || email == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}
		if len(username) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is too long"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
			return
		}

		player, err := accounts.CreatePlayer(c.Request.Context(), username, email, string(hash))
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already in use"})
			return
		}
		if err != nil {
			logger.Errorf("[SIGNUP-ERROR] Could not create %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
			return
		}
		c.JSON(http.StatusCreated, player)
	}
}

// @Summary Log in
// @Description Checks the credentials, returns a JWT and opens a cookie session
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param login formData string true "Username or email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string,username=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(accounts Accounts, jwtManager *middleware.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		login := strings.TrimSpace(c.PostForm("login"))
		password := c.PostForm("password")

		//Minimum input sanitizing
		if login == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		credentials, err := accounts.LoadCredentials(c.Request.Context(), login)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password!"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(credentials.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password!"})
			return
		}

		token, err := jwtManager.Generate(credentials.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign token"})
			return
		}

		session.Set(middleware.SessionUserKey, credentials.Username)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "username": credentials.Username})
	}
}

// @Summary Log out
// @Description Deletes the cookie session
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Current user
// @Description Returns the logged in player
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} models.Player
// @Failure 404 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetMe(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, err := accounts.LoadPlayer(c.Request.Context(), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, player)
	}
}
