package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/auth"
)

func (e *Env) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := e.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login accepts a JSON body or the form-encoded body the web client sends.
func (e *Env) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := e.Auth.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (e *Env) Logout(c *gin.Context) {
	if err := e.Auth.Logout(c.Request.Context(), c.GetString(ctxTokenKey)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (e *Env) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (e *Env) UpdateMe(c *gin.Context) {
	var input auth.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := e.Auth.UpdateUser(c.Request.Context(), currentUser(c).ID, input, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func userIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound())
		return uuid.Nil, false
	}
	return id, true
}

func (e *Env) GetUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	user, err := e.Auth.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (e *Env) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var input auth.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := e.Auth.UpdateUser(c.Request.Context(), id, input, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (e *Env) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := e.Auth.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
