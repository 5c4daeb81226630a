package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/auth"
	"github.com/sujalbistaa/swipe/internal/pitch"
	"github.com/sujalbistaa/swipe/internal/system"
	"github.com/sujalbistaa/swipe/internal/ws"
)

// Env carries the services handlers call into. Hub may be nil.
type Env struct {
	Pitches *pitch.Service
	Auth    *auth.Service
	System  *system.Service
	Hub     *ws.Hub
}

func (e *Env) GetPitches(c *gin.Context) {
	pitches, err := e.Pitches.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pitches)
}

func (e *Env) CreatePitch(c *gin.Context) {
	var input pitch.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := e.Pitches.Create(c.Request.Context(), input, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (e *Env) SubmitVote(c *gin.Context) {
	var input pitch.VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vote, err := e.Pitches.Vote(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded", "vote": vote})
}

func (e *Env) GetPitchVotes(c *gin.Context) {
	pitchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound())
		return
	}

	tally, err := e.Pitches.Tally(c.Request.Context(), pitchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}

func (e *Env) Health(c *gin.Context) {
	c.JSON(http.StatusOK, e.System.Health(c.Request.Context()))
}

func (e *Env) Seed(c *gin.Context) {
	message, err := e.System.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
