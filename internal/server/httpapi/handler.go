package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/gin-gonic/gin"
)

// respond runs call and writes its result as JSON with okStatus, or the
// mapped error.
func respond[Req, Resp any](c *gin.Context, req *Req, okStatus int, call func(context.Context, *Req) (*Resp, error)) {
	resp, err := call(c.Request.Context(), req)
	if err != nil {
		code, msg := httpStatus(err)
		c.JSON(code, api.ErrorResponse{Error: msg})
		return
	}
	if okStatus == http.StatusNoContent {
		c.Status(okStatus)
		return
	}
	c.JSON(okStatus, resp)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) healthz(c *gin.Context) {
	respond(c, &api.PingRequest{}, http.StatusOK, s.svc.Ping)
}

func (s *Server) register(c *gin.Context) {
	req := &api.RegisterRequest{}
	if bindJSON(c, req) {
		respond(c, req, http.StatusCreated, s.svc.Register)
	}
}

func (s *Server) login(c *gin.Context) {
	req := &api.LoginRequest{}
	if bindJSON(c, req) {
		respond(c, req, http.StatusOK, s.svc.Login)
	}
}

func (s *Server) refresh(c *gin.Context) {
	req := &api.RefreshTokenRequest{}
	if bindJSON(c, req) {
		respond(c, req, http.StatusOK, s.svc.RefreshToken)
	}
}

func (s *Server) getLeaderboard(c *gin.Context) {
	req := &api.GetLeaderboardRequest{}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		req.Limit = n
	}
	respond(c, req, http.StatusOK, s.svc.GetLeaderboard)
}

func (s *Server) listHabits(c *gin.Context) {
	respond(c, &api.ListHabitsRequest{}, http.StatusOK, s.svc.ListHabits)
}

func (s *Server) createHabit(c *gin.Context) {
	req := &api.CreateHabitRequest{}
	if bindJSON(c, req) {
		respond(c, req, http.StatusCreated, s.svc.CreateHabit)
	}
}

func (s *Server) renameHabit(c *gin.Context) {
	req := &api.RenameHabitRequest{}
	if bindJSON(c, req) {
		req.ID = c.Param("id")
		respond(c, req, http.StatusOK, s.svc.RenameHabit)
	}
}

func (s *Server) deleteHabit(c *gin.Context) {
	respond(c, &api.DeleteHabitRequest{ID: c.Param("id")}, http.StatusNoContent, s.svc.DeleteHabit)
}

func (s *Server) checkIn(c *gin.Context) {
	respond(c, &api.CheckInRequest{HabitID: c.Param("id")}, http.StatusOK, s.svc.CheckIn)
}
