package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) ListHistory(c *gin.Context) {
	user := currentUser(c)

	entries, err := s.history.List(c.Request.Context(), user.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]historyDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryDTO(e))
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func (s *HTTPServer) CreateHistory(c *gin.Context) {
	var req createHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": MsgInvalidBody})
		return
	}

	created, err := s.history.Create(c.Request.Context(), currentUser(c).ID, req.entry())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHistoryDTO(created))
}

func (s *HTTPServer) DeleteHistory(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": MsgInvalidBody})
		return
	}

	n, err := s.history.DeleteMany(c.Request.Context(), currentUser(c).ID, req.IDs)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
