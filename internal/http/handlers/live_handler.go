// README: Debounced live estimate handlers; the form posts every change, the client polls the latest result.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/fare"
)

type LiveEstimator interface {
	Schedule(key string, req fare.Request) uint64
	Latest(key string) (fare.Outcome, bool)
	Forget(key string)
}

type LiveHandler struct {
	live LiveEstimator
	loc  *time.Location
}

func NewLiveHandler(live LiveEstimator, loc *time.Location) *LiveHandler {
	return &LiveHandler{live: live, loc: loc}
}

type liveReq struct {
	Session string `json:"session"`
	estimateReq
}

func (h *LiveHandler) Schedule(c *gin.Context) {
	var body liveReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(body.Session) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	req, err := body.toRequest(h.loc)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	seq := h.live.Schedule(body.Session, req)
	writeJSON(c, http.StatusAccepted, gin.H{"session": body.Session, "seq": seq})
}

type liveResp struct {
	fare.Outcome
	Error string `json:"error,omitempty"`
}

func (h *LiveHandler) Latest(c *gin.Context) {
	session := c.Param("session")
	if !isValidID(session) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	out, ok := h.live.Latest(session)
	if !ok {
		writeError(c, http.StatusNotFound, "no estimate for session")
		return
	}
	resp := liveResp{Outcome: out}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	writeJSON(c, http.StatusOK, resp)
}

// Forget ends a session; the form calls it when the user leaves the estimator.
func (h *LiveHandler) Forget(c *gin.Context) {
	session := c.Param("session")
	if !isValidID(session) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	h.live.Forget(session)
	c.Status(http.StatusNoContent)
}
