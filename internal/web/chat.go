package web

import (
	stderrors "errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/foti-africa/foti-web/internal/chat"
	"github.com/foti-africa/foti-web/internal/ctxutil"
	"github.com/foti-africa/foti-web/internal/errors"
	"github.com/foti-africa/foti-web/internal/genai"
)

// SessionCookie names the cookie carrying the chat session id.
const SessionCookie = "foti_chat"

// Chat notice codes, carried in the chat_notice query parameter after a
// form post and in the "error" field of API responses.
const (
	noticeEmpty       = "empty"
	noticeBusy        = "busy"
	noticeTooLong     = "too_long"
	noticeRateLimited = "rate_limited"
)

var noticeText = map[string]string{
	noticeEmpty:       "Please type a message first.",
	noticeBusy:        "The assistant is still answering your previous message.",
	noticeTooLong:     "That message is too long. Please shorten it and try again.",
	noticeRateLimited: "You're sending messages too quickly. Please wait a moment.",
}

// chatWidget builds the widget state for the current visitor without
// creating a session.
func (h *Handler) chatWidget(c *gin.Context) ChatWidget {
	w := ChatWidget{
		Open:      c.Query("chat") == "open",
		Enabled:   h.chatOn,
		Notice:    noticeText[c.Query("chat_notice")],
		MaxLength: h.maxMessageLength,
	}

	if sess, ok := h.session(c); ok {
		w.Messages = messageViews(sess.Messages())
		w.Loading = sess.Loading()
		return w
	}
	w.Messages = []ChatMessageView{messageView(chat.Message{Role: genai.RoleModel, Text: genai.Greeting})}
	return w
}

// session looks up the visitor's session and, when found, slides the
// cookie expiry forward to match the store's idle timeout.
func (h *Handler) session(c *gin.Context) (*chat.Session, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	sess, ok := h.sessions.Get(id)
	if ok {
		h.setSessionCookie(c, sess.ID)
	}
	return sess, ok
}

// send delivers text on the visitor's session, creating it on first use.
// It returns the appended messages, or a notice code and HTTP status.
func (h *Handler) send(c *gin.Context, text string) ([]chat.Message, string, int) {
	if h.maxMessageLength > 0 && utf8.RuneCountInString(text) > h.maxMessageLength {
		if h.metrics != nil {
			h.metrics.RecordHTTPError("too_long", c.FullPath())
		}
		return nil, noticeTooLong, http.StatusBadRequest
	}
	if strings.TrimSpace(text) == "" {
		return nil, noticeEmpty, http.StatusBadRequest
	}

	id, _ := c.Cookie(SessionCookie)
	sess, _ := h.sessions.GetOrCreate(id)
	h.setSessionCookie(c, sess.ID)

	ctx := ctxutil.WithSessionID(c.Request.Context(), sess.ID)
	added, err := sess.Send(ctx, h.assistant, text)
	switch {
	case stderrors.Is(err, chat.ErrEmptyMessage):
		return nil, noticeEmpty, http.StatusBadRequest
	case stderrors.Is(err, chat.ErrBusy):
		return nil, noticeBusy, http.StatusConflict
	case err != nil:
		return nil, "", http.StatusInternalServerError
	}

	if added[1].IsError {
		h.logger.DebugContext(ctx, "Chat reply degraded to fallback text")
	}
	return added, "", http.StatusOK
}

func (h *Handler) setSessionCookie(c *gin.Context, id string) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", secure, true)
}

// chatForm handles the no-JavaScript widget form and redirects back to the
// page it was posted from with the widget open.
func (h *Handler) chatForm(c *gin.Context) {
	_, notice, _ := h.send(c, c.PostForm("message"))
	c.Redirect(http.StatusSeeOther, chatReturnURL(c.PostForm("return_to"), notice))
}

// chatReturnURL builds the redirect target after a form post. Only local
// paths are accepted.
func chatReturnURL(returnTo, notice string) string {
	p := "/"
	if u, err := url.Parse(returnTo); err == nil &&
		strings.HasPrefix(returnTo, "/") &&
		!strings.HasPrefix(returnTo, "//") &&
		!strings.HasPrefix(returnTo, "/\\") &&
		u.Host == "" {
		p = u.Path
	}

	q := url.Values{"chat": {"open"}}
	if notice != "" {
		q.Set("chat_notice", notice)
	}
	return p + "?" + q.Encode() + "#chat"
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Messages []ChatMessageView `json:"messages"`
	Loading  bool              `json:"loading"`
}

type chatError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) chatAPI(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, chatError{Error: "bad_request", Message: "Invalid request body."})
		return
	}

	added, notice, status := h.send(c, req.Message)
	if status != http.StatusOK {
		c.JSON(status, chatError{Error: notice, Message: noticeText[notice]})
		return
	}
	c.JSON(http.StatusOK, chatResponse{Messages: messageViews(added)})
}

func (h *Handler) chatHistory(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		c.JSON(http.StatusOK, chatResponse{Messages: messageViews(sess.Messages()), Loading: sess.Loading()})
		return
	}
	c.JSON(http.StatusOK, chatResponse{
		Messages: []ChatMessageView{messageView(chat.Message{Role: genai.RoleModel, Text: genai.Greeting})},
	})
}

// rateLimit throttles chat sends per client address.
func (h *Handler) rateLimit(c *gin.Context) {
	if h.limiter == nil {
		c.Next()
		return
	}

	key := c.ClientIP()
	if h.limiter.Allow(key) {
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(math.Floor(h.limiter.Available(key)))))
		c.Next()
		return
	}

	_ = c.Error(fmt.Errorf("chat sends from %s: %w", key, errors.ErrRateLimitExceeded))
	if h.metrics != nil {
		h.metrics.RecordHTTPError("rate_limit", c.FullPath())
	}
	wait := h.limiter.RetryAfter(key)
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	c.Header("X-RateLimit-Remaining", "0")
	h.logger.WithField("client_ip", key).DebugContext(c.Request.Context(), "Chat rate limit exceeded")

	if strings.HasPrefix(c.FullPath(), "/api/") {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, chatError{Error: noticeRateLimited, Message: noticeText[noticeRateLimited]})
		return
	}
	c.Redirect(http.StatusSeeOther, chatReturnURL(c.PostForm("return_to"), noticeRateLimited))
	c.Abort()
}
