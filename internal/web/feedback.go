package web

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foti-africa/foti-web/internal/errors"
	"github.com/foti-africa/foti-web/internal/feedback"
)

// feedbackForm always shows the initial form; a completed submission
// never leaves values behind.
func (h *Handler) feedbackForm(c *gin.Context) {
	h.renderFeedback(c, http.StatusOK, feedback.NewForm(), nil)
}

func (h *Handler) renderFeedback(c *gin.Context, status int, form feedback.Form, fieldErrors map[string]string) {
	h.render(c, status, "feedback", ViewFeedback, "We Value Your Feedback", feedbackData{
		Form:   form,
		Types:  feedback.Types,
		Errors: fieldErrors,
	})
}

func (h *Handler) submitFeedback(c *gin.Context) {
	var form feedback.Form
	if err := c.ShouldBind(&form); err != nil {
		h.renderFeedback(c, http.StatusBadRequest, feedback.NewForm(), map[string]string{
			"form": "We could not read your submission. Please try again.",
		})
		return
	}
	entered := form

	err := h.feedback.Submit(c.Request.Context(), form)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/feedback/thanks")
	case errors.IsInvalidInput(err):
		var verrs errors.ValidationErrors
		fieldErrors := map[string]string{}
		if stderrors.As(err, &verrs) {
			for _, v := range verrs {
				fieldErrors[v.Field] = v.Message
			}
		}
		h.renderFeedback(c, http.StatusUnprocessableEntity, entered, fieldErrors)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		h.logger.WithError(err).DebugContext(c.Request.Context(), "Feedback submission abandoned")
		c.Status(http.StatusServiceUnavailable)
	default:
		_ = c.Error(err)
		h.logger.WithError(err).ErrorContext(c.Request.Context(), "Feedback submission failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) feedbackThanks(c *gin.Context) {
	h.render(c, http.StatusOK, "thanks", ViewFeedback, "Thank You!", nil)
}
