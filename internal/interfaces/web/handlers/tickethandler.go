package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appnotif "helpdesk/internal/application/notification"
	ticketusecases "helpdesk/internal/application/ticket/usecases"
	notifdomain "helpdesk/internal/domain/notification"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/interfaces/web/middleware"
	"helpdesk/internal/shared/biztime"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type TicketHandler struct {
	createTicket   ticketusecases.CreateTicketExecutor
	startTicket    ticketusecases.StartTicketExecutor
	concludeTicket ticketusecases.ConcludeTicketExecutor
	returnTicket   ticketusecases.ReturnTicketExecutor
	finalizeTicket ticketusecases.FinalizeTicketExecutor
	addInteraction ticketusecases.AddInteractionExecutor
	getTicket      ticketusecases.GetTicketExecutor
	listTickets    ticketusecases.ListTicketsExecutor
	listDeliveries appnotif.ListTicketDeliveriesExecutor
	markdown       markdown.MarkdownService
	logger         logger.Interface
}

func NewTicketHandler(
	createTicket ticketusecases.CreateTicketExecutor,
	startTicket ticketusecases.StartTicketExecutor,
	concludeTicket ticketusecases.ConcludeTicketExecutor,
	returnTicket ticketusecases.ReturnTicketExecutor,
	finalizeTicket ticketusecases.FinalizeTicketExecutor,
	addInteraction ticketusecases.AddInteractionExecutor,
	getTicket ticketusecases.GetTicketExecutor,
	listTickets ticketusecases.ListTicketsExecutor,
	listDeliveries appnotif.ListTicketDeliveriesExecutor,
	md markdown.MarkdownService,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicket:   createTicket,
		startTicket:    startTicket,
		concludeTicket: concludeTicket,
		returnTicket:   returnTicket,
		finalizeTicket: finalizeTicket,
		addInteraction: addInteraction,
		getTicket:      getTicket,
		listTickets:    listTickets,
		listDeliveries: listDeliveries,
		markdown:       md,
		logger:         logger,
	}
}

type ticketRow struct {
	ID          uint
	Subject     string
	Priority    string
	Status      string
	ReturnCount int
	CreatedAt   string
}

type interactionView struct {
	Author    string
	Kind      string
	CreatedAt string
	Body      template.HTML
}

type deliveryRow struct {
	Recipient string
	Kind      string
	Outcome   string
	Attempts  int
	Error     string
	CreatedAt string
}

func (h *TicketHandler) List(c *gin.Context) {
	userID, username, role := middleware.SessionUser(c)

	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.listTickets.Execute(c.Request.Context(), ticketusecases.ListTicketsCommand{
		ViewerID: userID,
		IsAgent:  role.IsAgent(),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     page,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	rows := make([]ticketRow, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		rows = append(rows, ticketRow{
			ID:          t.ID(),
			Subject:     t.Subject(),
			Priority:    t.Priority().DisplayName(),
			Status:      t.Status().DisplayName(),
			ReturnCount: t.ReturnCount(),
			CreatedAt:   biztime.FormatHuman(t.CreatedAt()),
		})
	}

	c.HTML(http.StatusOK, "tickets.html", gin.H{
		"Username":       username,
		"IsAgent":        role.IsAgent(),
		"IsAdmin":        role.IsAdmin(),
		"Tickets":        rows,
		"Total":          result.Total,
		"Page":           result.Page,
		"HasNext":        int64(result.Page*result.PageSize) < result.Total,
		"NextPage":       result.Page + 1,
		"PrevPage":       result.Page - 1,
		"StatusFilter":   c.Query("status"),
		"PriorityFilter": c.Query("priority"),
	})
}

func (h *TicketHandler) NewForm(c *gin.Context) {
	_, username, role := middleware.SessionUser(c)
	c.HTML(http.StatusOK, "ticket_new.html", gin.H{
		"Username": username,
		"IsAgent":  role.IsAgent(),
		"IsAdmin":  role.IsAdmin(),
	})
}

func (h *TicketHandler) Create(c *gin.Context) {
	userID, username, role := middleware.SessionUser(c)

	result, err := h.createTicket.Execute(c.Request.Context(), ticketusecases.CreateTicketCommand{
		Subject:     c.PostForm("subject"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		CreatorID:   userID,
	})
	if err != nil {
		if apperrors.IsValidationError(err) {
			c.HTML(http.StatusBadRequest, "ticket_new.html", gin.H{
				"Username":    username,
				"IsAgent":     role.IsAgent(),
				"IsAdmin":     role.IsAdmin(),
				"Error":       apperrors.GetAppError(err).Message,
				"Subject":     c.PostForm("subject"),
				"Description": c.PostForm("description"),
			})
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(result.Ticket.ID()))
}

func (h *TicketHandler) Detail(c *gin.Context) {
	userID, username, role := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	result, err := h.getTicket.Execute(c.Request.Context(), ticketusecases.GetTicketCommand{
		TicketID: ticketID,
		ViewerID: userID,
		IsAgent:  role.IsAgent(),
	})
	if err != nil {
		renderError(c, err)
		return
	}

	t := result.Ticket
	isOwner := t.CreatorID() == userID
	status := t.Status()

	thread := make([]interactionView, 0, len(t.Interactions()))
	for _, i := range t.Interactions() {
		thread = append(thread, h.interactionView(i))
	}

	// Agents also see the notification delivery log for the ticket. The log
	// is diagnostic; failing to load it must not break the page.
	var deliveries []deliveryRow
	if role.IsAgent() {
		log, err := h.listDeliveries.Execute(c.Request.Context(), appnotif.ListTicketDeliveriesCommand{
			TicketID: ticketID,
		})
		if err != nil {
			h.logger.Warnw("failed to load delivery log", "ticket_id", ticketID, "error", err)
		} else {
			deliveries = make([]deliveryRow, 0, len(log.Records))
			for _, r := range log.Records {
				deliveries = append(deliveries, deliveryView(r))
			}
		}
	}

	c.HTML(http.StatusOK, "ticket_detail.html", gin.H{
		"Username":    username,
		"IsAgent":     role.IsAgent(),
		"IsAdmin":     role.IsAdmin(),
		"ID":          t.ID(),
		"Subject":     t.Subject(),
		"Priority":    t.Priority().DisplayName(),
		"Status":      status.DisplayName(),
		"ReturnCount": t.ReturnCount(),
		"CreatedAt":   biztime.FormatHuman(t.CreatedAt()),
		"Thread":      thread,
		"Deliveries":  deliveries,
		"CanStart":    role.IsAgent() && status.IsNew(),
		"CanConclude": role.IsAgent() && status.IsInProgress(),
		"CanReturn":   isOwner && status.IsAwaitingConfirmation(),
		"CanFinalize": isOwner && status.IsAwaitingConfirmation(),
		"CanComment":  !status.IsFinalized(),
	})
}

func (h *TicketHandler) Start(c *gin.Context) {
	userID, _, _ := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	_, err := h.startTicket.Execute(c.Request.Context(), ticketusecases.StartTicketCommand{
		TicketID: ticketID,
		AgentID:  userID,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(ticketID))
}

func (h *TicketHandler) Conclude(c *gin.Context) {
	userID, _, _ := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	minutes, _ := strconv.ParseInt(c.PostForm("elapsed_minutes"), 10, 64)

	_, err := h.concludeTicket.Execute(c.Request.Context(), ticketusecases.ConcludeTicketCommand{
		TicketID:       ticketID,
		AgentID:        userID,
		Message:        c.PostForm("message"),
		ElapsedSeconds: minutes * 60,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(ticketID))
}

func (h *TicketHandler) Return(c *gin.Context) {
	userID, _, _ := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	_, err := h.returnTicket.Execute(c.Request.Context(), ticketusecases.ReturnTicketCommand{
		TicketID: ticketID,
		ClientID: userID,
		Message:  c.PostForm("message"),
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(ticketID))
}

func (h *TicketHandler) Finalize(c *gin.Context) {
	userID, _, _ := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	_, err := h.finalizeTicket.Execute(c.Request.Context(), ticketusecases.FinalizeTicketCommand{
		TicketID: ticketID,
		ClientID: userID,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(ticketID))
}

func (h *TicketHandler) Comment(c *gin.Context) {
	userID, _, role := middleware.SessionUser(c)

	ticketID, ok := h.ticketIDParam(c)
	if !ok {
		return
	}

	_, err := h.addInteraction.Execute(c.Request.Context(), ticketusecases.AddInteractionCommand{
		TicketID: ticketID,
		AuthorID: userID,
		IsAgent:  role.IsAgent(),
		Message:  c.PostForm("message"),
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, ticketPath(ticketID))
}

func (h *TicketHandler) ticketIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		renderError(c, apperrors.NewBadRequestError("invalid ticket id"))
		return 0, false
	}
	return uint(id), true
}

// interactionView renders an interaction body from markdown and sanitizes
// the result, so author-supplied content cannot inject markup into the page.
func (h *TicketHandler) interactionView(i *ticket.Interaction) interactionView {
	body, err := h.markdown.ToHTMLSanitized(i.Message())
	if err != nil {
		h.logger.Warnw("failed to render interaction body",
			"interaction_id", i.ID(), "error", err)
		body = template.HTMLEscapeString(i.Message())
	}

	return interactionView{
		Author:    authorLabel(i.AuthorRole()),
		Kind:      kindLabel(i.Kind()),
		CreatedAt: biztime.FormatHuman(i.CreatedAt()),
		Body:      template.HTML(body),
	}
}

func deliveryView(r *notifdomain.DeliveryRecord) deliveryRow {
	outcome := "Failed"
	switch {
	case r.Simulated:
		outcome = "Simulated"
	case r.Success:
		outcome = "Sent"
	}

	return deliveryRow{
		Recipient: r.Recipient,
		Kind:      r.Kind.String(),
		Outcome:   outcome,
		Attempts:  r.Attempts,
		Error:     r.ErrorText,
		CreatedAt: biztime.FormatRFC3339(r.CreatedAt),
	}
}

func authorLabel(role vo.AuthorRole) string {
	if role == vo.AuthorAgent {
		return "Support"
	}
	return "Client"
}

func kindLabel(kind vo.InteractionKind) string {
	switch kind {
	case vo.InteractionOpen:
		return "opened the ticket"
	case vo.InteractionReturn:
		return "returned the ticket"
	case vo.InteractionConclusion:
		return "concluded the ticket"
	default:
		return "wrote"
	}
}

func ticketPath(id uint) string {
	return "/tickets/" + strconv.FormatUint(uint64(id), 10)
}
