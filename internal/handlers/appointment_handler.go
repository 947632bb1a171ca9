package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/httpresp"
	"github.com/Cri010101/toelettatura-system/internal/middleware"
	ucAppointment "github.com/Cri010101/toelettatura-system/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list         *ucAppointment.ListAppointments
	get          *ucAppointment.GetAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:         list,
		get:          get,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status          string                  `json:"status"`
	RejectionReason *string                 `json:"rejectionReason"`
	ProposedChanges *domain.ProposedChanges `json:"proposedChanges"`
}

// ======================================================
// HELPERS
// ======================================================

// appointmentID reports ok=false for anything that cannot name a row.
func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func actorID(c *gin.Context) uint {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		httperr.Write(c, httperr.NotFound(ucAppointment.MsgAppointmentNotFound))
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		httperr.Write(c, httperr.NotFound(ucAppointment.MsgAppointmentNotFound))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.BadRequest("Richiesta non valida"))
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), id, ucAppointment.UpdateStatusInput{
		ActorID:         actorID(c),
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		ProposedChanges: req.ProposedChanges,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, ap)
}
