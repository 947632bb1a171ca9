package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/httpresp"
	ucAppointment "github.com/Cri010101/toelettatura-system/internal/usecase/appointment"
	ucCatalog "github.com/Cri010101/toelettatura-system/internal/usecase/catalog"
)

// PublicHandler serves the endpoints a client uses without logging in.
type PublicHandler struct {
	listServices      *ucCatalog.ListServices
	createAppointment *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	listServices *ucCatalog.ListServices,
	createAppointment *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		listServices:      listServices,
		createAppointment: createAppointment,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName      string `json:"clientName"`
	ClientPhone     string `json:"clientPhone"`
	ClientEmail     string `json:"clientEmail"`
	PetName         string `json:"petName"`
	PetBreed        string `json:"petBreed"`
	ServiceID       flexID `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Notes           string `json:"notes"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.listServices.Execute(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// BOOKING
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.BadRequest(ucAppointment.MsgMissingFields))
		return
	}

	ap, err := h.createAppointment.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		PetName:     req.PetName,
		PetBreed:    req.PetBreed,
		ServiceID:   uint(req.ServiceID),
		Date:        req.AppointmentDate,
		Time:        req.AppointmentTime,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message":     "Appuntamento creato con successo",
		"appointment": ap,
	})
}
