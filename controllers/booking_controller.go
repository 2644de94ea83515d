package controllers

import (
	"travel-app/dto"
	"travel-app/response"
	"travel-app/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func (ctl *BookingController) GetBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var q dto.PageQuery
	if !bindPage(c, &q) {
		return
	}
	bookings, total, err := ctl.bookings.List(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToBookingResponses(bookings), q.Page, q.Limit, int(total))
}

func (ctl *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := ctl.bookings.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ToBookingResponse(*booking))
}

func (ctl *BookingController) GetBookingDetail(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctl.bookings.Get(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(*booking))
}

func (ctl *BookingController) UpdateBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := ctl.bookings.Update(c.Request.Context(), userID, id, req, c.Request.Method == "PATCH")
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(*booking))
}

func (ctl *BookingController) DeleteBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.bookings.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
