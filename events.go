package main

import (
	"net/http"
	"time"

	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
)

// Event handler functions

// @Summary Get events
// @Description Retrieve events, newest date first, optionally filtered by status
// @Tags events
// @Produce json
// @Param status query string false "ongoing or upcoming"
// @Success 200 {array} Event "List of events"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/events [get]
func getEvents(c *gin.Context) {
	status := models.EventStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be ongoing or upcoming"})
		return
	}

	events, err := dataStore.ListEvents(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "Error fetching events")
		return
	}

	c.JSON(http.StatusOK, convertEvents(events))
}

// @Summary Create event
// @Description Create an event. Status defaults to upcoming
// @Tags admin
// @Accept json
// @Produce json
// @Param event body models.EventInput true "Event data (title and description required)"
// @Success 201 {object} map[string]interface{} "message and created event"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/events [post]
func createEvent(c *gin.Context) {
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := input.Event(time.Now())
	if err != nil {
		respondError(c, err, "Failed to save event")
		return
	}

	created, err := dataStore.CreateEvent(c.Request.Context(), event)
	if err != nil {
		respondError(c, err, "Failed to save event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event added successfully!",
		"event":   convertEvent(created),
	})
}

// @Summary Update event
// @Description Replace an existing event
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body models.EventInput true "Updated event data"
// @Success 200 {object} map[string]interface{} "message and updated event"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/events/{id} [put]
func updateEvent(c *gin.Context) {
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := input.Event(time.Now())
	if err != nil {
		respondError(c, err, "Failed to save event")
		return
	}
	event.ID = c.Param("id")

	updated, err := dataStore.UpdateEvent(c.Request.Context(), event)
	if err != nil {
		respondError(c, err, "Failed to save event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully!",
		"event":   convertEvent(updated),
	})
}

// @Summary Toggle event status
// @Description Flip an event between ongoing and upcoming
// @Tags admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]interface{} "message and updated event"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/events/{id}/toggle-status [post]
func toggleEventStatus(c *gin.Context) {
	toggled, err := dataStore.ToggleEventStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to update event status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event status changed to " + string(toggled.Status),
		"event":   convertEvent(toggled),
	})
}

// @Summary Delete event
// @Description Permanently delete an event
// @Tags admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]interface{} "Event deleted successfully"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/events/{id} [delete]
func deleteEvent(c *gin.Context) {
	if err := dataStore.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}
