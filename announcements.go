package main

import (
	"net/http"
	"time"

	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
)

// Announcement handler functions

// @Summary Get announcements
// @Description Retrieve announcements, newest date first, with markdown rendered to content_html
// @Tags announcements
// @Produce json
// @Param limit query int false "Maximum number of announcements"
// @Success 200 {array} Announcement "List of announcements"
// @Failure 400 {object} map[string]interface{} "Invalid limit"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/announcements [get]
func getAnnouncements(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a non-negative integer"})
		return
	}

	announcements, err := dataStore.ListAnnouncements(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Error fetching announcements")
		return
	}

	c.JSON(http.StatusOK, convertAnnouncements(announcements))
}

// @Summary Create announcement
// @Description Publish an announcement. Content is markdown
// @Tags admin
// @Accept json
// @Produce json
// @Param announcement body models.AnnouncementInput true "Announcement data (title and content required)"
// @Success 201 {object} map[string]interface{} "message and created announcement"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/announcements [post]
func createAnnouncement(c *gin.Context) {
	var input models.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	announcement, err := input.Announcement(time.Now())
	if err != nil {
		respondError(c, err, "Failed to save announcement")
		return
	}

	created, err := dataStore.CreateAnnouncement(c.Request.Context(), announcement)
	if err != nil {
		respondError(c, err, "Failed to save announcement")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement added successfully!",
		"announcement": convertAnnouncement(created),
	})
}

// @Summary Update announcement
// @Description Replace an existing announcement
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param announcement body models.AnnouncementInput true "Updated announcement data"
// @Success 200 {object} map[string]interface{} "message and updated announcement"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Announcement not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/announcements/{id} [put]
func updateAnnouncement(c *gin.Context) {
	var input models.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	announcement, err := input.Announcement(time.Now())
	if err != nil {
		respondError(c, err, "Failed to save announcement")
		return
	}
	announcement.ID = c.Param("id")

	updated, err := dataStore.UpdateAnnouncement(c.Request.Context(), announcement)
	if err != nil {
		respondError(c, err, "Failed to save announcement")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Announcement updated successfully!",
		"announcement": convertAnnouncement(updated),
	})
}

// @Summary Delete announcement
// @Description Permanently delete an announcement
// @Tags admin
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} map[string]interface{} "Announcement deleted successfully"
// @Failure 404 {object} map[string]interface{} "Announcement not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/announcements/{id} [delete]
func deleteAnnouncement(c *gin.Context) {
	if err := dataStore.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete announcement")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully!"})
}
