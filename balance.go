package main

import (
	"context"
	"net/http"

	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
)

// latestAnnouncements is how many announcements the public page shows.
const latestAnnouncements = 10

// @Summary Get treasury balance
// @Description Current balance. A treasury with no transactions yet reports zero
// @Tags balance
// @Produce json
// @Success 200 {object} Balance "Current balance"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/balance [get]
func getBalance(c *gin.Context) {
	balance, err := dataStore.GetBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching balance")
		return
	}

	c.JSON(http.StatusOK, convertBalance(balance))
}

// @Summary Get public overview
// @Description Balance, ongoing and upcoming events, and the latest announcements in one response
// @Tags balance
// @Produce json
// @Success 200 {object} Overview "Public overview"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/overview [get]
func getOverview(c *gin.Context) {
	overview, err := loadOverview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching overview")
		return
	}

	c.JSON(http.StatusOK, overview)
}

func loadOverview(ctx context.Context) (Overview, error) {
	balance, err := dataStore.GetBalance(ctx)
	if err != nil {
		return Overview{}, err
	}
	ongoing, err := dataStore.ListEvents(ctx, models.Ongoing)
	if err != nil {
		return Overview{}, err
	}
	upcoming, err := dataStore.ListEvents(ctx, models.Upcoming)
	if err != nil {
		return Overview{}, err
	}
	announcements, err := dataStore.ListAnnouncements(ctx, latestAnnouncements)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Balance:        convertBalance(balance),
		OngoingEvents:  convertEvents(ongoing),
		UpcomingEvents: convertEvents(upcoming),
		Announcements:  convertAnnouncements(announcements),
	}, nil
}
