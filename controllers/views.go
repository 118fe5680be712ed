// controllers/views.go
package controllers

import (
	"servio-backend/models"

	"github.com/gin-gonic/gin"
)

// View projections for services: Simple carries the catalog fields only, Full
// adds provider info, images and free slots. The caller picks via ?view=.

func simpleServiceView(svc models.Service) gin.H {
	return gin.H{
		"id":          svc.ID,
		"name":        svc.Name,
		"description": svc.Description,
		"price":       svc.Price,
		"tag":         svc.Tag,
	}
}

func fullServiceView(svc models.Service, slots []models.Availability, isSaved bool) gin.H {
	view := simpleServiceView(svc)
	view["image"] = svc.ImageURL
	view["isSaved"] = isSaved
	view["availabilities"] = slotViews(slots)
	view["user_id"] = svc.UserID
	view["images"] = imageViews(svc.Images)
	view["provider_name"] = svc.User.Name
	view["location"] = svc.User.Location
	return view
}

func slotViews(slots []models.Availability) []gin.H {
	out := make([]gin.H, 0, len(slots))
	for _, a := range slots {
		out = append(out, gin.H{
			"id":         a.ID,
			"date":       a.Date,
			"start_time": a.StartTime,
			"end_time":   a.EndTime,
		})
	}
	return out
}

func imageViews(images []models.ServiceImage) []gin.H {
	out := make([]gin.H, 0, len(images))
	for _, img := range images {
		out = append(out, gin.H{
			"id":         img.ID,
			"url":        img.URL,
			"created_at": img.CreatedAt,
		})
	}
	return out
}

func bookingView(b models.Booking) gin.H {
	var image interface{}
	if b.Service.ImageURL != "" {
		image = b.Service.ImageURL
	} else if len(b.Service.Images) > 0 {
		image = b.Service.Images[0].URL
	}

	return gin.H{
		"id":            b.ID,
		"service":       b.ServiceID,
		"service_name":  b.Service.Name,
		"provider_name": b.Service.User.Name,
		"time":          b.AvailabilityID,
		"time_detail": gin.H{
			"id":         b.Availability.ID,
			"date":       b.Availability.Date,
			"start_time": b.Availability.StartTime,
			"end_time":   b.Availability.EndTime,
		},
		"location":       b.Location,
		"customer_id":    b.UserID,
		"customer_name":  b.CustomerName,
		"customer_email": b.CustomerEmail,
		"created_at":     b.CreatedAt,
		"image":          image,
	}
}
