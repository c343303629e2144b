package controllers

import (
	"net/http"
	"strconv"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/services"
	"github.com/GatherPoint/store"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	DB     *store.Store
	Groups *services.GroupService
}

// paginationParams reads ?page and ?limit with sane bounds.
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	return page, limit
}

func (ctrl *AdminController) ListUsers(c *gin.Context) {
	page, limit := paginationParams(c)

	var users []models.UserProfile
	err := ctrl.DB.DB().From("user_profile").
		Order(goqu.C("user_profile_id").Asc()).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit)).
		ScanStructs(&users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "users": users})
}

func (ctrl *AdminController) ListGroups(c *gin.Context) {
	page, limit := paginationParams(c)

	var groups []models.GroupProfile
	err := ctrl.DB.DB().From("group_profile").
		Order(goqu.C("group_profile_id").Asc()).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit)).
		ScanStructs(&groups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "groups": groups})
}

func (ctrl *AdminController) ListMeetings(c *gin.Context) {
	page, limit := paginationParams(c)

	var meetings []models.Meeting
	err := ctrl.DB.DB().From("meeting").
		Order(goqu.C("start_time").Desc()).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit)).
		ScanStructs(&meetings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "meetings": meetings})
}

// DeleteAllGroups wipes every group and its dependent records. Admin
// only; intended for environment resets.
func (ctrl *AdminController) DeleteAllGroups(c *gin.Context) {
	if err := ctrl.Groups.DeleteAllGroups(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All groups deleted"})
}
