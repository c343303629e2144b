package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/services"
	"github.com/GatherPoint/store"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InviteController struct {
	DB          *store.Store
	Memberships *services.MembershipService
	Email       *services.EmailService
}

// CreateGroupInviteCode issues an invite code bounded by expiry and use
// count, optionally emailing it to a recipient.
func (ctrl *InviteController) CreateGroupInviteCode(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var group models.GroupProfile
	found, err := ctrl.DB.DB().From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStruct(&group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group doesn't exist"})
		return
	}

	if !isAdmin && !ctrl.isApprovedMember(currentUser.User_Profile_ID, groupID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to generate an invite code for this group"})
		return
	}

	var invite models.InviteCreate
	_ = c.ShouldBindJSON(&invite)
	if invite.Max_Uses <= 0 {
		invite.Max_Uses = 1
	}

	groupInvite := models.GroupInvite{
		Group_Profile_ID: groupID,
		Invite_Code:      generateInviteCode(groupID),
		Max_Uses:         invite.Max_Uses,
		Use_Count:        0,
		Datetime_Expires: time.Now().AddDate(0, 0, 7),
		Is_Active:        true,
		Created_By:       currentUser.User_Profile_ID,
		Updated_By:       currentUser.User_Profile_ID,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}

	insert := ctrl.DB.DB().Insert("group_invite").Rows(groupInvite).Returning("invite_code")

	var insertedInviteCode string
	if _, err := insert.Executor().ScanVal(&insertedInviteCode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invite code", "details": err.Error()})
		return
	}

	if invite.Email != "" {
		if err := ctrl.Email.SendGroupInviteEmail(invite.Email, group.Group_Name, insertedInviteCode, groupInvite.Datetime_Expires); err != nil {
			// the code is still usable, so an email failure is not fatal
			log.Error().Err(err).Int("group_profile_id", groupID).Msg("failed to send invite email")
		}
	}

	c.JSON(http.StatusOK, gin.H{"inviteCode": insertedInviteCode, "expiresAt": groupInvite.Datetime_Expires})
}

// RedeemInvite validates the code, bumps its use count, and files a
// pending join request through the membership state machine.
func (ctrl *InviteController) RedeemInvite(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var redeem models.InviteRedeem
	if err := c.ShouldBindJSON(&redeem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var groupInvite models.GroupInvite
	found, err := ctrl.DB.DB().From("group_invite").
		Where(goqu.Ex{"invite_code": redeem.Invite_Code}).
		ScanStruct(&groupInvite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group_invite", "details": err.Error()})
		return
	}
	if !found || groupInvite.Group_Profile_ID != groupID || !groupInvite.Is_Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid invite code"})
		return
	}

	if groupInvite.Datetime_Expires.Before(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invite code has expired"})
		return
	}

	if groupInvite.Use_Count >= groupInvite.Max_Uses {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invite code has no uses left"})
		return
	}

	membership, err := ctrl.Memberships.RequestJoin(currentUser.User_Profile_ID, groupID, "joined via invite "+groupInvite.Invite_Code)
	if err != nil {
		respondError(c, err)
		return
	}

	record := goqu.Record{
		"use_count":       groupInvite.Use_Count + 1,
		"updated_by":      currentUser.User_Profile_ID,
		"datetime_update": time.Now(),
	}
	if groupInvite.Use_Count+1 >= groupInvite.Max_Uses {
		record["is_active"] = false
	}

	if _, err := ctrl.DB.DB().Update("group_invite").
		Set(record).
		Where(goqu.C("group_invite_id").Eq(groupInvite.Group_Invite_ID)).
		Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invite", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Join request filed for group %d", groupID),
		"membership": membership,
	})
}

// isApprovedMember reports whether the user is an approved member of
// the group.
func (ctrl *InviteController) isApprovedMember(userID, groupID int) bool {
	var count int
	_, err := ctrl.DB.DB().From("group_membership").
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("user_profile_id").Eq(userID),
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("membership_status").Eq(models.MembershipStatusApproved),
		).ScanVal(&count)
	return err == nil && count > 0
}

func generateInviteCode(id int) string {
	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(err)
	}

	randomString := hex.EncodeToString(randomBytes)

	return strings.ToUpper(fmt.Sprintf("%04d-%s", id, randomString))
}
