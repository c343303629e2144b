package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GatherPoint/controllers"
	"github.com/GatherPoint/initializers"
	"github.com/GatherPoint/middlewares"
	"github.com/GatherPoint/services"
	"github.com/GatherPoint/store"
)

func main() {
	initializers.LoadEnv()
	db := store.New(initializers.ConnectDB())

	memberships := services.NewMembershipService(db)
	rsvps := services.NewRsvpService(db)
	notifications := services.NewNotificationService(db)
	groups := services.NewGroupService(db)
	email := services.NewEmailService(os.Getenv("RESEND_API_KEY"))

	reminders := services.NewReminderService(db, notifications)
	if err := reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}
	defer reminders.Stop()

	users := &controllers.UserController{DB: db}
	groupCtrl := &controllers.GroupController{DB: db, Groups: groups}
	membershipCtrl := &controllers.MembershipController{DB: db, Memberships: memberships}
	meetings := &controllers.MeetingController{DB: db, Rsvps: rsvps, Notifications: notifications}
	prayerRequests := &controllers.PrayerRequestController{DB: db, Notifications: notifications}
	chat := &controllers.ChatController{DB: db}
	invites := &controllers.InviteController{DB: db, Memberships: memberships, Email: email}
	notificationCtrl := &controllers.NotificationController{DB: db}
	adminCtrl := &controllers.AdminController{DB: db, Groups: groups}

	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), users.UserLogin)
	router.POST("/signup", middlewares.RateLimitMiddleware(2, 2, getKey), users.UserSignup)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth(db))
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", users.GetUserProfile)
		auth.GET("/users/me/meetings/next", meetings.GetNextUpcomingMeeting)

		// notification routes
		auth.GET("/notifications", notificationCtrl.GetUserNotifications)
		auth.PATCH("/notifications/:notification_id", notificationCtrl.ToggleNotificationStatus)
		auth.PATCH("/notifications/mark-all-read", notificationCtrl.MarkAllNotificationsRead)

		// group routes
		auth.POST("/groups", groupCtrl.CreateGroup)
		auth.GET("/groups", groupCtrl.GetPublicGroups)
		auth.GET("/groups/:group_profile_id", groupCtrl.GetGroup)
		auth.PUT("/groups/:group_profile_id", groupCtrl.UpdateGroup)
		auth.DELETE("/groups/:group_profile_id", groupCtrl.DeleteGroup)
		auth.GET("/groups/:group_profile_id/members", groupCtrl.GetGroupMembers)

		// membership routes
		auth.POST("/groups/:group_profile_id/join", membershipCtrl.RequestJoin)
		auth.GET("/groups/:group_profile_id/membership", membershipCtrl.GetMembershipStatus)
		auth.GET("/groups/:group_profile_id/requests", membershipCtrl.GetPendingRequests)
		auth.PATCH("/memberships/:group_membership_id/approve", membershipCtrl.ApproveMembership)
		auth.PATCH("/memberships/:group_membership_id/reject", membershipCtrl.RejectMembership)

		// invite routes
		auth.POST("/groups/:group_profile_id/invite", invites.CreateGroupInviteCode)
		auth.POST("/groups/:group_profile_id/redeem", invites.RedeemInvite)

		// meeting routes
		auth.POST("/groups/:group_profile_id/meetings", meetings.CreateMeeting)
		auth.GET("/groups/:group_profile_id/meetings", meetings.GetGroupMeetings)
		auth.PUT("/meetings/:meeting_id/rsvp", meetings.UpsertRsvp)
		auth.GET("/meetings/:meeting_id/rsvps", meetings.GetMeetingRsvps)

		// prayer request routes
		auth.POST("/groups/:group_profile_id/prayer-requests", prayerRequests.CreatePrayerRequest)
		auth.GET("/groups/:group_profile_id/prayer-requests", prayerRequests.GetGroupPrayerRequests)
		auth.POST("/prayer-requests/:prayer_request_id/respond", prayerRequests.RespondToPrayerRequest)
		auth.GET("/prayer-requests/:prayer_request_id/responses", prayerRequests.GetPrayerResponses)

		// chat routes
		auth.POST("/groups/:group_profile_id/messages", chat.PostMessage)
		auth.GET("/groups/:group_profile_id/messages", chat.GetGroupMessages)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/admin/users", adminCtrl.ListUsers)
			admin.GET("/admin/groups", adminCtrl.ListGroups)
			admin.GET("/admin/meetings", adminCtrl.ListMeetings)
			admin.DELETE("/admin/groups", adminCtrl.DeleteAllGroups)
			admin.POST("/meetings/:meeting_id/remind", meetings.TriggerMeetingReminder)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
