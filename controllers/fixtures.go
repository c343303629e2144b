package controllers

import (
	"time"

	"github.com/GatherPoint/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "testuser",
		First_Name:      "Test",
		Last_Name:       "User",
		Email:           "test@example.com",
		Admin:           false,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockUserWithPassword creates a sample user with a bcrypt hashed password
// Password is "password123" - use this in tests
func MockUserWithPassword() models.UserProfile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := MockUser()
	user.Password = string(hashedPassword)
	return user
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "adminuser",
		First_Name:      "Admin",
		Last_Name:       "User",
		Email:           "admin@example.com",
		Admin:           true,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockGroupProfile creates a sample group for testing
func MockGroupProfile() models.GroupProfile {
	return models.GroupProfile{
		Group_Profile_ID:  1,
		Group_Name:        "Test Group",
		Group_Description: "A test group",
		Is_Public:         true,
		Is_Active:         true,
		Created_By:        1,
		Updated_By:        1,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}
}

// MockMeeting creates a sample scheduled meeting one day out
func MockMeeting() models.Meeting {
	return models.Meeting{
		Meeting_ID:       1,
		Group_Profile_ID: 1,
		Meeting_Title:    "Weekly Gathering",
		Meeting_Location: "Community Hall",
		Start_Time:       time.Now().Add(24 * time.Hour),
		Meeting_Status:   models.MeetingStatusScheduled,
		Created_By:       1,
		Updated_By:       1,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
}
