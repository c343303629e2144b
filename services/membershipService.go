package services

import (
	"fmt"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
)

// MembershipService owns every mutation of group_membership rows.
// A membership moves pending -> approved or pending -> rejected and
// never leaves a terminal state.
type MembershipService struct {
	store *store.Store
}

func NewMembershipService(s *store.Store) *MembershipService {
	return &MembershipService{store: s}
}

// RequestJoin files a pending join request for the (user, group) pair.
// Only one record may exist per pair regardless of status; a second
// request fails with store.ErrDuplicate. The duplicate read and the
// insert run in one transaction, and the unique pair index catches any
// concurrent racer the read misses.
func (s *MembershipService) RequestJoin(userID, groupID int, message string) (*models.GroupMembership, error) {
	membership := models.GroupMembership{
		User_Profile_ID:   userID,
		Group_Profile_ID:  groupID,
		Membership_Status: models.MembershipStatusPending,
		Request_Message:   message,
		Created_By:        userID,
		Updated_By:        userID,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}

	err := s.store.WithTx(func(tx *goqu.TxDatabase) error {
		var existing models.GroupMembership
		found, err := tx.From("group_membership").
			Where(
				goqu.C("user_profile_id").Eq(userID),
				goqu.C("group_profile_id").Eq(groupID),
			).ScanStruct(&existing)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("%w: membership already exists for this user and group", store.ErrDuplicate)
		}

		var insertedID int
		insert := tx.Insert("group_membership").Rows(membership).Returning("group_membership_id")
		if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
			return err
		}
		membership.Group_Membership_ID = insertedID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

// Approve moves a pending membership to approved and stamps the
// joined-at time.
func (s *MembershipService) Approve(membershipID, approverID int) error {
	return s.transition(membershipID, approverID, models.MembershipStatusApproved)
}

// Reject moves a pending membership to rejected. Re-joining afterwards
// requires a fresh request.
func (s *MembershipService) Reject(membershipID, rejecterID int) error {
	return s.transition(membershipID, rejecterID, models.MembershipStatusRejected)
}

func (s *MembershipService) transition(membershipID, actorID int, status string) error {
	return s.store.WithTx(func(tx *goqu.TxDatabase) error {
		record := goqu.Record{
			"membership_status": status,
			"updated_by":        actorID,
			"datetime_update":   time.Now(),
		}
		if status == models.MembershipStatusApproved {
			record["datetime_joined"] = time.Now()
		}

		result, err := tx.Update("group_membership").
			Set(record).
			Where(
				goqu.C("group_membership_id").Eq(membershipID),
				goqu.C("membership_status").Eq(models.MembershipStatusPending),
			).Executor().Exec()
		if err != nil {
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected > 0 {
			return nil
		}

		// Nothing pending matched: either the id is unknown or the
		// record already reached a terminal state.
		var count int
		if _, err := tx.From("group_membership").
			Select(goqu.COUNT("*")).
			Where(goqu.C("group_membership_id").Eq(membershipID)).
			ScanVal(&count); err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return fmt.Errorf("%w: membership is not pending", store.ErrValidation)
	})
}

// GetStatus returns the current membership record for the pair, or nil
// when the user has never requested to join the group.
func (s *MembershipService) GetStatus(userID, groupID int) (*models.GroupMembership, error) {
	var membership models.GroupMembership
	found, err := s.store.DB().From("group_membership").
		Where(
			goqu.C("user_profile_id").Eq(userID),
			goqu.C("group_profile_id").Eq(groupID),
		).ScanStruct(&membership)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &membership, nil
}
