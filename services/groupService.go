package services

import (
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"
)

// GroupService manages the group lifecycle. It is the sole enforcer of
// the no-orphans invariant at delete time: the store has no automatic
// cascade, so dependent rows are removed here, leaf to root, inside a
// single transaction.
type GroupService struct {
	store *store.Store
}

func NewGroupService(s *store.Store) *GroupService {
	return &GroupService{store: s}
}

// CreateGroup inserts the group and its admin's approved membership in
// one transaction so a group can never exist without an admin member.
func (s *GroupService) CreateGroup(adminID int, input models.GroupCreate) (*models.GroupProfile, error) {
	now := time.Now()
	group := models.GroupProfile{
		Group_Name:        input.Group_Name,
		Group_Description: input.Group_Description,
		Is_Public:         input.Is_Public,
		Meeting_Day:       input.Meeting_Day,
		Meeting_Time:      input.Meeting_Time,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Is_Active:         true,
		Created_By:        adminID,
		Updated_By:        adminID,
		Datetime_Create:   now,
		Datetime_Update:   now,
	}

	err := s.store.WithTx(func(tx *goqu.TxDatabase) error {
		var insertedID int
		insert := tx.Insert("group_profile").Rows(group).Returning("group_profile_id")
		if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
			return err
		}
		group.Group_Profile_ID = insertedID

		joined := now
		membership := models.GroupMembership{
			User_Profile_ID:   adminID,
			Group_Profile_ID:  insertedID,
			Membership_Status: models.MembershipStatusApproved,
			Datetime_Joined:   &joined,
			Created_By:        adminID,
			Updated_By:        adminID,
			Datetime_Create:   now,
			Datetime_Update:   now,
		}
		_, err := tx.Insert("group_membership").Rows(membership).Executor().Exec()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// DeleteGroup removes the group and every record that transitively
// depends on it in one transaction. Order is leaf-to-root and mandatory:
//
//	1. collect the group's meeting and prayer request ids
//	2. invites
//	3. RSVPs of those meetings
//	4. responses of those prayer requests
//	5. notifications referencing the group, those meetings, or those requests
//	6. meetings
//	7. chat messages
//	8. prayer requests
//	9. memberships
//	10. the group row itself
//
// Zero dependents is fine; a missing group row is ErrNotFound and rolls
// the whole call back. Any store failure aborts the transaction.
func (s *GroupService) DeleteGroup(groupID int) error {
	err := s.store.WithTx(func(tx *goqu.TxDatabase) error {
		var meetingIDs []int
		if err := tx.From("meeting").
			Select("meeting_id").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			ScanVals(&meetingIDs); err != nil {
			return err
		}

		var prayerIDs []int
		if err := tx.From("prayer_request").
			Select("prayer_request_id").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			ScanVals(&prayerIDs); err != nil {
			return err
		}

		if _, err := tx.Delete("group_invite").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec(); err != nil {
			return err
		}

		if len(meetingIDs) > 0 {
			if _, err := tx.Delete("meeting_rsvp").
				Where(goqu.C("meeting_id").In(meetingIDs)).
				Executor().Exec(); err != nil {
				return err
			}
		}

		if len(prayerIDs) > 0 {
			if _, err := tx.Delete("prayer_response").
				Where(goqu.C("prayer_request_id").In(prayerIDs)).
				Executor().Exec(); err != nil {
				return err
			}
		}

		// One delete covering every reference column at once.
		refs := []goqu.Expression{goqu.C("target_group_id").Eq(groupID)}
		if len(meetingIDs) > 0 {
			refs = append(refs, goqu.C("target_meeting_id").In(meetingIDs))
		}
		if len(prayerIDs) > 0 {
			refs = append(refs, goqu.C("target_prayer_request_id").In(prayerIDs))
		}
		if _, err := tx.Delete("notification").
			Where(goqu.Or(refs...)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Delete("meeting").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Delete("chat_message").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Delete("prayer_request").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Delete("group_membership").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec(); err != nil {
			return err
		}

		result, err := tx.Delete("group_profile").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			Executor().Exec()
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("group_profile_id", groupID).Msg("group and all dependents deleted")
	return nil
}

// DeleteAllGroups is the administrative full reset: the same
// leaf-to-root order as DeleteGroup, generalized to set-based deletes
// across every group, still one transaction.
func (s *GroupService) DeleteAllGroups() error {
	err := s.store.WithTx(func(tx *goqu.TxDatabase) error {
		steps := []struct {
			table string
			where goqu.Expression
		}{
			{"group_invite", nil},
			{"meeting_rsvp", nil},
			{"prayer_response", nil},
			{"notification", goqu.Or(
				goqu.C("target_group_id").IsNotNull(),
				goqu.C("target_meeting_id").IsNotNull(),
				goqu.C("target_prayer_request_id").IsNotNull(),
			)},
			{"meeting", nil},
			{"chat_message", nil},
			{"prayer_request", nil},
			{"group_membership", nil},
			{"group_profile", nil},
		}

		for _, step := range steps {
			del := tx.Delete(step.table)
			if step.where != nil {
				del = del.Where(step.where)
			}
			if _, err := del.Executor().Exec(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Warn().Msg("all groups and dependents deleted")
	return nil
}
