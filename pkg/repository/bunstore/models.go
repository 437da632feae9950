package bunstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            string    `bun:"id,pk"`
	Login         string    `bun:"login,notnull,default:''"`
	RightsLevel   int       `bun:"rights_level,notnull,default:0"`
	PendingAction int       `bun:"pending_action,notnull,default:0"`
	Active        bool      `bun:"active,notnull,default:true"`
	DisabledChat  bool      `bun:"disabled_chat,notnull,default:false"`
	Locale        string    `bun:"locale,notnull,default:''"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

func toUserRow(u *model.User) *userRow {
	return &userRow{
		ID:            string(u.ID),
		Login:         u.Login,
		RightsLevel:   int(u.RightsLevel),
		PendingAction: int(u.PendingAction),
		Active:        u.Active,
		DisabledChat:  u.DisabledChat,
		Locale:        u.Locale,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *userRow) toModel() *model.User {
	return &model.User{
		ID:            types.UserID(r.ID),
		Login:         r.Login,
		RightsLevel:   types.RightsLevel(r.RightsLevel),
		PendingAction: types.PendingAction(r.PendingAction),
		Active:        r.Active,
		DisabledChat:  r.DisabledChat,
		Locale:        r.Locale,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type groupRow struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID        string    `bun:"id,pk"`
	Title     string    `bun:"title,notnull,default:''"`
	Locale    string    `bun:"locale,notnull,default:''"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func toGroupRow(g *model.Group) *groupRow {
	return &groupRow{
		ID:        string(g.ID),
		Title:     g.Title,
		Locale:    g.Locale,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (r *groupRow) toModel() *model.Group {
	return &model.Group{
		ID:        types.ChatID(r.ID),
		Title:     r.Title,
		Locale:    r.Locale,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type activityRow struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull,unique"`
	OwnerID   string    `bun:"owner_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func toActivityRow(a *model.Activity) *activityRow {
	return &activityRow{
		ID:        int64(a.ID),
		Name:      a.Name,
		OwnerID:   string(a.OwnerID),
		CreatedAt: a.CreatedAt,
	}
}

func (r *activityRow) toModel() *model.Activity {
	return &model.Activity{
		ID:        types.ActivityID(r.ID),
		Name:      r.Name,
		OwnerID:   types.UserID(r.OwnerID),
		CreatedAt: r.CreatedAt,
	}
}

type subscriptionRow struct {
	bun.BaseModel `bun:"table:subscriptions,alias:s"`

	UserID     string    `bun:"user_id,pk"`
	ActivityID int64     `bun:"activity_id,pk"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func (r *subscriptionRow) toModel() *model.Subscription {
	return &model.Subscription{
		UserID:     types.UserID(r.UserID),
		ActivityID: types.ActivityID(r.ActivityID),
		CreatedAt:  r.CreatedAt,
	}
}

type participantRow struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	UserID     string    `bun:"user_id,pk"`
	ActivityID int64     `bun:"activity_id,pk"`
	ReportedAt time.Time `bun:"reported_at,notnull"`
	Accepted   bool      `bun:"accepted,notnull,default:true"`
}

func toParticipantRow(p *model.Participant) *participantRow {
	return &participantRow{
		UserID:     string(p.UserID),
		ActivityID: int64(p.ActivityID),
		ReportedAt: p.ReportedAt,
		Accepted:   p.Accepted,
	}
}

func (r *participantRow) toModel() *model.Participant {
	return &model.Participant{
		UserID:     types.UserID(r.UserID),
		ActivityID: types.ActivityID(r.ActivityID),
		ReportedAt: r.ReportedAt,
		Accepted:   r.Accepted,
	}
}
