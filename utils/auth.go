package utils

import (
	"slices"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/models"
)

// Permission levels a command can require.
const (
	LevelDeveloper = "developer"
	LevelAdmin     = "admin"
	LevelGuest     = "guest"
)

// Auth provides methods for authorization checks.
type Auth struct {
	config models.AuthConfig
}

// NewAuth creates a new Auth instance from the commands.auth settings.
func NewAuth(config models.AuthConfig) *Auth {
	return &Auth{config: config}
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	return slices.Contains(a.config.Developers, userID)
}

// IsAdmin checks if a member has an admin role.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	for _, roleID := range member.Roles {
		if slices.Contains(a.config.AdminRoles, roleID) {
			return true
		}
	}
	return false
}

// CheckPermission checks if the user behind an interaction has the required
// permission level. Interactions from DMs carry no member and only pass
// developer checks.
func (a *Auth) CheckPermission(i *discordgo.InteractionCreate, requiredLevel string) bool {
	var user *discordgo.User
	switch {
	case i.Member != nil:
		user = i.Member.User
	case i.User != nil:
		user = i.User
	}
	if user == nil {
		return requiredLevel == LevelGuest
	}

	switch requiredLevel {
	case LevelDeveloper:
		return a.IsDeveloper(user.ID)
	case LevelAdmin:
		return a.IsDeveloper(user.ID) || a.IsAdmin(i.Member)
	case LevelGuest:
		return true
	default:
		return false
	}
}
