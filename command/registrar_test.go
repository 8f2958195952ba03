package command

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOverwriter struct {
	appID, guildID string
	commands       []*discordgo.ApplicationCommand
	err            error
}

func (f *fakeOverwriter) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.appID, f.guildID, f.commands = appID, guildID, commands
	return commands, f.err
}

func TestGetCommandDefinitions(t *testing.T) {
	defs := GetCommandDefinitions()

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
		assert.NotEmpty(t, d.Description, d.Name)
	}
	assert.Equal(t, []string{Start, Help, GoodVibes, BadVibes, Happiness, Refresh, Status}, names)

	for _, d := range defs {
		switch d.Name {
		case Refresh, Status:
			require.NotNil(t, d.DefaultMemberPermissions, d.Name)
		default:
			assert.Nil(t, d.DefaultMemberPermissions, d.Name)
		}
	}
}

func TestRegister(t *testing.T) {
	f := &fakeOverwriter{}
	require.NoError(t, Register(f, "app", "guild"))
	assert.Equal(t, "app", f.appID)
	assert.Equal(t, "guild", f.guildID)
	assert.Len(t, f.commands, len(AllCommands))

	f.err = errors.New("401")
	assert.Error(t, Register(f, "app", ""))
}
