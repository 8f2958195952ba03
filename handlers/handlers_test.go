package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibes-bot/command"
	"vibes-bot/models"
	"vibes-bot/utils"
	"vibes-bot/vibes"
)

type fakeResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func (f *fakeResponder) lastContent(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.responses)
	return f.responses[len(f.responses)-1].Data.Content
}

func (f *fakeResponder) getFollowups() []*discordgo.WebhookParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*discordgo.WebhookParams, len(f.followups))
	copy(out, f.followups)
	return out
}

type fakeRefresher struct {
	snap *vibes.Snapshot
	err  error
}

func (f *fakeRefresher) Refresh(context.Context) (*vibes.Snapshot, error) {
	return f.snap, f.err
}

type fakeJournal struct {
	runs  []models.RefreshRun
	limit int
}

func (f *fakeJournal) RecentRuns(_ context.Context, limit int) ([]models.RefreshRun, error) {
	f.limit = limit
	return f.runs, nil
}

func slashCommand(name, userID string, roles ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "i-" + name,
		Type:   discordgo.InteractionApplicationCommand,
		Data:   discordgo.ApplicationCommandInteractionData{Name: name},
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roles},
	}}
}

func buttonPress(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "b-" + customID,
		Type:   discordgo.InteractionMessageComponent,
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID},
		Member: &discordgo.Member{User: &discordgo.User{ID: "user"}},
	}}
}

func scored(id, link string, score float64) models.ScoredPost {
	return models.ScoredPost{PostID: id, Link: link, PostURL: "https://facebook.com/" + id, Score: score}
}

func testSnapshot(posts ...models.ScoredPost) *vibes.Snapshot {
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return vibes.BuildSnapshot(vibes.Aggregation{Posts: posts}, started, 3*time.Hour, time.UTC, "t.me/")
}

func newTestHandler(store *vibes.Store, r Refresher, j RunLister) *Handler {
	auth := utils.NewAuth(models.AuthConfig{Developers: []string{"dev"}, AdminRoles: []string{"mods"}})
	return New(store, r, j, auth, 5, time.UTC)
}

func TestDispatch_GoodVibesListsLinks(t *testing.T) {
	store := vibes.NewStore()
	store.Publish(testSnapshot(
		scored("a", "https://news.example/a", 0.4),
		scored("b", "https://news.example/b", 0.9),
		scored("c", "https://news.example/c", -0.5),
	))
	h := newTestHandler(store, &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.GoodVibes, "user"))

	content := r.lastContent(t)
	assert.Contains(t, content, "1. https://news.example/b\n2. https://news.example/a\n")
	assert.NotContains(t, content, "news.example/c")
	assert.Contains(t, content, "Last refreshed: 2026-10-19 09:00 UTC")
	assert.Contains(t, content, "Next refresh: 2026-10-19 12:00 UTC")
	assert.Equal(t, Menu(), r.responses[0].Data.Components)
}

func TestDispatch_ScenarioC_NoGoodVibes(t *testing.T) {
	store := vibes.NewStore()
	store.Publish(testSnapshot(scored("c", "https://news.example/c", -0.5)))
	h := newTestHandler(store, &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.GoodVibes, "user"))

	content := r.lastContent(t)
	assert.True(t, strings.HasPrefix(content, "No positive vibes today!"))
	assert.NotContains(t, content, "1. ")
	assert.Contains(t, content, "Last refreshed:")
}

func TestDispatch_BadVibesButton(t *testing.T) {
	store := vibes.NewStore()
	store.Publish(testSnapshot(
		scored("c", "https://news.example/c", -0.9),
		scored("d", "", -0.1),
	))
	h := newTestHandler(store, &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, buttonPress(command.BadVibes))

	// Same ordering as the published snapshot: highest score first.
	assert.Contains(t, r.lastContent(t), "1. https://facebook.com/d\n2. https://news.example/c\n")
}

func TestDispatch_BeforeFirstRefresh(t *testing.T) {
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.BadVibes, "user"))
	assert.Contains(t, r.lastContent(t), "No negative vibes today!")
	assert.Contains(t, r.lastContent(t), "No refresh has completed yet.")

	h.Dispatch(r, slashCommand(command.Happiness, "user"))
	assert.Contains(t, r.lastContent(t), "No data right now")
}

func TestDispatch_TopNLimit(t *testing.T) {
	var posts []models.ScoredPost
	for i := 0; i < 8; i++ {
		posts = append(posts, scored(string(rune('a'+i)), "https://news.example/"+string(rune('a'+i)), float64(i+1)))
	}
	store := vibes.NewStore()
	store.Publish(testSnapshot(posts...))
	h := newTestHandler(store, &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.GoodVibes, "user"))

	content := r.lastContent(t)
	assert.Contains(t, content, "5. ")
	assert.NotContains(t, content, "6. ")
}

func TestDispatch_StartAndHelp(t *testing.T) {
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.Start, "user"))
	assert.Contains(t, r.lastContent(t), "what kind of news")
	assert.Equal(t, Menu(), r.responses[0].Data.Components)

	h.Dispatch(r, slashCommand(command.Help, "user"))
	assert.Contains(t, r.lastContent(t), "/goodvibes")
}

func TestDispatch_Happiness(t *testing.T) {
	snap := testSnapshot(scored("a", "l", 1))
	snap.HappinessIndex = 0.25
	snap.Comments = 12
	store := vibes.NewStore()
	store.Publish(snap)
	h := newTestHandler(store, &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.Happiness, "user"))

	assert.Contains(t, r.lastContent(t), "+0.250 (good vibes) across 12 comments")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand("nope", "user"))

	assert.Contains(t, r.lastContent(t), "unknown command")
}

func TestDispatch_RefreshRequiresAdmin(t *testing.T) {
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.Refresh, "user"))

	assert.Contains(t, r.lastContent(t), "permission")
	assert.Empty(t, r.getFollowups())
}

func TestDispatch_RefreshReportsOutcome(t *testing.T) {
	tests := []struct {
		name string
		ref  *fakeRefresher
		want string
	}{
		{"success", &fakeRefresher{snap: testSnapshot(scored("a", "l", 1))}, "Refresh done: 1 posts, 1 positive, 0 negative"},
		{"failure", &fakeRefresher{err: errors.New("fetch posts: down")}, "Refresh failed"},
		{"in progress", &fakeRefresher{err: vibes.ErrRefreshInProgress}, "already running"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(vibes.NewStore(), tt.ref, nil)
			r := &fakeResponder{}

			h.Dispatch(r, slashCommand(command.Refresh, "u1", "mods"))

			assert.Contains(t, r.lastContent(t), "Refreshing")
			assert.Eventually(t, func() bool { return len(r.getFollowups()) == 1 }, 5*time.Second, 10*time.Millisecond)
			assert.Contains(t, r.getFollowups()[0].Content, tt.want)
		})
	}
}

func TestDispatch_Status(t *testing.T) {
	j := &fakeJournal{runs: []models.RefreshRun{
		{StartedAt: 1760000000, FinishedAt: 1760000030, Posts: 50, Comments: 400, Positive: 20, Negative: 10, HappinessIndex: 0.1, Status: models.RunStatusOK},
		{StartedAt: 1759990000, FinishedAt: 1759990005, Status: models.RunStatusFailed, Error: "fetch posts: down"},
	}}
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, j)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.Status, "dev"))

	content := r.lastContent(t)
	assert.Equal(t, defaultStatusRuns, j.limit)
	assert.Contains(t, content, "50 posts, 400 comments, +20/-10")
	assert.Contains(t, content, "fetch posts: down")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, r.responses[0].Data.Flags)
}

func TestDispatch_StatusJournalDisabled(t *testing.T) {
	h := newTestHandler(vibes.NewStore(), &fakeRefresher{}, nil)
	r := &fakeResponder{}

	h.Dispatch(r, slashCommand(command.Status, "dev"))

	assert.Contains(t, r.lastContent(t), "disabled")
}

func TestStatusMessage_FitsDiscordLimit(t *testing.T) {
	grpcErr := "fetch posts: rpc error: code = Unavailable desc = connection error: desc = \"transport: Error while dialing: dial tcp 127.0.0.1:50051: connect: connection refused\""
	var runs []models.RefreshRun
	for k := 0; k < 20; k++ {
		start := int64(1760000000 - k*10800)
		runs = append(runs, models.RefreshRun{
			StartedAt:  start,
			FinishedAt: start + 2,
			Status:     models.RunStatusFailed,
			Error:      grpcErr + "\n" + grpcErr,
		})
	}

	content := StatusMessage(runs, time.UTC).Content

	assert.LessOrEqual(t, utf8.RuneCountInString(content), maxMessageLength)
	assert.Contains(t, content, "more runs.")
	assert.Contains(t, content, "…")
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), maxErrorLength+40)
	}
}

func TestStatusMessage_ShortListUntouched(t *testing.T) {
	runs := []models.RefreshRun{
		{StartedAt: 1760000000, FinishedAt: 1760000030, Status: models.RunStatusFailed, Error: "fetch posts: down"},
	}

	content := StatusMessage(runs, time.UTC).Content

	assert.Equal(t, "❌ 2025-10-09 08:53 UTC (30s): fetch posts: down\n", content)
}
