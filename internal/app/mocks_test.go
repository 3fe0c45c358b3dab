package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/secondary"
)

// mockApplicationRepository for testing
type mockApplicationRepository struct {
	apps    map[int64]*models.Application
	nextID  int64
	failure error
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{apps: make(map[int64]*models.Application), nextID: 1}
}

func (m *mockApplicationRepository) StartInProgress(ctx context.Context, userID string, positionID int64, now time.Time) (int64, error) {
	if m.failure != nil {
		return 0, m.failure
	}
	for id, a := range m.apps {
		if a.UserID == userID && a.Status == models.AppStatusInProgress {
			delete(m.apps, id)
		}
	}
	id := m.nextID
	m.nextID++
	m.apps[id] = &models.Application{
		ID:         id,
		UserID:     userID,
		PositionID: positionID,
		Answers:    []string{},
		Status:     models.AppStatusInProgress,
		CreatedAt:  now,
	}
	return id, nil
}

func (m *mockApplicationRepository) GetInProgress(ctx context.Context, userID string) (*models.Application, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	for _, a := range m.apps {
		if a.UserID == userID && a.Status == models.AppStatusInProgress {
			copied := *a
			copied.Answers = append([]string{}, a.Answers...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockApplicationRepository) AppendAnswer(ctx context.Context, applicationID int64, answer string) error {
	a, ok := m.apps[applicationID]
	if !ok {
		return fmt.Errorf("application %d not found", applicationID)
	}
	a.Answers = append(a.Answers, answer)
	return nil
}

func (m *mockApplicationRepository) Submit(ctx context.Context, applicationID int64, now time.Time) error {
	a, ok := m.apps[applicationID]
	if !ok || a.Status != models.AppStatusInProgress {
		return fmt.Errorf("no in-progress application %d", applicationID)
	}
	a.Status = models.AppStatusSubmitted
	a.SubmittedAt.Valid = true
	a.SubmittedAt.Time = now
	return nil
}

func (m *mockApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	a, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *mockApplicationRepository) GetLatestByUserAndStatus(ctx context.Context, userID, status string) (*models.Application, error) {
	var latest *models.Application
	for _, a := range m.apps {
		if a.UserID == userID && a.Status == status {
			if latest == nil || a.ID > latest.ID {
				latest = a
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *mockApplicationRepository) Count(ctx context.Context) (int, error) {
	return len(m.apps), nil
}

func (m *mockApplicationRepository) Page(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepository) SetStatus(ctx context.Context, id int64, status string) (bool, error) {
	if m.failure != nil {
		return false, m.failure
	}
	a, ok := m.apps[id]
	if !ok || a.Status == status {
		return false, nil
	}
	a.Status = status
	return true, nil
}

func (m *mockApplicationRepository) Delete(ctx context.Context, id int64) error {
	delete(m.apps, id)
	return nil
}

var _ secondary.ApplicationRepository = (*mockApplicationRepository)(nil)

// mockPositionRepository for testing
type mockPositionRepository struct {
	positions map[int64]*models.Position
	nextID    int64
	failure   error
}

func newMockPositionRepository() *mockPositionRepository {
	return &mockPositionRepository{positions: make(map[int64]*models.Position), nextID: 1}
}

func (m *mockPositionRepository) add(p *models.Position) *models.Position {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.positions[p.ID] = p
	return p
}

func (m *mockPositionRepository) Create(ctx context.Context, name string) (int64, error) {
	p := m.add(&models.Position{Name: name, Open: true})
	return p.ID, nil
}

func (m *mockPositionRepository) GetByID(ctx context.Context, id int64) (*models.Position, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	p, ok := m.positions[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *mockPositionRepository) FindByName(ctx context.Context, name string) ([]*models.Position, error) {
	var out []*models.Position
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.positions[id]; ok && p.Name == name {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockPositionRepository) List(ctx context.Context) ([]*models.Position, error) {
	var out []*models.Position
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.positions[id]; ok {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockPositionRepository) SetOpen(ctx context.Context, id int64, open bool) error {
	m.positions[id].Open = open
	return nil
}

func (m *mockPositionRepository) SetDescription(ctx context.Context, id int64, description string) error {
	m.positions[id].Description = description
	return nil
}

func (m *mockPositionRepository) SetQuestions(ctx context.Context, id int64, questions []string) error {
	m.positions[id].Questions = questions
	return nil
}

func (m *mockPositionRepository) SetRoles(ctx context.Context, id int64, roleIDs []string) error {
	m.positions[id].RolesGiven = roleIDs
	return nil
}

func (m *mockPositionRepository) SetAcceptanceMessage(ctx context.Context, id int64, message string) error {
	m.positions[id].AcceptanceMessage = message
	return nil
}

func (m *mockPositionRepository) SetRejectionMessage(ctx context.Context, id int64, message string) error {
	m.positions[id].RejectionMessage = message
	return nil
}

func (m *mockPositionRepository) Delete(ctx context.Context, id int64) error {
	delete(m.positions, id)
	return nil
}

var _ secondary.PositionRepository = (*mockPositionRepository)(nil)

// mockStandingRepository for testing
type mockStandingRepository struct {
	flags       map[string]*models.UserFlag
	blacklisted map[string]bool
}

func newMockStandingRepository() *mockStandingRepository {
	return &mockStandingRepository{
		flags:       make(map[string]*models.UserFlag),
		blacklisted: make(map[string]bool),
	}
}

func (m *mockStandingRepository) FlagUser(ctx context.Context, flag *models.UserFlag) error {
	m.flags[flag.UserID] = flag
	return nil
}

func (m *mockStandingRepository) UnflagUser(ctx context.Context, userID string) (bool, error) {
	_, ok := m.flags[userID]
	delete(m.flags, userID)
	return ok, nil
}

func (m *mockStandingRepository) IsFlagged(ctx context.Context, userID, communityID string) (bool, error) {
	f, ok := m.flags[userID]
	if !ok {
		return false, nil
	}
	if communityID == "" || f.CommunityID == "" {
		return true, nil
	}
	return f.CommunityID == communityID, nil
}

func (m *mockStandingRepository) GetFlag(ctx context.Context, userID string) (*models.UserFlag, error) {
	return m.flags[userID], nil
}

func (m *mockStandingRepository) BlacklistUser(ctx context.Context, entry *models.UserBlacklist) error {
	m.blacklisted[entry.UserID] = true
	return nil
}

func (m *mockStandingRepository) UnblacklistUser(ctx context.Context, userID string) (bool, error) {
	ok := m.blacklisted[userID]
	delete(m.blacklisted, userID)
	return ok, nil
}

func (m *mockStandingRepository) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	return m.blacklisted[userID], nil
}

var _ secondary.StandingRepository = (*mockStandingRepository)(nil)

// mockChannelConfigRepository for testing
type mockChannelConfigRepository struct {
	channels map[string]string
}

func newMockChannelConfigRepository() *mockChannelConfigRepository {
	return &mockChannelConfigRepository{channels: make(map[string]string)}
}

func (m *mockChannelConfigRepository) GetReviewChannel(ctx context.Context, communityID string) (string, error) {
	return m.channels[communityID], nil
}

func (m *mockChannelConfigRepository) SetReviewChannel(ctx context.Context, communityID, channelID string) error {
	m.channels[communityID] = channelID
	return nil
}

var _ secondary.ChannelConfigRepository = (*mockChannelConfigRepository)(nil)

// mockMessenger records deliveries for testing. Errors can be injected per
// recipient through dmErr, or globally through dmErrAll/postErr.
type sentDM struct {
	userID string
	msg    secondary.Message
}

type channelPost struct {
	channelID string
	mention   string
	msg       secondary.Message
}

type mockMessenger struct {
	dms      []sentDM
	posts    []channelPost
	dmErr    map[string]error
	dmErrAll error
	postErr  error
}

func newMockMessenger() *mockMessenger {
	return &mockMessenger{dmErr: make(map[string]error)}
}

func (m *mockMessenger) SendDirect(ctx context.Context, userID string, msg secondary.Message) error {
	if m.dmErrAll != nil {
		return m.dmErrAll
	}
	if err := m.dmErr[userID]; err != nil {
		return err
	}
	m.dms = append(m.dms, sentDM{userID: userID, msg: msg})
	return nil
}

func (m *mockMessenger) PostToChannel(ctx context.Context, channelID, mention string, msg secondary.Message) error {
	if m.postErr != nil {
		return m.postErr
	}
	m.posts = append(m.posts, channelPost{channelID: channelID, mention: mention, msg: msg})
	return nil
}

var _ secondary.Messenger = (*mockMessenger)(nil)

// mockGuildDirectory for testing
type mockGuildDirectory struct {
	communityID string
	roles       map[string]bool // role id -> outranks bot
	grantErr    map[string]error
	granted     []string
}

func newMockGuildDirectory() *mockGuildDirectory {
	return &mockGuildDirectory{
		communityID: "guild-1",
		roles:       make(map[string]bool),
		grantErr:    make(map[string]error),
	}
}

func (m *mockGuildDirectory) CommunityID(ctx context.Context) (string, error) {
	return m.communityID, nil
}

func (m *mockGuildDirectory) ListRoles(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(m.roles))
	for id := range m.roles {
		out = append(out, id)
	}
	return out, nil
}

func (m *mockGuildDirectory) RoleExists(ctx context.Context, roleID string) (bool, error) {
	_, ok := m.roles[roleID]
	return ok, nil
}

func (m *mockGuildDirectory) RoleOutranksBot(ctx context.Context, roleID string) (bool, error) {
	return m.roles[roleID], nil
}

func (m *mockGuildDirectory) GrantRole(ctx context.Context, userID, roleID string) error {
	if err := m.grantErr[roleID]; err != nil {
		return err
	}
	m.granted = append(m.granted, roleID)
	return nil
}

var _ secondary.GuildDirectory = (*mockGuildDirectory)(nil)

// mockPermissionDirectory for testing
type mockPermissionDirectory struct {
	capabilities map[string][]string
}

func newMockPermissionDirectory() *mockPermissionDirectory {
	return &mockPermissionDirectory{capabilities: make(map[string][]string)}
}

func (m *mockPermissionDirectory) RolesForCapability(name string) ([]string, error) {
	return m.capabilities[name], nil
}

var _ secondary.PermissionDirectory = (*mockPermissionDirectory)(nil)
