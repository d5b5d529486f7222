package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-service/internal/execution"
	"moderation-service/internal/gateway"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/repository"
	"moderation-service/internal/repository/model"
)

// recorder collects side effects across the stubs so tests can assert their
// relative order.
type recorder struct {
	events []string
}

func (r *recorder) record(event string) {
	r.events = append(r.events, event)
}

type stubGateway struct {
	rec *recorder

	guildName  string
	roleIds    []string
	roleCalls  int
	lastNotice string

	dmErr     error
	rolesErr  error
	actionErr error
}

var _ gateway.Gateway = (*stubGateway)(nil)

func (s *stubGateway) GuildName(ctx context.Context, guildId string) (string, error) {
	return s.guildName, nil
}

func (s *stubGateway) GuildOwnerId(ctx context.Context, guildId string) (string, error) {
	return "", nil
}

func (s *stubGateway) MemberRoleIds(ctx context.Context, guildId string, userId string) ([]string, error) {
	s.roleCalls++
	if s.rolesErr != nil {
		return nil, s.rolesErr
	}
	return s.roleIds, nil
}

func (s *stubGateway) BanMember(ctx context.Context, guildId string, userId string, reason string, deleteDays int) error {
	s.rec.record("ban " + userId)
	return s.actionErr
}

func (s *stubGateway) UnbanMember(ctx context.Context, guildId string, userId string) error {
	s.rec.record("unban " + userId)
	return s.actionErr
}

func (s *stubGateway) KickMember(ctx context.Context, guildId string, userId string, reason string) error {
	s.rec.record("kick " + userId)
	return s.actionErr
}

func (s *stubGateway) TimeoutMember(ctx context.Context, guildId string, userId string, until *time.Time) error {
	if until == nil {
		s.rec.record("untimeout " + userId)
	} else {
		s.rec.record("timeout " + userId)
	}
	return s.actionErr
}

func (s *stubGateway) SetMemberRoles(ctx context.Context, guildId string, userId string, roleIds []string) error {
	s.rec.record("roles " + userId + " " + strings.Join(roleIds, ","))
	return s.actionErr
}

func (s *stubGateway) SendDirectMessage(ctx context.Context, userId string, content string) error {
	s.rec.record("dm " + userId)
	s.lastNotice = content
	return s.dmErr
}

type stubRepo struct {
	repository.Repository

	rec *recorder

	active     map[model.CaseType]*model.Case
	expired    []*model.Case
	created    []*model.Case
	nextNumber int64
	amendCalls int

	createErr error
	amendErr  error
}

var _ repository.Repository = (*stubRepo)(nil)

func (s *stubRepo) CreateCase(ctx context.Context, c *model.Case) (*model.Case, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}

	s.nextNumber++
	created := *c
	created.Id = uuid.New()
	created.CaseNumber = s.nextNumber
	created.CreatedAt = time.Now().UTC()
	s.created = append(s.created, &created)
	s.rec.record("create case")
	return &created, nil
}

func (s *stubRepo) GetActiveCase(ctx context.Context, guildId string, targetId string, caseType model.CaseType) (*model.Case, error) {
	if c, ok := s.active[caseType]; ok {
		return c, nil
	}
	return nil, repository.CaseNotFoundError
}

func (s *stubRepo) GetExpiredCases(ctx context.Context, now time.Time) ([]*model.Case, error) {
	return s.expired, nil
}

func (s *stubRepo) AmendCase(ctx context.Context, guildId string, caseNumber int64, amendment model.CaseAmendment) (*model.Case, error) {
	s.amendCalls++
	if s.amendErr != nil {
		return nil, s.amendErr
	}

	s.rec.record(fmt.Sprintf("close case %d", caseNumber))
	amended := &model.Case{GuildId: guildId, CaseNumber: caseNumber}
	if amendment.Reason != nil {
		amended.Reason = *amendment.Reason
	}
	if amendment.Active != nil {
		amended.Active = *amendment.Active
	}
	return amended, nil
}

type stubNotifier struct {
	rec *recorder
}

var _ notifier.Notifier = (*stubNotifier)(nil)

func (s *stubNotifier) CaseCreated(ctx context.Context, c *model.Case) error {
	s.rec.record("event case_created")
	return nil
}

func (s *stubNotifier) CaseUpdated(ctx context.Context, c *model.Case) error {
	s.rec.record("event case_updated")
	return nil
}

func (s *stubNotifier) CaseExpired(ctx context.Context, c *model.Case) error {
	s.rec.record("event case_expired")
	return nil
}

func (s *stubNotifier) PermissionsChanged(ctx context.Context, guildId string) error {
	s.rec.record("event permissions_changed")
	return nil
}

type fixture struct {
	rec      *recorder
	gateway  *stubGateway
	repo     *stubRepo
	notifier *stubNotifier

	coordinator *Coordinator
	worker      *ExpiryWorker
}

func newFixture() *fixture {
	rec := &recorder{}
	gw := &stubGateway{rec: rec, guildName: "Test Guild", roleIds: []string{"role-1", "role-2"}}
	repo := &stubRepo{rec: rec, active: map[model.CaseType]*model.Case{}}
	nf := &stubNotifier{rec: rec}

	log := zap.NewNop().Sugar()
	executor := execution.NewExecutor(log)

	return &fixture{
		rec:         rec,
		gateway:     gw,
		repo:        repo,
		notifier:    nf,
		coordinator: NewCoordinator(log, repo, gw, executor, nf),
		worker:      NewExpiryWorker(log, repo, gw, executor, nf),
	}
}

func request(caseType model.CaseType) Request {
	return Request{
		GuildId:     "guild-1",
		Type:        caseType,
		TargetId:    "target-1",
		ModeratorId: "mod-1",
		Reason:      "spamming",
	}
}

func TestCoordinator_BanNotifiesBeforeAction(t *testing.T) {
	f := newFixture()

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeBan))

	require.NoError(t, err)
	assert.Equal(t, []string{"dm target-1", "ban target-1", "create case", "event case_created"}, f.rec.events)
	assert.Equal(t, int64(1), created.CaseNumber)
	assert.True(t, created.Active)
	assert.Equal(t, []string{"role-1", "role-2"}, created.TargetRoleIds)

	// the case does not exist yet when a removal notice goes out
	assert.NotContains(t, f.gateway.lastNotice, "Case #")
	assert.Contains(t, f.gateway.lastNotice, "banned")
	assert.Contains(t, f.gateway.lastNotice, "spamming")
}

func TestCoordinator_WarnNotifiesAfterPersistence(t *testing.T) {
	f := newFixture()

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeWarn))

	require.NoError(t, err)
	assert.Equal(t, []string{"create case", "dm target-1", "event case_created"}, f.rec.events)
	assert.Contains(t, f.gateway.lastNotice, fmt.Sprintf("Case #%d", created.CaseNumber))
	assert.Contains(t, f.gateway.lastNotice, "Test Guild")
}

func TestCoordinator_SilentSkipsNotification(t *testing.T) {
	f := newFixture()

	req := request(model.CaseTypeBan)
	req.Silent = true
	_, err := f.coordinator.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"ban target-1", "create case", "event case_created"}, f.rec.events)
}

func TestCoordinator_NoteNeverNotifiesTarget(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeNote))

	require.NoError(t, err)
	assert.Equal(t, []string{"create case", "event case_created"}, f.rec.events)
}

func TestCoordinator_NotificationFailureDoesNotAbort(t *testing.T) {
	f := newFixture()
	f.gateway.dmErr = errors.New("cannot message this user")

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeBan))

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, []string{"dm target-1", "ban target-1", "create case", "event case_created"}, f.rec.events)
}

func TestCoordinator_ActionFailureWritesNoCase(t *testing.T) {
	f := newFixture()
	f.gateway.actionErr = execution.Permanent(errors.New("missing permissions"))

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeBan))

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Empty(t, f.repo.created)

	var unaudited *UnauditedActionError
	assert.False(t, errors.As(err, &unaudited))
}

func TestCoordinator_UnauditedActionSurfaced(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("write failed")

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeBan))

	require.Error(t, err)
	var unaudited *UnauditedActionError
	require.True(t, errors.As(err, &unaudited))
	assert.Contains(t, f.rec.events, "ban target-1")
}

func TestCoordinator_PersistenceFailureWithoutActionsIsOrdinary(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("write failed")

	// warnings perform no platform action, so nothing went unaudited
	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeWarn))

	require.Error(t, err)
	var unaudited *UnauditedActionError
	assert.False(t, errors.As(err, &unaudited))
}

func TestCoordinator_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{
			name:     "unknown type",
			mutate:   func(req *Request) { req.Type = "OBLITERATE" },
			expected: InvalidTypeError,
		},
		{
			name:     "missing guild",
			mutate:   func(req *Request) { req.GuildId = "" },
			expected: MissingGuildError,
		},
		{
			name:     "missing target",
			mutate:   func(req *Request) { req.TargetId = "" },
			expected: MissingTargetError,
		},
		{
			name:     "missing moderator",
			mutate:   func(req *Request) { req.ModeratorId = "" },
			expected: MissingModeratorError,
		},
		{
			name:     "reason too long",
			mutate:   func(req *Request) { req.Reason = strings.Repeat("a", model.MaxReasonLength+1) },
			expected: ReasonTooLongError,
		},
		{
			name:     "tempban without duration",
			mutate:   func(req *Request) { req.Type = model.CaseTypeTempBan },
			expected: DurationRequiredError,
		},
		{
			name:     "timeout without duration",
			mutate:   func(req *Request) { req.Type = model.CaseTypeTimeout },
			expected: DurationRequiredError,
		},
		{
			name: "warn with duration",
			mutate: func(req *Request) {
				req.Type = model.CaseTypeWarn
				req.Duration = time.Hour
			},
			expected: DurationNotAllowedError,
		},
		{
			name:     "jail without jail role",
			mutate:   func(req *Request) { req.Type = model.CaseTypeJail },
			expected: MissingJailRoleError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()

			req := request(model.CaseTypeBan)
			test.mutate(&req)
			created, err := f.coordinator.Execute(context.Background(), req)

			assert.ErrorIs(t, err, test.expected)
			assert.Nil(t, created)
			// rejected before any side effect
			assert.Empty(t, f.rec.events)
		})
	}
}

func TestCoordinator_UnbanRequiresActiveBan(t *testing.T) {
	f := newFixture()

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUnban))

	assert.ErrorIs(t, err, NoActiveCaseError)
	assert.Nil(t, created)
	assert.Empty(t, f.rec.events)
}

func TestCoordinator_UnbanClosesStandingBan(t *testing.T) {
	f := newFixture()
	f.repo.active[model.CaseTypeBan] = &model.Case{
		GuildId: "guild-1", CaseNumber: 7, Type: model.CaseTypeBan,
		TargetId: "target-1", Active: true,
	}

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUnban))

	require.NoError(t, err)
	assert.Equal(t, model.CaseTypeUnban, created.Type)
	assert.Equal(t, []string{
		"unban target-1",
		"close case 7",
		"event case_updated",
		"create case",
		"dm target-1",
		"event case_created",
	}, f.rec.events)
}

func TestCoordinator_UnwarnClosesMostRecentWarning(t *testing.T) {
	f := newFixture()
	f.repo.active[model.CaseTypeWarn] = &model.Case{
		GuildId: "guild-1", CaseNumber: 4, Type: model.CaseTypeWarn,
		TargetId: "target-1", Active: true,
	}

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUnwarn))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"close case 4",
		"event case_updated",
		"create case",
		"dm target-1",
		"event case_created",
	}, f.rec.events)
}

func TestCoordinator_JailConfinesAndSnapshots(t *testing.T) {
	f := newFixture()

	req := request(model.CaseTypeJail)
	req.Metadata = map[string]string{JailRoleMetadataKey: "jail-role"}
	created, err := f.coordinator.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Contains(t, f.rec.events, "roles target-1 jail-role")
	// the pre-jail roles are kept for the release
	assert.Equal(t, []string{"role-1", "role-2"}, created.TargetRoleIds)
	assert.Equal(t, "jail-role", created.Metadata[JailRoleMetadataKey])
	assert.Nil(t, created.ExpiresAt)
}

// A jail with no snapshot would later release the member with no roles at
// all, so a failed snapshot read aborts the jail before anything happens.
func TestCoordinator_JailAbortsWhenSnapshotFails(t *testing.T) {
	f := newFixture()
	f.gateway.rolesErr = errors.New("platform unavailable")

	req := request(model.CaseTypeJail)
	req.Metadata = map[string]string{JailRoleMetadataKey: "jail-role"}
	created, err := f.coordinator.Execute(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, created)
	// roles untouched, no case written
	assert.Empty(t, f.rec.events)
}

// For everything else the snapshot is informational and stays best effort.
func TestCoordinator_BanProceedsWhenSnapshotFails(t *testing.T) {
	f := newFixture()
	f.gateway.rolesErr = errors.New("platform unavailable")

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeBan))

	require.NoError(t, err)
	assert.Nil(t, created.TargetRoleIds)
	assert.Contains(t, f.rec.events, "ban target-1")
	assert.Contains(t, f.rec.events, "create case")
}

func TestCoordinator_UnjailRestoresSnapshot(t *testing.T) {
	f := newFixture()
	f.repo.active[model.CaseTypeJail] = &model.Case{
		GuildId: "guild-1", CaseNumber: 3, Type: model.CaseTypeJail,
		TargetId: "target-1", Active: true,
		TargetRoleIds: []string{"role-a", "role-b"},
	}

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUnjail))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"roles target-1 role-a,role-b",
		"close case 3",
		"event case_updated",
		"create case",
		"dm target-1",
		"event case_created",
	}, f.rec.events)
}

func TestCoordinator_UnjailRequiresActiveJail(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUnjail))

	assert.ErrorIs(t, err, NoActiveCaseError)
	assert.Empty(t, f.rec.events)
}

func TestCoordinator_TempBanSetsExpiry(t *testing.T) {
	f := newFixture()

	req := request(model.CaseTypeTempBan)
	req.Duration = 24 * time.Hour
	created, err := f.coordinator.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, created.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *created.ExpiresAt, 5*time.Second)
}

func TestCoordinator_SoftBanBansThenUnbans(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeSoftBan))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"dm target-1",
		"ban target-1",
		"unban target-1",
		"create case",
		"event case_created",
	}, f.rec.events)
}

func TestCoordinator_HackBanSkipsSnapshot(t *testing.T) {
	f := newFixture()

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeHackBan))

	require.NoError(t, err)
	assert.Zero(t, f.gateway.roleCalls)
	assert.Nil(t, created.TargetRoleIds)
}

// A connection drop cancels the request context mid-workflow; the platform
// call and the case write must still go through so no action is left
// unrecorded.
func TestCoordinator_DroppedCallerDoesNotSeverWorkflow(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var actionCtxErr error
	var hasDeadline bool
	req := request(model.CaseTypeBan)
	req.Actions = []execution.Action{func(ctx context.Context) error {
		actionCtxErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
		return nil
	}}

	created, err := f.coordinator.Execute(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Contains(t, f.rec.events, "create case")
	// the caller's cancellation never reaches the platform call; the
	// workflow's own deadline bounds it instead
	assert.NoError(t, actionCtxErr)
	assert.True(t, hasDeadline)
}

func TestCoordinator_UntimeoutWithoutCaseStillLifts(t *testing.T) {
	f := newFixture()

	created, err := f.coordinator.Execute(context.Background(), request(model.CaseTypeUntimeout))

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, []string{
		"untimeout target-1",
		"create case",
		"dm target-1",
		"event case_created",
	}, f.rec.events)
}
