package permissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/repository"
	"moderation-service/internal/repository/model"
)

const (
	// store-backed configuration (assignments, command levels, owner)
	storeCacheTTL = 5 * time.Minute
	// resolved per-actor levels
	actorCacheTTL = 2 * time.Minute

	assignmentsCacheName = "assignments"
	commandsCacheName    = "commands"
	ownerCacheName       = "owner"
	actorsCacheName      = "actors"
)

var (
	InvalidLevelError      = errors.New("level must be between 0 and 10")
	InvalidIdentifierError = errors.New("command identifier is empty")
	LevelInUseError        = errors.New("level is referenced by a role assignment or command permission")
)

// RoleSource supplies an actor's current platform roles and a guild's owner.
// Role ids are fetched fresh per resolution; only the resolved level is
// cached.
type RoleSource interface {
	MemberRoleIds(ctx context.Context, guildId string, userId string) ([]string, error)
	GuildOwnerId(ctx context.Context, guildId string) (string, error)
}

// Decision is the outcome of a permission resolution. A denied decision is an
// expected result, not an error; errors mean resolution was impossible and
// the caller must treat the action as denied.
type Decision struct {
	Allowed bool `json:"allowed"`
	// Bypassed is set when the actor skipped level checks entirely (super
	// operator, guild owner, or a non-guild context).
	Bypassed bool `json:"bypassed"`
	// Configured is false when neither the command nor any parent has a
	// required level, which denies by default.
	Configured bool  `json:"configured"`
	Required   int32 `json:"required"`
	Actual     int32 `json:"actual"`
}

type Resolver struct {
	log   *zap.SugaredLogger
	repo  repository.Repository
	cache Cache
	roles RoleSource

	superOperators map[string]struct{}
}

func NewResolver(log *zap.SugaredLogger, repo repository.Repository, cache Cache, roles RoleSource,
	superOperatorIds []string) *Resolver {

	superOperators := make(map[string]struct{}, len(superOperatorIds))
	for _, id := range superOperatorIds {
		superOperators[id] = struct{}{}
	}

	return &Resolver{
		log:            log,
		repo:           repo,
		cache:          cache,
		roles:          roles,
		superOperators: superOperators,
	}
}

// Resolve answers whether an actor may run a command in a guild. An empty
// guildId marks a direct message context, which is never permission checked.
func (r *Resolver) Resolve(ctx context.Context, guildId string, actorId string, command string) (Decision, error) {
	if _, ok := r.superOperators[actorId]; ok {
		return Decision{Allowed: true, Bypassed: true}, nil
	}
	if guildId == "" {
		return Decision{Allowed: true, Bypassed: true}, nil
	}

	ownerId, err := r.guildOwnerId(ctx, guildId)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to resolve guild owner: %w", err)
	}
	if actorId == ownerId {
		return Decision{Allowed: true, Bypassed: true}, nil
	}

	actual, err := r.EffectiveLevel(ctx, guildId, actorId)
	if err != nil {
		return Decision{}, err
	}

	required, configured, err := r.requiredLevel(ctx, guildId, command)
	if err != nil {
		return Decision{}, err
	}
	if !configured {
		return Decision{Actual: actual}, nil
	}

	return Decision{
		Allowed:    actual >= required,
		Configured: true,
		Required:   required,
		Actual:     actual,
	}, nil
}

// EffectiveLevel computes an actor's level: the maximum level over the
// actor's assigned roles, or 0 when none of their roles carry an assignment.
func (r *Resolver) EffectiveLevel(ctx context.Context, guildId string, actorId string) (int32, error) {
	if cached, err := r.cache.Get(ctx, guildId, actorsCacheName, actorId); err != nil {
		r.log.Warnw("failed to read actor level from cache", "guildId", guildId, "error", err)
	} else if cached != "" {
		if level, err := strconv.ParseInt(cached, 10, 32); err == nil {
			return int32(level), nil
		}
	}

	roleIds, err := r.roles.MemberRoleIds(ctx, guildId, actorId)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch member roles: %w", err)
	}

	assignments, err := r.assignments(ctx, guildId)
	if err != nil {
		return 0, err
	}

	var level int32
	for _, roleId := range roleIds {
		if assigned, ok := assignments[roleId]; ok && assigned > level {
			level = assigned
		}
	}

	if err := r.cache.Set(ctx, guildId, actorsCacheName, actorId,
		strconv.FormatInt(int64(level), 10), actorCacheTTL); err != nil {
		r.log.Warnw("failed to cache actor level", "guildId", guildId, "error", err)
	}

	return level, nil
}

// requiredLevel walks the identifier and its parents until one has an entry.
func (r *Resolver) requiredLevel(ctx context.Context, guildId string, command string) (int32, bool, error) {
	commands, err := r.commands(ctx, guildId)
	if err != nil {
		return 0, false, err
	}

	for id := Normalize(command); id != ""; id = ParentOf(id) {
		if level, ok := commands[id]; ok {
			return level, true, nil
		}
	}

	return 0, false, nil
}

func (r *Resolver) guildOwnerId(ctx context.Context, guildId string) (string, error) {
	if cached, err := r.cache.Get(ctx, guildId, ownerCacheName, ""); err != nil {
		r.log.Warnw("failed to read guild owner from cache", "guildId", guildId, "error", err)
	} else if cached != "" {
		return cached, nil
	}

	ownerId, err := r.roles.GuildOwnerId(ctx, guildId)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(ctx, guildId, ownerCacheName, "", ownerId, storeCacheTTL); err != nil {
		r.log.Warnw("failed to cache guild owner", "guildId", guildId, "error", err)
	}

	return ownerId, nil
}

func (r *Resolver) assignments(ctx context.Context, guildId string) (map[string]int32, error) {
	assignments := make(map[string]int32)
	ok, err := r.cachedMap(ctx, guildId, assignmentsCacheName, &assignments)
	if err != nil {
		return nil, err
	}
	if ok {
		return assignments, nil
	}

	stored, err := r.repo.GetRoleAssignments(ctx, guildId)
	if err != nil {
		return nil, fmt.Errorf("failed to load role assignments: %w", err)
	}

	assignments = make(map[string]int32, len(stored))
	for _, assignment := range stored {
		assignments[assignment.RoleId] = assignment.Level
	}

	r.storeMap(ctx, guildId, assignmentsCacheName, assignments)
	return assignments, nil
}

func (r *Resolver) commands(ctx context.Context, guildId string) (map[string]int32, error) {
	commands := make(map[string]int32)
	ok, err := r.cachedMap(ctx, guildId, commandsCacheName, &commands)
	if err != nil {
		return nil, err
	}
	if ok {
		return commands, nil
	}

	stored, err := r.repo.GetCommandPermissions(ctx, guildId)
	if err != nil {
		return nil, fmt.Errorf("failed to load command permissions: %w", err)
	}

	commands = make(map[string]int32, len(stored))
	for _, permission := range stored {
		commands[permission.Command] = permission.RequiredLevel
	}

	r.storeMap(ctx, guildId, commandsCacheName, commands)
	return commands, nil
}

// cachedMap reads a JSON map from the cache. Cache failures count as misses.
func (r *Resolver) cachedMap(ctx context.Context, guildId string, name string, out *map[string]int32) (bool, error) {
	cached, err := r.cache.Get(ctx, guildId, name, "")
	if err != nil {
		r.log.Warnw("failed to read from cache", "name", name, "guildId", guildId, "error", err)
		return false, nil
	}
	if cached == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		r.log.Warnw("failed to decode cache entry", "name", name, "guildId", guildId, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *Resolver) storeMap(ctx context.Context, guildId string, name string, m map[string]int32) {
	encoded, err := json.Marshal(m)
	if err != nil {
		r.log.Warnw("failed to encode cache entry", "name", name, "guildId", guildId, "error", err)
		return
	}
	if err := r.cache.Set(ctx, guildId, name, "", string(encoded), storeCacheTTL); err != nil {
		r.log.Warnw("failed to write to cache", "name", name, "guildId", guildId, "error", err)
	}
}

func (r *Resolver) invalidate(ctx context.Context, guildId string) {
	if err := r.cache.InvalidateGuild(ctx, guildId); err != nil {
		r.log.Warnw("failed to invalidate guild cache", "guildId", guildId, "error", err)
	}
}

// Admin operations. Every write invalidates the guild's cache so the change
// is live before the TTL would have expired.

func (r *Resolver) InitGuild(ctx context.Context, guildId string) (bool, error) {
	created, err := r.repo.InitGuildLevels(ctx, guildId)
	if err != nil {
		return false, err
	}
	if created {
		r.invalidate(ctx, guildId)
	}
	return created, nil
}

func (r *Resolver) Levels(ctx context.Context, guildId string) ([]*model.PermissionLevel, error) {
	return r.repo.GetLevels(ctx, guildId)
}

func (r *Resolver) Level(ctx context.Context, guildId string, level int32) (*model.PermissionLevel, error) {
	return r.repo.GetLevel(ctx, guildId, level)
}

func (r *Resolver) SetLevel(ctx context.Context, level *model.PermissionLevel) error {
	if level.Level < model.MinLevel || level.Level > model.MaxLevel {
		return InvalidLevelError
	}
	if err := r.repo.SetLevel(ctx, level); err != nil {
		return err
	}
	r.invalidate(ctx, level.GuildId)
	return nil
}

// DeleteLevel refuses to delete a level that assignments or command
// permissions still reference.
func (r *Resolver) DeleteLevel(ctx context.Context, guildId string, level int32) error {
	assignments, err := r.repo.GetRoleAssignments(ctx, guildId)
	if err != nil {
		return err
	}
	for _, assignment := range assignments {
		if assignment.Level == level {
			return LevelInUseError
		}
	}

	permissions, err := r.repo.GetCommandPermissions(ctx, guildId)
	if err != nil {
		return err
	}
	for _, permission := range permissions {
		if permission.RequiredLevel == level {
			return LevelInUseError
		}
	}

	if err := r.repo.DeleteLevel(ctx, guildId, level); err != nil {
		return err
	}
	r.invalidate(ctx, guildId)
	return nil
}

func (r *Resolver) RoleAssignments(ctx context.Context, guildId string) ([]*model.RoleAssignment, error) {
	return r.repo.GetRoleAssignments(ctx, guildId)
}

func (r *Resolver) SetRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error {
	if assignment.Level < model.MinLevel || assignment.Level > model.MaxLevel {
		return InvalidLevelError
	}
	if err := r.repo.SetRoleAssignment(ctx, assignment); err != nil {
		return err
	}
	r.invalidate(ctx, assignment.GuildId)
	return nil
}

func (r *Resolver) RemoveRoleAssignment(ctx context.Context, guildId string, roleId string) error {
	if err := r.repo.RemoveRoleAssignment(ctx, guildId, roleId); err != nil {
		return err
	}
	r.invalidate(ctx, guildId)
	return nil
}

func (r *Resolver) CommandPermissions(ctx context.Context, guildId string) ([]*model.CommandPermission, error) {
	return r.repo.GetCommandPermissions(ctx, guildId)
}

func (r *Resolver) SetCommandPermission(ctx context.Context, permission *model.CommandPermission) error {
	if permission.RequiredLevel < model.MinLevel || permission.RequiredLevel > model.MaxLevel {
		return InvalidLevelError
	}
	permission.Command = Normalize(permission.Command)
	if permission.Command == "" {
		return InvalidIdentifierError
	}
	if err := r.repo.SetCommandPermission(ctx, permission); err != nil {
		return err
	}
	r.invalidate(ctx, permission.GuildId)
	return nil
}

func (r *Resolver) RemoveCommandPermission(ctx context.Context, guildId string, command string) error {
	if err := r.repo.RemoveCommandPermission(ctx, guildId, Normalize(command)); err != nil {
		return err
	}
	r.invalidate(ctx, guildId)
	return nil
}
