package service

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"moderation-service/internal/execution"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/moderation"
	"moderation-service/internal/permissions"
	"moderation-service/internal/repository"
	"moderation-service/internal/repository/model"
)

type moderationService struct {
	log *zap.SugaredLogger

	resolver    *permissions.Resolver
	coordinator *moderation.Coordinator
	repo        repository.Repository
	notif       notifier.Notifier
}

func newModerationService(log *zap.SugaredLogger, resolver *permissions.Resolver,
	coordinator *moderation.Coordinator, repo repository.Repository, notif notifier.Notifier) *moderationService {

	return &moderationService{
		log:         log,
		resolver:    resolver,
		coordinator: coordinator,
		repo:        repo,
		notif:       notif,
	}
}

func (s *moderationService) register(e *echo.Echo) {
	e.GET("/health", s.handleHealth)

	e.POST("/guilds/:guildId/permissions/init", s.handleInitGuild)
	e.GET("/guilds/:guildId/permissions/levels", s.handleGetLevels)
	e.GET("/guilds/:guildId/permissions/levels/:level", s.handleGetLevel)
	e.PUT("/guilds/:guildId/permissions/levels", s.handlePutLevel)
	e.DELETE("/guilds/:guildId/permissions/levels/:level", s.handleDeleteLevel)
	e.GET("/guilds/:guildId/permissions/roles", s.handleGetRoleAssignments)
	e.PUT("/guilds/:guildId/permissions/roles/:roleId", s.handlePutRoleAssignment)
	e.DELETE("/guilds/:guildId/permissions/roles/:roleId", s.handleDeleteRoleAssignment)
	e.GET("/guilds/:guildId/permissions/commands", s.handleGetCommandPermissions)
	e.PUT("/guilds/:guildId/permissions/commands", s.handlePutCommandPermission)
	e.DELETE("/guilds/:guildId/permissions/commands/:command", s.handleDeleteCommandPermission)
	e.POST("/guilds/:guildId/permissions/check", s.handleCheckPermission)

	e.POST("/guilds/:guildId/moderation", s.handleExecute)
	e.POST("/guilds/:guildId/targets/:targetId/unjail", s.handleUnjail)
	e.GET("/guilds/:guildId/cases", s.handleSearchCases)
	e.GET("/guilds/:guildId/cases/:caseNumber", s.handleGetCase)
	e.PATCH("/guilds/:guildId/cases/:caseNumber", s.handleAmendCase)
	e.PUT("/guilds/:guildId/cases/:caseNumber/audit-message", s.handleSetAuditMessage)
	e.GET("/guilds/:guildId/targets/:targetId/cases", s.handleTargetCases)
	e.GET("/guilds/:guildId/moderators/:moderatorId/cases", s.handleModeratorCases)
}

type errorResponse struct {
	Error string `json:"error"`
}

type unauditedResponse struct {
	Error string `json:"error"`
	// Unaudited flags that the platform action went through but no case
	// records it, so an operator has to reconcile by hand.
	Unaudited bool `json:"unaudited"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *moderationService) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

type initGuildResponse struct {
	Created bool `json:"created"`
}

func (s *moderationService) handleInitGuild(c echo.Context) error {
	guildId := c.Param("guildId")

	created, err := s.resolver.InitGuild(c.Request().Context(), guildId)
	if err != nil {
		return s.permissionError(c, err)
	}

	if created {
		s.permissionsChanged(c, guildId)
	}
	return c.JSON(http.StatusOK, initGuildResponse{Created: created})
}

func (s *moderationService) handleGetLevels(c echo.Context) error {
	levels, err := s.resolver.Levels(c.Request().Context(), c.Param("guildId"))
	if err != nil {
		return s.permissionError(c, err)
	}
	return c.JSON(http.StatusOK, levels)
}

func (s *moderationService) handleGetLevel(c echo.Context) error {
	guildId := c.Param("guildId")

	level, err := strconv.ParseInt(c.Param("level"), 10, 32)
	if err != nil {
		return badRequest(c, fmt.Errorf("invalid level: %w", err))
	}

	found, err := s.resolver.Level(c.Request().Context(), guildId, int32(level))
	if err != nil {
		return s.permissionError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

type levelRequest struct {
	Level       int32  `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *moderationService) handlePutLevel(c echo.Context) error {
	guildId := c.Param("guildId")

	var body levelRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	level := &model.PermissionLevel{
		GuildId:     guildId,
		Level:       body.Level,
		Name:        body.Name,
		Description: body.Description,
	}
	if err := s.resolver.SetLevel(c.Request().Context(), level); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.JSON(http.StatusOK, level)
}

func (s *moderationService) handleDeleteLevel(c echo.Context) error {
	guildId := c.Param("guildId")

	level, err := strconv.ParseInt(c.Param("level"), 10, 32)
	if err != nil {
		return badRequest(c, fmt.Errorf("invalid level: %w", err))
	}

	if err := s.resolver.DeleteLevel(c.Request().Context(), guildId, int32(level)); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.NoContent(http.StatusNoContent)
}

func (s *moderationService) handleGetRoleAssignments(c echo.Context) error {
	assignments, err := s.resolver.RoleAssignments(c.Request().Context(), c.Param("guildId"))
	if err != nil {
		return s.permissionError(c, err)
	}
	return c.JSON(http.StatusOK, assignments)
}

type roleAssignmentRequest struct {
	Level int32 `json:"level"`
}

func (s *moderationService) handlePutRoleAssignment(c echo.Context) error {
	guildId := c.Param("guildId")

	var body roleAssignmentRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	assignment := &model.RoleAssignment{
		GuildId: guildId,
		RoleId:  c.Param("roleId"),
		Level:   body.Level,
	}
	if err := s.resolver.SetRoleAssignment(c.Request().Context(), assignment); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.JSON(http.StatusOK, assignment)
}

func (s *moderationService) handleDeleteRoleAssignment(c echo.Context) error {
	guildId := c.Param("guildId")

	if err := s.resolver.RemoveRoleAssignment(c.Request().Context(), guildId, c.Param("roleId")); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.NoContent(http.StatusNoContent)
}

func (s *moderationService) handleGetCommandPermissions(c echo.Context) error {
	perms, err := s.resolver.CommandPermissions(c.Request().Context(), c.Param("guildId"))
	if err != nil {
		return s.permissionError(c, err)
	}
	return c.JSON(http.StatusOK, perms)
}

type commandPermissionRequest struct {
	Command       string `json:"command"`
	RequiredLevel int32  `json:"requiredLevel"`
}

func (s *moderationService) handlePutCommandPermission(c echo.Context) error {
	guildId := c.Param("guildId")

	var body commandPermissionRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	permission := &model.CommandPermission{
		GuildId:       guildId,
		Command:       body.Command,
		RequiredLevel: body.RequiredLevel,
	}
	if err := s.resolver.SetCommandPermission(c.Request().Context(), permission); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.JSON(http.StatusOK, permission)
}

func (s *moderationService) handleDeleteCommandPermission(c echo.Context) error {
	guildId := c.Param("guildId")

	if err := s.resolver.RemoveCommandPermission(c.Request().Context(), guildId, c.Param("command")); err != nil {
		return s.permissionError(c, err)
	}

	s.permissionsChanged(c, guildId)
	return c.NoContent(http.StatusNoContent)
}

type checkRequest struct {
	ActorId string `json:"actorId"`
	Command string `json:"command"`
}

// handleCheckPermission resolves whether an actor may run a command. A denial
// is a 403 carrying the full decision so the caller can report the required
// and actual levels; resolution failures are a 503 and must be treated as
// denied.
func (s *moderationService) handleCheckPermission(c echo.Context) error {
	guildId := c.Param("guildId")

	var body checkRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	decision, err := s.resolver.Resolve(c.Request().Context(), guildId, body.ActorId, body.Command)
	if err != nil {
		s.log.Errorw("failed to resolve permission", "guildId", guildId, "actorId", body.ActorId,
			"command", body.Command, "error", err)
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "permission resolution unavailable"})
	}

	status := http.StatusOK
	if !decision.Allowed {
		status = http.StatusForbidden
	}
	return c.JSON(status, decision)
}

type executeRequest struct {
	Type        string            `json:"type"`
	TargetId    string            `json:"targetId"`
	ModeratorId string            `json:"moderatorId"`
	Reason      string            `json:"reason,omitempty"`
	// Duration is a Go duration string such as "30m" or "24h".
	Duration string            `json:"duration,omitempty"`
	Silent   bool              `json:"silent,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// authorizeModerator resolves whether the moderator may perform the action,
// checking the case type's command identifier (variants share entries, e.g.
// TEMPBAN checks "ban"). It writes the denial or failure response itself; a
// true return means allowed.
func (s *moderationService) authorizeModerator(c echo.Context, guildId string, moderatorId string,
	caseType model.CaseType) (bool, error) {

	command := caseType.Command()
	decision, err := s.resolver.Resolve(c.Request().Context(), guildId, moderatorId, command)
	if err != nil {
		s.log.Errorw("failed to resolve permission", "guildId", guildId, "actorId", moderatorId,
			"command", command, "error", err)
		return false, c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "permission resolution unavailable"})
	}
	if !decision.Allowed {
		return false, c.JSON(http.StatusForbidden, decision)
	}
	return true, nil
}

func (s *moderationService) handleExecute(c echo.Context) error {
	guildId := c.Param("guildId")

	var body executeRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	caseType := model.CaseType(strings.ToUpper(body.Type))
	if !caseType.Valid() {
		return badRequest(c, moderation.InvalidTypeError)
	}
	if body.ModeratorId == "" {
		return badRequest(c, moderation.MissingModeratorError)
	}

	var duration time.Duration
	if body.Duration != "" {
		var err error
		if duration, err = time.ParseDuration(body.Duration); err != nil {
			return badRequest(c, fmt.Errorf("invalid duration: %w", err))
		}
	}

	if allowed, err := s.authorizeModerator(c, guildId, body.ModeratorId, caseType); !allowed {
		return err
	}

	created, err := s.coordinator.Execute(c.Request().Context(), moderation.Request{
		GuildId:     guildId,
		Type:        caseType,
		TargetId:    body.TargetId,
		ModeratorId: body.ModeratorId,
		Reason:      body.Reason,
		Duration:    duration,
		Silent:      body.Silent,
		Metadata:    body.Metadata,
	})
	if err != nil {
		return s.moderationError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

type unjailRequest struct {
	ModeratorId string `json:"moderatorId"`
	Reason      string `json:"reason,omitempty"`
}

func (s *moderationService) handleUnjail(c echo.Context) error {
	guildId := c.Param("guildId")

	var body unjailRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	if body.ModeratorId == "" {
		return badRequest(c, moderation.MissingModeratorError)
	}

	if allowed, err := s.authorizeModerator(c, guildId, body.ModeratorId, model.CaseTypeUnjail); !allowed {
		return err
	}

	created, err := s.coordinator.Execute(c.Request().Context(), moderation.Request{
		GuildId:     guildId,
		Type:        model.CaseTypeUnjail,
		TargetId:    c.Param("targetId"),
		ModeratorId: body.ModeratorId,
		Reason:      body.Reason,
	})
	if err != nil {
		return s.moderationError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *moderationService) handleGetCase(c echo.Context) error {
	guildId := c.Param("guildId")

	caseNumber, err := parseCaseNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	found, err := s.repo.GetCase(c.Request().Context(), guildId, caseNumber)
	if err != nil {
		return s.caseError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

func (s *moderationService) handleSearchCases(c echo.Context) error {
	guildId := c.Param("guildId")

	var filter repository.CaseFilter
	if raw := c.QueryParam("type"); raw != "" {
		caseType := model.CaseType(strings.ToUpper(raw))
		if !caseType.Valid() {
			return badRequest(c, fmt.Errorf("unknown case type %q", raw))
		}
		filter.Type = &caseType
	}
	if raw := c.QueryParam("targetId"); raw != "" {
		filter.TargetId = &raw
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, fmt.Errorf("invalid active flag: %w", err))
		}
		filter.Active = &active
	}

	cases, err := s.repo.SearchCases(c.Request().Context(), guildId, filter)
	if err != nil {
		return s.caseError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

func (s *moderationService) handleTargetCases(c echo.Context) error {
	cases, err := s.repo.GetCasesByTarget(c.Request().Context(), c.Param("guildId"), c.Param("targetId"))
	if err != nil {
		return s.caseError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

func (s *moderationService) handleModeratorCases(c echo.Context) error {
	cases, err := s.repo.GetCasesByModerator(c.Request().Context(), c.Param("guildId"), c.Param("moderatorId"))
	if err != nil {
		return s.caseError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

func (s *moderationService) handleAmendCase(c echo.Context) error {
	guildId := c.Param("guildId")

	caseNumber, err := parseCaseNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	var amendment model.CaseAmendment
	if err := c.Bind(&amendment); err != nil {
		return badRequest(c, err)
	}
	if amendment.Reason != nil && len(*amendment.Reason) > model.MaxReasonLength {
		return badRequest(c, fmt.Errorf("reason exceeds %d characters", model.MaxReasonLength))
	}

	amended, err := s.repo.AmendCase(c.Request().Context(), guildId, caseNumber, amendment)
	if err != nil {
		return s.caseError(c, err)
	}

	if err := s.notif.CaseUpdated(c.Request().Context(), amended); err != nil {
		s.log.Errorw("failed to publish case updated event", "guildId", guildId,
			"caseNumber", caseNumber, "error", err)
	}
	return c.JSON(http.StatusOK, amended)
}

type auditMessageRequest struct {
	MessageId string `json:"messageId"`
}

func (s *moderationService) handleSetAuditMessage(c echo.Context) error {
	guildId := c.Param("guildId")

	caseNumber, err := parseCaseNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	var body auditMessageRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}
	if body.MessageId == "" {
		return badRequest(c, errors.New("messageId is required"))
	}

	if err := s.repo.SetCaseAuditMessage(c.Request().Context(), guildId, caseNumber, body.MessageId); err != nil {
		return s.caseError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseCaseNumber(c echo.Context) (int64, error) {
	caseNumber, err := strconv.ParseInt(c.Param("caseNumber"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid case number: %w", err)
	}
	return caseNumber, nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// permissionsChanged tells downstream caches to drop their permission state
// for the guild. Publish failures are logged and swallowed: the write has
// already happened and the store-backed caches expire on their own.
func (s *moderationService) permissionsChanged(c echo.Context, guildId string) {
	if err := s.notif.PermissionsChanged(c.Request().Context(), guildId); err != nil {
		s.log.Errorw("failed to publish permissions changed event", "guildId", guildId, "error", err)
	}
}

func (s *moderationService) permissionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, permissions.InvalidLevelError), errors.Is(err, permissions.InvalidIdentifierError):
		return badRequest(c, err)
	case errors.Is(err, permissions.LevelInUseError):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.LevelNotFoundError), errors.Is(err, repository.AssignmentNotFoundError),
		errors.Is(err, repository.CommandPermissionNotFoundError):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	s.log.Errorw("permission operation failed", "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *moderationService) caseError(c echo.Context, err error) error {
	if errors.Is(err, repository.CaseNotFoundError) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	s.log.Errorw("case operation failed", "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

var validationErrors = []error{
	moderation.InvalidTypeError,
	moderation.MissingGuildError,
	moderation.MissingTargetError,
	moderation.MissingModeratorError,
	moderation.MissingJailRoleError,
	moderation.ReasonTooLongError,
	moderation.DurationRequiredError,
	moderation.DurationNotAllowedError,
}

func (s *moderationService) moderationError(c echo.Context, err error) error {
	var unaudited *moderation.UnauditedActionError
	switch {
	case errors.As(err, &unaudited):
		s.log.Errorw("action performed but not recorded", "error", err)
		return c.JSON(http.StatusBadGateway, unauditedResponse{Error: err.Error(), Unaudited: true})
	case errors.Is(err, execution.CircuitOpenError):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case errors.Is(err, moderation.NoActiveCaseError):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	}
	for _, validation := range validationErrors {
		if errors.Is(err, validation) {
			return badRequest(c, err)
		}
	}

	s.log.Errorw("failed to execute moderation action", "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
