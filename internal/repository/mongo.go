package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/repository/model"
	"moderation-service/internal/repository/registrytypes"
)

const databaseName = "moderation-service"

type mongoRepository struct {
	Repository
	database *mongo.Database

	levelCollection      *mongo.Collection
	assignmentCollection *mongo.Collection
	commandCollection    *mongo.Collection
	guildCollection      *mongo.Collection
	caseCollection       *mongo.Collection
}

var (
	LevelNotFoundError             = errors.New("permission level does not exist")
	AssignmentNotFoundError        = errors.New("role assignment does not exist")
	CommandPermissionNotFoundError = errors.New("command permission does not exist")
	CaseNotFoundError              = errors.New("case does not exist")
)

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup,
	cfg config.MongoDBConfig) (Repository, error) {

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetRegistry(createCodecRegistry()))
	if err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Errorw("failed to disconnect from mongodb", "error", err)
		}
	}()

	database := client.Database(databaseName)
	repo := &mongoRepository{
		database:             database,
		levelCollection:      database.Collection("levels"),
		assignmentCollection: database.Collection("role_assignments"),
		commandCollection:    database.Collection("command_permissions"),
		guildCollection:      database.Collection("guilds"),
		caseCollection:       database.Collection("cases"),
	}

	if err := repo.createIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := m.levelCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guildId", Value: 1}, {Key: "level", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = m.assignmentCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guildId", Value: 1}, {Key: "roleId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = m.commandCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "guildId", Value: 1}, {Key: "command", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = m.caseCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// backstop for the case numbering transaction
			Keys:    bson.D{{Key: "guildId", Value: 1}, {Key: "caseNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "targetId", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})

	return err
}

func (m *mongoRepository) InitGuildLevels(ctx context.Context, guildId string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := m.levelCollection.CountDocuments(ctx, bson.M{"guildId": guildId})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	defaults := model.DefaultLevels(guildId)
	docs := make([]interface{}, len(defaults))
	for i, level := range defaults {
		docs[i] = level
	}

	if _, err := m.levelCollection.InsertMany(ctx, docs); err != nil {
		// a concurrent init won the race
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (m *mongoRepository) GetLevels(ctx context.Context, guildId string) ([]*model.PermissionLevel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.levelCollection.Find(ctx, bson.M{"guildId": guildId},
		options.Find().SetSort(bson.D{{Key: "level", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.PermissionLevel
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.PermissionLevel, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) GetLevel(ctx context.Context, guildId string, level int32) (*model.PermissionLevel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.PermissionLevel
	err := m.levelCollection.FindOne(ctx, bson.M{"guildId": guildId, "level": level}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, LevelNotFoundError
		}
		return nil, err
	}

	return &result, nil
}

func (m *mongoRepository) SetLevel(ctx context.Context, level *model.PermissionLevel) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.levelCollection.UpdateOne(ctx,
		bson.M{"guildId": level.GuildId, "level": level.Level},
		bson.M{"$set": bson.M{"name": level.Name, "description": level.Description}},
		options.Update().SetUpsert(true))

	return err
}

func (m *mongoRepository) DeleteLevel(ctx context.Context, guildId string, level int32) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.levelCollection.DeleteOne(ctx, bson.M{"guildId": guildId, "level": level})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return LevelNotFoundError
	}

	return nil
}

func (m *mongoRepository) GetRoleAssignments(ctx context.Context, guildId string) ([]*model.RoleAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.assignmentCollection.Find(ctx, bson.M{"guildId": guildId})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.RoleAssignment
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.RoleAssignment, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) SetRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.assignmentCollection.UpdateOne(ctx,
		bson.M{"guildId": assignment.GuildId, "roleId": assignment.RoleId},
		bson.M{"$set": bson.M{"level": assignment.Level}},
		options.Update().SetUpsert(true))

	return err
}

func (m *mongoRepository) RemoveRoleAssignment(ctx context.Context, guildId string, roleId string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.assignmentCollection.DeleteOne(ctx, bson.M{"guildId": guildId, "roleId": roleId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return AssignmentNotFoundError
	}

	return nil
}

func (m *mongoRepository) GetCommandPermissions(ctx context.Context, guildId string) ([]*model.CommandPermission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.commandCollection.Find(ctx, bson.M{"guildId": guildId})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.CommandPermission
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.CommandPermission, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) SetCommandPermission(ctx context.Context, permission *model.CommandPermission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.commandCollection.UpdateOne(ctx,
		bson.M{"guildId": permission.GuildId, "command": permission.Command},
		bson.M{"$set": bson.M{"requiredLevel": permission.RequiredLevel}},
		options.Update().SetUpsert(true))

	return err
}

func (m *mongoRepository) RemoveCommandPermission(ctx context.Context, guildId string, command string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.commandCollection.DeleteOne(ctx, bson.M{"guildId": guildId, "command": command})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return CommandPermissionNotFoundError
	}

	return nil
}

// CreateCase runs in a transaction so concurrent creations in the same guild
// serialise on the guild counter document and case numbers come out dense.
func (m *mongoRepository) CreateCase(ctx context.Context, c *model.Case) (*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	session, err := m.database.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var guild model.Guild
		err := m.guildCollection.FindOneAndUpdate(sessCtx,
			bson.M{"_id": c.GuildId},
			bson.M{"$inc": bson.M{"caseSequence": 1}},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&guild)
		if err != nil {
			return nil, err
		}

		created := *c
		created.Id = uuid.New()
		created.CaseNumber = guild.CaseSequence
		if created.CreatedAt.IsZero() {
			// mongo stores datetimes at millisecond precision
			created.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		}

		if _, err := m.caseCollection.InsertOne(sessCtx, &created); err != nil {
			return nil, err
		}

		return &created, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.Case), nil
}

func (m *mongoRepository) GetCase(ctx context.Context, guildId string, caseNumber int64) (*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.Case
	err := m.caseCollection.FindOne(ctx, bson.M{"guildId": guildId, "caseNumber": caseNumber}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, CaseNotFoundError
		}
		return nil, err
	}

	return &result, nil
}

func (m *mongoRepository) GetCasesByTarget(ctx context.Context, guildId string, targetId string) ([]*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.caseCollection.Find(ctx, bson.M{"guildId": guildId, "targetId": targetId},
		options.Find().SetSort(bson.D{{Key: "caseNumber", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Case
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.Case, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) GetCasesByModerator(ctx context.Context, guildId string, moderatorId string) ([]*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.caseCollection.Find(ctx, bson.M{"guildId": guildId, "moderatorId": moderatorId},
		options.Find().SetSort(bson.D{{Key: "caseNumber", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Case
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.Case, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) SearchCases(ctx context.Context, guildId string, filter CaseFilter) ([]*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"guildId": guildId}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.TargetId != nil {
		query["targetId"] = *filter.TargetId
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	cursor, err := m.caseCollection.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "caseNumber", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Case
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.Case, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) GetActiveCase(ctx context.Context, guildId string, targetId string, caseType model.CaseType) (*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.Case
	err := m.caseCollection.FindOne(ctx,
		bson.M{"guildId": guildId, "targetId": targetId, "type": caseType, "active": true},
		options.FindOne().SetSort(bson.D{{Key: "caseNumber", Value: -1}}),
	).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, CaseNotFoundError
		}
		return nil, err
	}

	return &result, nil
}

func (m *mongoRepository) GetExpiredCases(ctx context.Context, now time.Time) ([]*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.caseCollection.Find(ctx, bson.M{
		"active":    true,
		"expiresAt": bson.M{"$lte": now},
	})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Case
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.Case, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

func (m *mongoRepository) AmendCase(ctx context.Context, guildId string, caseNumber int64, amendment model.CaseAmendment) (*model.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if amendment.Reason != nil {
		set["reason"] = *amendment.Reason
	}
	if amendment.Active != nil {
		set["active"] = *amendment.Active
	}
	if len(set) == 0 {
		return m.GetCase(ctx, guildId, caseNumber)
	}

	var result model.Case
	err := m.caseCollection.FindOneAndUpdate(ctx,
		bson.M{"guildId": guildId, "caseNumber": caseNumber},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, CaseNotFoundError
		}
		return nil, err
	}

	return &result, nil
}

func (m *mongoRepository) SetCaseAuditMessage(ctx context.Context, guildId string, caseNumber int64, messageId string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.caseCollection.UpdateOne(ctx,
		bson.M{"guildId": guildId, "caseNumber": caseNumber},
		bson.M{"$set": bson.M{"auditMessageId": messageId}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return CaseNotFoundError
	}

	return nil
}

func createCodecRegistry() *bsoncodec.Registry {
	return bson.NewRegistryBuilder().
		RegisterTypeEncoder(registrytypes.UUIDType, bsoncodec.ValueEncoderFunc(registrytypes.UuidEncodeValue)).
		RegisterTypeDecoder(registrytypes.UUIDType, bsoncodec.ValueDecoderFunc(registrytypes.UuidDecodeValue)).
		Build()
}
