package dal

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/models"
	"sort"
	"time"

	"homeserve-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const (
	// BatchGetItem accepts at most 100 keys per request
	batchGetChunkSize = 100

	maxUnprocessedAttempts = 5
	unprocessedBackoff     = 50 * time.Millisecond
)

type DynamoDBClient struct {
	client dynamoAPI
	config *models.Config
	logger logger.Logger
}

// DALContainer holds the database client shared by repositories
type DALContainer struct {
	databaseClient DatabaseClientInterface
}

// NewDALContainer builds the DynamoDB client from config
func NewDALContainer(cfg *models.Config, log logger.Logger) (*DALContainer, error) {
	client, err := NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return &DALContainer{databaseClient: client}, nil
}

// GetDatabaseClient returns the database client
func (d *DALContainer) GetDatabaseClient() DatabaseClientInterface {
	return d.databaseClient
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"", // session token
		))
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// Override endpoint for local DynamoDB
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	log.Info("✅ DynamoDB client initialized successfully")
	return &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

// IsNotFoundError reports whether err is a DynamoDB ResourceNotFoundException
func IsNotFoundError(err error) bool {
	return hasErrorCode(err, "ResourceNotFoundException")
}

// IsConditionFailed reports whether a conditional write was rejected
func IsConditionFailed(err error) bool {
	return hasErrorCode(err, "ConditionalCheckFailedException")
}

// IsResourceInUse reports whether a table is already being created or exists
func IsResourceInUse(err error) bool {
	return hasErrorCode(err, "ResourceInUseException")
}

func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == code
	}
	return false
}

func keyAttribute(value string, keyType models.AttributeType) types.AttributeValue {
	if keyType == models.NumberType {
		return &types.AttributeValueMemberN{Value: value}
	}
	return &types.AttributeValueMemberS{Value: value}
}

// GetItem retrieves a single item either by primary key or, when
// config.IndexName is set, the first match on a global secondary index.
// A missing item yields an error wrapping models.ErrNotFound.
func (db *DynamoDBClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	if cfg.IndexName != "" {
		output, err := db.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(cfg.TableName),
			IndexName:              aws.String(cfg.IndexName),
			Limit:                  aws.Int32(1),
			KeyConditionExpression: aws.String("#kn0 = :kv0"),
			ExpressionAttributeNames: map[string]string{
				"#kn0": cfg.KeyName,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":kv0": keyAttribute(cfg.KeyValue, cfg.KeyType),
			},
		})
		if err != nil {
			db.logger.Errorf("Failed to query %s.%s: %v", cfg.TableName, cfg.IndexName, err)
			return fmt.Errorf("failed to query %s: %w", cfg.TableName, err)
		}
		if len(output.Items) == 0 {
			return fmt.Errorf("%s %s=%s: %w", cfg.TableName, cfg.KeyName, cfg.KeyValue, models.ErrNotFound)
		}
		return attributevalue.UnmarshalMap(output.Items[0], result)
	}

	output, err := db.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(cfg.TableName),
		Key: map[string]types.AttributeValue{
			cfg.KeyName: keyAttribute(cfg.KeyValue, cfg.KeyType),
		},
	})
	if err != nil {
		db.logger.Errorf("Failed to get item: %v", err)
		return fmt.Errorf("failed to get item from %s: %w", cfg.TableName, err)
	}

	if output.Item == nil {
		return fmt.Errorf("%s %s=%s: %w", cfg.TableName, cfg.KeyName, cfg.KeyValue, models.ErrNotFound)
	}

	return attributevalue.UnmarshalMap(output.Item, result)
}

// PutItem stores an item in DynamoDB
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item into %s: %w", tableName, err)
	}
	return nil
}

// PutItemWithCondition stores an item only when cond holds. A failed
// condition is returned wrapped so IsConditionFailed still matches it.
func (db *DynamoDBClient) PutItemWithCondition(ctx context.Context, tableName string, item interface{}, cond models.WriteCondition) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	var values map[string]types.AttributeValue
	if len(cond.Values) > 0 {
		values = make(map[string]types.AttributeValue, len(cond.Values))
		for placeholder, v := range cond.Values {
			values[placeholder], err = attributevalue.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal condition value %s: %w", placeholder, err)
			}
		}
	}

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(tableName),
		Item:                      av,
		ConditionExpression:       aws.String(cond.Expression),
		ExpressionAttributeNames:  cond.Names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("conditional put into %s: %w", tableName, err)
	}
	return nil
}

// buildUpdateExpression renders a SET expression with fields in sorted order
func buildUpdateExpression(updates map[string]interface{}) (string, map[string]string, map[string]types.AttributeValue, error) {
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	updateExpression := "SET "
	names := make(map[string]string, len(fields))
	values := make(map[string]types.AttributeValue, len(fields))

	for i, field := range fields {
		if i > 0 {
			updateExpression += ", "
		}

		attrName := "#" + field
		attrValue := ":" + field

		updateExpression += attrName + " = " + attrValue
		names[attrName] = field

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		values[attrValue] = av
	}

	return updateExpression, names, values, nil
}

// UpdateItem sets the given attributes on an existing item. Updating a
// missing item fails with models.ErrNotFound. When result is non-nil it
// receives the item as stored after the update.
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}, result interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no attributes to update on %s", tableName)
	}

	updateExpression, names, values, err := buildUpdateExpression(updates)
	if err != nil {
		return err
	}
	names["#pk"] = key

	output, err := db.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:          aws.String(updateExpression),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if IsConditionFailed(err) {
			return fmt.Errorf("%s %s=%s: %w", tableName, key, keyValue, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update item in %s: %w", tableName, err)
	}

	if result != nil {
		return attributevalue.UnmarshalMap(output.Attributes, result)
	}
	return nil
}

// DeleteItem deletes an item from DynamoDB
func (db *DynamoDBClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	_, err := db.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from %s: %w", tableName, err)
	}
	return nil
}

// QueryByIndex returns every item matching the key on a global secondary
// index, following LastEvaluatedKey until the result set is exhausted.
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, query models.IndexQuery, results interface{}) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(query.TableName),
		IndexName:              aws.String(query.IndexName),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": query.KeyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: query.KeyValue},
		},
		ScanIndexForward: aws.Bool(query.ScanForward),
	}

	var items []map[string]types.AttributeValue
	pages := 0
	for {
		output, err := db.client.Query(ctx, input)
		if err != nil {
			db.logger.Errorf("Failed to query %s.%s: %v", query.TableName, query.IndexName, err)
			return fmt.Errorf("failed to query %s: %w", query.TableName, err)
		}
		items = append(items, output.Items...)
		pages++

		if len(output.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	db.logger.Debugf("Query %s.%s returned %d items in %d pages", query.TableName, query.IndexName, len(items), pages)
	return attributevalue.UnmarshalListOfMaps(items, results)
}

// BatchGetItems reads the items whose keyName is one of keyValues. Empty and
// duplicate keys are skipped. The order of results is unspecified.
func (db *DynamoDBClient) BatchGetItems(ctx context.Context, tableName, keyName string, keyValues []string, results interface{}) error {
	seen := make(map[string]bool, len(keyValues))
	keys := make([]map[string]types.AttributeValue, 0, len(keyValues))
	for _, v := range keyValues {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		keys = append(keys, map[string]types.AttributeValue{
			keyName: &types.AttributeValueMemberS{Value: v},
		})
	}

	var items []map[string]types.AttributeValue
	for start := 0; start < len(keys); start += batchGetChunkSize {
		end := start + batchGetChunkSize
		if end > len(keys) {
			end = len(keys)
		}

		chunk, err := db.batchGetChunk(ctx, tableName, keys[start:end])
		if err != nil {
			return err
		}
		items = append(items, chunk...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

func (db *DynamoDBClient) batchGetChunk(ctx context.Context, tableName string, keys []map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	request := map[string]types.KeysAndAttributes{
		tableName: {Keys: keys},
	}

	var items []map[string]types.AttributeValue
	for attempt := 1; ; attempt++ {
		output, err := db.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			db.logger.Errorf("Failed to batch get from %s: %v", tableName, err)
			return nil, fmt.Errorf("failed to batch get from %s: %w", tableName, err)
		}
		items = append(items, output.Responses[tableName]...)

		pending, ok := output.UnprocessedKeys[tableName]
		if !ok || len(pending.Keys) == 0 {
			return items, nil
		}
		if attempt >= maxUnprocessedAttempts {
			return nil, fmt.Errorf("batch get from %s left %d keys unprocessed", tableName, len(pending.Keys))
		}

		db.logger.Warnf("Batch get from %s: %d unprocessed keys, retrying", tableName, len(pending.Keys))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * unprocessedBackoff):
		}
		request = map[string]types.KeysAndAttributes{tableName: pending}
	}
}

// Scan reads the entire table, page by page
func (db *DynamoDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	input := &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	}

	var items []map[string]types.AttributeValue
	for {
		output, err := db.client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", tableName, err)
		}
		items = append(items, output.Items...)

		if len(output.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	return db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
}

// TableExists reports whether tableName exists
func (db *DynamoDBClient) TableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := db.DescribeTable(ctx, tableName)
	if err == nil {
		return true, nil
	}
	if IsNotFoundError(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to describe %s: %w", tableName, err)
}
