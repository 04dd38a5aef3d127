package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/models"
)

// Store implements the RunStore interface using DynamoDB. Runs for a
// society share a partition and sort newest-last by start time.
type Store struct {
	client    *dynamodb.Client
	tableName string
}

// NewStore creates a new DynamoDB-backed RunStore.
func NewStore(ctx context.Context, cfg config.DynamoDBConfig) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.Endpoint != "" {
		// Local development: use static credentials and custom endpoint.
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Store{
		client:    dynamodb.NewFromConfig(awsCfg, clientOpts...),
		tableName: cfg.TableName,
	}, nil
}

// SaveRun stores the record of a completed sync run.
func (s *Store) SaveRun(ctx context.Context, record models.SyncRunRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling run record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("saving run record: %w", err)
	}

	return nil
}

// GetLatestRun returns the most recent run for a society, or nil when
// the society has no recorded runs.
func (s *Store) GetLatestRun(ctx context.Context, society string) (*models.SyncRunRecord, error) {
	runs, err := s.ListRuns(ctx, society, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ListRuns returns up to limit recent runs for a society, newest first.
func (s *Store) ListRuns(ctx context.Context, society string, limit int) ([]models.SyncRunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :run)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  &types.AttributeValueMemberS{Value: "SOCIETY#" + society},
			":run": &types.AttributeValueMemberS{Value: "RUN#"},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []models.SyncRunRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &runs); err != nil {
		return nil, fmt.Errorf("unmarshaling runs: %w", err)
	}

	return runs, nil
}
