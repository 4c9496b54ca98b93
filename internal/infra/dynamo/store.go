package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

var ErrDuplicateID = errors.New("mcq id already exists")

// API is the subset of the DynamoDB client used by Store.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// ClientConfig holds connection settings for NewClient.
type ClientConfig struct {
	Region   string
	Endpoint string // optional, e.g. http://localhost:8000 for DynamoDB Local
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
func NewClient(ctx context.Context, cfg ClientConfig) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Store keeps questions as documents in a DynamoDB table keyed by "id".
type Store struct {
	client API
	table  string
}

func NewStore(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// Create writes a single document. The condition guards against overwriting
// an existing question on an ID collision.
func (s *Store) Create(ctx context.Context, mcq *entities.MCQ) (string, error) {
	rec := *mcq
	rec.ID = uuid.NewString()
	if rec.Tags == nil {
		rec.Tags = []string{}
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mcq: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *dbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return "", ErrDuplicateID
		}
		return "", fmt.Errorf("failed to put mcq: %w", err)
	}

	return rec.ID, nil
}

// CreateMany writes documents one by one. DynamoDB writes are atomic per
// document only, so a failure leaves earlier documents in place.
func (s *Store) CreateMany(ctx context.Context, mcqs []*entities.MCQ) ([]string, error) {
	ids := make([]string, 0, len(mcqs))
	for i, m := range mcqs {
		id, err := s.Create(ctx, m)
		if err != nil {
			return ids, fmt.Errorf("mcq %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// List scans the whole table, oldest first.
func (s *Store) List(ctx context.Context) ([]entities.MCQ, error) {
	return s.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(s.table)})
}

// Query pushes the equality parts of spec into a scan FilterExpression.
// Subject and tag matching stay in-process since they are case-insensitive.
func (s *Store) Query(ctx context.Context, spec entities.FilterSpec) ([]entities.MCQ, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}

	expr, names, values := BuildFilterExpression(spec)
	if expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	return s.scan(ctx, input)
}

// Recent returns up to limit questions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]entities.MCQ, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) scan(ctx context.Context, input *dynamodb.ScanInput) ([]entities.MCQ, error) {
	var out []entities.MCQ

	p := dynamodb.NewScanPaginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mcqs: %w", err)
		}

		var batch []entities.MCQ
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mcqs: %w", err)
		}
		out = append(out, batch...)
	}

	// Scan order is by partition hash; present records in creation order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// BuildFilterExpression returns a scan filter for the equality fields of spec.
// It returns an empty expression when nothing can be pushed down.
func BuildFilterExpression(spec entities.FilterSpec) (string, map[string]string, map[string]dbtypes.AttributeValue) {
	spec = spec.Normalize()

	var conds []string
	names := map[string]string{}
	values := map[string]dbtypes.AttributeValue{}

	if spec.Difficulty != nil {
		conds = append(conds, "#difficulty = :difficulty")
		names["#difficulty"] = "difficulty"
		values[":difficulty"] = &dbtypes.AttributeValueMemberS{Value: string(*spec.Difficulty)}
	}
	if spec.QuestionType != nil {
		conds = append(conds, "#question_type = :question_type")
		names["#question_type"] = "question_type"
		values[":question_type"] = &dbtypes.AttributeValueMemberS{Value: string(*spec.QuestionType)}
	}
	if spec.YearApplies() {
		// "year" is a DynamoDB reserved word, hence the name placeholder.
		conds = append(conds, "#year = :year")
		names["#year"] = "year"
		values[":year"] = &dbtypes.AttributeValueMemberN{Value: strconv.Itoa(*spec.Year)}
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return strings.Join(conds, " AND "), names, values
}
