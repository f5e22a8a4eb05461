package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/folio/backend/internal/model"
	"github.com/google/uuid"
)

// DynamoAPI is the subset of the DynamoDB client used by the store.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewDynamoClient loads the default AWS configuration for region. A non-empty
// endpoint points the client at e.g. DynamoDB Local.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// DynamoContactRepository stores one item per document, keyed by "id".
// Scan order is not defined by DynamoDB.
type DynamoContactRepository struct {
	api   DynamoAPI
	table string
}

// NewDynamoContactRepository uses table through api.
func NewDynamoContactRepository(api DynamoAPI, table string) *DynamoContactRepository {
	return &DynamoContactRepository{api: api, table: table}
}

var _ ContactRepository = (*DynamoContactRepository)(nil)

type dynamoContactItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Subject   string `dynamodbav:"subject"`
	Message   string `dynamodbav:"message"`
	CreatedAt string `dynamodbav:"created_at"`
	Status    string `dynamodbav:"status"`
}

func (it dynamoContactItem) document() *model.ContactDocument {
	return &model.ContactDocument{
		Name:      it.Name,
		Email:     it.Email,
		Subject:   it.Subject,
		Message:   it.Message,
		CreatedAt: it.CreatedAt,
		Status:    it.Status,
	}
}

// Insert puts the item with a fresh uuid, refusing to overwrite an existing id.
func (r *DynamoContactRepository) Insert(ctx context.Context, doc *model.ContactDocument) (string, error) {
	item := dynamoContactItem{
		ID:        uuid.NewString(),
		Name:      doc.Name,
		Email:     doc.Email,
		Subject:   doc.Subject,
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt,
		Status:    doc.Status,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return "", fmt.Errorf("marshaling contact item: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", fmt.Errorf("putting contact item: %w", err)
	}
	return item.ID, nil
}

// FindAll scans the whole table page by page.
func (r *DynamoContactRepository) FindAll(ctx context.Context) ([]*model.ContactDocument, error) {
	p := dynamodb.NewScanPaginator(r.api, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})

	docs := []*model.ContactDocument{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning contacts: %w", err)
		}
		var items []dynamoContactItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshaling contact items: %w", err)
		}
		for _, it := range items {
			docs = append(docs, it.document())
		}
	}
	return docs, nil
}

// Ping describes the table, which fails when the service or table is missing.
func (r *DynamoContactRepository) Ping(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.table),
	})
	return err
}
