package store

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/pkg/errors"
)

/**
Every table in this app uses the same shape:
| id | ...attributes |
id is the partition key; all other attributes are free-form document fields.
The bookings table additionally has a NEW_IMAGE stream feeding the notify
function.
*/

// API is the slice of the DynamoDB client the store needs.
type API interface {
	GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error)
	UpdateItemWithContext(ctx aws.Context, in *dynamodb.UpdateItemInput, opts ...request.Option) (*dynamodb.UpdateItemOutput, error)
	CreateTableWithContext(ctx aws.Context, in *dynamodb.CreateTableInput, opts ...request.Option) (*dynamodb.CreateTableOutput, error)
}

// Document is a loosely typed row image. The zero value behaves like a
// missing document: every field access reports absent.
type Document map[string]interface{}

// Field returns the named attribute as a string. ok is false when the
// document is missing, the attribute is missing or not a string, or the
// string is empty — callers branch on ok and never see a partial value.
func (d Document) Field(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	raw, exists := d[name]
	if !exists {
		return "", false
	}
	s, isString := raw.(string)
	if !isString || s == "" {
		return "", false
	}
	return s, true
}

// Store reads and writes single-key documents in DynamoDB.
type Store struct {
	db API
}

func New(db API) *Store {
	return &Store{db: db}
}

// NewClient builds the process-wide DynamoDB client. endpoint overrides the
// AWS endpoint for local stacks; empty means the real service.
func NewClient(region, endpoint string) *dynamodb.DynamoDB {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint)
	}
	return dynamodb.New(sess, cfg)
}

// GetDocument fetches one document by id. A missing item is not an error:
// it returns a nil Document, which reports every field as absent.
func (s *Store) GetDocument(ctx context.Context, tablename, id string) (Document, error) {
	key, err := dynamodbattribute.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, errors.Wrap(err, "marshal key")
	}
	res, err := s.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(tablename),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s[%s]", tablename, id)
	}
	if len(res.Item) == 0 {
		return nil, nil
	}
	doc := Document{}
	if err := dynamodbattribute.UnmarshalMap(res.Item, &doc); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s[%s]", tablename, id)
	}
	return doc, nil
}

// PutDocument creates a document only if the id is not taken. Returns false
// when a document with that id already exists.
func (s *Store) PutDocument(ctx context.Context, tablename, id string, fields Document) (bool, error) {
	key, err := dynamodbattribute.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return false, errors.Wrap(err, "marshal key")
	}
	updateBuilder := expression.UpdateBuilder{}
	for k, v := range fields {
		updateBuilder = updateBuilder.Set(expression.Name(k), expression.Value(v))
	}
	condBuilder := expression.AttributeNotExists(expression.Name("id"))
	builder := expression.NewBuilder().WithCondition(condBuilder)
	if len(fields) != 0 {
		builder = builder.WithUpdate(updateBuilder)
	}
	expr, err := builder.Build()
	if err != nil {
		return false, errors.Wrap(err, "build expression")
	}
	_, err = s.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tablename),
		Key:                       key,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
	})
	if err == nil {
		return true, nil
	}
	if isConditionFailure(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "put %s[%s]", tablename, id)
}

// CreateTable provisions a single-key on-demand table. withStream enables a
// NEW_IMAGE stream so inserts can trigger the notify function. An existing
// table is treated as success.
func (s *Store) CreateTable(ctx context.Context, tablename string, withStream bool) error {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(tablename),
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: aws.String(dynamodb.KeyTypeHash)},
		},
	}
	if withStream {
		in.StreamSpecification = &dynamodb.StreamSpecification{
			StreamEnabled:  aws.Bool(true),
			StreamViewType: aws.String(dynamodb.StreamViewTypeNewImage),
		}
	}
	_, err := s.db.CreateTableWithContext(ctx, in)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
			return nil
		}
		return errors.Wrapf(err, "create table %s", tablename)
	}
	return nil
}

func isConditionFailure(err error) bool {
	aerr, ok := err.(awserr.Error)
	return ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}
