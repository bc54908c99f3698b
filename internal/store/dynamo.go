// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"inkpress/internal/models"
)

// Sparse secondary indexes over the blog table. Both use published_at as
// the range key, so only posts that have been published at least once
// appear in either.
const (
	statusIndex   = "status-publishedAt-index"
	categoryIndex = "category-publishedAt-index"
)

// dynamoTimeFormat renders UTC timestamps at fixed width so that string
// comparison on the index range keys matches chronological order.
const dynamoTimeFormat = "2006-01-02T15:04:05.000000Z"

// DynamoStore implements Store on a single DynamoDB table.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore wraps an existing DynamoDB client.
func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// NewDynamoClient builds a DynamoDB client from the ambient AWS config.
// A non-empty endpoint overrides the resolved one, which points local
// development at DynamoDB Local.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if endpoint != "" {
		// DynamoDB Local ignores credentials, but the SDK still needs
		// something to sign with.
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// dynamoPost is the attribute layout of a post item.
type dynamoPost struct {
	PK              string  `dynamodbav:"pk"`
	SK              string  `dynamodbav:"sk"`
	ID              string  `dynamodbav:"id"`
	Title           string  `dynamodbav:"title"`
	Slug            string  `dynamodbav:"slug"`
	Excerpt         string  `dynamodbav:"excerpt"`
	Category        *string `dynamodbav:"category,omitempty"`
	Status          string  `dynamodbav:"status"`
	ContentRaw      string  `dynamodbav:"content_raw"`
	ContentRendered string  `dynamodbav:"content_rendered"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
	PublishedAt     *string `dynamodbav:"published_at,omitempty"`
}

// dynamoCategory is the attribute layout of a category item.
type dynamoCategory struct {
	PK          string  `dynamodbav:"pk"`
	SK          string  `dynamodbav:"sk"`
	Name        string  `dynamodbav:"name"`
	Description *string `dynamodbav:"description,omitempty"`
	PostCount   int     `dynamodbav:"post_count"`
}

func formatDynamoTime(t time.Time) string {
	return t.UTC().Format(dynamoTimeFormat)
}

func toDynamoPost(p *models.Post) dynamoPost {
	d := dynamoPost{
		PK:              PostKey(p.ID),
		SK:              MetadataSK,
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         p.Excerpt,
		Category:        p.Category,
		Status:          string(p.Status),
		ContentRaw:      p.ContentRaw,
		ContentRendered: p.ContentRendered,
		CreatedAt:       formatDynamoTime(p.CreatedAt),
		UpdatedAt:       formatDynamoTime(p.UpdatedAt),
	}
	if p.PublishedAt != nil {
		ts := formatDynamoTime(*p.PublishedAt)
		d.PublishedAt = &ts
	}
	return d
}

func (d dynamoPost) toModel() (*models.Post, error) {
	createdAt, err := time.Parse(dynamoTimeFormat, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(dynamoTimeFormat, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	p := &models.Post{
		ID:              d.ID,
		Title:           d.Title,
		Slug:            d.Slug,
		Excerpt:         d.Excerpt,
		Category:        d.Category,
		Status:          models.PostStatus(d.Status),
		ContentRaw:      d.ContentRaw,
		ContentRendered: d.ContentRendered,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	if d.PublishedAt != nil {
		t, err := time.Parse(dynamoTimeFormat, *d.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse published_at: %w", err)
		}
		p.PublishedAt = &t
	}
	return p, nil
}

func (s *DynamoStore) PutPost(ctx context.Context, p *models.Post) error {
	item, err := attributevalue.MarshalMap(toDynamoPost(p))
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put post: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(PostKey(id)),
	})
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var d dynamoPost
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, fmt.Errorf("unmarshal post: %w", err)
	}
	return d.toModel()
}

func (s *DynamoStore) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(PostKey(id)),
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *DynamoStore) QueryByStatus(ctx context.Context, status models.PostStatus, limit int, newestFirst bool) ([]models.Post, error) {
	keyCond := expression.Key("status").Equal(expression.Value(string(status)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	return s.queryPosts(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(statusIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!newestFirst),
	}, limit)
}

func (s *DynamoStore) QueryByCategory(ctx context.Context, category string, limit int, newestFirst bool, statusFilter models.PostStatus) ([]models.Post, error) {
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key("category").Equal(expression.Value(category)))
	if statusFilter != "" {
		builder = builder.WithFilter(
			expression.Name("status").Equal(expression.Value(string(statusFilter))))
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	return s.queryPosts(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(categoryIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!newestFirst),
	}, limit)
}

// queryPosts drains a query page by page. DynamoDB applies Limit before
// filter expressions, so a single page can come back short; the loop keeps
// following LastEvaluatedKey until enough items matched or the index is
// exhausted.
func (s *DynamoStore) queryPosts(ctx context.Context, input *dynamodb.QueryInput, limit int) ([]models.Post, error) {
	var posts []models.Post
	for {
		if limit > 0 {
			input.Limit = aws.Int32(int32(limit - len(posts)))
		}
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query posts: %w", err)
		}
		batch, err := unmarshalPosts(out.Items)
		if err != nil {
			return nil, err
		}
		posts = append(posts, batch...)

		if limit > 0 && len(posts) >= limit {
			return posts[:limit], nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return posts, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *DynamoStore) ScanPosts(ctx context.Context, limit int) ([]models.Post, error) {
	filter := expression.Name("sk").Equal(expression.Value(MetadataSK)).
		And(expression.Name("pk").BeginsWith(postKeyPrefix))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build post scan: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var posts []models.Post
	for {
		if limit > 0 {
			input.Limit = aws.Int32(int32(limit - len(posts)))
		}
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan posts: %w", err)
		}
		batch, err := unmarshalPosts(out.Items)
		if err != nil {
			return nil, err
		}
		posts = append(posts, batch...)

		if limit > 0 && len(posts) >= limit {
			return posts[:limit], nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return posts, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *DynamoStore) PutCategory(ctx context.Context, c *models.Category) error {
	item, err := attributevalue.MarshalMap(dynamoCategory{
		PK:          CategoryKey(c.Name),
		SK:          MetadataSK,
		Name:        c.Name,
		Description: c.Description,
		PostCount:   c.PostCount,
	})
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put category: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetCategory(ctx context.Context, name string) (*models.Category, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(CategoryKey(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var d dynamoCategory
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, fmt.Errorf("unmarshal category: %w", err)
	}
	return &models.Category{Name: d.Name, Description: d.Description, PostCount: d.PostCount}, nil
}

func (s *DynamoStore) DeleteCategory(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(CategoryKey(name)),
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *DynamoStore) ScanCategories(ctx context.Context) ([]models.Category, error) {
	filter := expression.Name("sk").Equal(expression.Value(MetadataSK)).
		And(expression.Name("pk").BeginsWith(categoryKeyPrefix))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build category scan: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var cats []models.Category
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan categories: %w", err)
		}
		for _, item := range out.Items {
			var d dynamoCategory
			if err := attributevalue.UnmarshalMap(item, &d); err != nil {
				return nil, fmt.Errorf("unmarshal category item: %w", err)
			}
			cats = append(cats, models.Category{Name: d.Name, Description: d.Description, PostCount: d.PostCount})
		}
		if len(out.LastEvaluatedKey) == 0 {
			return cats, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// EnsureTable creates the blog table and its two sparse indexes when they
// do not exist yet. Intended for local development and tests; deployed
// environments provision the table out of band.
func (s *DynamoStore) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table: %w", err)
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("status"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("category"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("published_at"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(statusIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("status"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("published_at"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
			{
				IndexName: aws.String(categoryIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("category"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("published_at"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, 2*time.Minute); err != nil {
		return fmt.Errorf("wait for table: %w", err)
	}
	return nil
}

func itemKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: MetadataSK},
	}
}

func unmarshalPosts(items []map[string]types.AttributeValue) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(items))
	for _, item := range items {
		var d dynamoPost
		if err := attributevalue.UnmarshalMap(item, &d); err != nil {
			return nil, fmt.Errorf("unmarshal post item: %w", err)
		}
		p, err := d.toModel()
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}
