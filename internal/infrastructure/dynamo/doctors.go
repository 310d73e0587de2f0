package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docinblink/api/internal/domain"
)

// DoctorRepo provides typed DynamoDB operations for the doctors table.
type DoctorRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDoctorRepo(client *dynamodb.Client, tableName string) *DoctorRepo {
	return &DoctorRepo{client: client, tableName: tableName}
}

func (r *DoctorRepo) Put(ctx context.Context, d *domain.Doctor) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal doctor: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DoctorRepo) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("doctor_id", doctorID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("doctor not found: %w", domain.ErrNotFound)
	}
	var d domain.Doctor
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByUserID resolves the doctor profile belonging to an authenticated user.
func (r *DoctorRepo) GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("doctor not found: %w", domain.ErrNotFound)
	}
	var d domain.Doctor
	if err := attributevalue.UnmarshalMap(out.Items[0], &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Scan returns all enabled doctor profiles (the public directory).
func (r *DoctorRepo) Scan(ctx context.Context) ([]domain.Doctor, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("enable = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return nil, err
	}
	var doctors []domain.Doctor
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, doctorID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("doctor_id", doctorID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
