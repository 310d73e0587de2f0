package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docinblink/api/internal/domain"
)

// PrescriptionRepo provides typed DynamoDB operations for the prescriptions table.
type PrescriptionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPrescriptionRepo(client *dynamodb.Client, tableName string) *PrescriptionRepo {
	return &PrescriptionRepo{client: client, tableName: tableName}
}

func (r *PrescriptionRepo) Put(ctx context.Context, p *domain.Prescription) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal prescription: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PrescriptionRepo) ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return r.queryGSI(ctx, "patient_id-index", "patient_id", patientID)
}

func (r *PrescriptionRepo) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	return r.queryGSI(ctx, "doctor_id-index", "doctor_id", doctorID)
}

func (r *PrescriptionRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.Prescription, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var prescriptions []domain.Prescription
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}
