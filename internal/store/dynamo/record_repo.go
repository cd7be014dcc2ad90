package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

// TableApplicantRecords holds the single intake session's record.
const TableApplicantRecords = "applicant_records"

// recordKey is the fixed item key; the wizard has one session at a time.
const recordKey = "current"

// RecordItem stores the record as a JSON document attribute plus the save
// timestamp. A single key holding the serialized record mirrors how the
// wizard persisted locally before it had a backend.
type RecordItem struct {
	ID      string `dynamodbav:"id"`
	Data    string `dynamodbav:"data"`
	SavedAt string `dynamodbav:"saved_at"`
}

type RecordRepo struct {
	client *dynamodb.Client
}

func NewRecordRepo(client *dynamodb.Client) *RecordRepo {
	return &RecordRepo{client: client}
}

func (r *RecordRepo) Load(ctx context.Context) (core.ApplicantRecord, time.Time, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableApplicantRecords),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: recordKey},
		},
	})
	if err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("applicant_records.getItem: %w", err)
	}
	if out.Item == nil {
		return core.ApplicantRecord{}, time.Time{}, core.ErrNotFound
	}

	var item RecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("applicant_records.unmarshal: %w", err)
	}

	var rec core.ApplicantRecord
	if err := json.Unmarshal([]byte(item.Data), &rec); err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("%w: %v", core.ErrCorruptData, err)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, item.SavedAt)
	if err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("%w: bad saved_at %q", core.ErrCorruptData, item.SavedAt)
	}

	return rec, savedAt, nil
}

func (r *RecordRepo) Save(ctx context.Context, rec core.ApplicantRecord, savedAt time.Time) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("applicant_records.marshal: %w", err)
	}

	av, err := attributevalue.MarshalMap(RecordItem{
		ID:      recordKey,
		Data:    string(data),
		SavedAt: savedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("applicant_records.marshalItem: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(TableApplicantRecords),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("applicant_records.putItem: %w", err)
	}
	return nil
}

func (r *RecordRepo) Clear(ctx context.Context) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(TableApplicantRecords),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: recordKey},
		},
	})
	if err != nil {
		return fmt.Errorf("applicant_records.deleteItem: %w", err)
	}
	return nil
}

func (r *RecordRepo) Ping(ctx context.Context) error {
	_, err := r.client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	return err
}
