package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accommodations/internal/accommodation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrRecordMissing is returned by DeleteByID when no item has the key.
var ErrRecordMissing = errors.New("accommodation record does not exist")

// AccommodationStore reads and deletes accommodation items keyed by ID.
type AccommodationStore struct {
	ddb   DDBClient
	table string
}

var _ accommodation.RecordStore = (*AccommodationStore)(nil)

func NewAccommodationStore(ddb DDBClient, table string) *AccommodationStore {
	return &AccommodationStore{ddb: ddb, table: strings.TrimSpace(table)}
}

func (s *AccommodationStore) key(id accommodation.ID) (map[string]types.AttributeValue, error) {
	if s.table == "" {
		return nil, fmt.Errorf("ACCOMMODATION_TABLE not set")
	}
	if id.IsZero() {
		return nil, fmt.Errorf("missing accommodation id")
	}
	av, err := attributevalue.Marshal(id)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"ID": av}, nil
}

func (s *AccommodationStore) FetchByID(ctx context.Context, id accommodation.ID) (*accommodation.Record, bool, error) {
	key, err := s.key(id)
	if err != nil {
		return nil, false, err
	}

	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("dynamodb GetItem %s: %w", s.table, err)
	}
	if out.Item == nil || len(out.Item) == 0 {
		return nil, false, nil
	}

	var rec accommodation.Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal accommodation: %w", err)
	}
	return &rec, true, nil
}

func (s *AccommodationStore) DeleteByID(ctx context.Context, id accommodation.ID) error {
	key, err := s.key(id)
	if err != nil {
		return err
	}

	_, err = s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(ID)"),
	})
	if err != nil {
		// Conditional check failed => already deleted
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("delete accommodation %s: %w", id, ErrRecordMissing)
		}
		return err
	}
	return nil
}
