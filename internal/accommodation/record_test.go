package accommodation_test

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accommodations/internal/accommodation"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    accommodation.ID
		wantErr bool
	}{
		{name: "number", body: `{"id":1}`, want: accommodation.NumericID("1")},
		{name: "string", body: `{"id":"abc-1"}`, want: accommodation.StringID("abc-1")},
		{name: "numeric string stays a string", body: `{"id":"1"}`, want: accommodation.StringID("1")},
		{name: "null", body: `{"id":null}`, want: accommodation.ID{}},
		{name: "missing", body: `{}`, want: accommodation.ID{}},
		{name: "object", body: `{"id":{"x":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in struct {
				ID accommodation.ID `json:"id"`
			}
			err := json.Unmarshal([]byte(tt.body), &in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.ID)
		})
	}
}

func TestRecord_UnmarshalFromItem(t *testing.T) {
	item := map[string]types.AttributeValue{
		"ID":      &types.AttributeValueMemberN{Value: "1"},
		"OwnerId": &types.AttributeValueMemberS{Value: "1"},
		"Images": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "image1"},
			&types.AttributeValueMemberS{Value: "image2"},
		}},
	}

	var rec accommodation.Record
	require.NoError(t, attributevalue.UnmarshalMap(item, &rec))
	assert.Equal(t, accommodation.NumericID("1"), rec.ID)
	assert.Equal(t, "1", rec.OwnerID.String())
	assert.False(t, rec.OwnerID.IsNumeric())
	assert.Equal(t, []string{"image1", "image2"}, rec.Images)
}

func TestID_MarshalKeepsAttributeType(t *testing.T) {
	av, err := attributevalue.Marshal(accommodation.NumericID("7"))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "7"}, av)

	av, err = attributevalue.Marshal(accommodation.StringID("7"))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "7"}, av)
}
