package accommodation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ID identifies an accommodation. Clients send it either as a JSON number
// or a JSON string; the original form is kept so the DynamoDB key keeps the
// attribute type the table was written with.
type ID struct {
	value   string
	numeric bool
}

func NumericID(n string) ID {
	return ID{value: strings.TrimSpace(n), numeric: true}
}

func StringID(s string) ID {
	return ID{value: s}
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsZero() bool {
	return id.value == ""
}

func (id ID) IsNumeric() bool {
	return id.numeric
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = NumericID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// MarshalDynamoDBAttributeValue writes numeric ids as N and everything else as S.
func (id ID) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if id.IsZero() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	if id.numeric {
		return &types.AttributeValueMemberN{Value: id.value}, nil
	}
	return &types.AttributeValueMemberS{Value: id.value}, nil
}

func (id *ID) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		*id = NumericID(v.Value)
	case *types.AttributeValueMemberS:
		*id = StringID(v.Value)
	case *types.AttributeValueMemberNULL, nil:
		*id = ID{}
	default:
		return fmt.Errorf("unsupported attribute type %T for id", av)
	}
	return nil
}

// Record mirrors an item of the accommodations table.
type Record struct {
	ID      ID       `dynamodbav:"ID" json:"id"`
	OwnerID ID       `dynamodbav:"OwnerId" json:"ownerId"`
	Images  []string `dynamodbav:"Images" json:"images"`
}

// Identity is the caller resolved from an access token.
type Identity struct {
	Username string
}
