package order

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MaxQuantity is the largest order size whose total price fits in an int.
const MaxQuantity = math.MaxInt / UnitPrice

// RequestedQuantity is a quantity as supplied by a caller: a JSON integer or a numeric string.
type RequestedQuantity struct {
	raw string
	set bool
}

// QuantityOf returns a RequestedQuantity holding n.
func QuantityOf(n int) RequestedQuantity {
	return RequestedQuantity{raw: strconv.Itoa(n), set: true}
}

func (q *RequestedQuantity) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*q = RequestedQuantity{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = RequestedQuantity{raw: s, set: true}
		return nil
	}
	*q = RequestedQuantity{raw: string(b), set: true}
	return nil
}

// Int validates the quantity. Absent, empty and zero are reported as missing;
// anything that is not a positive integer up to MaxQuantity is invalid.
func (q RequestedQuantity) Int() (int, error) {
	raw := strings.TrimSpace(q.raw)
	if !q.set || raw == "" || raw == "0" {
		return 0, ErrMissingQuantity
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > MaxQuantity {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// Quantity is a stored unit count. Decoding coerces numeric strings left by older
// writers; values that cannot be coerced decode as zero.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = ParseQuantity(s)
		return nil
	}
	*q = ParseQuantity(string(b))
	return nil
}

func (q *Quantity) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		*q = ParseQuantity(v.Value)
	case *types.AttributeValueMemberS:
		*q = ParseQuantity(v.Value)
	default:
		*q = 0
	}
	return nil
}

// ParseQuantity coerces a stored quantity. Fractions are truncated; values that
// are not numeric or fall outside ±MaxQuantity yield zero.
func ParseQuantity(s string) Quantity {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > MaxQuantity {
		return 0
	}
	return Quantity(math.Trunc(f))
}
