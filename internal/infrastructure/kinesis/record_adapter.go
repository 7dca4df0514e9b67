package kinesis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/example/can-delivery/internal/domain/order"
)

// ConvertFromKinesisRecord converts a Kinesis record carrying an orders-table change
// (DynamoDB Streams format) to an Order. Non-INSERT changes yield nil, nil.
func ConvertFromKinesisRecord(record events.KinesisEventRecord) (*order.Order, error) {
	var dynamoDBRecord events.DynamoDBEventRecord
	if err := json.Unmarshal(record.Kinesis.Data, &dynamoDBRecord); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DynamoDB record: %w", err)
	}

	return ConvertFromDynamoDBStreamRecord(dynamoDBRecord)
}

// ConvertFromDynamoDBStreamRecord converts a DynamoDB Stream record to an Order.
// Orders are append-only, so only INSERT is of interest.
func ConvertFromDynamoDBStreamRecord(record events.DynamoDBEventRecord) (*order.Order, error) {
	if record.EventName != "INSERT" {
		return nil, nil
	}

	return convertOrderImage(record.Change.NewImage)
}

func convertOrderImage(image map[string]events.DynamoDBAttributeValue) (*order.Order, error) {
	if image == nil {
		return nil, fmt.Errorf("DynamoDB image is nil")
	}

	o := &order.Order{}

	if v, ok := image["orderId"]; ok {
		o.OrderID = v.String()
	}
	if v, ok := image["userId"]; ok {
		o.UserID = v.String()
	}
	if v, ok := image["vendorId"]; ok {
		o.VendorID = v.String()
	}
	if v, ok := image["status"]; ok {
		o.Status = order.Status(v.String())
	}
	if v, ok := image["quantity"]; ok {
		o.Quantity = quantityOf(v)
	}
	if v, ok := image["unitPrice"]; ok {
		n, err := v.Integer()
		if err != nil {
			return nil, fmt.Errorf("failed to parse unitPrice: %w", err)
		}
		o.UnitPrice = int(n)
	}
	if v, ok := image["totalPrice"]; ok {
		n, err := v.Integer()
		if err != nil {
			return nil, fmt.Errorf("failed to parse totalPrice: %w", err)
		}
		o.TotalPrice = int(n)
	}
	if v, ok := image["timestamp"]; ok {
		t, err := time.Parse(time.RFC3339Nano, v.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		o.Timestamp = t
	}

	if o.OrderID == "" || o.UserID == "" {
		return nil, fmt.Errorf("missing required fields: orderId=%s, userId=%s", o.OrderID, o.UserID)
	}

	return o, nil
}

// quantityOf accepts number or string attributes; anything else counts as zero
func quantityOf(v events.DynamoDBAttributeValue) order.Quantity {
	switch v.DataType() {
	case events.DataTypeNumber:
		return order.ParseQuantity(v.Number())
	case events.DataTypeString:
		return order.ParseQuantity(v.String())
	default:
		return 0
	}
}

// BatchConvertFromKinesisEvent converts all records from a Kinesis event to Orders.
// Returns successfully converted orders and any errors encountered.
func BatchConvertFromKinesisEvent(kinesisEvent events.KinesisEvent) ([]*order.Order, []error) {
	var orders []*order.Order
	var errs []error

	for _, record := range kinesisEvent.Records {
		o, err := ConvertFromKinesisRecord(record)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %s: %w", record.EventID, err))
			continue
		}
		if o != nil {
			orders = append(orders, o)
		}
	}

	return orders, errs
}
