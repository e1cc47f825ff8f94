package infrastructure

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, []string{
		"booking_staff_assignments",
		"bookings",
		"packages",
		"panchayaths",
		"profiles",
		"service_categories",
		"staff_details",
		"staff_earnings",
		"staff_panchayath_assignments",
		"user_roles",
	}, TableNames())
}

func TestIndexNames(t *testing.T) {
	assert.Equal(t, []string{"panchayath_id-index", "customer_id-index", "status-index"}, IndexNames("bookings"))
	assert.Equal(t, []string{"role-index"}, IndexNames("user_roles"))
	assert.Empty(t, IndexNames("packages"))
	assert.Empty(t, IndexNames("nope"))
}

func TestGetTable(t *testing.T) {
	input, err := GetTable("booking_staff_assignments", "dev_booking_staff_assignments")
	require.NoError(t, err)

	assert.Equal(t, "dev_booking_staff_assignments", aws.ToString(input.TableName))
	assert.Equal(t, types.BillingModePayPerRequest, input.BillingMode)
	assert.Nil(t, input.ProvisionedThroughput)
	require.Len(t, input.KeySchema, 1)
	assert.Equal(t, "id", aws.ToString(input.KeySchema[0].AttributeName))
	assert.Equal(t, types.KeyTypeHash, input.KeySchema[0].KeyType)

	require.Len(t, input.GlobalSecondaryIndexes, 2)
	byBooking := input.GlobalSecondaryIndexes[0]
	assert.Equal(t, "booking_id-index", aws.ToString(byBooking.IndexName))
	require.Len(t, byBooking.KeySchema, 2)
	assert.Equal(t, "assigned_at", aws.ToString(byBooking.KeySchema[1].AttributeName))
	assert.Equal(t, types.KeyTypeRange, byBooking.KeySchema[1].KeyType)
	assert.Equal(t, types.ProjectionTypeAll, byBooking.Projection.ProjectionType)
	assert.Nil(t, byBooking.ProvisionedThroughput)

	// every key attribute must be declared
	declared := map[string]bool{}
	for _, a := range input.AttributeDefinitions {
		declared[aws.ToString(a.AttributeName)] = true
	}
	for _, g := range input.GlobalSecondaryIndexes {
		for _, k := range g.KeySchema {
			assert.True(t, declared[aws.ToString(k.AttributeName)], aws.ToString(k.AttributeName))
		}
	}
}

func TestGetTableUnknown(t *testing.T) {
	_, err := GetTable("users", "dev_users")
	assert.EqualError(t, err, "table schema not found for key: users")
}

func TestToDynamoInputProvisioned(t *testing.T) {
	schema := &TableSchema{
		TableName:            "prod_packages",
		AttributeDefinitions: []AttributeDefinition{{AttributeName: "id", AttributeType: "S"}},
		KeySchema:            []KeySchemaElement{{AttributeName: "id", KeyType: "HASH"}},
		BillingMode:          "PROVISIONED",
		GlobalSecondaryIndexes: []GlobalSecondaryIndex{{
			IndexName:             "x-index",
			KeySchema:             []KeySchemaElement{{AttributeName: "id", KeyType: "HASH"}},
			Projection:            Projection{ProjectionType: "KEYS_ONLY"},
			ProvisionedThroughput: &Throughput{ReadCapacityUnits: 2, WriteCapacityUnits: 1},
		}},
	}

	input := schema.ToDynamoInput()

	assert.Equal(t, types.BillingModeProvisioned, input.BillingMode)
	require.NotNil(t, input.ProvisionedThroughput)
	assert.Equal(t, int64(5), aws.ToInt64(input.ProvisionedThroughput.ReadCapacityUnits))
	assert.Equal(t, int64(2), aws.ToInt64(input.GlobalSecondaryIndexes[0].ProvisionedThroughput.ReadCapacityUnits))
}

func TestSchemaCoversEveryIndexTable(t *testing.T) {
	for _, name := range TableNames() {
		_, err := GetTable(name, "test_"+name)
		assert.NoError(t, err, name)
	}
}
