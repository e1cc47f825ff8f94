package models

// AttributeType enum for different DynamoDB attribute types
type AttributeType int

const (
	StringType AttributeType = iota
	NumberType
)

// QueryConfig describes a single-item lookup, either by primary key or
// through a global secondary index
type QueryConfig struct {
	TableName string
	IndexName string // empty for primary key lookups
	KeyName   string
	KeyValue  string
	KeyType   AttributeType
}

// IndexQuery describes a paged query against a global secondary index
type IndexQuery struct {
	TableName string
	IndexName string
	KeyName   string
	KeyValue  string
	// ScanForward orders by the index sort key when the index has one
	ScanForward bool
}

// WriteCondition guards a put; the write is rejected when Expression
// evaluates false against the stored item
type WriteCondition struct {
	Expression string
	Names      map[string]string
	Values     map[string]interface{}
}
