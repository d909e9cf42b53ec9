package schema

const BrowseEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "browse_event",
	"fields" : [
		{"name": "event_id", "type": "string"},
		{"name": "client_id", "type": "string"},
		{"name": "event_type", "type": "string"},
		{"name": "term", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "unix_ms", "type": "long"}
	]
}`

type BrowseEventV1 struct {
	EventID   string `avro:"event_id"`
	ClientID  string `avro:"client_id"`
	EventType string `avro:"event_type"`
	Term      string `avro:"term"`
	Category  string `avro:"category"`
	ProductID int64  `avro:"product_id"`
	UnixMs    int64  `avro:"unix_ms"`
}
