package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "event", "type": "string"},
		{"name": "view", "type": "string"},
		{"name": "retailer_id", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "total", "type": "double"},
		{"name": "unix_milli", "type": "long"}
	]
}`

// A ClientEventV1 is the wire shape of one diagnostic event emitted by a
// shopping session.
type ClientEventV1 struct {
	UserID     string  `avro:"user_id"`
	Event      string  `avro:"event"`
	View       string  `avro:"view"`
	RetailerID string  `avro:"retailer_id"`
	OrderID    string  `avro:"order_id"`
	Total      float64 `avro:"total"`
	UnixMilli  int64   `avro:"unix_milli"`
}
