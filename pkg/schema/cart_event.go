package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "swimstore",
	"name": "cart_event",
	"fields": [
		{"name": "username", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "original_price", "type": "double"},
		{"name": "discount_percent", "type": "int"},
		{"name": "currency", "type": "string"},
		{"name": "week_epoch", "type": "long"},
		{"name": "added_at", "type": "long"}
	]
}`

// A CartEventV1 captures the price locked in at cart-add time.
// AddedAt is unix milliseconds.
type CartEventV1 struct {
	Username        string  `avro:"username"`
	ProductID       string  `avro:"product_id"`
	ProductName     string  `avro:"product_name"`
	Price           float64 `avro:"price"`
	OriginalPrice   float64 `avro:"original_price"`
	DiscountPercent int     `avro:"discount_percent"`
	Currency        string  `avro:"currency"`
	WeekEpoch       int64   `avro:"week_epoch"`
	AddedAt         int64   `avro:"added_at"`
}
