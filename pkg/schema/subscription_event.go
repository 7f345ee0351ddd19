package schema

const SubscriptionEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "swimstore",
	"name": "subscription_event",
	"fields": [
		{"name": "username", "type": "string"},
		{"name": "active", "type": "boolean"}
	]
}`

type SubscriptionEventV1 struct {
	Username string `avro:"username"`
	Active   bool   `avro:"active"`
}
