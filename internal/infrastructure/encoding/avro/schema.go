package avro

// OrderCreatedSchema is the Avro schema for the order-created event the
// API publishes after a submission commits. Monetary amounts travel as
// fixed 2-decimal strings so no precision is lost on the wire.
const OrderCreatedSchema = `{
	"type": "record",
	"name": "OrderCreated",
	"namespace": "com.webshop.order",
	"fields": [
		{"name": "order_id", "type": "long"},
		{"name": "status", "type": "string"},
		{"name": "order_date", "type": "string"},
		{"name": "customer_name", "type": "string"},
		{"name": "customer_email", "type": "string"},
		{"name": "customer_phone", "type": "string"},
		{"name": "company_name", "type": ["null", "string"], "default": null},
		{"name": "address", "type": "string"},
		{"name": "city", "type": "string"},
		{"name": "postal_code", "type": "string"},
		{"name": "notes", "type": ["null", "string"], "default": null},
		{"name": "subtotal", "type": "string"},
		{"name": "discount_amount", "type": "string"},
		{"name": "total", "type": "string"},

		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderCreatedItem",
				"fields": [
					{"name": "tire_id", "type": "long"},
					{"name": "tire_name", "type": ["null", "string"], "default": null},
					{"name": "quantity", "type": "long"},
					{"name": "unit_price", "type": "string"},
					{"name": "total_price", "type": "string"}
				]
			}
		}}
	]
}`
