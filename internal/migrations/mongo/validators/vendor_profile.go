package validators

import "go.mongodb.org/mongo-driver/bson"

var VendorProfileValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"vendor_id", "business_name", "categories", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"vendor_id":     bson.M{"bsonType": "string"},
			"business_name": bson.M{"bsonType": "string"},
			"description":   bson.M{"bsonType": "string"},
			"categories": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"enum": []string{"Catering", "Photography", "Decoration", "Music", "Makeup", "Venue", "Other"},
				},
			},
			"availability": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"schedule": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "object",
							"required": []string{"date", "status"},
							"properties": bson.M{
								"date":     bson.M{"bsonType": "date"},
								"status":   bson.M{"enum": []string{"available", "booked", "unavailable"}},
								"event_id": bson.M{"bsonType": "string"},
							},
						},
					},
					"advance_booking_days": bson.M{"bsonType": []string{"int", "long"}},
				},
			},
			"services": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"name", "price"},
					"properties": bson.M{
						"name":  bson.M{"bsonType": "string"},
						"price": bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0},
					},
				},
			},
			"performance": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"total_events":    bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
					"average_rating":  bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0, "maximum": 5},
					"response_time":   bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0},
					"completion_rate": bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0, "maximum": 100},
					"revenue":         bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0},
				},
			},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
