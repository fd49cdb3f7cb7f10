package model

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPricePerNight = "price_per_night"
	FieldImageURL      = "image_url"
)

const (
	FeatureTableName  = "features"
	FeatureEntityName = "feature"

	RoomFeatureTableName  = "room_features"
	RoomFeatureEntityName = "room_feature"

	FieldFeatureID   = "feature_id"
	FieldFeatureName = "name"
	FieldRoomID      = "room_id"
)

// Room prices are integer minor units (cents).
type Room struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	PricePerNight int64  `db:"price_per_night"`
	ImageURL      string `db:"image_url"`
}

type Feature struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type RoomFeature struct {
	RoomID    string `db:"room_id"`
	FeatureID string `db:"feature_id"`
}

// FeatureTag is a read model pairing a room with one of its feature names.
type FeatureTag struct {
	RoomID string `db:"room_id"`
	Name   string `db:"name"`
}
