package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop/core"
)

// ShippingRepository stores shipment records in a MongoDB collection keyed by
// shipping id.
type ShippingRepository struct {
	collection *mongo.Collection
}

func NewShippingRepository(db *mongo.Database) core.ShippingRepository {
	return &ShippingRepository{collection: db.Collection("shipments")}
}

func (r *ShippingRepository) Put(ctx context.Context, record core.ShipmentRecord) error {
	filter := bson.M{"_id": record.ShippingID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("put shipment %s: %w", record.ShippingID, err)
	}
	return nil
}

func (r *ShippingRepository) Get(ctx context.Context, shippingID string) (core.ShipmentRecord, error) {
	var record core.ShipmentRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": shippingID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.ShipmentRecord{}, core.ErrShipmentNotFound
		}
		return core.ShipmentRecord{}, fmt.Errorf("get shipment %s: %w", shippingID, err)
	}
	return record, nil
}
