package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop/core"
)

// productDoc is the persisted shape of a catalog entry. The price travels as
// a decimal string to avoid float drift.
type productDoc struct {
	Name            string `bson:"_id"`
	Price           string `bson:"price"`
	AvailableAmount int    `bson:"available_amount"`
}

// ProductCatalog reads and writes catalog entries in a MongoDB collection
// keyed by product name.
type ProductCatalog struct {
	collection *mongo.Collection
}

func NewProductCatalog(db *mongo.Database) core.ProductCatalog {
	return &ProductCatalog{collection: db.Collection("products")}
}

func (c *ProductCatalog) GetProduct(ctx context.Context, name string) (*core.Product, error) {
	var doc productDoc
	err := c.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", name, err)
	}
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s has malformed price %q: %w", name, doc.Price, err)
	}
	return core.NewProduct(doc.Name, price, doc.AvailableAmount), nil
}

func (c *ProductCatalog) SaveStock(ctx context.Context, product *core.Product) error {
	doc := productDoc{
		Name:            product.Name(),
		Price:           product.Price().String(),
		AvailableAmount: product.AvailableAmount(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.collection.ReplaceOne(ctx, bson.M{"_id": doc.Name}, doc, opts); err != nil {
		return fmt.Errorf("save product %s: %w", doc.Name, err)
	}
	return nil
}
