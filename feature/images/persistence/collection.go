package persistence

import (
	"context"
	"errors"
	"fmt"

	"product-images/core/utils"
	"product-images/feature/images/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentCollection is the subset of a document collection the linker uses.
// FindOne returns nil without error when nothing matches.
type DocumentCollection interface {
	FindOne(ctx context.Context, filter, projection bson.M) (bson.M, error)
	UpdateOne(ctx context.Context, filter, update bson.M) (matched int64, err error)
}

// CollectionProvider hands out collections by name.
type CollectionProvider interface {
	Collection(name string) DocumentCollection
}

// NewMongoCollection adapts a driver collection to DocumentCollection.
func NewMongoCollection(c *mongo.Collection) DocumentCollection {
	return mongoCollection{coll: c}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (m mongoCollection) FindOne(ctx context.Context, filter, projection bson.M) (bson.M, error) {
	var doc bson.M
	err := m.coll.FindOne(ctx, filter, options.FindOne().SetProjection(projection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (m mongoCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := m.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func documentCollection(handle any, name string) DocumentCollection {
	switch h := handle.(type) {
	case *mongo.Collection:
		if h == nil {
			return nil
		}
		return mongoCollection{coll: h}
	case *mongo.Database:
		if h == nil {
			return nil
		}
		return mongoCollection{coll: h.Collection(name)}
	case DocumentCollection:
		return h
	case CollectionProvider:
		return h.Collection(name)
	}
	return nil
}

type collectionBackend struct {
	coll DocumentCollection
	cfg  Config
}

func (b *collectionBackend) find(ctx context.Context, code string) (*models.Product, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{b.cfg.BarcodeField: code},
		bson.M{b.cfg.EANField: code},
	}}
	projection := bson.M{"_id": 1, b.cfg.NameField: 1}

	doc, err := b.coll.FindOne(ctx, filter, projection)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", code, err)
	}
	if doc == nil {
		return nil, nil
	}

	id := documentID(doc["_id"])
	if id == "" {
		return nil, nil
	}
	var name string
	if v, ok := doc[b.cfg.NameField]; ok && v != nil {
		name = utils.ToString(v)
	}
	return &models.Product{ID: models.ProductID(id), Name: name}, nil
}

func (b *collectionBackend) link(ctx context.Context, id models.ProductID, images []models.SequencedImage) error {
	filter := bson.M{"_id": nativeID(id)}
	update := bson.M{
		"$set":         bson.M{b.cfg.ImagesField: imagesPayload(images)},
		"$currentDate": bson.M{b.cfg.ImagesUpdatedAtField: true},
	}

	matched, err := b.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return nil
}

func imagesPayload(images []models.SequencedImage) bson.A {
	payload := make(bson.A, 0, len(images))
	for _, img := range images {
		if img.Sequence == "" || img.FileID == "" {
			continue
		}
		payload = append(payload, bson.M{"sequence": img.Sequence, "fileId": img.FileID})
	}
	return payload
}

// nativeID converts a 24-hex id to an ObjectID and leaves anything else as is.
func nativeID(id models.ProductID) any {
	if oid, err := primitive.ObjectIDFromHex(string(id)); err == nil {
		return oid
	}
	return string(id)
}

func documentID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	default:
		return utils.ToString(id)
	}
}
