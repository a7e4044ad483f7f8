// Package store persists the storefront records in MongoDB.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, one per entity.
const (
	CollUsuarios  = "usuarios"
	CollProductos = "productos"
	CollBoletas   = "boletas"
)

// Store groups the collections of one database.
type Store struct {
	client *mongo.Client

	Usuarios  *Usuarios
	Productos *Productos
	Boletas   *Boletas
}

// Connect dials uri and verifies the deployment answers within timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

// New wires the collections of database name.
func New(client *mongo.Client, name string) *Store {
	db := client.Database(name)
	return &Store{
		client:    client,
		Usuarios:  NewUsuarios(db),
		Productos: NewProductos(db),
		Boletas:   NewBoletas(db),
	}
}

// Ping checks the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx, readpref.Primary()), "ping mongo")
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// uniqueFields lists the unique single-field indexes per collection, in creation order.
var uniqueFields = []struct {
	coll   string
	fields []string
}{
	{CollUsuarios, []string{"correo", "rut"}},
	{CollProductos, []string{"codigo"}},
}

// EnsureIndexes creates the unique indexes backing the uniqueness of
// usuarios.correo, usuarios.rut and productos.codigo. Existing indexes with
// the same definition are left as they are, so it runs on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range uniqueFields {
		models := make([]mongo.IndexModel, 0, len(spec.fields))
		for _, f := range spec.fields {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: f, Value: 1}},
				Options: options.Index().SetUnique(true).SetName(f + "_unique"),
			})
		}
		names, err := db.Collection(spec.coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return errors.Wrapf(err, "create indexes on %s", spec.coll)
		}
		logrus.WithFields(logrus.Fields{"collection": spec.coll, "indexes": names}).Info("indexes ensured")
	}
	return nil
}
