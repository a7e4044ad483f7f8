package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onthegomusic/internal/domain"
)

// withoutPassword keeps the hash inside the database on every read but login.
var withoutPassword = bson.M{"password": 0}

// Usuarios is the usuarios collection.
type Usuarios struct {
	coll *mongo.Collection
}

// NewUsuarios binds the usuarios collection of db.
func NewUsuarios(db *mongo.Database) *Usuarios {
	return &Usuarios{coll: db.Collection(CollUsuarios)}
}

// List returns every user.
func (s *Usuarios) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.find(ctx, bson.M{}, "list usuarios")
}

// FindByIDs batch-fetches the users with the given ids. Missing ids are skipped.
func (s *Usuarios) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Usuario, error) {
	if len(ids) == 0 {
		return []domain.Usuario{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, "find usuarios by id")
}

func (s *Usuarios) find(ctx context.Context, filter bson.M, op string) ([]domain.Usuario, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(withoutPassword))
	if err != nil {
		return nil, translate(err, op)
	}
	var out []domain.Usuario
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, op)
	}
	if out == nil {
		out = []domain.Usuario{}
	}
	return out, nil
}

// Get returns one user by id.
func (s *Usuarios) Get(ctx context.Context, id primitive.ObjectID) (*domain.Usuario, error) {
	var u domain.Usuario
	err := s.coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword)).Decode(&u)
	if err != nil {
		return nil, translate(err, "get usuario")
	}
	return &u, nil
}

// FindByCorreo looks a user up by case-insensitive exact email, password hash
// included. The input is regex-quoted so it only ever matches literally.
func (s *Usuarios) FindByCorreo(ctx context.Context, correo string) (*domain.Usuario, error) {
	filter := bson.M{"correo": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(domain.NormalizeCorreo(correo)) + "$",
		Options: "i",
	}}
	var u domain.Usuario
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err, "find usuario by correo")
	}
	return &u, nil
}

// Create inserts u and sets its generated id.
func (s *Usuarios) Create(ctx context.Context, u *domain.Usuario) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return translate(err, "insert usuario")
	}
	return nil
}

// Update merges the non-nil fields of p onto the user and returns the result.
// The password in p must already be hashed.
func (s *Usuarios) Update(ctx context.Context, id primitive.ObjectID, p domain.UsuarioPatch) (*domain.Usuario, error) {
	set := bson.M{}
	if p.Rut != nil {
		set["rut"] = domain.NormalizeRut(*p.Rut)
	}
	setIf(set, "nombre", p.Nombre)
	setIf(set, "apellidos", p.Apellidos)
	if p.Correo != nil {
		set["correo"] = domain.NormalizeCorreo(*p.Correo)
	}
	setIf(set, "password", p.Password)
	setIf(set, "rol", p.Rol)
	setIf(set, "region", p.Region)
	setIf(set, "comuna", p.Comuna)
	setIf(set, "direccion", p.Direccion)
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	var u domain.Usuario
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		return nil, translate(err, "update usuario")
	}
	return &u, nil
}

// Delete removes the user. Receipts referencing it are left alone.
func (s *Usuarios) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete usuario")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByCorreo creates or overwrites the user holding u.Correo.
func (s *Usuarios) UpsertByCorreo(ctx context.Context, u domain.Usuario) error {
	u.ID = primitive.NilObjectID
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"correo": u.Correo},
		bson.M{"$set": u},
		options.Update().SetUpsert(true),
	)
	return translate(err, "upsert usuario")
}

// setIf copies *v into set under key when v is non-nil.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
