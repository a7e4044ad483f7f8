package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"onthegomusic/internal/auth"
	"onthegomusic/internal/config"
	"onthegomusic/internal/domain"
	"onthegomusic/internal/store"
)

// Creates the unique indexes and, when ADMIN_CORREO and ADMIN_PASSWORD are set,
// the bootstrap administrator. Registration always yields clientes, so without
// this step nobody can reach the admin routes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI, 10*time.Second)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := store.EnsureIndexes(ctx, client.Database(cfg.MongoDB)); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if cfg.AdminCorreo == "" || cfg.AdminPass == "" {
		logrus.Info("Migration completed.")
		return
	}

	hash, err := auth.NewHasher(cfg.BcryptCost).Hash(cfg.AdminPass)
	if err != nil {
		logrus.Fatalf("hash admin password: %v", err)
	}
	admin := adminUsuario(cfg, hash)
	if err := store.New(client, cfg.MongoDB).Usuarios.UpsertByCorreo(ctx, admin); err != nil {
		logrus.Fatalf("seed admin: %v", err)
	}
	logrus.WithField("correo", admin.Correo).Info("Migration completed, administrator ready.")
}

// adminUsuario builds the bootstrap administrator. Its rut follows ADMIN_RUT
// (or the email) so switching ADMIN_CORREO never collides on rut_unique.
func adminUsuario(cfg *config.Config, hash string) domain.Usuario {
	return domain.Usuario{
		Rut:       domain.NormalizeRut(cfg.AdminRut),
		Nombre:    "Administrador",
		Apellidos: "OTGM",
		Correo:    domain.NormalizeCorreo(cfg.AdminCorreo),
		Password:  hash,
		Rol:       domain.RolAdmin,
	}
}
