package api

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onthegomusic/internal/domain"
	"onthegomusic/internal/store"
)

// fakeUsuarios mimics the Mongo store: reads other than FindByCorreo drop the hash.
type fakeUsuarios struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]domain.Usuario
	calls int
	err   error
}

func newFakeUsuarios() *fakeUsuarios {
	return &fakeUsuarios{docs: map[primitive.ObjectID]domain.Usuario{}}
}

func (f *fakeUsuarios) touch() error {
	f.calls++
	return f.err
}

func (f *fakeUsuarios) List(ctx context.Context) ([]domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	out := []domain.Usuario{}
	for _, u := range f.docs {
		u.Password = ""
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsuarios) Get(ctx context.Context, id primitive.ObjectID) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	u, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Password = ""
	return &u, nil
}

func (f *fakeUsuarios) FindByCorreo(ctx context.Context, correo string) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	for _, u := range f.docs {
		if u.Correo == domain.NormalizeCorreo(correo) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsuarios) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	out := []domain.Usuario{}
	for _, id := range ids {
		if u, ok := f.docs[id]; ok {
			u.Password = ""
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsuarios) Create(ctx context.Context, u *domain.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	for _, existing := range f.docs {
		if existing.Correo == u.Correo {
			return &store.DuplicateError{Op: "insert usuario", Field: "correo"}
		}
		if existing.Rut == u.Rut {
			return &store.DuplicateError{Op: "insert usuario", Field: "rut"}
		}
	}
	u.ID = primitive.NewObjectID()
	f.docs[u.ID] = *u
	return nil
}

func (f *fakeUsuarios) Update(ctx context.Context, id primitive.ObjectID, p domain.UsuarioPatch) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	u, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Rut != nil {
		u.Rut = domain.NormalizeRut(*p.Rut)
	}
	apply(&u.Nombre, p.Nombre)
	apply(&u.Apellidos, p.Apellidos)
	if p.Correo != nil {
		u.Correo = domain.NormalizeCorreo(*p.Correo)
	}
	apply(&u.Password, p.Password)
	apply(&u.Rol, p.Rol)
	apply(&u.Region, p.Region)
	apply(&u.Comuna, p.Comuna)
	apply(&u.Direccion, p.Direccion)
	f.docs[id] = u
	u.Password = ""
	return &u, nil
}

func (f *fakeUsuarios) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	if _, ok := f.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeProductos struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]domain.Producto
	calls int
	err   error
}

func newFakeProductos() *fakeProductos {
	return &fakeProductos{docs: map[primitive.ObjectID]domain.Producto{}}
}

func (f *fakeProductos) touch() error {
	f.calls++
	return f.err
}

func (f *fakeProductos) List(ctx context.Context) ([]domain.Producto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	out := []domain.Producto{}
	for _, p := range f.docs {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductos) Get(ctx context.Context, id primitive.ObjectID) (*domain.Producto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	p, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductos) Create(ctx context.Context, p *domain.Producto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	for _, existing := range f.docs {
		if existing.Codigo == p.Codigo {
			return &store.DuplicateError{Op: "insert producto", Field: "codigo"}
		}
	}
	p.ID = primitive.NewObjectID()
	f.docs[p.ID] = *p
	return nil
}

func (f *fakeProductos) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProductoPatch) (*domain.Producto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	p, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	apply(&p.Codigo, patch.Codigo)
	apply(&p.Title, patch.Title)
	apply(&p.Descripcion, patch.Descripcion)
	apply(&p.Price, patch.Price)
	apply(&p.Stock, patch.Stock)
	apply(&p.StockCritico, patch.StockCritico)
	apply(&p.Categoria, patch.Categoria)
	apply(&p.Image, patch.Image)
	apply(&p.Miniatura1, patch.Miniatura1)
	apply(&p.Miniatura2, patch.Miniatura2)
	f.docs[id] = p
	return &p, nil
}

func (f *fakeProductos) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	if _, ok := f.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeBoletas struct {
	mu    sync.Mutex
	docs  []domain.Boleta
	calls int
	err   error
}

func (f *fakeBoletas) List(ctx context.Context) ([]domain.Boleta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Boleta{}, f.docs...), nil
}

func (f *fakeBoletas) Get(ctx context.Context, id primitive.ObjectID) (*domain.Boleta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.docs {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBoletas) Create(ctx context.Context, b *domain.Boleta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	b.ID = primitive.NewObjectID()
	f.docs = append(f.docs, *b)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func apply[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
