package cliente

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CredentialStore guarda el bearer token local. El contenido es opaco: acá no
// se valida ni se inspecciona. A lo sumo un token a la vez; Set pisa el
// anterior.
type CredentialStore interface {
	Get() string
	Set(token string) error
	Clear() error
}

// ArchivoCredenciales persiste el token en un archivo del perfil del usuario,
// de modo que sobrevive reinicios del proceso.
type ArchivoCredenciales struct {
	mu   sync.Mutex
	path string
}

var _ CredentialStore = (*ArchivoCredenciales)(nil)

// NewArchivoCredenciales construye el store sobre la ruta dada. El directorio
// se crea al primer Set.
func NewArchivoCredenciales(path string) *ArchivoCredenciales {
	return &ArchivoCredenciales{path: path}
}

func (s *ArchivoCredenciales) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *ArchivoCredenciales) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *ArchivoCredenciales) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoriaCredenciales variante en memoria (pruebas y procesos efímeros).
type MemoriaCredenciales struct {
	mu    sync.Mutex
	token string
}

var _ CredentialStore = (*MemoriaCredenciales)(nil)

// NewMemoriaCredenciales construye un store vacío en memoria.
func NewMemoriaCredenciales() *MemoriaCredenciales {
	return &MemoriaCredenciales{}
}

func (s *MemoriaCredenciales) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoriaCredenciales) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoriaCredenciales) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
