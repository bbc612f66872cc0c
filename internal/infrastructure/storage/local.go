// Package storage implementa el almacenamiento de archivos en disco local.
// Los expedientes escaneados viven bajo <uploads>/documentos y los
// comprobantes PDF bajo <uploads>/comprobantes.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subdirectorios fijos bajo el directorio de uploads.
const (
	DirDocumentos   = "documentos"
	DirComprobantes = "comprobantes"
)

// LocalStore guarda archivos bajo un directorio raíz configurable.
type LocalStore struct {
	baseDir string
}

// NewLocalStore crea el almacén y asegura los subdirectorios.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	for _, sub := range []string{DirDocumentos, DirComprobantes} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("storage: crear directorio %s: %w", sub, err)
		}
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save escribe el contenido en <base>/<sub>/<filename> y devuelve la ruta.
func (s *LocalStore) Save(sub, filename string, r io.Reader) (string, error) {
	ruta := filepath.Join(s.baseDir, sub, filename)
	f, err := os.Create(ruta)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(ruta)
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	return ruta, nil
}

// SaveBytes escribe un contenido ya materializado (comprobantes PDF).
func (s *LocalStore) SaveBytes(sub, filename string, data []byte) (string, error) {
	return s.Save(sub, filename, bytes.NewReader(data))
}

// Exists indica si la ruta apunta a un archivo presente en disco. Un registro
// puede sobrevivir a su archivo, por eso se re-verifica antes de servirlo.
func (s *LocalStore) Exists(ruta string) bool {
	if ruta == "" {
		return false
	}
	info, err := os.Stat(ruta)
	return err == nil && !info.IsDir()
}

// Delete borra el archivo; que no exista no es error.
func (s *LocalStore) Delete(ruta string) error {
	if ruta == "" {
		return nil
	}
	if err := os.Remove(ruta); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar archivo: %w", err)
	}
	return nil
}

// UniqueFilename arma un nombre que nunca colisiona aunque dos registros
// compartan número: <prefix>-<numero-seguro>-<unixms>-<uuid8><ext>.
// El número puede llevar "/" (formato n/aa) y se vuelve "-" para el filesystem.
func UniqueFilename(prefix, numero, ext string) string {
	safe := strings.ReplaceAll(numero, "/", "-")
	return fmt.Sprintf("%s-%s-%d-%s%s",
		prefix, safe, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
