package auditlog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/registro-clientes/internal/domain/entity"
)

// Marcadores usados por Stats.
const (
	errorMarker = "ERROR"
)

var successMarkers = []string{"exitosamente", "realizado"}

// ReadAll devuelve todas las entradas estructuradas en orden de archivo.
// Un archivo inexistente produce una lista vacía.
func (l *FileLog) ReadAll() ([]string, error) {
	return l.collect(func(string) bool { return true })
}

// ReadLast devuelve las últimas min(n, total) entradas; n <= 0 devuelve una lista vacía.
func (l *FileLog) ReadLast(n int) ([]string, error) {
	all, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []string{}, nil
	}
	if n > len(all) {
		n = len(all)
	}
	return all[len(all)-n:], nil
}

// FindByAction entradas cuyo campo de acción contiene el texto indicado.
func (l *FileLog) FindByAction(action string) ([]string, error) {
	needle := "Acción: " + action
	return l.collect(func(line string) bool { return strings.Contains(line, needle) })
}

// FindByActor entradas cuyo campo de usuario contiene el texto indicado.
func (l *FileLog) FindByActor(actor string) ([]string, error) {
	needle := "Usuario: " + actor
	return l.collect(func(line string) bool { return strings.Contains(line, needle) })
}

// Stats cuenta entradas totales, exitosas y con error. Una entrada con error nunca
// cuenta como exitosa.
func (l *FileLog) Stats() (entity.AuditStats, error) {
	all, err := l.ReadAll()
	if err != nil {
		return entity.AuditStats{}, err
	}
	s := entity.AuditStats{Total: len(all), Actor: l.Actor()}
	for _, line := range all {
		switch {
		case strings.Contains(line, errorMarker):
			s.Errors++
		case containsAny(line, successMarkers):
			s.Successful++
		}
	}
	return s, nil
}

// Export copia el archivo línea a línea (encabezado incluido) a dest y registra la exportación.
func (l *FileLog) Export(dest string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if same, _ := samePath(l.path, dest); same {
		return fmt.Errorf("exportar logs: el destino coincide con el archivo de origen")
	}
	if err := l.copyTo(dest); err != nil {
		l.log.Warn().Err(err).Str("dest", dest).Msg("exportar logs")
		return err
	}
	if err := l.appendLocked(ActionExport, "Logs exportados a: "+dest); err != nil {
		return err
	}
	l.log.Info().Str("dest", dest).Msg("logs exportados")
	return nil
}

func (l *FileLog) copyTo(dest string) error {
	src, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("abrir archivo de logs: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("crear destino: %w", err)
	}
	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		_, _ = w.WriteString(sc.Text() + "\n")
	}
	if err := sc.Err(); err != nil {
		out.Close()
		return fmt.Errorf("leer archivo de logs: %w", err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("escribir destino: %w", err)
	}
	return out.Close()
}

// collect devuelve las entradas estructuradas que cumplen match.
func (l *FileLog) collect(match func(line string) bool) ([]string, error) {
	out := []string{}
	err := l.scan(func(line string) {
		if strings.HasPrefix(line, EntryPrefix) && match(line) {
			out = append(out, line)
		}
	})
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Warn().Str("path", l.path).Msg("archivo de logs no encontrado")
		return out, nil
	}
	if err != nil {
		l.log.Warn().Err(err).Msg("leer logs")
		return nil, fmt.Errorf("leer logs: %w", err)
	}
	return out, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
