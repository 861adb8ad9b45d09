// Package auditlog implementa la bitácora persistente de acciones sobre un archivo de texto
// append-only, legible por humanos.
package auditlog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/registro-clientes/internal/domain"
	"github.com/jhoicas/registro-clientes/internal/domain/repository"
	"github.com/jhoicas/registro-clientes/pkg/logger"
)

var (
	_ repository.AuditLog   = (*FileLog)(nil)
	_ repository.AuditQuery = (*FileLog)(nil)
)

const (
	// EntryPrefix marca las líneas estructuradas; el resto se considera encabezado.
	EntryPrefix = "LOG-"
	// TimeLayout dd/MM/yyyy HH:mm:ss
	TimeLayout = "02/01/2006 15:04:05"
	// DefaultActor usuario asignado cuando no se indica ninguno.
	DefaultActor = "Sistema"

	ActionActorChange = "ACTOR_CHANGE"
	ActionExport      = "EXPORT"

	seqDigits = 4
	banner    = "====================================="
)

// Config parámetros de la bitácora.
type Config struct {
	Path  string
	Actor string
	// Now reloj para fechar entradas; time.Now si es nil.
	Now func() time.Time
}

// FileLog bitácora sobre un único archivo. Cada Append abre, escribe y cierra el archivo;
// no se mantiene ningún descriptor abierto entre llamadas.
type FileLog struct {
	mu    sync.Mutex
	path  string
	actor string
	seq   int
	now   func() time.Time
	log   *logger.Logger
}

// New prepara la bitácora: crea el archivo con su encabezado si no existe y recupera el
// contador de secuencia recorriendo las entradas existentes. Los fallos de E/S se reportan
// por log y nunca impiden construir la bitácora.
func New(cfg Config, log *logger.Logger) *FileLog {
	if log == nil {
		log = logger.Nop()
	}
	l := &FileLog{
		path:  cfg.Path,
		actor: cfg.Actor,
		now:   cfg.Now,
		log:   log.Component("auditlog"),
	}
	if l.actor == "" {
		l.actor = DefaultActor
	}
	if l.now == nil {
		l.now = time.Now
	}

	if err := l.ensureFile(); err != nil {
		l.log.Error().Err(err).Str("path", l.path).Msg("inicializar archivo de logs")
	}
	l.seq = l.recoverSequence()
	l.log.Debug().Str("path", l.path).Int("seq", l.seq).Msg("bitácora lista")
	return l
}

func (l *FileLog) ensureFile() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("crear archivo de logs: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range []string{
		banner,
		"  SISTEMA DE REGISTRO DE CLIENTES",
		"  ARCHIVO DE LOGS",
		"  Fecha Creación: " + l.now().Format(TimeLayout),
		banner,
		"",
	} {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	return nil
}

// recoverSequence devuelve el mayor número de secuencia presente en el archivo (0 si no hay).
func (l *FileLog) recoverSequence() int {
	maxSeq := 0
	err := l.scan(func(line string) {
		if !strings.HasPrefix(line, EntryPrefix) {
			return
		}
		n, ok := ParseSequence(line)
		if !ok {
			l.log.Debug().Str("line", line).Msg("línea de log mal formada, se ignora")
			return
		}
		maxSeq = max(maxSeq, n)
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.log.Warn().Err(err).Msg("cargar contador de logs")
	}
	return maxSeq
}

// ParseSequence extrae los 4 dígitos que siguen a "LOG-". Los dígitos adicionales se
// ignoran: "LOG-10000" se lee como 1000.
func ParseSequence(line string) (int, bool) {
	if !strings.HasPrefix(line, EntryPrefix) || len(line) < len(EntryPrefix)+seqDigits {
		return 0, false
	}
	n := 0
	for _, ch := range line[len(EntryPrefix) : len(EntryPrefix)+seqDigits] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}

// lineBreaks escapa los saltos de línea para que cada entrada ocupe una sola línea.
var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// FormatEntry renderiza una línea estructurada. CR y LF dentro de los campos se escriben
// como las secuencias literales \r y \n.
func FormatEntry(seq int, at time.Time, actor, action, description string) string {
	return fmt.Sprintf("%s%0*d | %s | Usuario: %s | Acción: %s | %s",
		EntryPrefix, seqDigits, seq, at.Format(TimeLayout),
		lineBreaks.Replace(actor), lineBreaks.Replace(action), lineBreaks.Replace(description))
}

// Append registra una acción. Un fallo de escritura se devuelve como diagnóstico y no
// consume número de secuencia.
func (l *FileLog) Append(action, description string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(action, description)
}

func (l *FileLog) appendLocked(action, description string) error {
	next := l.seq + 1
	entry := FormatEntry(next, l.now(), l.actor, action, description)

	if err := l.writeLine(entry); err != nil {
		l.log.Warn().Err(err).Str("action", action).Msg("escribir log")
		return err
	}
	l.seq = next
	return nil
}

func (l *FileLog) writeLine(line string) error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("abrir archivo de logs: %w", err)
	}
	w := bufio.NewWriter(f)
	_, _ = w.WriteString(line + "\n")
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("escribir log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cerrar archivo de logs: %w", err)
	}
	return nil
}

// AppendError registra una acción fallida con el código y mensaje del error.
func (l *FileLog) AppendError(action string, err error) error {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return l.Append(action, fmt.Sprintf("ERROR: %s - %s", domain.ErrorCode(err), msg))
}

// SetActor registra el cambio de usuario y luego actualiza la etiqueta. Si el registro
// falla, la etiqueta se actualiza igualmente.
func (l *FileLog) SetActor(actor string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.appendLocked(ActionActorChange, fmt.Sprintf("Usuario cambiado de %s a %s", l.actor, actor))
	l.actor = actor
	return err
}

// Actor usuario actual.
func (l *FileLog) Actor() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.actor
}

// Sequence último número de secuencia emitido o recuperado.
func (l *FileLog) Sequence() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Path ruta absoluta del archivo de logs.
func (l *FileLog) Path() string {
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return l.path
	}
	return abs
}

// scan recorre el archivo línea a línea.
func (l *FileLog) scan(fn func(line string)) error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fn(sc.Text())
	}
	return sc.Err()
}
