package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/registro-clientes/internal/interfaces/cli"
)

// run ejecuta auditctl con args y devuelve la salida estándar.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := cli.NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedLog(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "logs.txt")
	for _, args := range [][]string{
		{"registrar", "ADD_CUSTOMER", "Cliente", "agregado", "exitosamente:", "C001"},
		{"registrar", "ADD_CUSTOMER", "Cliente agregado exitosamente: C002"},
		{"registrar", "REMOVE_CUSTOMER", "ERROR: NOT_FOUND - cliente no encontrado"},
	} {
		_, err := run(t, append(args, "--file", file, "--actor", "ana")...)
		require.NoError(t, err)
	}
	return file
}

// ─── registrar ───────────────────────────────────────────────────────────────

func TestRegistrar_EscribeEntradasFirmadas(t *testing.T) {
	file := seedLog(t)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "SISTEMA DE REGISTRO DE CLIENTES")
	assert.Contains(t, content, "Usuario: ana | Acción: ADD_CUSTOMER | Cliente agregado exitosamente: C001")
	assert.Contains(t, content, "LOG-0003 | ")
	assert.NotContains(t, content, "ACTOR_CHANGE", "el usuario de la sesión se fija al abrir la bitácora")
}

func TestRegistrar_FalloDeEscrituraRetornaError(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "registrar", "MANUAL", "hola", "--file", dir)
	assert.Error(t, err)
	assert.NotContains(t, out, "Entrada registrada.")
}

// ─── consultas ───────────────────────────────────────────────────────────────

func TestTail_UltimasEntradas(t *testing.T) {
	file := seedLog(t)

	out, err := run(t, "tail", "-n", "2", "--file", file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "REMOVE_CUSTOMER")

	_, err = run(t, "tail", "-n", "0", "--file", file)
	assert.Error(t, err)
}

func TestAccionYUsuario(t *testing.T) {
	file := seedLog(t)

	out, err := run(t, "accion", "ADD_CUSTOMER", "--file", file)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	out, err = run(t, "usuario", "ana", "--file", file)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = run(t, "usuario", "nadie", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "No hay entradas.\n", out)
}

func TestStats_Resumen(t *testing.T) {
	file := seedLog(t)

	out, err := run(t, "stats", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "ESTADÍSTICAS DE LOGS")
	assert.Contains(t, out, "Total de Entradas: 3")
	assert.Contains(t, out, "Operaciones Exitosas: 2")
	assert.Contains(t, out, "Errores Registrados: 1")
	assert.Contains(t, out, "Usuario Actual: Sistema")
}

// ─── exportar ────────────────────────────────────────────────────────────────

func TestExportar_CopiaYRegistra(t *testing.T) {
	file := seedLog(t)
	dest := filepath.Join(t.TempDir(), "copia.txt")

	out, err := run(t, "exportar", dest, "--file", file, "--actor", "root")
	require.NoError(t, err)
	assert.Contains(t, out, "Logs exportados a: "+dest)

	copied, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(copied), "LOG-0003 | ")
	assert.NotContains(t, string(copied), "LOG-0004")

	out, err = run(t, "accion", "EXPORT", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Usuario: root")

	_, err = run(t, "exportar", "--file", file)
	assert.Error(t, err, "sin destino")
}
