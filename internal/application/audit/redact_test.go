package audit_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/audit"
)

func redactarMapa(t *testing.T, in string) map[string]interface{} {
	t.Helper()
	out := audit.Redactar(json.RawMessage(in))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &m))
	return m
}

func TestRedactar_CamposSensibles(t *testing.T) {
	m := redactarMapa(t, `{"password":"hunter2","email":"ana@acme.pe","apiToken":"abc","SECRET_KEY":"xyz"}`)

	assert.Equal(t, "[REDACTADO]", m["password"])
	assert.Equal(t, "[REDACTADO]", m["apiToken"], "la detección es por substring, sin distinguir mayúsculas")
	assert.Equal(t, "[REDACTADO]", m["SECRET_KEY"])
	assert.Equal(t, "ana@acme.pe", m["email"], "los campos no sensibles quedan intactos")
}

func TestRedactar_Anidado(t *testing.T) {
	m := redactarMapa(t, `{"usuario":{"credentials":{"password":"x"},"nombre":"Ana"},"items":[{"token":"t1"},{"cantidad":2}]}`)

	usuario := m["usuario"].(map[string]interface{})
	// "credentials" contiene "credential": se redacta el objeto completo
	assert.Equal(t, "[REDACTADO]", usuario["credentials"])
	assert.Equal(t, "Ana", usuario["nombre"])

	items := m["items"].([]interface{})
	assert.Equal(t, "[REDACTADO]", items[0].(map[string]interface{})["token"])
	assert.Equal(t, float64(2), items[1].(map[string]interface{})["cantidad"])
}

func TestRedactar_PayloadInvalidoOVacio(t *testing.T) {
	invalido := json.RawMessage(`{no es json`)
	assert.Equal(t, invalido, audit.Redactar(invalido), "un payload inválido se devuelve tal cual")

	assert.Empty(t, audit.Redactar(nil))
	assert.Empty(t, audit.Redactar(json.RawMessage{}))
}
