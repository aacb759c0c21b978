package audit

import (
	"encoding/json"
	"strings"
)

// nombres de campo cuyo valor se reemplaza en los snapshots antes/después.
var camposSensibles = []string{"password", "token", "secret", "key", "credential"}

const valorRedactado = "[REDACTADO]"

// Redactar reemplaza recursivamente el valor de los campos sensibles de un
// payload JSON. Payloads inválidos o vacíos se devuelven tal cual.
func Redactar(payload json.RawMessage) json.RawMessage {
	if len(payload) == 0 {
		return payload
	}
	var data interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return payload
	}
	out, err := json.Marshal(redactarValor(data))
	if err != nil {
		return payload
	}
	return out
}

func redactarValor(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if esSensible(k) {
				t[k] = valorRedactado
				continue
			}
			t[k] = redactarValor(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = redactarValor(val)
		}
		return t
	default:
		return v
	}
}

func esSensible(campo string) bool {
	lower := strings.ToLower(campo)
	for _, s := range camposSensibles {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
