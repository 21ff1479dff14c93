package provider

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDecodeRecords(t *testing.T) {
	list, err := decodeRecords([]byte(`[{"a":1},{"b":"x"}]`))
	assert.Equal(t, err, nil)
	assert.Equal(t, len(list), 2)

	wrapped, err := decodeRecords([]byte(`{"data":[{"headline":"h"}]}`))
	assert.Equal(t, err, nil)
	assert.Equal(t, len(wrapped), 1)
	assert.Equal(t, wrapped[0]["headline"], "h")

	table, err := decodeRecords([]byte(`{"Table":[{"SCRIP_CD":500325}]}`))
	assert.Equal(t, err, nil)
	assert.Equal(t, len(table), 1)

	empty, err := decodeRecords([]byte("  "))
	assert.Equal(t, err, nil)
	assert.Equal(t, len(empty), 0)

	_, err = decodeRecords([]byte(`{"unexpected":true}`))
	assert.NotEqual(t, err, nil)

	_, err = decodeRecords([]byte(`not json`))
	assert.NotEqual(t, err, nil)
}

func TestStringFieldFallbackOrder(t *testing.T) {
	r := record{"purpose": "Dividend", "subject": "", "exDate": 20261017.0}

	assert.Equal(t, stringField(r, "subject", "purpose"), "Dividend")
	assert.Equal(t, stringField(r, "purpose", "subject"), "Dividend")
	assert.Equal(t, stringField(r, "exDate"), "20261017")
	assert.Equal(t, stringField(r, "missing"), "")
	assert.Equal(t, stringField(record{"m": "  two\n lines "}, "m"), "  two\n lines ")
	assert.Equal(t, stringField(record{"subject": "   ", "purpose": "Bonus"}, "subject", "purpose"), "Bonus")
}

func TestIntField(t *testing.T) {
	n, ok := intField(record{"sentiment": 42.0}, "sentiment")
	assert.Equal(t, ok, true)
	assert.Equal(t, n, 42)

	n, ok = intField(record{"score": "77"}, "sentiment", "score")
	assert.Equal(t, ok, true)
	assert.Equal(t, n, 77)

	_, ok = intField(record{"sentiment": nil}, "sentiment")
	assert.Equal(t, ok, false)

	_, ok = intField(record{"sentiment": "high"}, "sentiment")
	assert.Equal(t, ok, false)
}

func TestStringsField(t *testing.T) {
	assert.Equal(t, stringsField(record{"tags": []any{"a", "", "b"}}, "tags"), []string{"a", "b"})
	assert.Equal(t, stringsField(record{"tags": "x, y"}, "tags"), []string{"x", "y"})
	assert.Equal(t, stringsField(record{}, "tags"), []string{})
}

func TestWithoutKeys(t *testing.T) {
	out := withoutKeys(record{"a": 1, "b": 2, "c": 3}, []string{"a"}, []string{"c"})
	assert.Equal(t, out, map[string]any{"b": 2})
	assert.Equal(t, withoutKeys(record{"a": 1}, []string{"a"}) == nil, true)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, sanitizeText("  a \r\n b  ", 0), "a b")
	assert.Equal(t, sanitizeText("abcdef", 3), "abc")
}
