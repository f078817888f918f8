package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseCatalog_ConCabeceraYComentarios(t *testing.T) {
	in := "categoria;nombre;precio;stock\n# bebidas\nBebidas;Agua 600ml;1800;48\nSnacks; Papas fritas ;2200.5;40\n"

	rows, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Papas fritas", rows[1].name)
	assert.Equal(t, "2200.50", rows[1].price.StringFixed(2))
	assert.Equal(t, int64(40), rows[1].stock)
}

func TestParseCatalog_Rechazos(t *testing.T) {
	cases := map[string]string{
		"stock negativo":    "Aseo;Jabón;2900;-1\n",
		"precio inválido":   "Aseo;Jabón;2900;1\nAseo;Crema;abc;1\n",
		"producto repetido": "Aseo;Jabón;2900;1\naseo;JABÓN;3000;2\n",
		"sin nombre":        "Aseo;;2900;1\n",
		"vacío":             "categoria;nombre;precio;stock\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Panadería;Pan de bono;900;30\n")
	require.NoError(t, err)

	rows, err := parseCatalog(transform.NewReader(strings.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	assert.Equal(t, "Panadería", rows[0].category)
}

func TestWriteSQL_EsEstableYEscapaComillas(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader("Snacks;Maní 'salado';1500;10\nBebidas;Agua;1800;5\n"))
	require.NoError(t, err)

	var a, b bytes.Buffer
	n, err := writeSQL(&a, "catalogo.csv", rows)
	require.NoError(t, err)
	_, err = writeSQL(&b, "catalogo.csv", rows)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, a.String(), b.String(), "mismos datos, mismos IDs")
	sql := a.String()
	assert.Contains(t, sql, "'Maní ''salado'''")
	assert.Contains(t, sql, "ON CONFLICT (name) DO NOTHING")
	assert.NotContains(t, sql, "stock = EXCLUDED.stock", "re-ejecutar no pisa el stock")
	assert.Less(t, strings.Index(sql, "'Bebidas'"), strings.Index(sql, "'Snacks'"))
}
