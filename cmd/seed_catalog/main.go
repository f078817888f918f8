// seed_catalog genera el script SQL que carga el catálogo inicial (categorías y productos)
// a partir de un CSV separado por punto y coma: categoria;nombre;precio;stock
//
// Uso: go run ./cmd/seed_catalog [--latin1] [ruta/catalogo.csv]
// Por defecto lee catalogo.csv del directorio actual. --latin1 para exportes ISO-8859-1.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace espacio UUIDv5: el mismo nombre produce siempre el mismo ID.
var catalogNamespace = uuid.MustParse("6f1f6c2e-3c1a-4f57-9d0e-6a1d2a8f4b10")

type catalogRow struct {
	category string
	name     string
	price    decimal.Decimal
	stock    int64
}

func (r catalogRow) productID() string {
	return uuid.NewSHA1(catalogNamespace, []byte(strings.ToLower(r.category+"/"+r.name))).String()
}

func categoryID(name string) string {
	return uuid.NewSHA1(catalogNamespace, []byte(strings.ToLower(name))).String()
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	categories, err := writeSQL(out, filepath.Base(csvPath), rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías, %d productos\n", outPath, categories, len(rows))
}

// parseCatalog lee filas categoria;nombre;precio;stock. Ignora líneas vacías, comentarios (#)
// y una cabecera cuya columna de precio no sea numérica.
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	seen := make(map[string]int)
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		category, name := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		price, perr := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if perr != nil {
			if first {
				continue // cabecera
			}
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[2])
		}
		stock, serr := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
		if serr != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[3])
		}
		switch {
		case category == "" || name == "":
			return nil, fmt.Errorf("línea %d: categoría y nombre son requeridos", line)
		case price.IsNegative():
			return nil, fmt.Errorf("línea %d: precio negativo", line)
		case stock < 0:
			return nil, fmt.Errorf("línea %d: stock negativo", line)
		}
		row := catalogRow{category: category, name: name, price: price.Round(2), stock: stock}
		if prev, ok := seen[row.productID()]; ok {
			return nil, fmt.Errorf("línea %d: producto repetido (ver línea %d)", line, prev)
		}
		seen[row.productID()] = line
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("el catálogo no tiene productos")
	}
	return rows, nil
}

// writeSQL escribe categorías y productos. Re-ejecutable: nunca pisa el stock de un producto existente.
func writeSQL(w io.Writer, source string, rows []catalogRow) (int, error) {
	var categories []string
	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.category]; ok {
			continue
		}
		seen[r.category] = struct{}{}
		categories = append(categories, r.category)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("-- Catálogo inicial del POS\n")
	fmt.Fprintf(&b, "-- Generado desde %s con cmd/seed_catalog\n\n", source)

	b.WriteString("-- 1. Categorías\n")
	b.WriteString("INSERT INTO categories (id, name) VALUES\n")
	for i, c := range categories {
		sep := ","
		if i == len(categories)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s')%s\n", categoryID(c), escapeSQL(c), sep)
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")

	b.WriteString("-- 2. Productos (categoría por nombre)\n")
	for _, r := range rows {
		b.WriteString("INSERT INTO products (id, category_id, name, price, stock)\n")
		fmt.Fprintf(&b, "SELECT '%s', id, '%s', %s, %d FROM categories WHERE name = '%s'\n",
			r.productID(), escapeSQL(r.name), r.price.StringFixed(2), r.stock, escapeSQL(r.category))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, updated_at = now();\n")
	}

	_, err := io.WriteString(w, b.String())
	return len(categories), err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
