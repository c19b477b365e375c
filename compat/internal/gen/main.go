// gen generates typesupport_gen.go from the types section of
// matrix.yaml. It is wired to go:generate in the compat package and
// runs with the package directory as its working directory.
package main

import (
	"log"
	"os"
	"slices"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sqldata"
)

const pkgPath = "github.com/syssam/sqldata"

func main() {
	log.SetFlags(0)
	log.SetPrefix("gen: ")
	buf, err := os.ReadFile("matrix.yaml")
	if err != nil {
		log.Fatalln("reading matrix file:", err)
	}
	var matrix struct {
		Types map[string][]string `yaml:"types"`
	}
	if err := yaml.Unmarshal(buf, &matrix); err != nil {
		log.Fatalln("parsing matrix file:", err)
	}
	byName := make(map[string]sqldata.Type)
	for _, t := range sqldata.Types() {
		byName[t.String()] = t
	}
	dialects := make([]string, 0, len(matrix.Types))
	for d := range matrix.Types {
		dialects = append(dialects, d)
	}
	slices.Sort(dialects)

	title := cases.Title(language.English)
	f := jen.NewFile("compat")
	f.HeaderComment("Code generated by internal/gen. DO NOT EDIT.")
	for _, d := range dialects {
		ts := resolve(byName, matrix.Types[d])
		f.Commentf("%s lists the value domains available on %s.", varName(d), title.String(d))
		f.Var().Id(varName(d)).Op("=").Index().Qual(pkgPath, "Type").ValuesFunc(func(g *jen.Group) {
			for _, t := range ts {
				g.Line().Qual(pkgPath, t.ConstName())
			}
			g.Line()
		})
	}
	f.Comment("typesByDialect maps each dialect name to its available domains.")
	f.Var().Id("typesByDialect").Op("=").Map(jen.String()).Index().Qual(pkgPath, "Type").Values(jen.DictFunc(func(dict jen.Dict) {
		for _, d := range dialects {
			dict[jen.Lit(d)] = jen.Id(varName(d))
		}
	}))
	out, err := os.Create("typesupport_gen.go")
	if err != nil {
		log.Fatalln("creating output file:", err)
	}
	defer out.Close()
	if err := f.Render(out); err != nil {
		log.Fatalln("rendering output file:", err)
	}
}

// resolve maps domain names from the matrix to their constants and
// orders them by domain.
func resolve(byName map[string]sqldata.Type, names []string) []sqldata.Type {
	ts := make([]sqldata.Type, 0, len(names))
	for _, n := range names {
		t, ok := byName[n]
		if !ok {
			log.Fatalf("unknown domain %q in matrix.yaml", n)
		}
		ts = append(ts, t)
	}
	slices.Sort(ts)
	return ts
}

// varName derives the per-dialect variable name, e.g. "postgres"
// becomes "postgresTypes".
func varName(d string) string {
	return inflect.CamelizeDownFirst(d + "_types")
}
