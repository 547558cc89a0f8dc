package duration_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
)

// Fields that must be set from duration.* rather than literals.
var guardedFields = map[string]bool{
	"Timeout":         true,
	"ChartTimeout":    true,
	"StartupTimeout":  true,
	"Settle":          true,
	"ShutdownTimeout": true,
}

func TestNoHardcodedTimeouts(t *testing.T) {
	root := projectRoot(t)
	var violations []string

	for _, dir := range []string{"pkg", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") || filepath.Base(path) == "duration.go" {
				return nil
			}
			violations = append(violations, scanFile(t, root, path)...)
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			t.Fatalf("walk %s: %v", dir, err)
		}
	}

	for _, v := range violations {
		t.Errorf("hardcoded duration, use duration.*: %s", v)
	}
}

func TestBudgets(t *testing.T) {
	if duration.BrowserSettle >= duration.ChartRender {
		t.Errorf("BrowserSettle (%v) must be shorter than ChartRender (%v)", duration.BrowserSettle, duration.ChartRender)
	}
	if duration.BrowserStartup >= duration.ChartRender {
		t.Errorf("BrowserStartup (%v) must fit inside ChartRender (%v)", duration.BrowserStartup, duration.ChartRender)
	}
	if duration.ExporterShutdown <= 0 || duration.ExporterConnect <= 0 || duration.BrowserShutdown <= 0 {
		t.Error("shutdown and connect timeouts must be positive")
	}
}

func scanFile(t *testing.T, root, path string) []string {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}

	var out []string
	report := func(field string, value ast.Expr) {
		if !literalDuration(value) {
			return
		}
		pos := fset.Position(value.Pos())
		rel, _ := filepath.Rel(root, pos.Filename)
		out = append(out, fmt.Sprintf("%s:%d: %s", rel, pos.Line, field))
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.KeyValueExpr:
			// Timeout: 30 * time.Second
			if id, ok := n.Key.(*ast.Ident); ok && guardedFields[id.Name] {
				report(id.Name, n.Value)
			}
		case *ast.AssignStmt:
			// cfg.Timeout = 30 * time.Second
			for i, lhs := range n.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if ok && guardedFields[sel.Sel.Name] && i < len(n.Rhs) {
					report(sel.Sel.Name, n.Rhs[i])
				}
			}
		}
		return true
	})
	return out
}

// literalDuration matches "N * time.Unit" and a bare "time.Unit".
func literalDuration(expr ast.Expr) bool {
	if bin, ok := expr.(*ast.BinaryExpr); ok && bin.Op == token.MUL {
		if _, ok := bin.X.(*ast.BasicLit); ok {
			return timeUnit(bin.Y)
		}
		return false
	}
	return timeUnit(expr)
}

func timeUnit(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != "time" {
		return false
	}
	switch sel.Sel.Name {
	case "Nanosecond", "Microsecond", "Millisecond", "Second", "Minute", "Hour":
		return true
	}
	return false
}

func projectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found")
		}
		dir = parent
	}
}
