// Package customanalyzer provides custom code analysis.
package customanalyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// OsExitInMainAnalyzer reports direct os.Exit calls inside func main of package main,
// where they skip deferred calls such as storage shutdown.
var OsExitInMainAnalyzer = &analysis.Analyzer{
	Name: "osexitinmain",
	Doc:  "check for direct os.Exit calls in the main function of package main",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
				continue
			}
			ast.Inspect(fn.Body, func(node ast.Node) bool {
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
				if ok && obj.Pkg() != nil && obj.Pkg().Path() == "os" && obj.Name() == "Exit" {
					pass.Reportf(call.Pos(), "direct call to os.Exit in main function of main package")
				}
				return true
			})
		}
	}
	return nil, nil
}
