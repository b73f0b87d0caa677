package loader

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/utils"
)

// GoLoader loads interfaces from Go packages with golang.org/x/tools/go/packages
type GoLoader struct {
	dir      string
	patterns []string
	logger   Logger
}

// NewGoLoader creates a loader for package patterns resolved from dir
func NewGoLoader(dir string, patterns []string, logger Logger) *GoLoader {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return &GoLoader{dir: dir, patterns: patterns, logger: logger}
}

// Load implements Loader. Package errors are logged and loading continues;
// files carrying the dtogen header are ignored.
func (l *GoLoader) Load(ctx context.Context) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports | packages.NeedFiles,
		Dir:     l.dir,
		Context: ctx,
		Tests:   false,
	}

	pkgs, err := packages.Load(cfg, l.patterns...)
	if err != nil {
		return nil, errors.WrapLoadError(fmt.Sprintf("packages %v", l.patterns), err)
	}

	result := &Result{}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			l.logger.Warn("package %s: %s", pkg.PkgPath, e.Msg)
		}
		if pkg.Types == nil {
			continue
		}
		result.Packages = append(result.Packages, pkg.PkgPath)

		generated := generatedFiles(pkg)
		for _, tn := range declaredTypes(pkg, generated) {
			result.Declared = append(result.Declared, pkg.PkgPath+"."+tn.Name())

			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			iface, ok := named.Underlying().(*types.Interface)
			if !ok {
				continue
			}
			td := l.describe(pkg, tn, named, iface)
			l.logger.Debug("found interface %s with %d methods", td.QualifiedName, len(td.Methods))
			result.Types = append(result.Types, td)
		}
	}
	return result, nil
}

// describe converts an interface type into its descriptor
func (l *GoLoader) describe(pkg *packages.Package, tn *types.TypeName, named *types.Named, iface *types.Interface) models.TypeDescriptor {
	td := models.TypeDescriptor{
		QualifiedName: pkg.PkgPath + "." + tn.Name(),
		Package:       pkg.PkgPath,
		PackageName:   pkg.Name,
		Name:          tn.Name(),
		Kind:          models.KindInterface,
		Imports:       map[string]string{pkg.PkgPath: pkg.Name},
		Source:        l.position(pkg.Fset, tn.Pos()),
	}
	if !iface.IsMethodSet() {
		td.Kind = models.KindConstraint
	}
	if tparams := named.TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			tp := tparams.At(i)
			td.TypeParams = append(td.TypeParams, tp.Obj().Name()+" "+types.TypeString(tp.Constraint(), nil))
		}
	}

	methods := make([]*types.Func, 0, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		methods = append(methods, iface.Method(i))
	}
	sort.SliceStable(methods, func(i, j int) bool {
		return positionLess(pkg.Fset, methods[i].Pos(), methods[j].Pos())
	})

	for _, m := range methods {
		td.Methods = append(td.Methods, describeMethod(m, td.Imports))
	}
	return td
}

// describeMethod converts one interface method. A trailing error result next
// to a value is reported as a failure condition.
func describeMethod(m *types.Func, imports map[string]string) models.MethodDescriptor {
	sig := m.Type().(*types.Signature)
	md := models.MethodDescriptor{Name: m.Name()}

	if tparams := sig.TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			md.TypeParams = append(md.TypeParams, tparams.At(i).Obj().Name())
		}
	}

	for i := 0; i < sig.Params().Len(); i++ {
		t := sig.Params().At(i).Type()
		collectPackages(t, imports, make(map[types.Type]bool))
		md.Params = append(md.Params, types.TypeString(t, nil))
	}

	results := sig.Results()
	n := results.Len()
	if n > 1 && isError(results.At(n-1).Type()) {
		md.Throws = []string{"error"}
		n--
	}
	for i := 0; i < n; i++ {
		t := results.At(i).Type()
		collectPackages(t, imports, make(map[types.Type]bool))
		if i == 0 {
			md.Result = types.TypeString(t, nil)
		} else {
			md.ExtraResults = append(md.ExtraResults, types.TypeString(t, nil))
		}
	}
	return md
}

// collectPackages records the package clause name of every package t refers to
func collectPackages(t types.Type, into map[string]string, seen map[types.Type]bool) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	addObj := func(obj types.Object) {
		if obj != nil && obj.Pkg() != nil {
			into[obj.Pkg().Path()] = obj.Pkg().Name()
		}
	}

	switch t := t.(type) {
	case *types.Alias:
		addObj(t.Obj())
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				collectPackages(args.At(i), into, seen)
			}
		}
	case *types.Named:
		addObj(t.Obj())
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				collectPackages(args.At(i), into, seen)
			}
		}
	case *types.Pointer:
		collectPackages(t.Elem(), into, seen)
	case *types.Slice:
		collectPackages(t.Elem(), into, seen)
	case *types.Array:
		collectPackages(t.Elem(), into, seen)
	case *types.Chan:
		collectPackages(t.Elem(), into, seen)
	case *types.Map:
		collectPackages(t.Key(), into, seen)
		collectPackages(t.Elem(), into, seen)
	case *types.Signature:
		for _, tuple := range []*types.Tuple{t.Params(), t.Results()} {
			for i := 0; i < tuple.Len(); i++ {
				collectPackages(tuple.At(i).Type(), into, seen)
			}
		}
	case *types.Struct:
		for i := 0; i < t.NumFields(); i++ {
			collectPackages(t.Field(i).Type(), into, seen)
		}
	case *types.Interface:
		for i := 0; i < t.NumExplicitMethods(); i++ {
			collectPackages(t.ExplicitMethod(i).Type(), into, seen)
		}
		for i := 0; i < t.NumEmbeddeds(); i++ {
			collectPackages(t.EmbeddedType(i), into, seen)
		}
	}
}

// declaredTypes returns the package-level type names outside generated files
// in source order
func declaredTypes(pkg *packages.Package, generated map[string]bool) []*types.TypeName {
	scope := pkg.Types.Scope()
	var names []*types.TypeName
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		if generated[pkg.Fset.Position(tn.Pos()).Filename] {
			continue
		}
		names = append(names, tn)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return positionLess(pkg.Fset, names[i].Pos(), names[j].Pos())
	})
	return names
}

// generatedFiles returns the files of pkg that carry the dtogen header
func generatedFiles(pkg *packages.Package) map[string]bool {
	generated := make(map[string]bool)
	for _, file := range pkg.Syntax {
		filename := pkg.Fset.Position(file.Package).Filename
		if hasGeneratedHeader(file) {
			generated[filename] = true
		}
	}
	return generated
}

func hasGeneratedHeader(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() > file.Package {
			break
		}
		for _, c := range group.List {
			if c.Text == utils.GeneratedHeader {
				return true
			}
		}
	}
	return false
}

func (l *GoLoader) position(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)
	if !p.IsValid() {
		return ""
	}
	filename := p.Filename
	if rel, err := filepath.Rel(l.dir, filename); err == nil && l.dir != "" {
		filename = rel
	}
	return fmt.Sprintf("%s:%d", filename, p.Line)
}

func positionLess(fset *token.FileSet, a, b token.Pos) bool {
	pa, pb := fset.Position(a), fset.Position(b)
	if pa.Filename != pb.Filename {
		return pa.Filename < pb.Filename
	}
	return pa.Offset < pb.Offset
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}
